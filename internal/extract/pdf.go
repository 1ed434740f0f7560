package extract

import (
    "bytes"
    "fmt"
    "io"
    "regexp"
    "strings"

    "github.com/pdfcpu/pdfcpu/pkg/api"
    "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
    "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfExtractor walks pages through pdfcpu and scans each page's content
// stream for text-showing operators. One PageBreak is recorded per page so
// the normalizer can spot recurring headers and footers.
type pdfExtractor struct{}

func (pdfExtractor) Extract(content []byte) (ExtractedText, error) {
    conf := model.NewDefaultConfiguration()
    ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(content), conf)
    if err != nil {
        if isEncryptedPDF(err, content) {
            return ExtractedText{}, fmt.Errorf("%w: %v", ErrPasswordProtected, err)
        }
        return ExtractedText{}, fmt.Errorf("%w: pdfcpu read: %v", ErrCorruptedDocument, err)
    }

    var all strings.Builder
    var pageBreaks []int
    for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
        pageText := extractPageText(ctx, pageNr)
        if pageText == "" {
            continue
        }
        if all.Len() > 0 {
            all.WriteByte('\n')
        }
        pageBreaks = append(pageBreaks, all.Len())
        all.WriteString(pageText)
    }
    if all.Len() == 0 {
        return ExtractedText{}, fmt.Errorf("%w: no text content in PDF", ErrCorruptedDocument)
    }
    return finish(all.String(), pageBreaks), nil
}

func isEncryptedPDF(err error, content []byte) bool {
    msg := strings.ToLower(err.Error())
    if strings.Contains(msg, "password") || strings.Contains(msg, "encrypt") {
        return true
    }
    return bytes.Contains(content, []byte("/Encrypt"))
}

func extractPageText(ctx *model.Context, pageNr int) string {
    r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
    if err != nil {
        return ""
    }
    data, err := io.ReadAll(r)
    if err != nil || len(data) == 0 {
        return ""
    }
    return textFromContentStream(data)
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// textFromContentStream walks content stream operators and assembles the
// shown text. Tj/TJ show text, ' shows text on the next line, Td/TD/T*
// reposition and become separators.
func textFromContentStream(data []byte) string {
    var sb strings.Builder
    for _, line := range bytes.Split(data, []byte{'\n'}) {
        line = bytes.TrimSpace(line)
        if len(line) == 0 {
            continue
        }
        switch {
        case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
            for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
                sb.WriteString(decodePDFString(m[1]))
            }
        case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
            for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
                sb.WriteByte('\n')
                sb.WriteString(decodePDFString(m[1]))
            }
        case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
            if sb.Len() > 0 {
                sb.WriteByte(' ')
            }
        case bytes.Equal(line, []byte("T*")):
            sb.WriteByte('\n')
        }
    }
    return strings.TrimSpace(sb.String())
}

// decodePDFString handles the basic PDF escape sequences, including octal.
func decodePDFString(raw []byte) string {
    var sb strings.Builder
    for i := 0; i < len(raw); i++ {
        if raw[i] != '\\' || i+1 >= len(raw) {
            sb.WriteByte(raw[i])
            continue
        }
        i++
        switch raw[i] {
        case 'n':
            sb.WriteByte('\n')
        case 'r':
            sb.WriteByte('\r')
        case 't':
            sb.WriteByte('\t')
        case '\\', '(', ')':
            sb.WriteByte(raw[i])
        default:
            if raw[i] >= '0' && raw[i] <= '7' {
                val := int(raw[i] - '0')
                for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
                    i++
                    val = val*8 + int(raw[i]-'0')
                }
                sb.WriteByte(byte(val))
            } else {
                sb.WriteByte(raw[i])
            }
        }
    }
    return sb.String()
}
