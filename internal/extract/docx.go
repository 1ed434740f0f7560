package extract

import (
    "archive/zip"
    "bytes"
    "encoding/xml"
    "fmt"
    "io"
    "strings"
)

// docxExtractor reads word/document.xml out of the ZIP container and walks
// paragraph elements. Encrypted Office files are not ZIPs but OLE compound
// files carrying an EncryptedPackage stream; those are reported as
// password protected rather than corrupted.
type docxExtractor struct{}

var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

func (docxExtractor) Extract(content []byte) (ExtractedText, error) {
    zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
    if err != nil {
        if bytes.HasPrefix(content, oleSignature) {
            return ExtractedText{}, fmt.Errorf("%w: OLE container", ErrPasswordProtected)
        }
        return ExtractedText{}, fmt.Errorf("%w: open zip: %v", ErrCorruptedDocument, err)
    }

    var docFile *zip.File
    for _, f := range zr.File {
        if f.Name == "word/document.xml" {
            docFile = f
            break
        }
        if f.Name == "EncryptedPackage" {
            return ExtractedText{}, fmt.Errorf("%w: encrypted package", ErrPasswordProtected)
        }
    }
    if docFile == nil {
        return ExtractedText{}, fmt.Errorf("%w: word/document.xml not found", ErrCorruptedDocument)
    }

    rc, err := docFile.Open()
    if err != nil {
        return ExtractedText{}, fmt.Errorf("%w: open document.xml: %v", ErrCorruptedDocument, err)
    }
    defer rc.Close()

    paragraphs, err := walkDocxParagraphs(rc)
    if err != nil {
        return ExtractedText{}, err
    }
    return finish(strings.Join(paragraphs, "\n\n"), nil), nil
}

// walkDocxParagraphs streams the WordprocessingML body. Heading-styled
// paragraphs come through like any other; page breaks (w:br w:type="page",
// lastRenderedPageBreak) are not tracked since DOCX pagination is advisory.
func walkDocxParagraphs(r io.Reader) ([]string, error) {
    decoder := xml.NewDecoder(r)
    var paragraphs []string
    var current strings.Builder
    inParagraph := false
    sawAny := false

    for {
        tok, err := decoder.Token()
        if err == io.EOF {
            break
        }
        if err != nil {
            return nil, fmt.Errorf("%w: decode xml: %v", ErrCorruptedDocument, err)
        }
        switch t := tok.(type) {
        case xml.StartElement:
            switch t.Name.Local {
            case "p":
                inParagraph = true
                current.Reset()
            case "tab":
                if inParagraph {
                    current.WriteByte(' ')
                }
            case "br", "cr":
                if inParagraph {
                    current.WriteByte('\n')
                }
            }
            sawAny = true
        case xml.CharData:
            if inParagraph {
                current.Write(t)
            }
        case xml.EndElement:
            if t.Name.Local == "p" && inParagraph {
                inParagraph = false
                if text := strings.TrimSpace(current.String()); text != "" {
                    paragraphs = append(paragraphs, text)
                }
            }
        }
    }
    if !sawAny {
        return nil, fmt.Errorf("%w: empty document.xml", ErrCorruptedDocument)
    }
    return paragraphs, nil
}
