package extract

import (
    "errors"
    "fmt"
    "strings"

    "github.com/hyperifyio/gostudy/internal/sniff"
)

// ExtractedText is the plain-text view of one document plus lightweight
// structure recovered during parsing. PageBreaks holds byte offsets into Text
// where a new page begins, when the container exposes pagination.
type ExtractedText struct {
    Text       string
    WordCount  int
    CharCount  int
    PageBreaks []int
}

var (
    // ErrCorruptedDocument means the container could not be parsed at all.
    ErrCorruptedDocument = errors.New("corrupted document")
    // ErrPasswordProtected means the container signals encryption.
    ErrPasswordProtected = errors.New("password protected document")
    // ErrEncodingUndetermined means no candidate encoding produced clean text.
    ErrEncodingUndetermined = errors.New("encoding undetermined")
)

// Extractor converts raw document bytes of a single format into plain text.
// Extraction is pure given the byte payload.
type Extractor interface {
    Extract(content []byte) (ExtractedText, error)
}

// ForFormat returns the extractor variant for a format tag. The legacy doc
// tag shares the docx extractor, where genuine OLE payloads surface as
// ErrCorruptedDocument or ErrPasswordProtected.
func ForFormat(f sniff.Format) (Extractor, error) {
    switch f {
    case sniff.FormatPDF:
        return pdfExtractor{}, nil
    case sniff.FormatDOCX, sniff.FormatDOC:
        return docxExtractor{}, nil
    case sniff.FormatEPUB:
        return epubExtractor{}, nil
    case sniff.FormatHTML:
        return htmlExtractor{}, nil
    case sniff.FormatRTF:
        return rtfExtractor{}, nil
    case sniff.FormatTXT, sniff.FormatMD:
        return plainExtractor{}, nil
    default:
        return nil, fmt.Errorf("%w: %s", sniff.ErrUnsupportedFormat, f)
    }
}

// finish fills in the derived counts for an extracted text.
func finish(text string, pageBreaks []int) ExtractedText {
    return ExtractedText{
        Text:       text,
        WordCount:  len(strings.Fields(text)),
        CharCount:  len([]rune(text)),
        PageBreaks: pageBreaks,
    }
}
