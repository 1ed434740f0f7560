package sniff

import (
    "bytes"
    "errors"
    "fmt"
    "path"
    "strings"

    "github.com/rs/zerolog/log"
)

// Format identifies a supported document container format.
type Format string

const (
    FormatPDF  Format = "pdf"
    FormatDOCX Format = "docx"
    FormatDOC  Format = "doc"
    FormatEPUB Format = "epub"
    FormatTXT  Format = "txt"
    FormatMD   Format = "md"
    FormatHTML Format = "html"
    FormatRTF  Format = "rtf"
)

// ErrUnsupportedFormat is returned when neither the filename suffix nor the
// content signature matches a supported format. Wrapped errors carry the
// attempted tag.
var ErrUnsupportedFormat = errors.New("unsupported document format")

var extToFormat = map[string]Format{
    ".pdf":      FormatPDF,
    ".docx":     FormatDOCX,
    ".doc":      FormatDOC,
    ".epub":     FormatEPUB,
    ".txt":      FormatTXT,
    ".text":     FormatTXT,
    ".md":       FormatMD,
    ".markdown": FormatMD,
    ".html":     FormatHTML,
    ".htm":      FormatHTML,
    ".rtf":      FormatRTF,
}

// Detect determines the document format. The filename suffix wins when it
// names a supported format; otherwise the content signature is probed; as a
// last resort the declared fallback is used with a warning. An unrecognized
// suffix with no matching signature fails with ErrUnsupportedFormat.
func Detect(filename string, content []byte, fallback Format) (Format, error) {
    ext := strings.ToLower(path.Ext(filename))
    if f, ok := extToFormat[ext]; ok {
        return f, nil
    }
    if f, ok := detectSignature(content); ok {
        return f, nil
    }
    if fallback != "" {
        log.Warn().Str("filename", filename).Str("fallback", string(fallback)).
            Msg("format undetected; using declared default")
        return fallback, nil
    }
    tag := ext
    if tag == "" {
        tag = "(none)"
    }
    return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, tag)
}

// detectSignature probes magic bytes and container markers.
func detectSignature(content []byte) (Format, bool) {
    if len(content) < 4 {
        return "", false
    }
    switch {
    case bytes.HasPrefix(content, []byte("%PDF")):
        return FormatPDF, true
    case bytes.HasPrefix(content, []byte("PK\x03\x04")):
        // ZIP container: DOCX stores parts under word/, EPUB declares its
        // mimetype as the first entry.
        head := content
        if len(head) > 4096 {
            head = head[:4096]
        }
        if bytes.Contains(head, []byte("word/")) {
            return FormatDOCX, true
        }
        if bytes.Contains(head, []byte("application/epub+zip")) || bytes.Contains(head, []byte("EPUB")) {
            return FormatEPUB, true
        }
        return "", false
    case bytes.HasPrefix(content, []byte(`{\rtf`)):
        return FormatRTF, true
    case bytes.HasPrefix(content, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}):
        // OLE compound file, the legacy Word container.
        return FormatDOC, true
    }
    head := content
    if len(head) > 1024 {
        head = head[:1024]
    }
    lower := bytes.ToLower(head)
    if bytes.Contains(lower, []byte("<html")) || bytes.Contains(lower, []byte("<!doctype html")) {
        return FormatHTML, true
    }
    return "", false
}

// Supported lists every format tag the sniffer can return.
func Supported() []Format {
    return []Format{FormatPDF, FormatDOCX, FormatDOC, FormatEPUB, FormatTXT, FormatMD, FormatHTML, FormatRTF}
}
