package extract

import (
    "strings"
    "unicode"
    "unicode/utf8"

    "golang.org/x/text/encoding"
    "golang.org/x/text/encoding/charmap"
)

// plainExtractor handles txt and md payloads: decode only, no markup walking.
type plainExtractor struct{}

func (plainExtractor) Extract(content []byte) (ExtractedText, error) {
    text, err := decodeText(content)
    if err != nil {
        return ExtractedText{}, err
    }
    return finish(text, nil), nil
}

// garbageTolerance caps the fraction of replacement/unprintable runes a
// candidate decoding may produce before it is rejected.
const garbageTolerance = 0.05

// decodeText attempts UTF-8 first, then a small fixed list of legacy
// encodings, accepting the first candidate whose output is clean enough.
func decodeText(content []byte) (string, error) {
    if len(content) == 0 {
        return "", nil
    }
    if utf8.Valid(content) {
        return string(content), nil
    }
    candidates := []encoding.Encoding{charmap.ISO8859_1, charmap.Windows1252}
    for _, enc := range candidates {
        decoded, err := enc.NewDecoder().Bytes(content)
        if err != nil {
            continue
        }
        s := string(decoded)
        if garbageRatio(s) <= garbageTolerance {
            return s, nil
        }
    }
    return "", ErrEncodingUndetermined
}

// garbageRatio measures the fraction of runes that look like decoding debris:
// the replacement rune or non-printable characters outside normal whitespace.
func garbageRatio(s string) float64 {
    if s == "" {
        return 0
    }
    total, bad := 0, 0
    for _, r := range s {
        total++
        if r == utf8.RuneError {
            bad++
            continue
        }
        if r == '\n' || r == '\r' || r == '\t' || r == '\f' {
            continue
        }
        if !unicode.IsPrint(r) {
            bad++
        }
    }
    return float64(bad) / float64(total)
}

// normalizeNewlines folds Windows and bare-CR line endings into \n.
func normalizeNewlines(s string) string {
    s = strings.ReplaceAll(s, "\r\n", "\n")
    return strings.ReplaceAll(s, "\r", "\n")
}
