package extract

import (
    "fmt"
    "strconv"
    "strings"

    "golang.org/x/text/encoding/charmap"
)

// rtfExtractor strips RTF control words and groups, keeping shown text.
// Destination groups that never render (font tables, stylesheets, embedded
// pictures) are skipped wholesale.
type rtfExtractor struct{}

var rtfSkipDestinations = map[string]bool{
    "fonttbl":    true,
    "colortbl":   true,
    "stylesheet": true,
    "info":       true,
    "pict":       true,
    "themedata":  true,
    "listtable":  true,
    "xmlnstbl":   true,
}

func (rtfExtractor) Extract(content []byte) (ExtractedText, error) {
    decoded, err := decodeText(content)
    if err != nil {
        return ExtractedText{}, err
    }
    if !strings.HasPrefix(decoded, `{\rtf`) {
        return ExtractedText{}, fmt.Errorf("%w: missing rtf header", ErrCorruptedDocument)
    }
    return finish(stripRTF(decoded), nil), nil
}

func stripRTF(s string) string {
    var out strings.Builder
    skipDepth := 0 // depth at which an ignorable destination began; 0 means none
    depth := 0

    for i := 0; i < len(s); i++ {
        c := s[i]
        switch c {
        case '{':
            depth++
            // Peek for an ignorable destination: {\*\... or {\fonttbl...
            rest := s[i+1:]
            if skipDepth == 0 {
                if strings.HasPrefix(rest, `\*`) {
                    skipDepth = depth
                } else if strings.HasPrefix(rest, `\`) {
                    word := leadingControlWord(rest[1:])
                    if rtfSkipDestinations[word] {
                        skipDepth = depth
                    }
                }
            }
        case '}':
            if skipDepth != 0 && depth == skipDepth {
                skipDepth = 0
            }
            depth--
        case '\\':
            if i+1 >= len(s) {
                break
            }
            next := s[i+1]
            // Escaped literals.
            if next == '\\' || next == '{' || next == '}' {
                if skipDepth == 0 {
                    out.WriteByte(next)
                }
                i++
                continue
            }
            // Hex escape \'hh.
            if next == '\'' && i+3 < len(s) {
                if skipDepth == 0 {
                    if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
                        out.WriteRune(cp1252Rune(byte(v)))
                    }
                }
                i += 3
                continue
            }
            word := leadingControlWord(s[i+1:])
            consumed := len(word)
            // Optional numeric parameter.
            j := i + 1 + consumed
            numStart := j
            if j < len(s) && s[j] == '-' {
                j++
            }
            for j < len(s) && s[j] >= '0' && s[j] <= '9' {
                j++
            }
            param := s[numStart:j]
            // A single trailing space terminates the control word.
            if j < len(s) && s[j] == ' ' {
                j++
            }
            if skipDepth == 0 {
                switch word {
                case "par", "line", "sect", "page":
                    out.WriteByte('\n')
                case "tab", "cell":
                    out.WriteByte(' ')
                case "u":
                    if n, err := strconv.Atoi(param); err == nil {
                        if n < 0 {
                            n += 65536
                        }
                        out.WriteRune(rune(n))
                        // Skip the fallback character that follows \uN.
                        if j < len(s) && s[j] != '\\' && s[j] != '{' && s[j] != '}' {
                            j++
                        }
                    }
                }
            }
            i = j - 1
        case '\r', '\n':
            // Raw newlines in RTF source are not document content.
        default:
            if skipDepth == 0 {
                out.WriteByte(c)
            }
        }
    }
    return strings.TrimSpace(out.String())
}

func leadingControlWord(s string) string {
    end := 0
    for end < len(s) && ((s[end] >= 'a' && s[end] <= 'z') || (s[end] >= 'A' && s[end] <= 'Z')) {
        end++
    }
    return s[:end]
}

// cp1252Rune maps a Windows-1252 byte to its rune; RTF hex escapes default to
// that codepage in the documents this pipeline sees.
func cp1252Rune(b byte) rune {
    return charmap.Windows1252.DecodeByte(b)
}
