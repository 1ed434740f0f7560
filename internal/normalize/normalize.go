package normalize

import (
    "regexp"
    "strings"
    "unicode"

    "github.com/hyperifyio/gostudy/internal/extract"
)

// MinWordCount is the threshold below which normalized text is flagged
// insufficient for generation. The caller decides whether to proceed anyway.
const MinWordCount = 500

// Result is cleaned text plus its quality flag. Insufficient text is still
// returned in full; this stage only transforms, it never rejects.
type Result struct {
    Text         string
    WordCount    int
    Insufficient bool
}

var (
    multiBlank  = regexp.MustCompile(`\n\s*\n`)
    runSpaces   = regexp.MustCompile(`[ \t]+`)
    bareNumber  = regexp.MustCompile(`^\s*\d+\s*$`)
    hyphenBreak = regexp.MustCompile(`(\p{L})-\n(\p{L})`)
)

// Clean applies the normalization passes in a fixed order: newline and
// whitespace collapsing, recurring header/footer removal keyed on page
// boundaries, de-hyphenation across line breaks, and a printable-rune trim.
// Applying Clean to its own output yields the same text.
func Clean(in extract.ExtractedText) Result {
    text := strings.ReplaceAll(in.Text, "\r\n", "\n")
    text = strings.ReplaceAll(text, "\r", "\n")

    text = runSpaces.ReplaceAllString(text, " ")
    text = multiBlank.ReplaceAllString(text, "\n\n")
    text = dropRecurringLines(text, len(in.PageBreaks))
    text = hyphenBreak.ReplaceAllString(text, "$1$2")
    text = trimUnprintable(text)
    // Removing lines can leave fresh blank runs; collapse once more so the
    // pass is idempotent.
    text = multiBlank.ReplaceAllString(text, "\n\n")
    text = strings.TrimSpace(text)

    words := len(strings.Fields(text))
    return Result{
        Text:         text,
        WordCount:    words,
        Insufficient: words < MinWordCount,
    }
}

// dropRecurringLines removes boilerplate that repeats across pages: bare page
// numbers always, and any short line occurring at least three times and on
// more than half the pages (running headers and footers). Without pagination
// only the page-number rule applies, since repetition carries no signal.
func dropRecurringLines(text string, pageCount int) string {
    lines := strings.Split(text, "\n")

    counts := map[string]int{}
    for _, line := range lines {
        trimmed := strings.TrimSpace(line)
        if trimmed == "" || len(trimmed) > 80 {
            continue
        }
        counts[trimmed]++
    }

    recurring := func(s string) bool {
        if pageCount < 3 {
            return false
        }
        n := counts[s]
        return n >= 3 && n*2 > pageCount
    }

    out := make([]string, 0, len(lines))
    for _, line := range lines {
        trimmed := strings.TrimSpace(line)
        if trimmed != "" {
            if bareNumber.MatchString(trimmed) {
                continue
            }
            if recurring(trimmed) {
                continue
            }
        }
        out = append(out, line)
    }
    return strings.Join(out, "\n")
}

// trimUnprintable drops control runes other than newline and tab.
func trimUnprintable(s string) string {
    var b strings.Builder
    b.Grow(len(s))
    for _, r := range s {
        if r == '\n' || r == '\t' {
            b.WriteRune(r)
            continue
        }
        if unicode.IsControl(r) || !unicode.IsGraphic(r) && r != ' ' {
            continue
        }
        b.WriteRune(r)
    }
    return b.String()
}
