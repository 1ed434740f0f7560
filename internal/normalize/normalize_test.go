package normalize

import (
    "fmt"
    "strings"
    "testing"

    "github.com/hyperifyio/gostudy/internal/extract"
)

func TestClean_CollapsesWhitespace(t *testing.T) {
    got := Clean(extract.ExtractedText{Text: "one   two\t three\n\n\n\nfour"})
    if got.Text != "one two three\n\nfour" {
        t.Fatalf("got %q", got.Text)
    }
}

func TestClean_RemovesBarePageNumbers(t *testing.T) {
    got := Clean(extract.ExtractedText{Text: "intro text\n12\nmore text\n 7 \nend"})
    if strings.Contains(got.Text, "12") || strings.Contains(got.Text, "7") {
        t.Fatalf("page numbers survived: %q", got.Text)
    }
    for _, want := range []string{"intro text", "more text", "end"} {
        if !strings.Contains(got.Text, want) {
            t.Errorf("content lost: %q missing from %q", want, got.Text)
        }
    }
}

func TestClean_DropsRecurringHeadersAcrossPages(t *testing.T) {
    // Four pages, each repeating the same running header.
    var b strings.Builder
    breaks := make([]int, 0, 4)
    for i := 0; i < 4; i++ {
        breaks = append(breaks, b.Len())
        b.WriteString("Chapter 3: Thermodynamics\n")
        fmt.Fprintf(&b, "unique paragraph content for page number %c\n", 'a'+i)
    }
    got := Clean(extract.ExtractedText{Text: b.String(), PageBreaks: breaks})
    if strings.Contains(got.Text, "Chapter 3: Thermodynamics") {
        t.Fatalf("running header survived: %q", got.Text)
    }
    if !strings.Contains(got.Text, "unique paragraph content") {
        t.Fatalf("body content lost: %q", got.Text)
    }
}

func TestClean_KeepsRepeatsWithoutPagination(t *testing.T) {
    text := strings.Repeat("the same sentence again\n", 5)
    got := Clean(extract.ExtractedText{Text: text})
    if !strings.Contains(got.Text, "the same sentence again") {
        t.Fatalf("unpaginated repeats must survive: %q", got.Text)
    }
}

func TestClean_DeHyphenates(t *testing.T) {
    got := Clean(extract.ExtractedText{Text: "photosyn-\nthesis happens in chloro-\nplasts"})
    if !strings.Contains(got.Text, "photosynthesis") || !strings.Contains(got.Text, "chloroplasts") {
        t.Fatalf("hyphenation not repaired: %q", got.Text)
    }
}

func TestClean_Idempotent(t *testing.T) {
    raw := "head-\ner text   with\tspaces\n\n\n42\npage body\r\nmore\x00junk"
    once := Clean(extract.ExtractedText{Text: raw})
    twice := Clean(extract.ExtractedText{Text: once.Text})
    if once.Text != twice.Text {
        t.Fatalf("not idempotent:\n once=%q\ntwice=%q", once.Text, twice.Text)
    }
    if once.WordCount != twice.WordCount {
        t.Fatalf("word counts diverge: %d vs %d", once.WordCount, twice.WordCount)
    }
}

func TestClean_FlagsInsufficientButReturnsText(t *testing.T) {
    got := Clean(extract.ExtractedText{Text: "a short document about very little"})
    if !got.Insufficient {
        t.Fatalf("expected insufficient flag")
    }
    if got.Text == "" {
        t.Fatalf("text must still be returned")
    }

    long := strings.Repeat("substantive vocabulary words appear here repeatedly ", 100)
    got = Clean(extract.ExtractedText{Text: long})
    if got.Insufficient {
        t.Fatalf("600-word text flagged insufficient")
    }
}

func TestClean_StripsControlRunes(t *testing.T) {
    got := Clean(extract.ExtractedText{Text: "clean\x00 \x07text\fhere"})
    if strings.ContainsAny(got.Text, "\x00\x07\f") {
        t.Fatalf("control runes survived: %q", got.Text)
    }
}
