package window

import "github.com/hyperifyio/gostudy/internal/normalize"

// DefaultBudgetChars bounds how much normalized text is shown to the model.
// The limit is characters, not tokens: deterministic and model-independent,
// so regenerating from the same document reproduces the same window.
const DefaultBudgetChars = 15_000

// Strategy names the truncation policy recorded on a window.
type Strategy string

// StrategyPrefix keeps the leading slice of the document. It is the only
// implemented policy; it stays deterministic across runs by construction.
const StrategyPrefix Strategy = "prefix"

// Window is the bounded text actually submitted to the generation
// capability, with a record of how much of the source it represents.
type Window struct {
    Text        string
    Strategy    Strategy
    SourceChars int
    // Coverage is the fraction of the normalized text the window retains,
    // in [0, 1]. Kept for diagnostics and batch reporting.
    Coverage float64
}

// Select returns the budget-bounded prefix of normalized text. The cut never
// splits a UTF-8 rune, so len(Text) <= budget and <= len(source) always hold.
func Select(n normalize.Result, budgetChars int) Window {
    if budgetChars <= 0 {
        budgetChars = DefaultBudgetChars
    }
    text := trimByByteLimitPreservingRunes(n.Text, budgetChars)
    coverage := 1.0
    if len(n.Text) > 0 {
        coverage = float64(len(text)) / float64(len(n.Text))
    }
    return Window{
        Text:        text,
        Strategy:    StrategyPrefix,
        SourceChars: len(n.Text),
        Coverage:    coverage,
    }
}

// trimByByteLimitPreservingRunes returns a prefix of s whose byte length is
// <= maxBytes, never splitting a UTF-8 rune. If maxBytes >= len(s) it
// returns s unchanged.
func trimByByteLimitPreservingRunes(s string, maxBytes int) string {
    if maxBytes >= len(s) {
        return s
    }
    if maxBytes <= 0 || len(s) == 0 {
        return ""
    }
    var idx int
    for i := range s {
        if i > maxBytes {
            break
        }
        idx = i
    }
    if idx == 0 && maxBytes < len(s) {
        return ""
    }
    return s[:idx]
}
