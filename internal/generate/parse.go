package generate

import (
    "encoding/json"
    "errors"
    "fmt"
    "strings"
)

// ErrMalformedOutput marks a model response that could not be decoded into
// the expected structure. The retry loop treats it like a schema violation:
// the next attempt carries a reminder instead of consuming backoff budget.
var ErrMalformedOutput = errors.New("malformed model output")

// stripFences removes a single surrounding Markdown code fence, with or
// without a language tag. Models add them despite instructions not to.
func stripFences(s string) string {
    t := strings.TrimSpace(s)
    if !strings.HasPrefix(t, "```") {
        return t
    }
    t = strings.TrimPrefix(t, "```")
    if i := strings.IndexByte(t, '\n'); i >= 0 {
        first := strings.TrimSpace(t[:i])
        // A short alpha token on the fence line is a language tag.
        if len(first) <= 10 && !strings.ContainsAny(first, "{}[]") {
            t = t[i+1:]
        }
    }
    t = strings.TrimSuffix(strings.TrimSpace(t), "```")
    return strings.TrimSpace(t)
}

// decodeJSON unmarshals the response into v, recovering from surrounding
// prose by scanning for the outermost object or array when the direct parse
// fails.
func decodeJSON(raw string, v any) error {
    t := stripFences(raw)
    if err := json.Unmarshal([]byte(t), v); err == nil {
        return nil
    }
    if sub, ok := extractDelimited(t, '{', '}'); ok {
        if err := json.Unmarshal([]byte(sub), v); err == nil {
            return nil
        }
    }
    if sub, ok := extractDelimited(t, '[', ']'); ok {
        if err := json.Unmarshal([]byte(sub), v); err == nil {
            return nil
        }
    }
    return fmt.Errorf("%w: no decodable JSON in response", ErrMalformedOutput)
}

// extractDelimited returns the slice from the first open delimiter to the
// last matching close delimiter.
func extractDelimited(s string, open, close byte) (string, bool) {
    start := strings.IndexByte(s, open)
    end := strings.LastIndexByte(s, close)
    if start < 0 || end <= start {
        return "", false
    }
    return s[start : end+1], true
}
