package export

import (
    "encoding/json"
    "io"

    "github.com/hyperifyio/gostudy/internal/study"
)

// JSON writes the material set as indented JSON. Absent artifacts are
// omitted by the set's own field tags.
func JSON(w io.Writer, set study.MaterialSet) error {
    enc := json.NewEncoder(w)
    enc.SetIndent("", "  ")
    enc.SetEscapeHTML(false)
    return enc.Encode(set)
}
