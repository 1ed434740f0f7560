package export

import (
    "encoding/csv"
    "io"
    "strings"

    "github.com/hyperifyio/gostudy/internal/study"
)

// AnkiCSV writes flashcards as front,back,tags rows with no header, the
// layout Anki's basic note importer expects. Tags are space-separated in
// one field; the difficulty rides along as an extra tag.
func AnkiCSV(w io.Writer, cards []study.Flashcard) error {
    cw := csv.NewWriter(w)
    for _, c := range cards {
        tags := append([]string(nil), c.Tags...)
        if c.Difficulty != "" {
            tags = append(tags, c.Difficulty)
        }
        if err := cw.Write([]string{c.Front, c.Back, strings.Join(tags, " ")}); err != nil {
            return err
        }
    }
    cw.Flush()
    return cw.Error()
}
