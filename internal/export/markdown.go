// Package export renders a validated material set into the delivery
// formats. Rendering is pure formatting: no retries, no I/O beyond the
// writer handed in, no mutation of the set.
package export

import (
    "fmt"
    "strings"

    "github.com/hyperifyio/gostudy/internal/study"
)

// Markdown renders the full study guide as a single document. Sections for
// absent artifacts are skipped.
func Markdown(title string, set study.MaterialSet) string {
    var sb strings.Builder
    sb.WriteString("# Study Guide: ")
    sb.WriteString(title)
    sb.WriteString("\n")

    if set.Summary != nil {
        sb.WriteString("\n## Summary\n\n")
        sb.WriteString(set.Summary.Overview)
        sb.WriteString("\n\n### Key Points\n\n")
        for _, kp := range set.Summary.KeyPoints {
            sb.WriteString("- **")
            sb.WriteString(kp.Point)
            sb.WriteString("**")
            if kp.Details != "" {
                sb.WriteString(": ")
                sb.WriteString(kp.Details)
            }
            sb.WriteString("\n")
        }
        if set.Summary.Conclusion != "" {
            sb.WriteString("\n")
            sb.WriteString(set.Summary.Conclusion)
            sb.WriteString("\n")
        }
    }

    if set.CornellNotes != nil {
        sb.WriteString("\n## Cornell Notes\n\n")
        sb.WriteString("| Cues | Notes |\n|---|---|\n")
        n := len(set.CornellNotes.Cues)
        if len(set.CornellNotes.Notes) > n {
            n = len(set.CornellNotes.Notes)
        }
        for i := 0; i < n; i++ {
            var cue, note string
            if i < len(set.CornellNotes.Cues) {
                cue = set.CornellNotes.Cues[i]
            }
            if i < len(set.CornellNotes.Notes) {
                note = set.CornellNotes.Notes[i]
            }
            fmt.Fprintf(&sb, "| %s | %s |\n", tableEscape(cue), tableEscape(note))
        }
        sb.WriteString("\n**Summary:** ")
        sb.WriteString(set.CornellNotes.Summary)
        sb.WriteString("\n")
    }

    if len(set.Flashcards) > 0 {
        sb.WriteString("\n## Flashcards\n")
        for i, c := range set.Flashcards {
            fmt.Fprintf(&sb, "\n%d. **Q:** %s\n   **A:** %s\n", i+1, c.Front, c.Back)
        }
    }

    if set.Quiz != nil {
        sb.WriteString("\n## Quiz\n")
        for i, q := range set.Quiz.Questions {
            fmt.Fprintf(&sb, "\n%d. %s\n", i+1, q.Question)
            for _, opt := range q.Options {
                sb.WriteString("   - ")
                sb.WriteString(opt)
                sb.WriteString("\n")
            }
        }
        sb.WriteString("\n### Answer Key\n\n")
        for i, q := range set.Quiz.Questions {
            fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, strings.ToUpper(strings.TrimSpace(q.CorrectAnswer)), q.Explanation)
        }
    }

    if set.MindMap != "" {
        sb.WriteString("\n## Mind Map\n\n```mermaid\n")
        sb.WriteString(set.MindMap)
        sb.WriteString("\n```\n")
    }
    return sb.String()
}

func tableEscape(s string) string {
    s = strings.ReplaceAll(s, "|", "\\|")
    return strings.ReplaceAll(s, "\n", " ")
}
