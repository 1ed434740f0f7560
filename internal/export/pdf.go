package export

import (
    "fmt"
    "strings"

    "github.com/jung-kurt/gofpdf"

    "github.com/hyperifyio/gostudy/internal/study"
)

// PDF renders the study guide as a printable document. Layout is
// intentionally simple: section headings, body text, and a trailing answer
// key for the quiz.
func PDF(title string, set study.MaterialSet, outPath string) error {
    pdf := gofpdf.New("P", "mm", "A4", "")
    pdf.SetFont("Helvetica", "", 11)
    pdf.AddPage()

    pdf.SetFont("Helvetica", "B", 16)
    pdf.CellFormat(0, 10, "Study Guide: "+title, "", 1, "L", false, 0, "")
    pdf.SetFont("Helvetica", "", 11)

    heading := func(text string) {
        pdf.Ln(4)
        pdf.SetFont("Helvetica", "B", 13)
        pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
        pdf.SetFont("Helvetica", "", 11)
    }
    body := func(text string) {
        pdf.MultiCell(0, 5, text, "", "L", false)
    }

    if set.Summary != nil {
        heading("Summary")
        body(set.Summary.Overview)
        for _, kp := range set.Summary.KeyPoints {
            line := "- " + kp.Point
            if kp.Details != "" {
                line += ": " + kp.Details
            }
            body(line)
        }
        if set.Summary.Conclusion != "" {
            pdf.Ln(2)
            body(set.Summary.Conclusion)
        }
    }

    if set.CornellNotes != nil {
        heading("Cornell Notes")
        n := len(set.CornellNotes.Cues)
        if len(set.CornellNotes.Notes) > n {
            n = len(set.CornellNotes.Notes)
        }
        for i := 0; i < n; i++ {
            if i < len(set.CornellNotes.Cues) {
                pdf.SetFont("Helvetica", "B", 11)
                body(set.CornellNotes.Cues[i])
                pdf.SetFont("Helvetica", "", 11)
            }
            if i < len(set.CornellNotes.Notes) {
                body(set.CornellNotes.Notes[i])
            }
            pdf.Ln(2)
        }
        pdf.SetFont("Helvetica", "I", 11)
        body("Summary: " + set.CornellNotes.Summary)
        pdf.SetFont("Helvetica", "", 11)
    }

    if len(set.Flashcards) > 0 {
        heading("Flashcards")
        for i, c := range set.Flashcards {
            body(fmt.Sprintf("%d. Q: %s", i+1, c.Front))
            body("   A: " + c.Back)
        }
    }

    if set.Quiz != nil {
        heading("Quiz")
        for i, q := range set.Quiz.Questions {
            body(fmt.Sprintf("%d. %s", i+1, q.Question))
            for _, opt := range q.Options {
                body("   " + opt)
            }
            pdf.Ln(1)
        }
        heading("Answer Key")
        for i, q := range set.Quiz.Questions {
            body(fmt.Sprintf("%d. %s - %s", i+1, strings.ToUpper(strings.TrimSpace(q.CorrectAnswer)), q.Explanation))
        }
    }

    if set.MindMap != "" {
        heading("Mind Map (Mermaid)")
        body(set.MindMap)
    }

    return pdf.OutputFileAndClose(outPath)
}
