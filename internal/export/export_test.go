package export

import (
    "bytes"
    "encoding/csv"
    "encoding/json"
    "os"
    "path/filepath"
    "strings"
    "testing"

    "github.com/hyperifyio/gostudy/internal/study"
)

func sampleSet() study.MaterialSet {
    return study.MaterialSet{
        Summary: &study.Summary{
            Overview:   "Cell biology basics.",
            KeyPoints:  []study.KeyPoint{{Point: "Cells are fundamental", Details: "All life is cellular."}},
            Conclusion: "Cells matter.",
        },
        CornellNotes: &study.CornellNotes{
            Cues:    []string{"What is a cell?"},
            Notes:   []string{"The basic structural unit of life."},
            Summary: "Cells compose all organisms.",
        },
        Flashcards: []study.Flashcard{
            {Front: "Define osmosis", Back: "Water diffusion across a membrane", Difficulty: "easy", Tags: []string{"biology", "membranes"}},
        },
        Quiz: &study.Quiz{Questions: []study.Question{{
            Type:          "multiple_choice",
            Question:      "What powers the cell?",
            Options:       []string{"A) ATP", "B) DNA", "C) RNA", "D) Lipids"},
            CorrectAnswer: "A",
            Explanation:   "ATP carries chemical energy.",
            Difficulty:    "easy",
        }}},
        MindMap: "mindmap\n  root((Cells))\n    Organelles",
    }
}

func TestMarkdown_AllSections(t *testing.T) {
    md := Markdown("biology.pdf", sampleSet())
    for _, want := range []string{
        "# Study Guide: biology.pdf",
        "## Summary",
        "## Cornell Notes",
        "| What is a cell? |",
        "## Flashcards",
        "**Q:** Define osmosis",
        "## Quiz",
        "### Answer Key",
        "1. A - ATP carries chemical energy.",
        "```mermaid",
    } {
        if !strings.Contains(md, want) {
            t.Errorf("markdown missing %q", want)
        }
    }
}

func TestMarkdown_SkipsAbsentSections(t *testing.T) {
    md := Markdown("doc", study.MaterialSet{Flashcards: sampleSet().Flashcards})
    for _, absent := range []string{"## Summary", "## Quiz", "## Cornell Notes", "mermaid"} {
        if strings.Contains(md, absent) {
            t.Errorf("markdown has section for absent artifact: %q", absent)
        }
    }
}

func TestAnkiCSV(t *testing.T) {
    var buf bytes.Buffer
    if err := AnkiCSV(&buf, sampleSet().Flashcards); err != nil {
        t.Fatalf("write: %v", err)
    }
    rows, err := csv.NewReader(&buf).ReadAll()
    if err != nil {
        t.Fatalf("parse: %v", err)
    }
    if len(rows) != 1 {
        t.Fatalf("rows %d", len(rows))
    }
    row := rows[0]
    if row[0] != "Define osmosis" || row[1] != "Water diffusion across a membrane" {
        t.Fatalf("row %v", row)
    }
    if row[2] != "biology membranes easy" {
        t.Fatalf("tags %q", row[2])
    }
}

func TestQuizHTML(t *testing.T) {
    var buf bytes.Buffer
    if err := QuizHTML(&buf, "biology.pdf", sampleSet().Quiz); err != nil {
        t.Fatalf("render: %v", err)
    }
    out := buf.String()
    for _, want := range []string{
        `data-answer="0"`,
        "What powers the cell?",
        "A) ATP",
        "ATP carries chemical energy.",
    } {
        if !strings.Contains(out, want) {
            t.Errorf("html missing %q", want)
        }
    }
}

func TestJSON_RoundTrips(t *testing.T) {
    var buf bytes.Buffer
    if err := JSON(&buf, sampleSet()); err != nil {
        t.Fatalf("encode: %v", err)
    }
    var back study.MaterialSet
    if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if !back.Has(study.ArtifactQuiz) || !back.Has(study.ArtifactMindMap) {
        t.Fatalf("artifacts lost: %+v", back)
    }
}

func TestJSON_OmitsAbsent(t *testing.T) {
    var buf bytes.Buffer
    if err := JSON(&buf, study.MaterialSet{MindMap: "mindmap\n  root((x))"}); err != nil {
        t.Fatalf("encode: %v", err)
    }
    if strings.Contains(buf.String(), "quiz") {
        t.Fatalf("absent quiz serialized: %s", buf.String())
    }
}

func TestPDF_WritesFile(t *testing.T) {
    out := filepath.Join(t.TempDir(), "guide.pdf")
    if err := PDF("biology.pdf", sampleSet(), out); err != nil {
        t.Fatalf("render: %v", err)
    }
    b, err := os.ReadFile(out)
    if err != nil {
        t.Fatalf("read: %v", err)
    }
    if !bytes.HasPrefix(b, []byte("%PDF")) {
        t.Fatalf("not a PDF: %q", b[:8])
    }
}
