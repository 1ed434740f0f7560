package generate

import (
    "fmt"
    "strings"

    "github.com/hyperifyio/gostudy/internal/study"
    "github.com/hyperifyio/gostudy/internal/window"
)

// Params carries the artifact-specific knobs embedded into prompts.
type Params struct {
    DocumentName     string
    NumFlashcards    int
    NumQuizQuestions int
    Difficulty       string
}

var difficultyGuidance = map[string]string{
    study.DifficultyEasy:   "Focus on basic facts and definitions",
    study.DifficultyMedium: "Balance facts with conceptual understanding",
    study.DifficultyHard:   "Focus on complex concepts and applications",
    study.DifficultyMixed:  "Mix of easy, medium, and hard questions",
}

// schemaReminder is appended to the user prompt when a previous attempt
// produced unparsable or schema-violating output.
const schemaReminder = "\n\nIMPORTANT: your previous response did not match the required structure. " +
    "Respond with ONLY the JSON described above - no markdown fences, no commentary, " +
    "every required field present, and for quiz questions exactly 4 options with a " +
    "correctAnswer letter A-D and a non-empty explanation."

func systemMessage(a study.ArtifactType) string {
    switch a {
    case study.ArtifactSummary:
        return "You are an expert at creating concise, informative summaries of academic and professional documents. Generate summaries that capture the essence and main ideas."
    case study.ArtifactCornellNotes:
        return "You are an expert at creating Cornell Notes - a proven note-taking method with cues, notes, and summary sections."
    case study.ArtifactFlashcards:
        return "You are an expert at creating effective flashcards for spaced repetition learning (like Anki). Your flashcards should be clear, concise, and test understanding."
    case study.ArtifactQuiz:
        return "You are an expert at creating effective multiple-choice questions that test understanding."
    case study.ArtifactMindMap:
        return "You are an expert at creating clear mind maps that visualize concept relationships using Mermaid syntax."
    }
    return "You are a careful study-material author."
}

func writeHeader(sb *strings.Builder, what string, p Params) {
    sb.WriteString(what)
    sb.WriteString("\n\nDocument: ")
    if p.DocumentName != "" {
        sb.WriteString(p.DocumentName)
    } else {
        sb.WriteString("Unknown")
    }
}

func writeWindow(sb *strings.Builder, w window.Window) {
    sb.WriteString("\n\nText:\n")
    sb.WriteString(w.Text)
}

func summaryPrompt(w window.Window, p Params) string {
    var sb strings.Builder
    writeHeader(&sb, "Create a comprehensive summary of this document in JSON format.", p)
    writeWindow(&sb, w)
    sb.WriteString(`

Respond with ONLY a JSON object (no markdown, no backticks) with this structure:
{
    "overview": "2-3 sentence overview of the entire document",
    "keyPoints": [
        {"point": "Main idea 1", "details": "Brief explanation"},
        {"point": "Main idea 2", "details": "Brief explanation"}
    ],
    "conclusion": "Final takeaway or conclusion"
}`)
    return sb.String()
}

func cornellPrompt(w window.Window, p Params) string {
    var sb strings.Builder
    writeHeader(&sb, "Create Cornell Notes from this document in JSON format.", p)
    writeWindow(&sb, w)
    sb.WriteString(`

Respond with ONLY a JSON object (no markdown, no backticks) with this structure:
{
    "cues": ["Question 1?", "Key term 2", "Question 3?"],
    "notes": ["Detailed explanation 1", "Detailed explanation 2", "Detailed explanation 3"],
    "summary": "Overall summary in 2-3 sentences"
}

Generate 10-15 cue-note pairs that cover the main concepts.`)
    return sb.String()
}

func flashcardsPrompt(w window.Window, p Params) string {
    var sb strings.Builder
    writeHeader(&sb, fmt.Sprintf("Create %d flashcards from this document in JSON format.", p.NumFlashcards), p)
    sb.WriteString(fmt.Sprintf("\nDifficulty: %s - %s", p.Difficulty, difficultyGuidance[p.Difficulty]))
    writeWindow(&sb, w)
    sb.WriteString(`

Respond with ONLY a JSON array (no markdown, no backticks) with this structure:
[
    {
        "front": "Clear, specific question",
        "back": "Concise answer (1-3 sentences)",
        "difficulty": "easy|medium|hard",
        "tags": ["topic1", "concept2"]
    }
]

Make flashcards that test real understanding, not just memorization.`)
    return sb.String()
}

func quizPrompt(w window.Window, p Params) string {
    var sb strings.Builder
    writeHeader(&sb, fmt.Sprintf("Create a %d-question multiple-choice quiz from this document in JSON format.", p.NumQuizQuestions), p)
    sb.WriteString(fmt.Sprintf("\nDifficulty: %s", p.Difficulty))
    writeWindow(&sb, w)
    sb.WriteString(`

Respond with ONLY a JSON object (no markdown, no backticks) with this structure:
{
    "questions": [
        {
            "type": "multiple_choice",
            "question": "Clear question text",
            "options": ["A) First option", "B) Second option", "C) Third option", "D) Fourth option"],
            "correctAnswer": "A",
            "explanation": "Why this answer is correct",
            "difficulty": "easy|medium|hard"
        }
    ]
}

Create questions that test understanding, not just recall.`)
    return sb.String()
}

func mindMapPrompt(w window.Window, p Params) string {
    var sb strings.Builder
    writeHeader(&sb, "Create a Mermaid mind map from this document.", p)
    writeWindow(&sb, w)
    sb.WriteString(`

Respond with ONLY the Mermaid code (no markdown code fences, no backticks, no explanations).
Use this format:

mindmap
  root((Main Topic))
    Subtopic 1
      Detail A
      Detail B
    Subtopic 2
      Detail C
      Detail D

Keep it clear and organized with 3-5 main branches.`)
    return sb.String()
}

func userPrompt(a study.ArtifactType, w window.Window, p Params) string {
    switch a {
    case study.ArtifactSummary:
        return summaryPrompt(w, p)
    case study.ArtifactCornellNotes:
        return cornellPrompt(w, p)
    case study.ArtifactFlashcards:
        return flashcardsPrompt(w, p)
    case study.ArtifactQuiz:
        return quizPrompt(w, p)
    case study.ArtifactMindMap:
        return mindMapPrompt(w, p)
    }
    return ""
}

// maxTokensFor reserves output room per artifact; larger structures get more.
func maxTokensFor(a study.ArtifactType) int {
    switch a {
    case study.ArtifactFlashcards, study.ArtifactQuiz:
        return 4000
    case study.ArtifactCornellNotes:
        return 3000
    case study.ArtifactSummary:
        return 2000
    case study.ArtifactMindMap:
        return 1500
    }
    return 2000
}
