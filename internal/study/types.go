package study

// ArtifactType names one requestable study-material kind.
type ArtifactType string

const (
    ArtifactCornellNotes ArtifactType = "cornellNotes"
    ArtifactFlashcards   ArtifactType = "flashcards"
    ArtifactQuiz         ArtifactType = "quiz"
    ArtifactSummary      ArtifactType = "summary"
    ArtifactMindMap      ArtifactType = "mindMap"
)

// AllArtifacts lists every artifact type in a stable order.
func AllArtifacts() []ArtifactType {
    return []ArtifactType{ArtifactCornellNotes, ArtifactFlashcards, ArtifactQuiz, ArtifactSummary, ArtifactMindMap}
}

// Difficulty levels accepted in configuration and artifact fields. Mixed is a
// request-level setting only; generated items carry one of the other three.
const (
    DifficultyEasy   = "easy"
    DifficultyMedium = "medium"
    DifficultyHard   = "hard"
    DifficultyMixed  = "mixed"
)

// CornellNotes pairs cue prompts with note lines plus a closing summary.
type CornellNotes struct {
    Cues    []string `json:"cues"`
    Notes   []string `json:"notes"`
    Summary string   `json:"summary"`
}

// Flashcard is one front/back card for spaced repetition.
type Flashcard struct {
    Front      string   `json:"front"`
    Back       string   `json:"back"`
    Difficulty string   `json:"difficulty"`
    Tags       []string `json:"tags"`
}

// Question is one multiple-choice quiz entry. Options always has exactly four
// entries after validation; CorrectAnswer is the letter A-D naming one.
type Question struct {
    Type          string   `json:"type"`
    Question      string   `json:"question"`
    Options       []string `json:"options"`
    CorrectAnswer string   `json:"correctAnswer"`
    Explanation   string   `json:"explanation"`
    Difficulty    string   `json:"difficulty"`
}

// Quiz wraps the generated question list.
type Quiz struct {
    Questions []Question `json:"questions"`
}

// KeyPoint is one main idea with its elaboration.
type KeyPoint struct {
    Point   string `json:"point"`
    Details string `json:"details"`
}

// Summary is the executive-summary artifact.
type Summary struct {
    Overview   string     `json:"overview"`
    KeyPoints  []KeyPoint `json:"keyPoints"`
    Conclusion string     `json:"conclusion"`
}

// MaterialSet aggregates the optional sub-artifacts for one document. A field
// is non-nil/non-empty only when its generation call succeeded and passed
// schema validation.
type MaterialSet struct {
    CornellNotes *CornellNotes `json:"cornellNotes,omitempty"`
    Flashcards   []Flashcard   `json:"flashcards,omitempty"`
    Quiz         *Quiz         `json:"quiz,omitempty"`
    Summary      *Summary      `json:"summary,omitempty"`
    // MindMap holds Mermaid mindmap syntax as a single text blob.
    MindMap string `json:"mindMap,omitempty"`
}

// Has reports whether the artifact of the given type is present.
func (m *MaterialSet) Has(a ArtifactType) bool {
    if m == nil {
        return false
    }
    switch a {
    case ArtifactCornellNotes:
        return m.CornellNotes != nil
    case ArtifactFlashcards:
        return len(m.Flashcards) > 0
    case ArtifactQuiz:
        return m.Quiz != nil
    case ArtifactSummary:
        return m.Summary != nil
    case ArtifactMindMap:
        return m.MindMap != ""
    }
    return false
}
