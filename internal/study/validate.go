package study

import (
    "errors"
    "fmt"
    "strings"
)

// ErrSchemaValidation marks model output that parsed but violates the
// artifact schema contract. It is a retriable condition distinct from
// service failures.
var ErrSchemaValidation = errors.New("schema validation failed")

// QuizOptionCount is the mandatory number of options per question.
const QuizOptionCount = 4

var validDifficulty = map[string]bool{
    DifficultyEasy:   true,
    DifficultyMedium: true,
    DifficultyHard:   true,
}

// ValidateCornellNotes requires at least one cue/note pair and a summary.
func ValidateCornellNotes(n *CornellNotes) error {
    if n == nil {
        return fmt.Errorf("%w: cornell notes missing", ErrSchemaValidation)
    }
    if len(n.Cues) == 0 || len(n.Notes) == 0 {
        return fmt.Errorf("%w: cornell notes need cues and notes", ErrSchemaValidation)
    }
    if strings.TrimSpace(n.Summary) == "" {
        return fmt.Errorf("%w: cornell notes summary empty", ErrSchemaValidation)
    }
    return nil
}

// ValidateFlashcards requires non-empty faces on every card and normalizes
// missing difficulty to medium.
func ValidateFlashcards(cards []Flashcard) error {
    if len(cards) == 0 {
        return fmt.Errorf("%w: empty flashcard list", ErrSchemaValidation)
    }
    for i := range cards {
        c := &cards[i]
        if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
            return fmt.Errorf("%w: flashcard %d has an empty face", ErrSchemaValidation, i+1)
        }
        if c.Difficulty == "" {
            c.Difficulty = DifficultyMedium
        }
        if !validDifficulty[c.Difficulty] {
            return fmt.Errorf("%w: flashcard %d difficulty %q", ErrSchemaValidation, i+1, c.Difficulty)
        }
    }
    return nil
}

// ValidateQuiz enforces the contract on every question: exactly four
// options, a correct-answer letter designating one of them, and a non-empty
// explanation.
func ValidateQuiz(q *Quiz) error {
    if q == nil || len(q.Questions) == 0 {
        return fmt.Errorf("%w: quiz has no questions", ErrSchemaValidation)
    }
    for i := range q.Questions {
        qu := &q.Questions[i]
        if strings.TrimSpace(qu.Question) == "" {
            return fmt.Errorf("%w: question %d empty", ErrSchemaValidation, i+1)
        }
        if len(qu.Options) != QuizOptionCount {
            return fmt.Errorf("%w: question %d has %d options, want %d", ErrSchemaValidation, i+1, len(qu.Options), QuizOptionCount)
        }
        if answerIndex(qu.CorrectAnswer) < 0 {
            return fmt.Errorf("%w: question %d correct answer %q not one of A-D", ErrSchemaValidation, i+1, qu.CorrectAnswer)
        }
        if strings.TrimSpace(qu.Explanation) == "" {
            return fmt.Errorf("%w: question %d missing explanation", ErrSchemaValidation, i+1)
        }
        if qu.Type == "" {
            qu.Type = "multiple_choice"
        }
        if qu.Difficulty == "" {
            qu.Difficulty = DifficultyMedium
        }
        if !validDifficulty[qu.Difficulty] {
            return fmt.Errorf("%w: question %d difficulty %q", ErrSchemaValidation, i+1, qu.Difficulty)
        }
    }
    return nil
}

// answerIndex resolves a correct-answer designation like "A" or "B)" to an
// option index, or -1 when it names none of the four.
func answerIndex(answer string) int {
    s := strings.TrimSpace(strings.ToUpper(answer))
    s = strings.TrimRight(s, ").")
    if len(s) != 1 || s[0] < 'A' || s[0] > 'D' {
        return -1
    }
    return int(s[0] - 'A')
}

// AnswerIndex is the exported form used by renderers to line the letter up
// with its option.
func AnswerIndex(answer string) int { return answerIndex(answer) }

// ValidateSummary requires an overview and at least one key point.
func ValidateSummary(s *Summary) error {
    if s == nil {
        return fmt.Errorf("%w: summary missing", ErrSchemaValidation)
    }
    if strings.TrimSpace(s.Overview) == "" {
        return fmt.Errorf("%w: summary overview empty", ErrSchemaValidation)
    }
    if len(s.KeyPoints) == 0 {
        return fmt.Errorf("%w: summary has no key points", ErrSchemaValidation)
    }
    for i, kp := range s.KeyPoints {
        if strings.TrimSpace(kp.Point) == "" {
            return fmt.Errorf("%w: key point %d empty", ErrSchemaValidation, i+1)
        }
    }
    return nil
}

// ValidateMindMap requires Mermaid mindmap syntax: a mindmap header followed
// by at least one indented node.
func ValidateMindMap(m string) error {
    trimmed := strings.TrimSpace(m)
    if trimmed == "" {
        return fmt.Errorf("%w: mind map empty", ErrSchemaValidation)
    }
    lines := strings.Split(trimmed, "\n")
    if !strings.HasPrefix(strings.TrimSpace(lines[0]), "mindmap") {
        return fmt.Errorf("%w: mind map must start with a mindmap header", ErrSchemaValidation)
    }
    if len(lines) < 2 {
        return fmt.Errorf("%w: mind map has no nodes", ErrSchemaValidation)
    }
    return nil
}
