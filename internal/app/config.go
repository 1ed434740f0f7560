package app

import (
    "fmt"
    "time"

    "github.com/hyperifyio/gostudy/internal/study"
)

// Config holds runtime configuration for the application.
type Config struct {
    // Inputs are document references: local paths or http(s) URLs.
    Inputs []string
    // OutputDir receives per-document exports and the batch report.
    OutputDir string

    // LLM
    LLMBaseURL string
    LLMModel   string
    LLMAPIKey  string

    // Generation
    Artifacts        []study.ArtifactType
    NumFlashcards    int
    NumQuizQuestions int
    Difficulty       string
    ContextBudget    int
    MaxRetries       int

    // Batch behavior
    Concurrency    int
    DefaultFormat  string
    RequestTimeout time.Duration

    // Cache
    CacheDir         string
    CacheMaxAge      time.Duration
    CacheClear       bool
    CacheStrictPerms bool

    // Export toggles. Markdown and JSON are always written; these add more.
    EnablePDF bool

    Verbose bool
}

// Clamp bounds for the recognized option ranges.
const (
    minFlashcards    = 5
    maxFlashcards    = 100
    minQuizQuestions = 5
    maxQuizQuestions = 50
    minRetries       = 1
    maxRetries       = 10
    maxConcurrency   = 16
)

// ValidateConfig normalizes cfg in place: out-of-range numeric options are
// clamped, unset options get defaults. Only contradictions fail.
func ValidateConfig(cfg *Config) error {
    if len(cfg.Inputs) == 0 {
        return fmt.Errorf("no input documents")
    }
    if cfg.LLMModel == "" {
        return fmt.Errorf("no model configured")
    }
    if cfg.OutputDir == "" {
        cfg.OutputDir = "study-output"
    }

    cfg.NumFlashcards = clamp(cfg.NumFlashcards, minFlashcards, maxFlashcards, 20)
    cfg.NumQuizQuestions = clamp(cfg.NumQuizQuestions, minQuizQuestions, maxQuizQuestions, 10)
    cfg.MaxRetries = clamp(cfg.MaxRetries, minRetries, maxRetries, 3)
    cfg.Concurrency = clamp(cfg.Concurrency, 1, maxConcurrency, 3)
    if cfg.ContextBudget <= 0 {
        cfg.ContextBudget = 15000
    }

    switch cfg.Difficulty {
    case "":
        cfg.Difficulty = study.DifficultyMixed
    case study.DifficultyEasy, study.DifficultyMedium, study.DifficultyHard, study.DifficultyMixed:
    default:
        return fmt.Errorf("unknown difficulty %q", cfg.Difficulty)
    }

    for _, a := range cfg.Artifacts {
        if !knownArtifact(a) {
            return fmt.Errorf("unknown artifact type %q", a)
        }
    }
    return nil
}

func knownArtifact(a study.ArtifactType) bool {
    for _, k := range study.AllArtifacts() {
        if a == k {
            return true
        }
    }
    return false
}

func clamp(v, lo, hi, def int) int {
    if v == 0 {
        return def
    }
    if v < lo {
        return lo
    }
    if v > hi {
        return hi
    }
    return v
}
