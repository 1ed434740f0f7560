package app

import (
    "os"
    "path/filepath"
    "testing"

    "github.com/hyperifyio/gostudy/internal/study"
)

func baseConfig() Config {
    return Config{Inputs: []string{"notes.pdf"}, LLMModel: "test-model"}
}

func TestValidateConfig_Defaults(t *testing.T) {
    cfg := baseConfig()
    if err := ValidateConfig(&cfg); err != nil {
        t.Fatalf("validate: %v", err)
    }
    if cfg.NumFlashcards != 20 || cfg.NumQuizQuestions != 10 {
        t.Fatalf("defaults %+v", cfg)
    }
    if cfg.Difficulty != study.DifficultyMixed || cfg.ContextBudget != 15000 {
        t.Fatalf("defaults %+v", cfg)
    }
    if cfg.MaxRetries != 3 || cfg.Concurrency != 3 || cfg.OutputDir != "study-output" {
        t.Fatalf("defaults %+v", cfg)
    }
}

func TestValidateConfig_Clamps(t *testing.T) {
    cfg := baseConfig()
    cfg.NumFlashcards = 1000
    cfg.NumQuizQuestions = 1
    cfg.MaxRetries = 99
    cfg.Concurrency = -4
    if err := ValidateConfig(&cfg); err != nil {
        t.Fatalf("validate: %v", err)
    }
    if cfg.NumFlashcards != 100 || cfg.NumQuizQuestions != 5 {
        t.Fatalf("clamped %+v", cfg)
    }
    if cfg.MaxRetries != 10 || cfg.Concurrency != 1 {
        t.Fatalf("clamped %+v", cfg)
    }
}

func TestValidateConfig_Rejections(t *testing.T) {
    cfg := Config{LLMModel: "m"}
    if err := ValidateConfig(&cfg); err == nil {
        t.Fatal("no inputs accepted")
    }
    cfg = baseConfig()
    cfg.LLMModel = ""
    if err := ValidateConfig(&cfg); err == nil {
        t.Fatal("missing model accepted")
    }
    cfg = baseConfig()
    cfg.Difficulty = "brutal"
    if err := ValidateConfig(&cfg); err == nil {
        t.Fatal("unknown difficulty accepted")
    }
    cfg = baseConfig()
    cfg.Artifacts = []study.ArtifactType{"poems"}
    if err := ValidateConfig(&cfg); err == nil {
        t.Fatal("unknown artifact accepted")
    }
}

func TestLoadConfigFile_YAMLOverlay(t *testing.T) {
    dir := t.TempDir()
    path := filepath.Join(dir, "gostudy.yaml")
    content := []byte(`
inputs:
  - chapter1.pdf
  - chapter2.epub
output: out
llm:
  model: file-model
  base: http://localhost:1234/v1
study:
  artifacts: [flashcards, quiz]
  numFlashcards: 30
  difficulty: hard
concurrency: 5
enablePDF: true
`)
    if err := os.WriteFile(path, content, 0o644); err != nil {
        t.Fatal(err)
    }
    fc, err := LoadConfigFile(path)
    if err != nil {
        t.Fatalf("load: %v", err)
    }

    var cfg Config
    ApplyFileConfig(&cfg, fc)
    if len(cfg.Inputs) != 2 || cfg.OutputDir != "out" {
        t.Fatalf("overlay %+v", cfg)
    }
    if cfg.LLMModel != "file-model" || cfg.LLMBaseURL != "http://localhost:1234/v1" {
        t.Fatalf("overlay %+v", cfg)
    }
    if len(cfg.Artifacts) != 2 || cfg.Artifacts[0] != study.ArtifactFlashcards {
        t.Fatalf("overlay %+v", cfg)
    }
    if cfg.NumFlashcards != 30 || cfg.Difficulty != "hard" || cfg.Concurrency != 5 || !cfg.EnablePDF {
        t.Fatalf("overlay %+v", cfg)
    }
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
    cfg := Config{LLMModel: "flag-model", NumFlashcards: 15}
    var fc FileConfig
    fc.LLM.Model = "file-model"
    fc.Study.NumFlashcards = 50
    ApplyFileConfig(&cfg, fc)
    if cfg.LLMModel != "flag-model" || cfg.NumFlashcards != 15 {
        t.Fatalf("file config overrode explicit flags: %+v", cfg)
    }
}
