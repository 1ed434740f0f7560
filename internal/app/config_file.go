package app

import (
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"
    "time"

    yaml "gopkg.in/yaml.v3"

    "github.com/hyperifyio/gostudy/internal/study"
)

// FileConfig represents the single-file configuration schema. Nested
// sections map naturally to the flag namespace.
type FileConfig struct {
    Inputs []string `yaml:"inputs" json:"inputs"`
    Output string   `yaml:"output" json:"output"`

    LLM struct {
        BaseURL string `yaml:"base" json:"base"`
        Model   string `yaml:"model" json:"model"`
        APIKey  string `yaml:"key" json:"key"`
    } `yaml:"llm" json:"llm"`

    Study struct {
        Artifacts        []string `yaml:"artifacts" json:"artifacts"`
        NumFlashcards    int      `yaml:"numFlashcards" json:"numFlashcards"`
        NumQuizQuestions int      `yaml:"numQuizQuestions" json:"numQuizQuestions"`
        Difficulty       string   `yaml:"difficulty" json:"difficulty"`
        ContextBudget    int      `yaml:"contextBudget" json:"contextBudget"`
        MaxRetries       int      `yaml:"maxRetries" json:"maxRetries"`
    } `yaml:"study" json:"study"`

    Concurrency   int    `yaml:"concurrency" json:"concurrency"`
    DefaultFormat string `yaml:"defaultFormat" json:"defaultFormat"`

    Cache struct {
        Dir         string        `yaml:"dir" json:"dir"`
        MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
        Clear       bool          `yaml:"clear" json:"clear"`
        StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
    } `yaml:"cache" json:"cache"`

    EnablePDF bool `yaml:"enablePDF" json:"enablePDF"`
    Verbose   bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := filepath.Ext(path); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are currently unset/zero in cfg. Flags should already have been
// parsed; the file supplies defaults while explicit flags win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil {
        return
    }
    if len(cfg.Inputs) == 0 && len(fc.Inputs) > 0 {
        cfg.Inputs = append([]string{}, fc.Inputs...)
    }
    if cfg.OutputDir == "" && fc.Output != "" {
        cfg.OutputDir = fc.Output
    }

    if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
        cfg.LLMBaseURL = fc.LLM.BaseURL
    }
    if cfg.LLMModel == "" && fc.LLM.Model != "" {
        cfg.LLMModel = fc.LLM.Model
    }
    if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
        cfg.LLMAPIKey = fc.LLM.APIKey
    }

    if len(cfg.Artifacts) == 0 && len(fc.Study.Artifacts) > 0 {
        for _, a := range fc.Study.Artifacts {
            cfg.Artifacts = append(cfg.Artifacts, study.ArtifactType(a))
        }
    }
    if cfg.NumFlashcards == 0 && fc.Study.NumFlashcards > 0 {
        cfg.NumFlashcards = fc.Study.NumFlashcards
    }
    if cfg.NumQuizQuestions == 0 && fc.Study.NumQuizQuestions > 0 {
        cfg.NumQuizQuestions = fc.Study.NumQuizQuestions
    }
    if cfg.Difficulty == "" && fc.Study.Difficulty != "" {
        cfg.Difficulty = fc.Study.Difficulty
    }
    if cfg.ContextBudget == 0 && fc.Study.ContextBudget > 0 {
        cfg.ContextBudget = fc.Study.ContextBudget
    }
    if cfg.MaxRetries == 0 && fc.Study.MaxRetries > 0 {
        cfg.MaxRetries = fc.Study.MaxRetries
    }

    if cfg.Concurrency == 0 && fc.Concurrency > 0 {
        cfg.Concurrency = fc.Concurrency
    }
    if cfg.DefaultFormat == "" && fc.DefaultFormat != "" {
        cfg.DefaultFormat = fc.DefaultFormat
    }

    if cfg.CacheDir == "" && fc.Cache.Dir != "" {
        cfg.CacheDir = fc.Cache.Dir
    }
    if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
        cfg.CacheMaxAge = fc.Cache.MaxAge
    }
    if !cfg.CacheClear && fc.Cache.Clear {
        cfg.CacheClear = true
    }
    if !cfg.CacheStrictPerms && fc.Cache.StrictPerms {
        cfg.CacheStrictPerms = true
    }

    if !cfg.EnablePDF && fc.EnablePDF {
        cfg.EnablePDF = true
    }
    if !cfg.Verbose && fc.Verbose {
        cfg.Verbose = true
    }
}
