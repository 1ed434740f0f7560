package app

import (
    "context"
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"
    "strings"
    "time"

    "github.com/rs/zerolog/log"
    openai "github.com/sashabaranov/go-openai"

    "github.com/hyperifyio/gostudy/internal/cache"
    "github.com/hyperifyio/gostudy/internal/export"
    "github.com/hyperifyio/gostudy/internal/fetch"
    "github.com/hyperifyio/gostudy/internal/generate"
    "github.com/hyperifyio/gostudy/internal/llm"
    "github.com/hyperifyio/gostudy/internal/pipeline"
    "github.com/hyperifyio/gostudy/internal/sniff"
    "github.com/hyperifyio/gostudy/internal/study"
)

// App owns the wired pipeline for one batch run.
type App struct {
    cfg  Config
    ai   *openai.Client
    pipe *pipeline.Pipeline
}

// ErrAllDocumentsFailed is returned when no document produced any artifact.
// Per the exit code policy this should end the process non-zero.
var ErrAllDocumentsFailed = fmt.Errorf("all documents failed")

// Report is the batch report written next to the exports.
type Report struct {
    GeneratedAt time.Time         `json:"generatedAt"`
    Summary     pipeline.Summary  `json:"summary"`
    Documents   []pipeline.Result `json:"documents"`
}

func New(ctx context.Context, cfg Config) (*App, error) {
    transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
    if cfg.LLMBaseURL != "" {
        transportCfg.BaseURL = cfg.LLMBaseURL
    }
    transportCfg.HTTPClient = newHighThroughputHTTPClient()
    client := openai.NewClientWithConfig(transportCfg)

    a := &App{cfg: cfg, ai: client}

    var genCache *cache.Cache
    if cfg.CacheDir != "" {
        if cfg.CacheClear {
            _ = cache.Clear(cfg.CacheDir)
        }
        if cfg.CacheMaxAge > 0 {
            _, _ = cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge)
        }
        genCache = &cache.Cache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
    }

    a.pipe = &pipeline.Pipeline{
        Fetcher: &fetch.Client{
            UserAgent:         "gostudy/1.0 (+https://github.com/hyperifyio/gostudy)",
            MaxAttempts:       3,
            PerRequestTimeout: cfg.RequestTimeout,
            MaxConcurrent:     cfg.Concurrency,
        },
        Generator: &generate.Generator{
            Client:      &llm.OpenAIProvider{Inner: client},
            Model:       cfg.LLMModel,
            Cache:       genCache,
            MaxAttempts: cfg.MaxRetries,
        },
        Artifacts: cfg.Artifacts,
        Params: generate.Params{
            NumFlashcards:    cfg.NumFlashcards,
            NumQuizQuestions: cfg.NumQuizQuestions,
            Difficulty:       cfg.Difficulty,
        },
        BudgetChars: cfg.ContextBudget,
        Concurrency: cfg.Concurrency,
    }

    // Quick connectivity check by listing models. Best-effort: warn and
    // continue so generation surfaces its own errors.
    preflight, cancel := context.WithTimeout(ctx, 5*time.Second)
    defer cancel()
    models, err := client.ListModels(preflight)
    if err != nil {
        log.Warn().Err(err).Msg("model list failed; continuing")
    } else if len(models.Models) == 0 {
        log.Warn().Msg("service returned zero models")
    } else {
        log.Info().Int("count", len(models.Models)).Msg("models available")
    }

    return a, nil
}

func (a *App) Close() {
    // nothing yet
}

// Run processes every configured input and writes exports plus the batch
// report under the output directory.
func (a *App) Run(ctx context.Context) error {
    sources := make([]pipeline.Source, 0, len(a.cfg.Inputs))
    for _, in := range a.cfg.Inputs {
        src := pipeline.Source{DeclaredFormat: sniff.Format(a.cfg.DefaultFormat)}
        if strings.HasPrefix(in, "http://") || strings.HasPrefix(in, "https://") {
            src.URL = in
        } else {
            src.Path = in
        }
        sources = append(sources, src)
    }

    if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
        return fmt.Errorf("create output dir: %w", err)
    }

    results := a.pipe.RunBatch(ctx, sources)
    for i := range results {
        if results[i].Status == pipeline.StatusFailed {
            continue
        }
        if err := a.writeExports(results[i]); err != nil {
            log.Error().Str("file", results[i].Name).Err(err).Msg("export failed")
            results[i].Errors = append(results[i].Errors, err.Error())
        }
    }

    summary := pipeline.Summarize(results)
    report := Report{GeneratedAt: time.Now().UTC(), Summary: summary, Documents: results}
    if err := a.writeReport(report); err != nil {
        return err
    }

    log.Info().
        Int("total", summary.Total).
        Int("success", summary.Success).
        Int("partial", summary.Partial).
        Int("failed", summary.Failed).
        Msg("batch complete")
    if summary.Total > 0 && summary.Failed == summary.Total {
        return ErrAllDocumentsFailed
    }
    return nil
}

func (a *App) writeExports(res pipeline.Result) error {
    base := filepath.Join(a.cfg.OutputDir, documentBaseName(res.Name, res.FileID))

    md := export.Markdown(res.Name, res.Materials)
    if err := os.WriteFile(base+".md", []byte(md), 0o644); err != nil {
        return fmt.Errorf("write markdown: %w", err)
    }

    jf, err := os.Create(base + ".json")
    if err != nil {
        return fmt.Errorf("write json: %w", err)
    }
    if err := export.JSON(jf, res.Materials); err != nil {
        jf.Close()
        return fmt.Errorf("write json: %w", err)
    }
    if err := jf.Close(); err != nil {
        return err
    }

    if res.Materials.Has(study.ArtifactFlashcards) {
        af, err := os.Create(base + ".anki.csv")
        if err != nil {
            return fmt.Errorf("write anki csv: %w", err)
        }
        if err := export.AnkiCSV(af, res.Materials.Flashcards); err != nil {
            af.Close()
            return fmt.Errorf("write anki csv: %w", err)
        }
        if err := af.Close(); err != nil {
            return err
        }
    }

    if res.Materials.Has(study.ArtifactQuiz) {
        qf, err := os.Create(base + ".quiz.html")
        if err != nil {
            return fmt.Errorf("write quiz html: %w", err)
        }
        if err := export.QuizHTML(qf, res.Name, res.Materials.Quiz); err != nil {
            qf.Close()
            return fmt.Errorf("write quiz html: %w", err)
        }
        if err := qf.Close(); err != nil {
            return err
        }
    }

    if a.cfg.EnablePDF {
        if err := export.PDF(res.Name, res.Materials, base+".pdf"); err != nil {
            return fmt.Errorf("write pdf: %w", err)
        }
    }
    return nil
}

func (a *App) writeReport(report Report) error {
    b, err := json.MarshalIndent(report, "", "  ")
    if err != nil {
        return fmt.Errorf("marshal report: %w", err)
    }
    path := filepath.Join(a.cfg.OutputDir, "report.json")
    if err := os.WriteFile(path, b, 0o644); err != nil {
        return fmt.Errorf("write report: %w", err)
    }
    return nil
}
