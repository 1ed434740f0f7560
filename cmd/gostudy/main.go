package main

import (
    "context"
    "errors"
    "flag"
    "fmt"
    "os"
    "os/signal"
    "strings"
    "syscall"
    "time"

    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"

    "github.com/hyperifyio/gostudy/internal/app"
    "github.com/hyperifyio/gostudy/internal/study"
)

func main() {
    // Logging setup
    zerolog.TimeFieldFormat = time.RFC3339
    log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

    var (
        output        string
        configPath    string
        llmBaseURL    string
        llmModel      string
        llmKey        string
        artifacts     string
        numFlashcards int
        numQuiz       int
        difficulty    string
        contextBudget int
        maxRetries    int
        concurrency   int
        defaultFormat string
        timeout       time.Duration
        cacheDir      string
        cacheMaxAge   time.Duration
        cacheClear    bool
        cacheStrict   bool
        enablePDF     bool
        verbose       bool
    )

    flag.StringVar(&output, "output", "study-output", "Directory for per-document exports and the batch report")
    flag.StringVar(&configPath, "config", os.Getenv("GOSTUDY_CONFIG"), "Path to YAML/JSON config file")
    flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
    flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
    flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
    flag.StringVar(&artifacts, "artifacts", "", "Comma-separated artifact types (cornellNotes,flashcards,quiz,summary,mindMap); empty means all")
    flag.IntVar(&numFlashcards, "flashcards", 0, "Number of flashcards to request (5-100)")
    flag.IntVar(&numQuiz, "quiz.questions", 0, "Number of quiz questions to request (5-50)")
    flag.StringVar(&difficulty, "difficulty", "", "Difficulty: easy, medium, hard or mixed")
    flag.IntVar(&contextBudget, "context.budget", 0, "Character budget for the generation window")
    flag.IntVar(&maxRetries, "max.retries", 0, "Generation attempts per artifact (1-10)")
    flag.IntVar(&concurrency, "concurrency", 0, "Documents processed in parallel (1-16)")
    flag.StringVar(&defaultFormat, "format.default", "", "Declared format used when detection is inconclusive (e.g. txt)")
    flag.DurationVar(&timeout, "timeout", 10*time.Minute, "Overall batch deadline")
    flag.StringVar(&cacheDir, "cache.dir", "", "Generation cache directory; empty disables caching")
    flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
    flag.BoolVar(&cacheClear, "cache.clear", false, "Clear cache directory before run")
    flag.BoolVar(&cacheStrict, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
    flag.BoolVar(&enablePDF, "enable.pdf", false, "Also render a PDF study guide per document")
    flag.BoolVar(&verbose, "v", false, "Verbose logging")
    flag.Usage = func() {
        fmt.Fprintf(os.Stderr, "Usage: %s [flags] document...\n\nDocuments are local paths or http(s) URLs.\nFlags:\n", os.Args[0])
        flag.PrintDefaults()
    }
    flag.Parse()

    cfg := app.Config{
        Inputs:           flag.Args(),
        OutputDir:        output,
        LLMBaseURL:       llmBaseURL,
        LLMModel:         llmModel,
        LLMAPIKey:        llmKey,
        NumFlashcards:    numFlashcards,
        NumQuizQuestions: numQuiz,
        Difficulty:       difficulty,
        ContextBudget:    contextBudget,
        MaxRetries:       maxRetries,
        Concurrency:      concurrency,
        DefaultFormat:    defaultFormat,
        RequestTimeout:   timeout,
        CacheDir:         cacheDir,
        CacheMaxAge:      cacheMaxAge,
        CacheClear:       cacheClear,
        CacheStrictPerms: cacheStrict,
        EnablePDF:        enablePDF,
        Verbose:          verbose,
    }
    for _, a := range strings.Split(artifacts, ",") {
        if a = strings.TrimSpace(a); a != "" {
            cfg.Artifacts = append(cfg.Artifacts, study.ArtifactType(a))
        }
    }
    // Flags explicitly set win over file config; the default output dir does
    // not count as explicit.
    if configPath != "" {
        fc, err := app.LoadConfigFile(configPath)
        if err != nil {
            log.Fatal().Err(err).Str("path", configPath).Msg("config file")
        }
        if cfg.OutputDir == "study-output" {
            cfg.OutputDir = ""
        }
        app.ApplyFileConfig(&cfg, fc)
    }

    if verbose || cfg.Verbose {
        zerolog.SetGlobalLevel(zerolog.DebugLevel)
    } else {
        zerolog.SetGlobalLevel(zerolog.InfoLevel)
    }

    if err := app.ValidateConfig(&cfg); err != nil {
        flag.Usage()
        log.Fatal().Err(err).Msg("invalid configuration")
    }

    ctx, cancel := context.WithTimeout(context.Background(), timeout)
    defer cancel()
    ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
    defer stop()

    a, err := app.New(ctx, cfg)
    if err != nil {
        log.Fatal().Err(err).Msg("startup failed")
    }
    defer a.Close()

    if err := a.Run(ctx); err != nil {
        if errors.Is(err, app.ErrAllDocumentsFailed) {
            log.Error().Err(err).Msg("no documents processed")
        } else {
            log.Error().Err(err).Msg("run failed")
        }
        os.Exit(1)
    }
}
