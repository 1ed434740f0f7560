package generate

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/rs/zerolog/log"
    openai "github.com/sashabaranov/go-openai"

    "github.com/hyperifyio/gostudy/internal/cache"
    "github.com/hyperifyio/gostudy/internal/llm"
    "github.com/hyperifyio/gostudy/internal/study"
    "github.com/hyperifyio/gostudy/internal/window"
)

// DefaultMaxAttempts bounds generation calls per artifact.
const DefaultMaxAttempts = 3

// backoffBaseMS is the first rate-limit backoff; each further rate limit
// within the same artifact doubles it.
const backoffBaseMS = 500

// Generator turns a document window into study artifacts by calling a chat
// model once per artifact type. Failures are isolated per artifact: a quiz
// that never validates does not cost the flashcards.
type Generator struct {
    Client llm.Client
    Model  string
    Cache  *cache.Cache
    // MaxAttempts caps calls per artifact; zero means DefaultMaxAttempts.
    MaxAttempts int
}

// ArtifactError records which artifact failed and why.
type ArtifactError struct {
    Artifact study.ArtifactType
    Err      error
}

func (e ArtifactError) Error() string {
    return fmt.Sprintf("%s: %v", e.Artifact, e.Err)
}

func (e ArtifactError) Unwrap() error { return e.Err }

func (p Params) withDefaults() Params {
    if p.NumFlashcards <= 0 {
        p.NumFlashcards = 20
    }
    if p.NumQuizQuestions <= 0 {
        p.NumQuizQuestions = 10
    }
    if p.Difficulty == "" {
        p.Difficulty = study.DifficultyMixed
    }
    return p
}

// GenerateAll produces the requested artifacts in a stable order. An empty
// request means all artifact types. The returned failure list pairs each
// missing artifact with its final error; the MaterialSet carries whatever
// succeeded.
func (g *Generator) GenerateAll(ctx context.Context, w window.Window, artifacts []study.ArtifactType, p Params) (study.MaterialSet, []ArtifactError) {
    var set study.MaterialSet
    var failures []ArtifactError
    if len(artifacts) == 0 {
        artifacts = study.AllArtifacts()
    }
    p = p.withDefaults()
    for _, a := range artifacts {
        if err := g.generateOne(ctx, a, w, p, &set); err != nil {
            log.Warn().Str("artifact", string(a)).Err(err).Msg("artifact generation failed")
            failures = append(failures, ArtifactError{Artifact: a, Err: err})
            continue
        }
        log.Debug().Str("artifact", string(a)).Msg("artifact generated")
    }
    return set, failures
}

// generateOne runs the attempt loop for a single artifact. Rate limits back
// off exponentially; timeouts and service errors retry immediately; output
// that fails to parse or validate retries with a schema reminder appended to
// the prompt and consumes no backoff budget.
func (g *Generator) generateOne(ctx context.Context, a study.ArtifactType, w window.Window, p Params, set *study.MaterialSet) error {
    if g.Client == nil || strings.TrimSpace(g.Model) == "" {
        return errors.New("generator not configured")
    }
    system := systemMessage(a)
    base := userPrompt(a, w, p)
    key := cache.KeyFrom(g.Model, string(a), system+"\n\n"+base)

    if g.Cache != nil {
        if raw, ok, _ := g.Cache.Get(ctx, key); ok {
            if err := applyArtifact(a, string(raw), set); err == nil {
                return nil
            }
            // Stale or corrupt entry: regenerate.
        }
    }

    max := g.MaxAttempts
    if max <= 0 {
        max = DefaultMaxAttempts
    }
    augmented := false
    backoffs := 0
    var lastErr error
    for attempt := 1; attempt <= max; attempt++ {
        // A spent deadline converts the remaining attempts into a timeout.
        if err := ctx.Err(); err != nil {
            return llm.Classify(err)
        }
        user := base
        if augmented {
            user += schemaReminder
        }
        raw, err := g.complete(ctx, a, system, user)
        if err == nil {
            if err = applyArtifact(a, raw, set); err == nil {
                if g.Cache != nil {
                    _ = g.Cache.Save(ctx, key, []byte(raw))
                }
                return nil
            }
        }
        lastErr = err
        if attempt == max {
            break
        }
        switch {
        case errors.Is(err, ErrMalformedOutput), errors.Is(err, study.ErrSchemaValidation):
            augmented = true
        case errors.Is(err, llm.ErrRateLimited):
            backoffs++
            sleep(backoffBaseMS << (backoffs - 1))
        }
        // Timeouts and service errors fall through to an immediate retry.
        log.Debug().Str("artifact", string(a)).Int("attempt", attempt).Err(err).Msg("retrying artifact")
    }
    return lastErr
}

func (g *Generator) complete(ctx context.Context, a study.ArtifactType, system, user string) (string, error) {
    req := openai.ChatCompletionRequest{
        Model: g.Model,
        Messages: []openai.ChatCompletionMessage{
            {Role: openai.ChatMessageRoleSystem, Content: system},
            {Role: openai.ChatMessageRoleUser, Content: user},
        },
        Temperature: 0.7,
        MaxTokens:   maxTokensFor(a),
        N:           1,
    }
    resp, err := g.Client.CreateChatCompletion(ctx, req)
    if err != nil {
        return "", llm.Classify(err)
    }
    if len(resp.Choices) == 0 {
        return "", fmt.Errorf("%w: empty choice list", llm.ErrServiceError)
    }
    content := strings.TrimSpace(resp.Choices[0].Message.Content)
    if content == "" {
        return "", fmt.Errorf("%w: empty response", ErrMalformedOutput)
    }
    return content, nil
}

// applyArtifact decodes raw model output, validates it against the artifact
// contract, and stores it in the set.
func applyArtifact(a study.ArtifactType, raw string, set *study.MaterialSet) error {
    switch a {
    case study.ArtifactCornellNotes:
        var n study.CornellNotes
        if err := decodeJSON(raw, &n); err != nil {
            return err
        }
        if err := study.ValidateCornellNotes(&n); err != nil {
            return err
        }
        set.CornellNotes = &n
    case study.ArtifactFlashcards:
        var cards []study.Flashcard
        if err := decodeJSON(raw, &cards); err != nil {
            return err
        }
        if err := study.ValidateFlashcards(cards); err != nil {
            return err
        }
        set.Flashcards = cards
    case study.ArtifactQuiz:
        var q study.Quiz
        if err := decodeJSON(raw, &q); err != nil {
            return err
        }
        if err := study.ValidateQuiz(&q); err != nil {
            return err
        }
        set.Quiz = &q
    case study.ArtifactSummary:
        var s study.Summary
        if err := decodeJSON(raw, &s); err != nil {
            return err
        }
        if err := study.ValidateSummary(&s); err != nil {
            return err
        }
        set.Summary = &s
    case study.ArtifactMindMap:
        m := stripFences(raw)
        if err := study.ValidateMindMap(m); err != nil {
            return err
        }
        set.MindMap = m
    default:
        return fmt.Errorf("unknown artifact type %q", a)
    }
    return nil
}

// sleepFunc allows tests to inject a deterministic sleep hook measured in
// milliseconds. When nil, defaultSleep is used.
var sleepFunc func(ms int)

func defaultSleep(ms int) {
    time.Sleep(time.Duration(ms) * time.Millisecond)
}

func sleep(ms int) {
    if sleepFunc != nil {
        sleepFunc(ms)
        return
    }
    defaultSleep(ms)
}
