package pipeline

import (
    "context"
    "crypto/sha256"
    "encoding/hex"
    "errors"
    "fmt"
    "os"
    "time"

    "github.com/rs/zerolog/log"

    "github.com/hyperifyio/gostudy/internal/extract"
    "github.com/hyperifyio/gostudy/internal/fetch"
    "github.com/hyperifyio/gostudy/internal/generate"
    "github.com/hyperifyio/gostudy/internal/normalize"
    "github.com/hyperifyio/gostudy/internal/sniff"
    "github.com/hyperifyio/gostudy/internal/study"
    "github.com/hyperifyio/gostudy/internal/window"
)

// wordsPerMinute is the reading speed behind the estimated read time.
const wordsPerMinute = 200

// Source references one input document. Exactly one of Data, Path or URL
// should be set; Name overrides the filename used for format detection and
// prompts.
type Source struct {
    Name string
    Path string
    URL  string
    Data []byte
    // DeclaredFormat is the caller's hint used when detection is inconclusive.
    DeclaredFormat sniff.Format
}

// Status summarizes one document's outcome.
type Status string

const (
    StatusSuccess Status = "success"
    StatusPartial Status = "partial"
    StatusFailed  Status = "failed"
)

// Statistics carries per-document processing numbers for the batch report.
type Statistics struct {
    TextLength        int   `json:"textLength"`
    WordCount         int   `json:"wordCount"`
    ReadTimeMinutes   int   `json:"estimatedReadTimeMinutes"`
    FlashcardCount    int   `json:"flashcardCount"`
    QuizQuestionCount int   `json:"quizQuestionCount"`
    ElapsedMS         int64 `json:"elapsedMs"`
}

// Result is one document's entry in the batch report.
type Result struct {
    FileID       string            `json:"fileId"`
    Name         string            `json:"name"`
    Format       sniff.Format      `json:"format,omitempty"`
    Status       Status            `json:"status"`
    Insufficient bool              `json:"insufficientText,omitempty"`
    Materials    study.MaterialSet `json:"materials"`
    Stats        Statistics        `json:"statistics"`
    Errors       []string          `json:"errors,omitempty"`
}

// Pipeline wires the stages for one batch run.
type Pipeline struct {
    Fetcher   *fetch.Client
    Generator *generate.Generator
    // Artifacts to produce; empty means all.
    Artifacts []study.ArtifactType
    Params    generate.Params
    // BudgetChars bounds the generation window; zero means the default.
    BudgetChars int
    // Concurrency bounds parallel documents in RunBatch; zero means 3.
    Concurrency int
}

// FileID is the first 12 hex chars of the content digest. Stable across
// runs, so re-processing the same bytes lands on the same output names.
func FileID(data []byte) string {
    h := sha256.Sum256(data)
    return hex.EncodeToString(h[:])[:12]
}

func (p *Pipeline) load(ctx context.Context, src Source) (string, []byte, error) {
    switch {
    case src.Data != nil:
        return src.Name, src.Data, nil
    case src.Path != "":
        b, err := os.ReadFile(src.Path)
        if err != nil {
            return "", nil, fmt.Errorf("read %s: %w", src.Path, err)
        }
        name := src.Name
        if name == "" {
            name = src.Path
        }
        return name, b, nil
    case src.URL != "":
        if p.Fetcher == nil {
            return "", nil, errors.New("no fetcher configured for URL source")
        }
        doc, err := p.Fetcher.Get(ctx, src.URL)
        if err != nil {
            return "", nil, fmt.Errorf("fetch %s: %w", src.URL, err)
        }
        name := src.Name
        if name == "" {
            name = doc.Filename
        }
        return name, doc.Data, nil
    }
    return "", nil, errors.New("empty source")
}

func failed(src Source, err error) Result {
    name := src.Name
    if name == "" {
        name = src.Path
    }
    if name == "" {
        name = src.URL
    }
    return Result{Name: name, Status: StatusFailed, Errors: []string{err.Error()}}
}

// Run processes one document end to end: load, detect, extract, normalize,
// window, generate. It never panics or aborts the batch; every failure is
// folded into the returned Result.
func (p *Pipeline) Run(ctx context.Context, src Source) Result {
    start := time.Now()
    name, data, err := p.load(ctx, src)
    if err != nil {
        return failed(src, err)
    }

    res := Result{FileID: FileID(data), Name: name}
    format, err := sniff.Detect(name, data, src.DeclaredFormat)
    if err != nil {
        res.Status = StatusFailed
        res.Errors = []string{err.Error()}
        return res
    }
    res.Format = format

    extractor, err := extract.ForFormat(format)
    if err != nil {
        res.Status = StatusFailed
        res.Errors = []string{err.Error()}
        return res
    }
    text, err := extractor.Extract(data)
    if err != nil {
        log.Warn().Str("file", name).Str("format", string(format)).Err(err).Msg("extraction failed")
        res.Status = StatusFailed
        res.Errors = []string{err.Error()}
        return res
    }

    cleaned := normalize.Clean(text)
    res.Insufficient = cleaned.Insufficient
    win := window.Select(cleaned, p.BudgetChars)

    params := p.Params
    params.DocumentName = name
    materials, genErrs := p.Generator.GenerateAll(ctx, win, p.Artifacts, params)
    res.Materials = materials
    for _, ge := range genErrs {
        res.Errors = append(res.Errors, ge.Error())
    }

    requested := p.Artifacts
    if len(requested) == 0 {
        requested = study.AllArtifacts()
    }
    produced := 0
    for _, a := range requested {
        if materials.Has(a) {
            produced++
        }
    }
    switch {
    case produced == len(requested):
        res.Status = StatusSuccess
    case produced > 0:
        res.Status = StatusPartial
    default:
        res.Status = StatusFailed
    }

    res.Stats = Statistics{
        TextLength:      len(cleaned.Text),
        WordCount:       cleaned.WordCount,
        ReadTimeMinutes: readTimeMinutes(cleaned.WordCount),
        ElapsedMS:       time.Since(start).Milliseconds(),
    }
    res.Stats.FlashcardCount = len(materials.Flashcards)
    if materials.Quiz != nil {
        res.Stats.QuizQuestionCount = len(materials.Quiz.Questions)
    }
    return res
}

func readTimeMinutes(words int) int {
    if words <= 0 {
        return 0
    }
    return (words + wordsPerMinute - 1) / wordsPerMinute
}
