package pipeline

import (
    "context"
    "sync"

    "github.com/rs/zerolog/log"
)

// DefaultConcurrency bounds simultaneously processed documents.
const DefaultConcurrency = 3

// RunBatch processes all sources through a bounded worker pool. The returned
// slice has exactly one Result per source, in input order, regardless of
// which documents fail.
func (p *Pipeline) RunBatch(ctx context.Context, sources []Source) []Result {
    results := make([]Result, len(sources))
    limit := p.Concurrency
    if limit <= 0 {
        limit = DefaultConcurrency
    }
    sem := make(chan struct{}, limit)
    var wg sync.WaitGroup
    for i, src := range sources {
        wg.Add(1)
        go func(i int, src Source) {
            defer wg.Done()
            sem <- struct{}{}
            defer func() { <-sem }()
            results[i] = p.Run(ctx, src)
            log.Info().
                Str("file", results[i].Name).
                Str("status", string(results[i].Status)).
                Int64("elapsedMs", results[i].Stats.ElapsedMS).
                Msg("document processed")
        }(i, src)
    }
    wg.Wait()
    return results
}

// Summary tallies a finished batch for the report footer.
type Summary struct {
    Total   int `json:"total"`
    Success int `json:"success"`
    Partial int `json:"partial"`
    Failed  int `json:"failed"`
}

// Summarize counts results by status.
func Summarize(results []Result) Summary {
    s := Summary{Total: len(results)}
    for _, r := range results {
        switch r.Status {
        case StatusSuccess:
            s.Success++
        case StatusPartial:
            s.Partial++
        case StatusFailed:
            s.Failed++
        }
    }
    return s
}
