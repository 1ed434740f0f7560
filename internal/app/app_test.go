package app

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "os"
    "path/filepath"
    "strings"
    "testing"
)

const (
    stubFlashcards = `[{"front":"Define osmosis","back":"Water diffusion across a membrane","difficulty":"easy","tags":["biology"]}]`
    stubQuiz       = `{"questions":[{"type":"multiple_choice","question":"What powers the cell?","options":["A) ATP","B) DNA","C) RNA","D) Lipids"],"correctAnswer":"A","explanation":"ATP carries energy.","difficulty":"easy"}]}`
)

// newModelStub serves an OpenAI-compatible surface: a model listing and chat
// completions answered with a fixture matching the requested artifact.
func newModelStub(t *testing.T) *httptest.Server {
    t.Helper()
    mux := http.NewServeMux()
    mux.HandleFunc("/models", func(w http.ResponseWriter, r *http.Request) {
        _, _ = w.Write([]byte(`{"object":"list","data":[{"id":"test-model","object":"model"}]}`))
    })
    mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
        var req struct {
            Messages []struct {
                Role    string `json:"role"`
                Content string `json:"content"`
            } `json:"messages"`
        }
        if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
            http.Error(w, err.Error(), http.StatusBadRequest)
            return
        }
        user := ""
        for _, m := range req.Messages {
            if m.Role == "user" {
                user = m.Content
            }
        }
        content := stubQuiz
        if strings.Contains(user, "flashcards") {
            content = stubFlashcards
        }
        resp := map[string]any{
            "id":      "stub",
            "object":  "chat.completion",
            "choices": []map[string]any{{"index": 0, "finish_reason": "stop", "message": map[string]any{"role": "assistant", "content": content}}},
        }
        _ = json.NewEncoder(w).Encode(resp)
    })
    return httptest.NewServer(mux)
}

func TestApp_RunEndToEnd(t *testing.T) {
    srv := newModelStub(t)
    defer srv.Close()

    dir := t.TempDir()
    input := filepath.Join(dir, "mitosis notes.txt")
    if err := os.WriteFile(input, []byte("Mitosis divides one cell into two identical daughter cells."), 0o644); err != nil {
        t.Fatal(err)
    }

    cfg := Config{
        Inputs:     []string{input},
        OutputDir:  filepath.Join(dir, "out"),
        LLMBaseURL: srv.URL,
        LLMModel:   "test-model",
        Artifacts:  nil, // default set trimmed below
    }
    cfg.Artifacts = append(cfg.Artifacts, "flashcards", "quiz")
    if err := ValidateConfig(&cfg); err != nil {
        t.Fatalf("validate: %v", err)
    }

    a, err := New(context.Background(), cfg)
    if err != nil {
        t.Fatalf("new: %v", err)
    }
    defer a.Close()
    if err := a.Run(context.Background()); err != nil {
        t.Fatalf("run: %v", err)
    }

    entries, err := os.ReadDir(cfg.OutputDir)
    if err != nil {
        t.Fatalf("read output dir: %v", err)
    }
    var haveMD, haveJSON, haveCSV, haveHTML, haveReport bool
    for _, e := range entries {
        switch {
        case e.Name() == "report.json":
            haveReport = true
        case strings.HasSuffix(e.Name(), ".anki.csv"):
            haveCSV = true
        case strings.HasSuffix(e.Name(), ".quiz.html"):
            haveHTML = true
        case strings.HasSuffix(e.Name(), ".json"):
            haveJSON = true
        case strings.HasSuffix(e.Name(), ".md"):
            haveMD = true
        }
    }
    if !haveMD || !haveJSON || !haveCSV || !haveHTML || !haveReport {
        t.Fatalf("exports missing: md=%v json=%v csv=%v html=%v report=%v", haveMD, haveJSON, haveCSV, haveHTML, haveReport)
    }

    b, err := os.ReadFile(filepath.Join(cfg.OutputDir, "report.json"))
    if err != nil {
        t.Fatal(err)
    }
    var report Report
    if err := json.Unmarshal(b, &report); err != nil {
        t.Fatalf("parse report: %v", err)
    }
    if report.Summary.Total != 1 || report.Summary.Success != 1 {
        t.Fatalf("summary %+v", report.Summary)
    }
    if report.Documents[0].Stats.FlashcardCount != 1 {
        t.Fatalf("stats %+v", report.Documents[0].Stats)
    }
}

func TestApp_AllDocumentsFailed(t *testing.T) {
    srv := newModelStub(t)
    defer srv.Close()

    dir := t.TempDir()
    cfg := Config{
        Inputs:     []string{filepath.Join(dir, "missing.pdf")},
        OutputDir:  filepath.Join(dir, "out"),
        LLMBaseURL: srv.URL,
        LLMModel:   "test-model",
    }
    if err := ValidateConfig(&cfg); err != nil {
        t.Fatalf("validate: %v", err)
    }
    a, err := New(context.Background(), cfg)
    if err != nil {
        t.Fatalf("new: %v", err)
    }
    if err := a.Run(context.Background()); !errors.Is(err, ErrAllDocumentsFailed) {
        t.Fatalf("want ErrAllDocumentsFailed, got %v", err)
    }
    // The report still gets written with the failure recorded.
    if _, err := os.Stat(filepath.Join(cfg.OutputDir, "report.json")); err != nil {
        t.Fatalf("report missing: %v", err)
    }
}
