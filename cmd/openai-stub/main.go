// Command openai-stub serves a minimal OpenAI-compatible endpoint that
// answers every generation request with valid fixture artifacts. Useful for
// exercising the full pipeline offline:
//
//	openai-stub &
//	gostudy -llm.base http://localhost:8081/v1 -llm.model test-model notes.pdf
package main

import (
    "encoding/json"
    "log"
    "net/http"
    "os"
    "strings"
)

type chatRequest struct {
    Model    string `json:"model"`
    Messages []struct {
        Role    string `json:"role"`
        Content string `json:"content"`
    } `json:"messages"`
}

const (
    cornellFixture    = `{"cues":["What is the main topic?","Key term"],"notes":["The document's central idea.","Definition of the key term."],"summary":"A short recap of the material."}`
    flashcardsFixture = `[{"front":"What is the main topic?","back":"The central idea of the document.","difficulty":"medium","tags":["stub"]}]`
    quizFixture       = `{"questions":[{"type":"multiple_choice","question":"What is the main topic?","options":["A) The central idea","B) An aside","C) A footnote","D) The appendix"],"correctAnswer":"A","explanation":"The central idea is the main topic.","difficulty":"medium"}]}`
    summaryFixture    = `{"overview":"A stub overview of the document.","keyPoints":[{"point":"First idea","details":"Stub details."}],"conclusion":"A stub conclusion."}`
    mindMapFixture    = "mindmap\n  root((Document))\n    First idea\n    Second idea"
)

func main() {
    model := os.Getenv("MODEL_ID")
    if strings.TrimSpace(model) == "" {
        model = "test-model"
    }
    addr := os.Getenv("ADDR")
    if strings.TrimSpace(addr) == "" {
        addr = ":8081"
    }

    mux := http.NewServeMux()
    mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        _ = json.NewEncoder(w).Encode(map[string]any{
            "data": []map[string]any{{"id": model, "object": "model"}},
        })
    })
    mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
        defer r.Body.Close()
        var req chatRequest
        _ = json.NewDecoder(r.Body).Decode(&req)
        user := ""
        for _, m := range req.Messages {
            if m.Role == "user" {
                user = m.Content
            }
        }
        var content string
        switch {
        case strings.Contains(user, "Cornell Notes"):
            content = cornellFixture
        case strings.Contains(user, "flashcards"):
            content = flashcardsFixture
        case strings.Contains(user, "multiple-choice quiz"):
            content = quizFixture
        case strings.Contains(user, "Mermaid mind map"):
            content = mindMapFixture
        default:
            content = summaryFixture
        }
        w.Header().Set("Content-Type", "application/json")
        _ = json.NewEncoder(w).Encode(map[string]any{
            "id":     "stub",
            "object": "chat.completion",
            "model":  req.Model,
            "choices": []map[string]any{{
                "index":         0,
                "finish_reason": "stop",
                "message":       map[string]any{"role": "assistant", "content": content},
            }},
        })
    })

    log.Printf("openai-stub listening on %s (model %s)", addr, model)
    log.Fatal(http.ListenAndServe(addr, mux))
}
