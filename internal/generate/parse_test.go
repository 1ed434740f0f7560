package generate

import (
    "errors"
    "testing"
)

func TestStripFences(t *testing.T) {
    cases := map[string]string{
        "```json\n{\"a\":1}\n```":  `{"a":1}`,
        "```\n{\"a\":1}\n```":      `{"a":1}`,
        `{"a":1}`:                  `{"a":1}`,
        "```mermaid\nmindmap\n```": "mindmap",
    }
    for in, want := range cases {
        if got := stripFences(in); got != want {
            t.Errorf("stripFences(%q) = %q, want %q", in, got, want)
        }
    }
}

func TestDecodeJSON_RecoversFromProse(t *testing.T) {
    var v struct {
        A int `json:"a"`
    }
    raw := "Here is the JSON you asked for:\n{\"a\": 7}\nHope that helps!"
    if err := decodeJSON(raw, &v); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if v.A != 7 {
        t.Fatalf("got %+v", v)
    }
}

func TestDecodeJSON_ArrayInProse(t *testing.T) {
    var v []int
    if err := decodeJSON("sure: [1, 2, 3] done", &v); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if len(v) != 3 || v[2] != 3 {
        t.Fatalf("got %v", v)
    }
}

func TestDecodeJSON_Malformed(t *testing.T) {
    var v map[string]any
    err := decodeJSON("I could not produce JSON, sorry.", &v)
    if !errors.Is(err, ErrMalformedOutput) {
        t.Fatalf("want ErrMalformedOutput, got %v", err)
    }
}
