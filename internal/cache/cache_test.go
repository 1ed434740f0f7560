package cache

import (
    "context"
    "testing"
    "time"
)

func TestCache_SaveGet(t *testing.T) {
    tmp := t.TempDir()
    c := &Cache{Dir: tmp}
    key := KeyFrom("model", "quiz", "prompt")
    data := []byte(`{"questions":[]}`)
    if err := c.Save(context.Background(), key, data); err != nil {
        t.Fatalf("save: %v", err)
    }
    got, ok, err := c.Get(context.Background(), key)
    if err != nil || !ok {
        t.Fatalf("get: %v ok=%v", err, ok)
    }
    if string(got) != string(data) {
        t.Fatalf("mismatch")
    }
}

func TestCache_MissIsNotError(t *testing.T) {
    c := &Cache{Dir: t.TempDir()}
    if _, ok, err := c.Get(context.Background(), KeyFrom("m", "summary", "p")); ok || err != nil {
        t.Fatalf("want clean miss, got ok=%v err=%v", ok, err)
    }
}

func TestKeyFrom_DistinguishesArtifacts(t *testing.T) {
    a := KeyFrom("m", "quiz", "same prompt")
    b := KeyFrom("m", "flashcards", "same prompt")
    if a == b {
        t.Fatal("artifact type must be part of the key")
    }
}

func TestPurgeByAge(t *testing.T) {
    tmp := t.TempDir()
    c := &Cache{Dir: tmp}
    key := KeyFrom("m", "quiz", "p")
    if err := c.Save(context.Background(), key, []byte("{}")); err != nil {
        t.Fatalf("save: %v", err)
    }
    // Entry is fresh, generous age keeps it.
    removed, err := PurgeByAge(tmp, time.Hour)
    if err != nil || removed != 0 {
        t.Fatalf("fresh entry purged: removed=%d err=%v", removed, err)
    }
    // Zero age disables pruning entirely.
    removed, err = PurgeByAge(tmp, 0)
    if err != nil || removed != 0 {
        t.Fatalf("disabled purge acted: removed=%d err=%v", removed, err)
    }
}
