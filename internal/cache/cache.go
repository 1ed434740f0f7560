package cache

import (
    "context"
    "crypto/sha256"
    "encoding/hex"
    "errors"
    "io/fs"
    "os"
    "path/filepath"
    "strings"
    "time"
)

// Cache stores generated-artifact payloads keyed by a digest of model,
// artifact type and prompt. Entries are plain JSON files so a cache can be
// inspected and pruned with ordinary tools.
type Cache struct {
    Dir string
    // StrictPerms enforces 0700 on the cache directory and 0600 on entries.
    StrictPerms bool
}

func (c *Cache) ensureDir() error {
    if c == nil || c.Dir == "" {
        return errors.New("cache dir not configured")
    }
    perm := os.FileMode(0o755)
    if c.StrictPerms {
        perm = 0o700
    }
    if err := os.MkdirAll(c.Dir, perm); err != nil {
        return err
    }
    if c.StrictPerms {
        if info, err := os.Stat(c.Dir); err == nil && info.Mode()&0o777 != 0o700 {
            _ = os.Chmod(c.Dir, 0o700)
        }
    }
    return nil
}

// KeyFrom builds a cache key from the model, artifact tag and full prompt.
// The same document window with the same parameters always maps to the same
// key, so regeneration is a cache hit.
func KeyFrom(model, artifact, prompt string) string {
    h := sha256.Sum256([]byte(model + "\n" + artifact + "\n\n" + prompt))
    return hex.EncodeToString(h[:])
}

func (c *Cache) pathFor(key string) string {
    return filepath.Join(c.Dir, key+".json")
}

// Get returns cached bytes if present. The entry mtime is refreshed on
// access so age-based pruning approximates LRU.
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
    if err := c.ensureDir(); err != nil {
        return nil, false, err
    }
    p := c.pathFor(key)
    b, err := os.ReadFile(p)
    if err != nil {
        return nil, false, nil
    }
    now := time.Now()
    _ = os.Chtimes(p, now, now)
    return b, true, nil
}

// Save writes bytes to cache.
func (c *Cache) Save(_ context.Context, key string, data []byte) error {
    if err := c.ensureDir(); err != nil {
        return err
    }
    mode := os.FileMode(0o644)
    if c.StrictPerms {
        mode = 0o600
    }
    return os.WriteFile(c.pathFor(key), data, mode)
}

// Clear removes the directory and all contents, then recreates it so the
// location stays a valid empty cache.
func Clear(dir string) error {
    if strings.TrimSpace(dir) == "" {
        return errors.New("empty dir")
    }
    if err := os.RemoveAll(dir); err != nil {
        return err
    }
    return os.MkdirAll(dir, 0o755)
}

// PurgeByAge removes cache entries whose modification time is older than
// maxAge. A non-positive maxAge disables pruning.
func PurgeByAge(dir string, maxAge time.Duration) (int, error) {
    if maxAge <= 0 {
        return 0, nil
    }
    now := time.Now().UTC()
    removed := 0
    err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
        if err != nil {
            return err
        }
        if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
            return nil
        }
        info, err := d.Info()
        if err != nil {
            return nil
        }
        if now.Sub(info.ModTime().UTC()) <= maxAge {
            return nil
        }
        removed++
        _ = os.Remove(path)
        return nil
    })
    return removed, err
}
