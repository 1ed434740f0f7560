package app

import (
    "path/filepath"
    "strings"
)

// documentBaseName returns a stable per-document export basename: a slug of
// the display name plus the short content id, so re-runs land on the same
// files and distinct documents never collide.
func documentBaseName(name, fileID string) string {
    base := filepath.Base(name)
    if ext := filepath.Ext(base); ext != "" {
        base = strings.TrimSuffix(base, ext)
    }
    slug := slugify(base)
    if slug == "" {
        slug = "document"
    }
    if fileID == "" {
        return slug
    }
    return slug + "-" + fileID
}

func slugify(s string) string {
    var b strings.Builder
    lastDash := true
    for _, r := range strings.ToLower(s) {
        switch {
        case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
            b.WriteRune(r)
            lastDash = false
        default:
            if !lastDash {
                b.WriteByte('-')
                lastDash = true
            }
        }
        if b.Len() >= 48 {
            break
        }
    }
    return strings.Trim(b.String(), "-")
}
