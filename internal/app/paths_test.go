package app

import "testing"

func TestDocumentBaseName(t *testing.T) {
    cases := []struct {
        name, fileID, want string
    }{
        {"Biology Chapter 1.pdf", "abc123def456", "biology-chapter-1-abc123def456"},
        {"/tmp/docs/Notes (final).docx", "aaa", "notes-final-aaa"},
        {"весь_текст.txt", "bbb", "document-bbb"},
        {"plain", "", "plain"},
    }
    for _, tc := range cases {
        if got := documentBaseName(tc.name, tc.fileID); got != tc.want {
            t.Errorf("documentBaseName(%q, %q) = %q, want %q", tc.name, tc.fileID, got, tc.want)
        }
    }
}

func TestSlugify_Caps(t *testing.T) {
    long := ""
    for i := 0; i < 20; i++ {
        long += "verylongword "
    }
    if got := slugify(long); len(got) > 49 {
        t.Fatalf("slug too long: %d", len(got))
    }
}
