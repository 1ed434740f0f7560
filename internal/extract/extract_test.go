package extract

import (
    "archive/zip"
    "bytes"
    "errors"
    "strings"
    "testing"

    "github.com/hyperifyio/gostudy/internal/sniff"
)

func TestForFormat_EveryTagDispatches(t *testing.T) {
    for _, f := range sniff.Supported() {
        if _, err := ForFormat(f); err != nil {
            t.Errorf("no extractor for %s: %v", f, err)
        }
    }
}

func TestPlain_UTF8(t *testing.T) {
    got, err := plainExtractor{}.Extract([]byte("hello world\nsecond line"))
    if err != nil {
        t.Fatalf("extract: %v", err)
    }
    if got.Text != "hello world\nsecond line" {
        t.Fatalf("unexpected text: %q", got.Text)
    }
    if got.WordCount != 4 {
        t.Fatalf("word count = %d, want 4", got.WordCount)
    }
}

func TestPlain_CP1252Fallback(t *testing.T) {
    // 0x93/0x94 are curly quotes in CP1252 and invalid UTF-8 on their own.
    raw := []byte{'s', 'a', 'i', 'd', ' ', 0x93, 'h', 'i', 0x94}
    got, err := plainExtractor{}.Extract(raw)
    if err != nil {
        t.Fatalf("extract: %v", err)
    }
    if !strings.Contains(got.Text, "hi") {
        t.Fatalf("lost content: %q", got.Text)
    }
    if strings.ContainsRune(got.Text, '�') {
        t.Fatalf("replacement rune leaked into %q", got.Text)
    }
}

func TestPlain_BinaryGarbageRejected(t *testing.T) {
    raw := make([]byte, 256)
    for i := range raw {
        raw[i] = byte(i % 32) // control characters throughout
    }
    raw[0] = 0xFF // defeat the UTF-8 fast path
    _, err := plainExtractor{}.Extract(raw)
    if !errors.Is(err, ErrEncodingUndetermined) {
        t.Fatalf("want ErrEncodingUndetermined, got %v", err)
    }
}

func TestHTML_StripsBoilerplate(t *testing.T) {
    input := []byte(`<html><head><title>T</title><script>var x=1;</script></head>
<body><nav>menu</nav><main><h1>Photosynthesis</h1><p>Plants convert light.</p></main>
<footer>contact us</footer></body></html>`)
    got, err := htmlExtractor{}.Extract(input)
    if err != nil {
        t.Fatalf("extract: %v", err)
    }
    for _, want := range []string{"Photosynthesis", "Plants convert light."} {
        if !strings.Contains(got.Text, want) {
            t.Errorf("missing %q in %q", want, got.Text)
        }
    }
    for _, banned := range []string{"menu", "contact us", "var x"} {
        if strings.Contains(got.Text, banned) {
            t.Errorf("boilerplate %q leaked into %q", banned, got.Text)
        }
    }
}

func buildZip(t *testing.T, entries map[string]string) []byte {
    t.Helper()
    var buf bytes.Buffer
    w := zip.NewWriter(&buf)
    for name, body := range entries {
        f, err := w.Create(name)
        if err != nil {
            t.Fatalf("zip create: %v", err)
        }
        if _, err := f.Write([]byte(body)); err != nil {
            t.Fatalf("zip write: %v", err)
        }
    }
    if err := w.Close(); err != nil {
        t.Fatalf("zip close: %v", err)
    }
    return buf.Bytes()
}

func TestDocx_Paragraphs(t *testing.T) {
    docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Cell Biology</w:t></w:r></w:p>
    <w:p><w:r><w:t>The cell is the basic unit</w:t></w:r><w:r><w:t> of life.</w:t></w:r></w:p>
    <w:p><w:r><w:t></w:t></w:r></w:p>
  </w:body>
</w:document>`
    content := buildZip(t, map[string]string{"word/document.xml": docXML})
    got, err := docxExtractor{}.Extract(content)
    if err != nil {
        t.Fatalf("extract: %v", err)
    }
    want := "Cell Biology\n\nThe cell is the basic unit of life."
    if got.Text != want {
        t.Fatalf("got %q, want %q", got.Text, want)
    }
}

func TestDocx_EncryptedOLE(t *testing.T) {
    payload := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 64)...)
    _, err := docxExtractor{}.Extract(payload)
    if !errors.Is(err, ErrPasswordProtected) {
        t.Fatalf("want ErrPasswordProtected, got %v", err)
    }
}

func TestDocx_Corrupted(t *testing.T) {
    _, err := docxExtractor{}.Extract([]byte("not a zip at all"))
    if !errors.Is(err, ErrCorruptedDocument) {
        t.Fatalf("want ErrCorruptedDocument, got %v", err)
    }
}

func epubFixture(t *testing.T) []byte {
    t.Helper()
    return buildZip(t, map[string]string{
        "mimetype": "application/epub+zip",
        "META-INF/container.xml": `<?xml version="1.0"?>
<container><rootfiles><rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/></rootfiles></container>`,
        "OEBPS/content.opf": `<?xml version="1.0"?>
<package><manifest>
  <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
  <item id="ch2" href="ch2.xhtml" media-type="application/xhtml+xml"/>
  <item id="css" href="style.css" media-type="text/css"/>
</manifest><spine><itemref idref="ch2"/><itemref idref="ch1"/></spine></package>`,
        "OEBPS/ch1.xhtml": `<html><body><p>First authored chapter.</p></body></html>`,
        "OEBPS/ch2.xhtml": `<html><body><p>Spine says this comes first.</p></body></html>`,
        "OEBPS/style.css": `p { margin: 0 }`,
    })
}

func TestEPUB_SpineOrder(t *testing.T) {
    got, err := epubExtractor{}.Extract(epubFixture(t))
    if err != nil {
        t.Fatalf("extract: %v", err)
    }
    first := strings.Index(got.Text, "Spine says this comes first.")
    second := strings.Index(got.Text, "First authored chapter.")
    if first == -1 || second == -1 {
        t.Fatalf("missing chapter text: %q", got.Text)
    }
    if first > second {
        t.Fatalf("spine order not respected: %q", got.Text)
    }
    if len(got.PageBreaks) != 2 {
        t.Fatalf("chapter breaks = %d, want 2", len(got.PageBreaks))
    }
}

func TestEPUB_DRMSignalsPasswordProtected(t *testing.T) {
    content := buildZip(t, map[string]string{
        "mimetype":                  "application/epub+zip",
        "META-INF/container.xml":    `<container/>`,
        "META-INF/encryption.xml":   `<encryption/>`,
    })
    _, err := epubExtractor{}.Extract(content)
    if !errors.Is(err, ErrPasswordProtected) {
        t.Fatalf("want ErrPasswordProtected, got %v", err)
    }
}

func TestRTF_StripsControlWords(t *testing.T) {
    input := []byte(`{\rtf1\ansi{\fonttbl{\f0 Arial;}}\f0 Mitochondria produce \b ATP\b0 .\par New paragraph.}`)
    got, err := rtfExtractor{}.Extract(input)
    if err != nil {
        t.Fatalf("extract: %v", err)
    }
    if !strings.Contains(got.Text, "Mitochondria produce ATP") {
        t.Fatalf("content lost: %q", got.Text)
    }
    if strings.Contains(got.Text, "Arial") || strings.Contains(got.Text, `\b`) {
        t.Fatalf("control noise leaked: %q", got.Text)
    }
    if !strings.Contains(got.Text, "New paragraph.") {
        t.Fatalf("par break lost: %q", got.Text)
    }
}

func TestRTF_HexEscape(t *testing.T) {
    input := []byte(`{\rtf1 caf\'e9 and \'93quoted\'94}`)
    got, err := rtfExtractor{}.Extract(input)
    if err != nil {
        t.Fatalf("extract: %v", err)
    }
    if !strings.Contains(got.Text, "café") {
        t.Fatalf("hex escape not decoded: %q", got.Text)
    }
    if !strings.Contains(got.Text, "“quoted”") {
        t.Fatalf("cp1252 escape not decoded: %q", got.Text)
    }
}

func TestRTF_MissingHeader(t *testing.T) {
    _, err := rtfExtractor{}.Extract([]byte("plain text, no rtf group"))
    if !errors.Is(err, ErrCorruptedDocument) {
        t.Fatalf("want ErrCorruptedDocument, got %v", err)
    }
}

func TestPDF_GarbageIsCorrupted(t *testing.T) {
    _, err := pdfExtractor{}.Extract([]byte("%PDF-1.4 truncated nonsense"))
    if !errors.Is(err, ErrCorruptedDocument) {
        t.Fatalf("want ErrCorruptedDocument, got %v", err)
    }
}

func TestPDF_EncryptMarkerIsPasswordProtected(t *testing.T) {
    _, err := pdfExtractor{}.Extract([]byte("%PDF-1.4 broken body /Encrypt 12 0 R trailer"))
    if !errors.Is(err, ErrPasswordProtected) {
        t.Fatalf("want ErrPasswordProtected, got %v", err)
    }
}

func TestContentStreamOperators(t *testing.T) {
    stream := []byte("BT\n(Hello ) Tj\n[(wor) -20 (ld)] TJ\nT*\n(next line) '\nET")
    got := textFromContentStream(stream)
    if !strings.Contains(got, "Hello world") {
        t.Errorf("Tj/TJ text missing: %q", got)
    }
    if !strings.Contains(got, "next line") {
        t.Errorf("quote operator text missing: %q", got)
    }
}
