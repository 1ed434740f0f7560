package extract

import (
    "bytes"
    "fmt"
    "strings"

    "golang.org/x/net/html"
)

// htmlExtractor walks the parsed tree and collects readable text, preferring
// <main> or <article>, falling back to <body>. Headings, paragraphs, list
// items, and pre/code blocks keep their separation; obvious boilerplate like
// <nav> and <footer> is skipped.
type htmlExtractor struct{}

func (htmlExtractor) Extract(content []byte) (ExtractedText, error) {
    decoded, err := decodeText(content)
    if err != nil {
        return ExtractedText{}, err
    }
    text, err := textFromHTML([]byte(decoded))
    if err != nil {
        return ExtractedText{}, err
    }
    return finish(text, nil), nil
}

// textFromHTML strips markup from an HTML fragment or document. Shared with
// the EPUB extractor for chapter content.
func textFromHTML(input []byte) (string, error) {
    node, err := html.Parse(bytes.NewReader(input))
    if err != nil || node == nil {
        return "", fmt.Errorf("%w: parse html: %v", ErrCorruptedDocument, err)
    }
    content := findFirst(node, "main")
    if content == nil {
        content = findFirst(node, "article")
    }
    if content == nil {
        content = findFirst(node, "body")
    }
    if content == nil {
        content = node
    }
    var b strings.Builder
    collectText(&b, content, false)
    return tidyLines(b.String()), nil
}

func findFirst(n *html.Node, tag string) *html.Node {
    var res *html.Node
    var dfs func(*html.Node)
    dfs = func(cur *html.Node) {
        if res != nil {
            return
        }
        if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
            res = cur
            return
        }
        for c := cur.FirstChild; c != nil; c = c.NextSibling {
            dfs(c)
            if res != nil {
                return
            }
        }
    }
    dfs(n)
    return res
}

func collectText(b *strings.Builder, n *html.Node, inPre bool) {
    if n.Type == html.ElementNode {
        name := strings.ToLower(n.Data)
        switch name {
        case "script", "style", "noscript", "nav", "footer", "aside", "iframe", "head":
            return
        case "pre", "code":
            inPre = true
        case "br", "hr":
            b.WriteString("\n")
        case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "tr", "div":
            b.WriteString("\n")
        }
    }

    if n.Type == html.TextNode {
        data := n.Data
        if !inPre {
            data = strings.ReplaceAll(data, "\t", " ")
            data = strings.ReplaceAll(data, "\r", " ")
        }
        b.WriteString(data)
    }

    for c := n.FirstChild; c != nil; c = c.NextSibling {
        collectText(b, c, inPre)
    }

    if n.Type == html.ElementNode {
        switch strings.ToLower(n.Data) {
        case "p", "h1", "h2", "h3", "h4", "h5", "h6":
            b.WriteString("\n\n")
        case "li", "tr":
            b.WriteString("\n")
        case "pre", "code":
            b.WriteString("\n")
        }
    }
}

// tidyLines collapses internal whitespace runs and drops repeated blank lines
// so downstream normalization starts from a stable shape.
func tidyLines(s string) string {
    lines := strings.Split(s, "\n")
    out := make([]string, 0, len(lines))
    for _, line := range lines {
        trimmed := strings.TrimSpace(line)
        if trimmed == "" {
            if len(out) > 0 && out[len(out)-1] == "" {
                continue
            }
            out = append(out, "")
            continue
        }
        out = append(out, collapseSpaces(trimmed))
    }
    for len(out) > 0 && out[len(out)-1] == "" {
        out = out[:len(out)-1]
    }
    for len(out) > 0 && out[0] == "" {
        out = out[1:]
    }
    return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
    var b strings.Builder
    lastSpace := false
    for _, r := range s {
        if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
            if !lastSpace {
                b.WriteByte(' ')
                lastSpace = true
            }
            continue
        }
        b.WriteRune(r)
        lastSpace = false
    }
    return b.String()
}
