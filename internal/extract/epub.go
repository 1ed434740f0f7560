package extract

import (
    "archive/zip"
    "bytes"
    "encoding/xml"
    "fmt"
    "io"
    "path"
    "strings"
)

// epubExtractor resolves the OPF package through META-INF/container.xml and
// walks the spine in reading order, stripping each chapter's XHTML. A chapter
// boundary is recorded as a page break. DRM-protected books carry
// META-INF/encryption.xml and are reported as password protected.
type epubExtractor struct{}

type epubContainer struct {
    Rootfiles []struct {
        FullPath string `xml:"full-path,attr"`
    } `xml:"rootfiles>rootfile"`
}

type epubPackage struct {
    Manifest []struct {
        ID        string `xml:"id,attr"`
        Href      string `xml:"href,attr"`
        MediaType string `xml:"media-type,attr"`
    } `xml:"manifest>item"`
    Spine []struct {
        IDRef string `xml:"idref,attr"`
    } `xml:"spine>itemref"`
}

func (epubExtractor) Extract(content []byte) (ExtractedText, error) {
    zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
    if err != nil {
        return ExtractedText{}, fmt.Errorf("%w: open zip: %v", ErrCorruptedDocument, err)
    }

    files := map[string]*zip.File{}
    for _, f := range zr.File {
        files[f.Name] = f
    }
    if _, drm := files["META-INF/encryption.xml"]; drm {
        return ExtractedText{}, fmt.Errorf("%w: encryption.xml present", ErrPasswordProtected)
    }

    opfPath, err := resolveOPFPath(files)
    if err != nil {
        return ExtractedText{}, err
    }
    var pkg epubPackage
    if err := readZipXML(files[opfPath], &pkg); err != nil {
        return ExtractedText{}, err
    }

    hrefByID := map[string]string{}
    for _, item := range pkg.Manifest {
        if strings.Contains(item.MediaType, "html") || strings.Contains(item.MediaType, "xml") {
            hrefByID[item.ID] = item.Href
        }
    }
    base := path.Dir(opfPath)

    var all strings.Builder
    var chapterBreaks []int
    for _, ref := range pkg.Spine {
        href, ok := hrefByID[ref.IDRef]
        if !ok {
            continue
        }
        name := path.Clean(path.Join(base, href))
        f, ok := files[name]
        if !ok {
            continue
        }
        raw, err := readZipFile(f)
        if err != nil {
            continue
        }
        text, err := textFromHTML(raw)
        if err != nil || strings.TrimSpace(text) == "" {
            continue
        }
        if all.Len() > 0 {
            all.WriteString("\n\n")
        }
        chapterBreaks = append(chapterBreaks, all.Len())
        all.WriteString(text)
    }
    if all.Len() == 0 {
        return ExtractedText{}, fmt.Errorf("%w: no readable chapters in spine", ErrCorruptedDocument)
    }
    return finish(all.String(), chapterBreaks), nil
}

func resolveOPFPath(files map[string]*zip.File) (string, error) {
    cf, ok := files["META-INF/container.xml"]
    if !ok {
        return "", fmt.Errorf("%w: META-INF/container.xml not found", ErrCorruptedDocument)
    }
    var c epubContainer
    if err := readZipXML(cf, &c); err != nil {
        return "", err
    }
    for _, rf := range c.Rootfiles {
        p := path.Clean(rf.FullPath)
        if _, ok := files[p]; ok {
            return p, nil
        }
    }
    return "", fmt.Errorf("%w: rootfile missing from archive", ErrCorruptedDocument)
}

func readZipFile(f *zip.File) ([]byte, error) {
    rc, err := f.Open()
    if err != nil {
        return nil, fmt.Errorf("%w: open %s: %v", ErrCorruptedDocument, f.Name, err)
    }
    defer rc.Close()
    b, err := io.ReadAll(rc)
    if err != nil {
        return nil, fmt.Errorf("%w: read %s: %v", ErrCorruptedDocument, f.Name, err)
    }
    return b, nil
}

func readZipXML(f *zip.File, v any) error {
    b, err := readZipFile(f)
    if err != nil {
        return err
    }
    if err := xml.Unmarshal(b, v); err != nil {
        return fmt.Errorf("%w: parse %s: %v", ErrCorruptedDocument, f.Name, err)
    }
    return nil
}
