package fetch

import (
    "context"
    "errors"
    "fmt"
    "io"
    "mime"
    "net/http"
    "net/url"
    "path"
    "strings"
    "sync"
    "time"
)

// DefaultMaxDocumentBytes caps downloaded document size. Study sources are
// books and course packs at most, not archives.
const DefaultMaxDocumentBytes = 50 << 20

// ErrDocumentTooLarge reports a response body over the configured cap.
var ErrDocumentTooLarge = errors.New("document too large")

// Document is one downloaded source ready for format detection.
type Document struct {
    Data        []byte
    Filename    string
    ContentType string
}

// Client wraps http.Client and provides timeouts and limited retry on
// transient errors. Unlike a crawler it accepts any content type: the
// format sniffer decides what the bytes are.
type Client struct {
    HTTPClient *http.Client
    UserAgent  string
    // MaxAttempts includes the initial attempt. Minimum 1.
    MaxAttempts int
    // PerRequestTimeout bounds each request.
    PerRequestTimeout time.Duration
    // MaxDocumentBytes caps the body size; zero means DefaultMaxDocumentBytes.
    MaxDocumentBytes int64
    // RedirectMaxHops caps redirect following to avoid loops. Zero means 5.
    RedirectMaxHops int
    // MaxConcurrent limits concurrent in-flight requests per client instance.
    // Zero means unlimited.
    MaxConcurrent int

    limiter     chan struct{}
    limiterOnce sync.Once
}

func (c *Client) getHTTPClient() *http.Client {
    if c.HTTPClient != nil {
        // Clone to attach our redirect policy without mutating caller's client
        base := *c.HTTPClient
        base.CheckRedirect = c.checkRedirectFunc()
        return &base
    }
    return &http.Client{Timeout: c.PerRequestTimeout, CheckRedirect: c.checkRedirectFunc()}
}

// Get downloads one document with bounded retry for transient errors. The
// returned filename comes from Content-Disposition when present, the URL
// path otherwise.
func (c *Client) Get(ctx context.Context, rawURL string) (Document, error) {
    attempts := c.MaxAttempts
    if attempts <= 0 {
        attempts = 1
    }
    var lastErr error
    for i := 0; i < attempts; i++ {
        doc, err := c.tryOnce(ctx, rawURL)
        if err == nil {
            return doc, nil
        }
        if !isTransient(err) || i == attempts-1 {
            return Document{}, err
        }
        lastErr = err
        time.Sleep(time.Duration(i+1) * 200 * time.Millisecond)
    }
    if lastErr == nil {
        lastErr = errors.New("unknown error")
    }
    return Document{}, lastErr
}

func (c *Client) tryOnce(ctx context.Context, rawURL string) (Document, error) {
    // Concurrency gate per client instance
    c.acquire()
    defer c.release()

    req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
    if err != nil {
        return Document{}, fmt.Errorf("new request: %w", err)
    }
    if req.URL == nil || !isHTTPScheme(req.URL) {
        return Document{}, fmt.Errorf("unsupported URL scheme: %q", rawURL)
    }
    if c.UserAgent != "" {
        req.Header.Set("User-Agent", c.UserAgent)
    }

    httpClient := c.getHTTPClient()
    if c.PerRequestTimeout > 0 {
        var cancel context.CancelFunc
        ctx, cancel = context.WithTimeout(req.Context(), c.PerRequestTimeout)
        defer cancel()
        req = req.WithContext(ctx)
    }

    resp, err := httpClient.Do(req)
    if err != nil {
        return Document{}, err
    }
    defer resp.Body.Close()

    if resp.StatusCode >= 500 && resp.StatusCode <= 599 {
        return Document{}, fmt.Errorf("server error: %d", resp.StatusCode)
    }
    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        return Document{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
    }

    limit := c.MaxDocumentBytes
    if limit <= 0 {
        limit = DefaultMaxDocumentBytes
    }
    // Read one byte past the cap to tell "exactly at" from "over".
    b, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
    if err != nil {
        return Document{}, fmt.Errorf("read body: %w", err)
    }
    if int64(len(b)) > limit {
        return Document{}, fmt.Errorf("%w: body exceeds %d bytes", ErrDocumentTooLarge, limit)
    }
    return Document{
        Data:        b,
        Filename:    filenameFor(resp, req.URL),
        ContentType: resp.Header.Get("Content-Type"),
    }, nil
}

// filenameFor recovers a usable filename so suffix-based format detection
// still has something to work with for URL sources.
func filenameFor(resp *http.Response, u *url.URL) string {
    if cd := resp.Header.Get("Content-Disposition"); cd != "" {
        if _, params, err := mime.ParseMediaType(cd); err == nil {
            if name := strings.TrimSpace(params["filename"]); name != "" {
                return path.Base(name)
            }
        }
    }
    if u != nil {
        if name := path.Base(u.Path); name != "" && name != "/" && name != "." {
            return name
        }
    }
    return ""
}

func isTransient(err error) bool {
    if errors.Is(err, context.DeadlineExceeded) {
        return true
    }
    return strings.Contains(err.Error(), "server error:")
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
    max := c.RedirectMaxHops
    if max <= 0 {
        max = 5
    }
    return func(req *http.Request, via []*http.Request) error {
        if len(via) >= max {
            return errors.New("too many redirects")
        }
        if req.URL == nil || !isHTTPScheme(req.URL) {
            return errors.New("redirect to unsupported scheme")
        }
        return nil
    }
}

func isHTTPScheme(u *url.URL) bool {
    if u == nil {
        return false
    }
    scheme := strings.ToLower(u.Scheme)
    return scheme == "http" || scheme == "https"
}

func (c *Client) acquire() {
    if c.MaxConcurrent <= 0 {
        return
    }
    c.limiterOnce.Do(func() {
        c.limiter = make(chan struct{}, c.MaxConcurrent)
    })
    c.limiter <- struct{}{}
}

func (c *Client) release() {
    if c.MaxConcurrent <= 0 || c.limiter == nil {
        return
    }
    select {
    case <-c.limiter:
    default:
    }
}
