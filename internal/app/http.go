package app

import (
    "net"
    "net/http"
    "time"
)

// newHighThroughputHTTPClient returns an HTTP client tuned for parallel
// document downloads and model calls without client-side throttling.
func newHighThroughputHTTPClient() *http.Client {
    transport := &http.Transport{
        Proxy: http.ProxyFromEnvironment,
        DialContext: (&net.Dialer{
            Timeout:   5 * time.Second,
            KeepAlive: 30 * time.Second,
        }).DialContext,
        ForceAttemptHTTP2:     true,
        MaxIdleConns:          0,
        MaxIdleConnsPerHost:   1024,
        MaxConnsPerHost:       0,
        IdleConnTimeout:       90 * time.Second,
        TLSHandshakeTimeout:   5 * time.Second,
        ExpectContinueTimeout: 1 * time.Second,
    }

    return &http.Client{
        Transport: transport,
        Timeout:   120 * time.Second,
    }
}
