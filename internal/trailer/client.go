package trailer

import (
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

const (
	defaultClientTimeout = 10 * time.Second
	defaultRetries       = 2
)

// userAgents are rotated per request. The search page serves a script-free
// layout to unknown agents.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_5) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36",
}

// transport sets a User-Agent and retries replayable requests that fail at
// the network level or with a 5xx status.
type transport struct {
	base    http.RoundTripper
	retries int
	next    atomic.Uint32
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}

	attempts := 1
	if replayable(req) {
		attempts += max(t.retries, 0)
	}

	var (
		resp *http.Response
		err  error
	)
	for i := 0; i < attempts; i++ {
		r := req.Clone(req.Context())
		if r.Header.Get("User-Agent") == "" {
			r.Header.Set("User-Agent", t.userAgent())
		}

		resp, err = t.base.RoundTrip(r)
		if err == nil && resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}
		if req.Context().Err() != nil || i == attempts-1 {
			break
		}
		if resp != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
	}
	return resp, err
}

// replayable reports whether req can be sent again unchanged: a GET or HEAD
// whose body is absent or http.NoBody.
func replayable(req *http.Request) bool {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return false
	}
	return req.Body == nil || req.Body == http.NoBody
}

func (t *transport) userAgent() string {
	n := t.next.Add(1) - 1
	return userAgents[int(n)%len(userAgents)]
}

// NewHTTPClient returns a client for search page fetches with User-Agent
// rotation, bounded retries and an overall timeout per request.
func NewHTTPClient(timeout time.Duration, retries int) *http.Client {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	if retries < 0 {
		retries = defaultRetries
	}
	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
	}
	return &http.Client{
		Transport: &transport{base: base, retries: retries},
		Timeout:   timeout,
	}
}
