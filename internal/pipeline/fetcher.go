package pipeline

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/kurdg2p/internal/model"
	"github.com/ppiankov/kurdg2p/internal/util"
)

var (
	// ErrUnexpectedStatus is returned for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrRobotsDisallowed is returned when robots.txt forbids the URL.
	ErrRobotsDisallowed = errors.New("disallowed by robots.txt")
)

const (
	fetchAttempts = 3
	fetchBackoff  = time.Second
	maxRedirects  = 3
)

// fetchSleepFunc is replaced in tests.
var fetchSleepFunc = time.Sleep

// Fetcher downloads poem pages and articles
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
}

// NewFetcher creates a Fetcher. Empty proxy settings fall back to the
// environment.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, insecureTLS bool, httpProxy, httpsProxy, noProxy string) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = util.NewProxyFunc(httpProxy, httpsProxy, noProxy)
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via http.insecure_tls
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
	}
}

// RespectRobots makes every fetch consult robots.txt first. The checker
// shares the fetcher's transport.
func (f *Fetcher) RespectRobots() *Fetcher {
	f.robots = util.NewRobotsChecker(f.userAgent, f.httpClient, f.httpClient.Timeout)
	return f
}

// FetchResult contains the fetched page and its metadata
type FetchResult struct {
	Body     string
	HTML     string
	Meta     model.FetchMeta
	Subject  string
	FinalURL string
}

// IsHTML reports whether the response declared an HTML content type.
// Responses without a content type are treated as HTML.
func (r *FetchResult) IsHTML() bool {
	ct := strings.ToLower(r.Meta.ContentType)
	return ct == "" || strings.Contains(ct, "html")
}

// Fetch retrieves rawURL once
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.robots != nil {
		allowed, _, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("check robots.txt: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrRobotsDisallowed, rawURL)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ckb,ku;q=0.9,en;q=0.5")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	finalURL := resp.Request.URL.String()
	result := &FetchResult{
		Body: string(body),
		Meta: model.FetchMeta{
			StatusCode:   resp.StatusCode,
			ContentType:  resp.Header.Get("Content-Type"),
			LastModified: resp.Header.Get("Last-Modified"),
			ETag:         resp.Header.Get("ETag"),
			FinalURL:     finalURL,
		},
		Subject:  extractSubject(finalURL),
		FinalURL: finalURL,
	}
	if result.IsHTML() {
		result.HTML = result.Body
	}
	return result, nil
}

// FetchWithRetry retries Fetch on network errors, 429 and 5xx with a
// linear backoff.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryableFetchError(err) || attempt == fetchAttempts {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		fetchSleepFunc(time.Duration(attempt) * fetchBackoff)
	}
	return nil, lastErr
}

// isRetryableFetchError works on the message so that wrapped transport
// errors classify the same as ours.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()

	if rest, ok := strings.CutPrefix(msg, ErrUnexpectedStatus.Error()+": "); ok {
		field, _, _ := strings.Cut(rest, " ")
		code, convErr := strconv.Atoi(field)
		if convErr != nil {
			return false
		}
		return code == http.StatusTooManyRequests || code >= 500
	}

	return strings.HasPrefix(msg, "fetch: ")
}

// extractSubject turns the last path segment of rawURL into a title:
// ".../شیعر/نالی_غەزەل.html" becomes "نالی غەزەل".
func extractSubject(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}

	last := path[strings.LastIndex(path, "/")+1:]
	last = strings.NewReplacer("_", " ", "-", " ").Replace(last)
	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}
	return last
}
