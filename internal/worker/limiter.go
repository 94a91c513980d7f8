package worker

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const defaultBurst = 5

// Limiter rate-limits URL inputs per host. Sources that are not URLs pass
// through.
type Limiter struct {
	mu           sync.RWMutex
	hosts        map[string]*rate.Limiter
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter allowing requestsPerSecond per host
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = defaultBurst
	}
	return &Limiter{
		hosts:        make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until source's host may be requested
func (l *Limiter) Wait(ctx context.Context, source string) error {
	host, err := extractDomain(source)
	if err != nil {
		return err
	}
	if host == "" {
		return nil
	}
	return l.forHost(host).Wait(ctx)
}

// Allow reports whether source's host may be requested now, consuming a
// token if so.
func (l *Limiter) Allow(source string) bool {
	host, err := extractDomain(source)
	if err != nil {
		return false
	}
	if host == "" {
		return true
	}
	return l.forHost(host).Allow()
}

// WaitWithDelay is Wait followed by a fixed pause, used for hosts that ask
// for a crawl delay.
func (l *Limiter) WaitWithDelay(ctx context.Context, source string, delay time.Duration) error {
	if err := l.Wait(ctx, source); err != nil {
		return err
	}
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SetDomainRate overrides the rate for one host
func (l *Limiter) SetDomainRate(host string, requestsPerSecond float64, burst int) {
	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.hosts[host] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func (l *Limiter) forHost(host string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.hosts[host]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.hosts[host]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.hosts[host] = lim
	return lim
}

// extractDomain returns the host of a URL source, or "" for files and stdin.
func extractDomain(source string) (string, error) {
	parsed, err := url.Parse(source)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", nil
	}
	return parsed.Host, nil
}
