package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_CanFetch(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		hits.Add(1)
		_, _ = fmt.Fprint(w, "User-agent: kurdg2p\nDisallow: /private/\nCrawl-delay: 2\n\nUser-agent: *\nDisallow: /\n")
	}))
	defer server.Close()

	checker := NewRobotsChecker("kurdg2p/0.1 (+https://example.org)", nil, 5*time.Second)
	ctx := context.Background()

	allowed, delay, err := checker.CanFetch(ctx, server.URL+"/poems/nali.html")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !allowed {
		t.Error("Expected /poems/ to be allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("Expected crawl delay 2s, got %v", delay)
	}

	if checker.IsAllowed(ctx, server.URL+"/private/draft.html") {
		t.Error("Expected /private/ to be disallowed")
	}

	if hits.Load() != 1 {
		t.Errorf("Expected robots.txt to be fetched once, got %d", hits.Load())
	}

	checker.Clear()
	checker.IsAllowed(ctx, server.URL+"/")
	if hits.Load() != 2 {
		t.Errorf("Expected a refetch after Clear, got %d fetches", hits.Load())
	}
}

func TestRobotsChecker_MissingFileAllowsAll(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	checker := NewRobotsChecker("kurdg2p", nil, 5*time.Second)
	if !checker.IsAllowed(context.Background(), server.URL+"/anything") {
		t.Error("Expected a missing robots.txt to allow everything")
	}
}

func TestRobotsChecker_UnsupportedScheme(t *testing.T) {
	checker := NewRobotsChecker("kurdg2p", nil, time.Second)
	if _, _, err := checker.CanFetch(context.Background(), "file:///etc/passwd"); err == nil {
		t.Error("Expected an error for a file URL")
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{"kurdg2p/0.1 (+https://github.com/ppiankov/kurdg2p)", "kurdg2p"},
		{"curl/8.0", "curl"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeUserAgent(tt.ua); got != tt.want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}
