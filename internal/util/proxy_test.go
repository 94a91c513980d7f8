package util

import (
	"net/http"
	"testing"
)

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://plain.proxy:3128", "http://tls.proxy:3128", "ckb.wikipedia.org")

	tests := []struct {
		url  string
		want string
	}{
		{"http://example.org/poem", "http://plain.proxy:3128"},
		{"https://example.org/poem", "http://tls.proxy:3128"},
		{"https://ckb.wikipedia.org/wiki/x", ""},
	}

	for _, tt := range tests {
		req, err := http.NewRequest(http.MethodGet, tt.url, nil)
		if err != nil {
			t.Fatal(err)
		}
		got, err := proxy(req)
		if err != nil {
			t.Fatalf("proxy(%s): %v", tt.url, err)
		}
		if tt.want == "" {
			if got != nil {
				t.Errorf("Expected no proxy for %s, got %s", tt.url, got)
			}
			continue
		}
		if got == nil || got.String() != tt.want {
			t.Errorf("proxy(%s) = %v, want %s", tt.url, got, tt.want)
		}
	}
}
