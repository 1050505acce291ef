package util

import (
	"net/http"
	"testing"
)

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.local:3128", "", "internal.example")

	tests := []struct {
		url  string
		want string
	}{
		{"https://api.anthropic.com/v1/messages", "http://proxy.local:3128"},
		{"http://api.example.com/", "http://proxy.local:3128"},
		{"https://internal.example/v1", ""},
		{"http://localhost:11434/api/generate", ""},
	}

	for _, tt := range tests {
		req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
		got, err := proxy(req)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.url, err)
		}
		if tt.want == "" {
			if got != nil {
				t.Errorf("%s: expected direct connection, got %s", tt.url, got)
			}
			continue
		}
		if got == nil || got.String() != tt.want {
			t.Errorf("%s: expected %s, got %v", tt.url, tt.want, got)
		}
	}
}

func TestNewProxyFunc_SeparateHTTPS(t *testing.T) {
	proxy := NewProxyFunc("http://plain:1", "http://secure:2", "")

	req, _ := http.NewRequest(http.MethodGet, "https://api.openai.com/v1", nil)
	got, err := proxy(req)
	if err != nil || got == nil || got.Host != "secure:2" {
		t.Errorf("expected https proxy, got %v (%v)", got, err)
	}
}
