package util

import (
	"net/http"
	"net/url"

	"golang.org/x/net/http/httpproxy"
)

// NewProxyFunc creates a proxy function for the LLM HTTP clients.
// If no proxy URLs are provided, falls back to environment variables.
// HTTPS requests use httpsProxy, or httpProxy when only that is set.
// Hosts matching noProxy (and loopback, e.g. a local Ollama) go direct.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}
	if httpsProxy == "" {
		httpsProxy = httpProxy
	}

	cfg := &httpproxy.Config{
		HTTPProxy:  httpProxy,
		HTTPSProxy: httpsProxy,
		NoProxy:    noProxy,
	}
	proxy := cfg.ProxyFunc()

	return func(req *http.Request) (*url.URL, error) {
		return proxy(req.URL)
	}
}
