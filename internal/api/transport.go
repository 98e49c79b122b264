package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/http/httpproxy"
	"golang.org/x/time/rate"
)

// limitedTransport waits on a token bucket before every round trip.
// TMDB throttles clients that exceed roughly 40 requests per second.
type limitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if t.limiter != nil {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return t.base.RoundTrip(req)
}

// TransportOptions configures the HTTP client used for TMDB requests
type TransportOptions struct {
	Timeout   time.Duration
	ProxyURL  string  // empty = honour HTTP(S)_PROXY / NO_PROXY from the environment
	RateLimit float64 // requests per second, 0 disables limiting
	RateBurst int
}

// NewHTTPClient builds the client shared by all TMDB calls
func NewHTTPClient(opts TransportOptions) *http.Client {
	base := &http.Transport{
		Proxy:                 proxyFunc(opts.ProxyURL),
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		MaxIdleConnsPerHost:   4,
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &http.Client{
		Transport: &limitedTransport{base: base, limiter: limiter},
		Timeout:   opts.Timeout,
	}
}

func proxyFunc(proxyURL string) func(*http.Request) (*url.URL, error) {
	cfg := httpproxy.FromEnvironment()
	if p := strings.TrimSpace(proxyURL); p != "" {
		cfg = &httpproxy.Config{
			HTTPProxy:  p,
			HTTPSProxy: p,
			NoProxy:    cfg.NoProxy,
		}
	}
	fn := cfg.ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return fn(req.URL)
	}
}
