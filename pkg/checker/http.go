package checker

import (
	"context"
	"crypto/tls"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/cortana-monitor/cortana/pkg/config"
	"github.com/cortana-monitor/cortana/pkg/defaults"
	"github.com/cortana-monitor/cortana/pkg/measurement"
)

// HTTPChecker reports running when a HEAD request answers below 400.
type HTTPChecker struct {
	Client    *http.Client
	UserAgent string
}

// HTTPCheckerOption configures an HTTPChecker.
type HTTPCheckerOption func(*HTTPChecker)

// WithHTTPClient replaces the probe client.
func WithHTTPClient(client *http.Client) HTTPCheckerOption {
	return func(c *HTTPChecker) {
		c.Client = client
	}
}

// NewHTTPChecker returns a checker whose client gives up after
// defaults.HTTPProbeTimeout. Redirects are followed.
func NewHTTPChecker(options ...HTTPCheckerOption) *HTTPChecker {
	c := &HTTPChecker{
		Client: &http.Client{
			Timeout:   defaults.HTTPProbeTimeout,
			Transport: newProbeTransport(),
		},
		UserAgent: defaults.ProbeUserAgent,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func newProbeTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: defaults.HTTPConnectTimeout,
		}).DialContext,
		TLSHandshakeTimeout: defaults.HTTPTLSHandshakeTimeout,
		DisableKeepAlives:   true,
		ForceAttemptHTTP2:   true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// Check issues HEAD sc.URL.
func (c *HTTPChecker) Check(ctx context.Context, sc config.ServiceCheck) measurement.ServiceStatus {
	if strings.TrimSpace(sc.URL) == "" {
		slog.Debug("http check without a url", slog.String("name", sc.Name))
		return measurement.Stopped(sc.Name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, sc.URL, nil)
	if err != nil {
		slog.Debug("invalid probe url", slog.String("name", sc.Name), slog.String("error", err.Error()))
		return measurement.Stopped(sc.Name)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		slog.Debug("http probe failed", slog.String("name", sc.Name), slog.String("error", err.Error()))
		return measurement.Stopped(sc.Name)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		slog.Debug("http probe error status", slog.String("name", sc.Name), slog.Int("status", resp.StatusCode))
		return measurement.Stopped(sc.Name)
	}
	return measurement.Running(sc.Name, "")
}
