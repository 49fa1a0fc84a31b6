// Package vault provides a typed HTTP client for a remote note-vault
// service exposing a file, search, and periodic-note REST API. Every
// operation attaches bearer-token authentication and normalizes failures:
// no raw transport error ever escapes this package.
package vault

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultConnectTimeout bounds connection establishment.
	DefaultConnectTimeout = 3 * time.Second
	// DefaultReadTimeout bounds waiting for the response headers.
	DefaultReadTimeout = 6 * time.Second
)

// Config holds the connection parameters for the vault service.
// It is immutable after client construction.
type Config struct {
	Scheme         string        `yaml:"scheme"`          // "http" or "https"; anything else defaults to https
	Host           string        `yaml:"host"`            // e.g. "127.0.0.1"
	Port           int           `yaml:"port"`            // e.g. 27124
	APIKey         string        `yaml:"api_key"`         // bearer token for every request
	VerifyTLS      bool          `yaml:"verify_tls"`      // verify the service certificate
	ConnectTimeout time.Duration `yaml:"connect_timeout"` // default 3s
	ReadTimeout    time.Duration `yaml:"read_timeout"`    // default 6s
}

// normalized returns a copy with defaults applied. The scheme falls back
// to https for any value other than "http", matching the service's own
// self-signed-certificate deployment default.
func (c Config) normalized() Config {
	if c.Scheme != "http" {
		c.Scheme = "https"
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	return c
}

// APIError is a non-2xx response from the vault service, carrying the
// errorCode/message pair from the response body. Code is -1 and Message
// "<unknown>" when the body is absent or unparseable.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.Code, e.Message)
}

// Client is an authenticated HTTP client for the vault service.
// The configuration is read-only after construction, so a single client
// is safe to share across concurrent tool invocations.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a vault client from the given configuration.
func NewClient(cfg Config) *Client {
	cfg = cfg.normalized()

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !cfg.VerifyTLS, //nolint:gosec // deployments commonly use self-signed certs
		},
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.ConnectTimeout + cfg.ReadTimeout,
		},
	}
}

// BaseURL returns the service root, e.g. "https://127.0.0.1:27124".
func (c *Client) BaseURL() string {
	return fmt.Sprintf("%s://%s:%d", c.cfg.Scheme, c.cfg.Host, c.cfg.Port)
}

// vaultPath builds an escaped URL path under /vault/ for a vault-relative
// file or directory path. A trailing slash is preserved so directory
// listings hit the listing endpoint.
func vaultPath(relPath string) string {
	trimmed := strings.Trim(relPath, "/")
	if trimmed == "" {
		return "/vault/"
	}
	segments := strings.Split(trimmed, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	p := "/vault/" + strings.Join(segments, "/")
	if strings.HasSuffix(relPath, "/") {
		p += "/"
	}
	return p
}

// do performs one request and applies the error translation contract:
// transport failures become "request failed: ..." errors, non-2xx
// responses become *APIError. On success the raw response body is
// returned.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, headers map[string]string, body io.Reader) ([]byte, error) {
	reqURL := c.BaseURL() + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(data)
	}

	return data, nil
}

// parseAPIError extracts errorCode/message from a non-2xx body, falling
// back to -1/"<unknown>" for empty or malformed bodies.
func parseAPIError(body []byte) *APIError {
	apiErr := &APIError{Code: -1, Message: "<unknown>"}
	if len(body) == 0 {
		return apiErr
	}

	var parsed struct {
		ErrorCode *int    `json:"errorCode"`
		Message   *string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiErr
	}
	if parsed.ErrorCode != nil {
		apiErr.Code = *parsed.ErrorCode
	}
	if parsed.Message != nil {
		apiErr.Message = *parsed.Message
	}
	return apiErr
}
