// Package transport provides the HTTP plumbing shared by all Workspace API
// request builders: a pooled client preconfigured with the bearer header,
// JSON (de)serialization and a uniform error policy for non-success statuses.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/mantara-io/gworkspace/internal/logger"
)

// maxErrorBody limits how much of an error response body is retained.
const maxErrorBody = 4 << 10

// StatusError is returned when an API call completes with a non-success
// HTTP status. The (possibly truncated) response body is kept for context.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// IsStatus returns true if err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// NewBearerClient builds an HTTP client that injects the bearer token and
// JSON content negotiation headers on every request. The underlying
// transport pools connections across requests.
func NewBearerClient(accessToken string) *http.Client {
	return &http.Client{
		Transport: &headerTransport{
			base:  newPooledTransport(),
			token: accessToken,
		},
	}
}

// newPooledTransport returns an http.Transport with connection reuse
// tuned for bursts of small API calls.
func newPooledTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// headerTransport injects default headers on every outgoing request.
type headerTransport struct {
	base  http.RoundTripper
	token string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)
	clone.Header.Set("Accept", "application/json")
	if clone.Header.Get("Content-Type") == "" {
		clone.Header.Set("Content-Type", "application/json")
	}
	return t.base.RoundTrip(clone)
}

// Request accumulates the URL, query parameters and optional JSON body for
// one API call. Builders fill it in and hand it to Do.
type Request struct {
	Method  string
	URL     string
	Params  url.Values
	Limiter *RateLimiter
}

// NewRequest returns an empty request with initialised query parameters.
func NewRequest() Request {
	return Request{Params: url.Values{}}
}

// SetParam sets a single query parameter, replacing any previous value.
func (r *Request) SetParam(key, value string) {
	r.Params.Set(key, value)
}

// Do issues the request using the given client and decodes a JSON response
// of type T. A non-success status yields a *StatusError; transport failures
// are returned wrapped.
func Do[T any](ctx context.Context, client *http.Client, r Request, body any) (*T, error) {
	if client == nil {
		return nil, fmt.Errorf("transport: nil http client")
	}
	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	reqURL := r.URL
	if len(r.Params) > 0 {
		reqURL = reqURL + "?" + r.Params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	logger.Debug("%s %s", r.Method, reqURL)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests && r.Limiter != nil {
		r.Limiter.RecordRateLimitError(parseRetryAfter(resp))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(raw))}
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// parseRetryAfter extracts the Retry-After header in seconds, or 0.
func parseRetryAfter(resp *http.Response) int {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	var secs int
	if _, err := fmt.Sscanf(header, "%d", &secs); err != nil {
		return 0
	}
	return secs
}
