package mcstatus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/payperplay/mcstatus/pkg/logger"
)

// Endpoint names reported to an Observer.
const (
	EndpointJava    = "java"
	EndpointBedrock = "bedrock"
	EndpointIcon    = "icon"
)

// Outcomes reported to an Observer.
const (
	OutcomeOK             = "ok"
	OutcomeTransportError = "transport_error"
	OutcomeRemoteError    = "remote_error"
	OutcomeParseError     = "parse_error"
	OutcomeDecodeError    = "decode_error"
)

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Observer is notified once per completed request.
type Observer interface {
	ObserveRequest(endpoint, outcome string, elapsed time.Duration)
}

// Client handles communication with the mcstatus.io API
type Client struct {
	httpClient Doer
	baseURL    string
	userAgent  string
	observer   Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

// WithBaseURL points the client at another API deployment.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithObserver reports every completed request to o.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient creates a new mcstatus.io API client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultClient is used by the package-level fetch helpers.
var DefaultClient = NewClient()

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// IconURL returns the direct image URL for address against the client's base URL.
func (c *Client) IconURL(address string, timeout float64) string {
	return IconRequest{Address: address, Timeout: timeout}.URL(c.baseURL)
}

// get performs one GET bounded by timeout and returns the full body of a 200 response.
func (c *Client) get(ctx context.Context, endpoint, rawURL string, timeout float64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeoutDuration(timeout))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInvalidArgument, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	if endpoint == EndpointIcon {
		req.Header.Set("Accept", "image/*")
	} else {
		req.Header.Set("Accept", "application/json")
	}

	logger.Debug("mcstatus API request", map[string]interface{}{
		"endpoint": endpoint,
		"url":      rawURL,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, OutcomeTransportError, start)
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		c.observe(endpoint, OutcomeRemoteError, start)
		return nil, &RemoteError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(endpoint, OutcomeTransportError, start)
		return nil, &TransportError{URL: rawURL, Err: err}
	}

	return body, nil
}

func (c *Client) observe(endpoint, outcome string, start time.Time) {
	elapsed := time.Since(start)
	if outcome != OutcomeOK {
		logger.Debug("mcstatus API request failed", map[string]interface{}{
			"endpoint":   endpoint,
			"outcome":    outcome,
			"latency_ms": elapsed.Milliseconds(),
		})
	}
	if c.observer != nil {
		c.observer.ObserveRequest(endpoint, outcome, elapsed)
	}
}

// FetchJava looks up a Java edition server. The returned status is fully
// parsed; on error no status is returned.
func (c *Client) FetchJava(ctx context.Context, r JavaRequest) (*JavaStatus, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := c.get(ctx, EndpointJava, r.URL(c.baseURL), r.Timeout)
	if err != nil {
		return nil, err
	}

	status, err := ParseJavaStatus(body)
	if err != nil {
		c.observe(EndpointJava, OutcomeParseError, start)
		return nil, err
	}
	c.observe(EndpointJava, OutcomeOK, start)
	return status, nil
}

// FetchBedrock looks up a Bedrock edition server.
func (c *Client) FetchBedrock(ctx context.Context, r BedrockRequest) (*BedrockStatus, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := c.get(ctx, EndpointBedrock, r.URL(c.baseURL), r.Timeout)
	if err != nil {
		return nil, err
	}

	status, err := ParseBedrockStatus(body)
	if err != nil {
		c.observe(EndpointBedrock, OutcomeParseError, start)
		return nil, err
	}
	c.observe(EndpointBedrock, OutcomeOK, start)
	return status, nil
}

// FetchJavaStatus looks up address with DefaultClient, query enabled and the default timeout.
func FetchJavaStatus(ctx context.Context, address string) (*JavaStatus, error) {
	return DefaultClient.FetchJava(ctx, NewJavaRequest(address))
}

// FetchBedrockStatus looks up address with DefaultClient and the default timeout.
func FetchBedrockStatus(ctx context.Context, address string) (*BedrockStatus, error) {
	return DefaultClient.FetchBedrock(ctx, NewBedrockRequest(address))
}
