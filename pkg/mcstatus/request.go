package mcstatus

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public mcstatus.io v2 API.
	DefaultBaseURL = "https://api.mcstatus.io/v2"
	// DefaultUserAgent identifies this library to the API.
	DefaultUserAgent = "mcstatus-go/1.0 (+https://github.com/payperplay/mcstatus)"

	// DefaultTimeout is the lookup timeout in seconds.
	DefaultTimeout = 5.0
)

// JavaRequest describes a Java edition status lookup.
type JavaRequest struct {
	Address string
	Query   bool
	// Timeout in seconds is sent to the API and also bounds the local HTTP
	// request. The API may spend the whole window pinging a server that
	// does not answer, so an offline server often surfaces as a timeout
	// TransportError instead of an online=false document.
	Timeout float64
}

// NewJavaRequest returns a request with query enabled and the default timeout.
func NewJavaRequest(address string) JavaRequest {
	return JavaRequest{Address: address, Query: true, Timeout: DefaultTimeout}
}

// Validate rejects a blank address or a timeout that is not a positive finite number.
func (r JavaRequest) Validate() error {
	return validate(r.Address, r.Timeout)
}

// URL builds the lookup URL against baseURL. It performs no I/O.
func (r JavaRequest) URL(baseURL string) string {
	return fmt.Sprintf("%s/status/java/%s?query=%t&timeout=%s",
		strings.TrimRight(baseURL, "/"), url.PathEscape(r.Address), r.Query, formatTimeout(r.Timeout))
}

// BedrockRequest describes a Bedrock edition status lookup.
type BedrockRequest struct {
	Address string
	// Timeout behaves as JavaRequest.Timeout.
	Timeout float64
}

// NewBedrockRequest returns a request with the default timeout.
func NewBedrockRequest(address string) BedrockRequest {
	return BedrockRequest{Address: address, Timeout: DefaultTimeout}
}

// Validate rejects a blank address or a timeout that is not a positive finite number.
func (r BedrockRequest) Validate() error {
	return validate(r.Address, r.Timeout)
}

// URL builds the lookup URL against baseURL.
func (r BedrockRequest) URL(baseURL string) string {
	return fmt.Sprintf("%s/status/bedrock/%s?timeout=%s",
		strings.TrimRight(baseURL, "/"), url.PathEscape(r.Address), formatTimeout(r.Timeout))
}

// IconRequest describes a server icon lookup.
type IconRequest struct {
	Address string
	Timeout float64
}

// NewIconRequest returns a request with the default timeout.
func NewIconRequest(address string) IconRequest {
	return IconRequest{Address: address, Timeout: DefaultTimeout}
}

// Validate rejects a blank address or a timeout that is not a positive finite number.
func (r IconRequest) Validate() error {
	return validate(r.Address, r.Timeout)
}

// URL builds the icon URL against baseURL.
func (r IconRequest) URL(baseURL string) string {
	return fmt.Sprintf("%s/icon/%s?timeout=%s",
		strings.TrimRight(baseURL, "/"), url.PathEscape(r.Address), formatTimeout(r.Timeout))
}

// IconURL returns the direct image URL for address on the public API.
// The address is not validated.
func IconURL(address string, timeout float64) string {
	return IconRequest{Address: address, Timeout: timeout}.URL(DefaultBaseURL)
}

func validate(address string, timeout float64) error {
	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("%w: server address cannot be empty", ErrInvalidArgument)
	}
	if math.IsNaN(timeout) || math.IsInf(timeout, 0) || timeout <= 0 {
		return fmt.Errorf("%w: timeout must be a positive number of seconds, got %v", ErrInvalidArgument, timeout)
	}
	return nil
}

// formatTimeout prints seconds with a mandatory fractional part (5 -> "5.0").
func formatTimeout(seconds float64) string {
	s := strconv.FormatFloat(seconds, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func timeoutDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
