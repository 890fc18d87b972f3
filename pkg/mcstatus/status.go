package mcstatus

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// statusFields are present in every document, online or not.
type statusFields struct {
	Online      *bool   `json:"online"`
	Host        *string `json:"host"`
	Port        *int    `json:"port"`
	IPAddress   *string `json:"ip_address"`
	EULABlocked *bool   `json:"eula_blocked"`
	RetrievedAt *int64  `json:"retrieved_at"`
	ExpiresAt   *int64  `json:"expires_at"`
}

type motdFields struct {
	Raw   *string `json:"raw"`
	Clean *string `json:"clean"`
	HTML  *string `json:"html"`
}

// common implements the accessors shared by both editions.
type common struct {
	f *statusFields
}

// IsOnline reports whether the API could reach the server.
func (c common) IsOnline() bool {
	return c.f != nil && c.f.Online != nil && *c.f.Online
}

func (c common) Host() (string, error) {
	if c.f.Host == nil {
		return "", missing("host")
	}
	return *c.f.Host, nil
}

func (c common) Port() (int, error) {
	if c.f.Port == nil {
		return 0, missing("port")
	}
	return *c.f.Port, nil
}

// IPAddress returns the resolved IP address, or nil if the API did not report one.
func (c common) IPAddress() *string {
	return copyString(c.f.IPAddress)
}

// EULABlocked reports whether the server is blocked by Mojang for EULA violations.
func (c common) EULABlocked() (bool, error) {
	if c.f.EULABlocked == nil {
		return false, missing("eula_blocked")
	}
	return *c.f.EULABlocked, nil
}

// RetrievedAt is the Unix time in milliseconds at which the API fetched the status.
func (c common) RetrievedAt() (int64, error) {
	if c.f.RetrievedAt == nil {
		return 0, missing("retrieved_at")
	}
	return *c.f.RetrievedAt, nil
}

// ExpiresAt is the Unix time in milliseconds at which the API's cached copy expires.
func (c common) ExpiresAt() (int64, error) {
	if c.f.ExpiresAt == nil {
		return 0, missing("expires_at")
	}
	return *c.f.ExpiresAt, nil
}

func (c common) RetrievedTime() (time.Time, error) {
	ms, err := c.RetrievedAt()
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

func (c common) ExpiresTime() (time.Time, error) {
	ms, err := c.ExpiresAt()
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

// decodeDocument unmarshals the fields every document carries. Online-only
// fields stay raw until an accessor asks for them.
func decodeDocument(body []byte, v interface{}, f *statusFields) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &ParseError{Err: errors.New("response body is not a JSON object")}
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return &ParseError{Err: err}
	}
	if f.Online == nil {
		return missing("online")
	}
	return nil
}

// decodeField decodes an online-only field on first use. An absent or null
// field leaves v untouched.
func decodeField(raw json.RawMessage, field string, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ParseError{Field: field, Err: err}
	}
	return nil
}

func motdField(online bool, raw json.RawMessage, name string, pick func(*motdFields) *string) (*string, error) {
	if !online {
		return nil, nil
	}
	var m *motdFields
	if err := decodeField(raw, "motd", &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, missing("motd")
	}
	v := pick(m)
	if v == nil {
		return nil, missing("motd." + name)
	}
	return copyString(v), nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
