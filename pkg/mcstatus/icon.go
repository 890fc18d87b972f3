package mcstatus

import (
	"bytes"
	"context"
	"image"
	"time"

	// The icon endpoint serves PNG; JPEG and GIF are accepted for custom mirrors.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// FetchIconBytes downloads the raw icon image.
func (c *Client) FetchIconBytes(ctx context.Context, r IconRequest) ([]byte, error) {
	start := time.Now()
	data, err := c.fetchIcon(ctx, r)
	if err != nil {
		return nil, err
	}
	c.observe(EndpointIcon, OutcomeOK, start)
	return data, nil
}

func (c *Client) fetchIcon(ctx context.Context, r IconRequest) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return c.get(ctx, EndpointIcon, r.URL(c.baseURL), r.Timeout)
}

// FetchIcon downloads and decodes the icon. Failures are returned as
// TransportError, RemoteError or DecodeError; a nil image is never returned
// without an error.
func (c *Client) FetchIcon(ctx context.Context, r IconRequest) (image.Image, error) {
	start := time.Now()
	data, err := c.fetchIcon(ctx, r)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		c.observe(EndpointIcon, OutcomeDecodeError, start)
		return nil, &DecodeError{Err: err}
	}
	c.observe(EndpointIcon, OutcomeOK, start)
	return img, nil
}

// FetchIcon downloads and decodes the icon for address with DefaultClient.
func FetchIcon(ctx context.Context, address string) (image.Image, error) {
	return DefaultClient.FetchIcon(ctx, NewIconRequest(address))
}
