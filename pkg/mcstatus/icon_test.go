package mcstatus

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFetchIcon(t *testing.T) {
	icon := testPNG(t)
	var gotPath, gotQuery, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(icon)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := NewClient(WithBaseURL(srv.URL), WithObserver(obs))

	img, err := c.FetchIcon(context.Background(), NewIconRequest("example.com"))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	assert.Equal(t, "/icon/example.com", gotPath)
	assert.Equal(t, "timeout=5.0", gotQuery)
	assert.Equal(t, "image/*", gotAccept)

	data, err := c.FetchIconBytes(context.Background(), NewIconRequest("example.com"))
	require.NoError(t, err)
	assert.Equal(t, icon, data)

	assert.Equal(t, []recordedRequest{{EndpointIcon, OutcomeOK}, {EndpointIcon, OutcomeOK}}, obs.seen)
}

func TestFetchIconDecodeError(t *testing.T) {
	obs := &recordingObserver{}
	c := NewClient(WithHTTPClient(okDoer("definitely not an image")), WithObserver(obs))

	img, err := c.FetchIcon(context.Background(), NewIconRequest("example.com"))
	assert.Nil(t, img)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, []recordedRequest{{EndpointIcon, OutcomeDecodeError}}, obs.seen)
}

func TestFetchIconRemoteError(t *testing.T) {
	c := NewClient(WithHTTPClient(&stubDoer{status: http.StatusInternalServerError}))

	_, err := c.FetchIcon(context.Background(), NewIconRequest("example.com"))

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusInternalServerError, remoteErr.StatusCode)
}
