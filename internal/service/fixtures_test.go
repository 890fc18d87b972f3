package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/payperplay/mcstatus/internal/storage"
	"github.com/payperplay/mcstatus/pkg/config"
	"github.com/payperplay/mcstatus/pkg/mcstatus"
)

const javaStatusBody = `{
	"online": true,
	"host": "mc.example.com",
	"port": 25565,
	"eula_blocked": false,
	"retrieved_at": 1700000000000,
	"expires_at": 1700000060000,
	"version": {"name_raw": "1.20.4", "name_clean": "1.20.4", "name_html": "<span>1.20.4</span>", "protocol": 765},
	"players": {"online": 5, "max": 50, "list": []},
	"motd": {"raw": "hi", "clean": "hi", "html": "<span>hi</span>"}
}`

const bedrockStatusBody = `{
	"online": false,
	"host": "be.example.com",
	"port": 19132,
	"eula_blocked": false,
	"retrieved_at": 1700000000000,
	"expires_at": 1700000060000
}`

// upstream fakes the mcstatus.io API and remembers the query strings it saw
type upstream struct {
	*httptest.Server
	mu      sync.Mutex
	queries []string
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()

	u := &upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.queries = append(u.queries, r.URL.RawQuery)
		u.mu.Unlock()

		switch {
		case strings.HasPrefix(r.URL.Path, "/status/java/"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(javaStatusBody))
		case strings.HasPrefix(r.URL.Path, "/status/bedrock/"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(bedrockStatusBody))
		case strings.HasPrefix(r.URL.Path, "/icon/broken"):
			_, _ = w.Write([]byte("not an image"))
		case strings.HasPrefix(r.URL.Path, "/icon/"):
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(testPNG(t))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(u.Close)
	return u
}

func (u *upstream) lastQuery() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.queries) == 0 {
		return ""
	}
	return u.queries[len(u.queries)-1]
}

func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testConfig() *config.Config {
	return &config.Config{
		DefaultTimeout: 5,
		DefaultQuery:   true,
		HistoryLimit:   50,
	}
}

func newTestService(t *testing.T, u *upstream) *StatusService {
	t.Helper()
	client := mcstatus.NewClient(mcstatus.WithBaseURL(u.URL))
	return NewStatusService(client, testConfig(), nil)
}

type fakeStore struct {
	mu        sync.Mutex
	snapshots []storage.StatusSnapshot
	filters   []storage.SnapshotFilters
	err       error
}

func (f *fakeStore) RecordSnapshot(s storage.StatusSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, s)
}

func (f *fakeStore) QuerySnapshots(_ context.Context, filters storage.SnapshotFilters) ([]storage.StatusSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filters)
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshots, nil
}

func (f *fakeStore) recorded() []storage.StatusSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]storage.StatusSnapshot(nil), f.snapshots...)
}

type statusCall struct {
	edition, address string
	online           bool
	players          int
}

type fakeObserver struct {
	mu    sync.Mutex
	calls []statusCall
}

func (o *fakeObserver) ObserveStatus(edition, address string, online bool, players int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, statusCall{edition, address, online, players})
}
