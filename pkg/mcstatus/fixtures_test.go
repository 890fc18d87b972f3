package mcstatus

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"time"
)

const javaOnlineJSON = `{
	"online": true,
	"host": "demo.mcstatus.io",
	"port": 25565,
	"ip_address": "152.228.215.112",
	"eula_blocked": false,
	"retrieved_at": 1700000000000,
	"expires_at": 1700000060000,
	"srv_record": {"host": "mc.demo.mcstatus.io", "port": 25566},
	"version": {
		"name_raw": "§a1.20.4",
		"name_clean": "1.20.4",
		"name_html": "<span><span style=\"color: #55FF55;\">1.20.4</span></span>",
		"protocol": 765
	},
	"players": {
		"online": 2,
		"max": 100,
		"list": [
			{"uuid": "069a79f4-44e9-4726-a5be-fca90e38aaf5", "name_raw": "§bNotch", "name_clean": "Notch", "name_html": "<span>Notch</span>"},
			{"uuid": "not-a-uuid", "name_raw": "jeb_", "name_clean": "jeb_", "name_html": "<span>jeb_</span>"}
		]
	},
	"motd": {
		"raw": "§6A Minecraft Server",
		"clean": "A Minecraft Server",
		"html": "<span style=\"color: #FFAA00;\">A Minecraft Server</span>"
	},
	"icon": "data:image/png;base64,iVBORw0KGgo=",
	"mods": [
		{"name": "fabric-api", "version": "0.91.0"},
		{"name": "lithium", "version": "0.12.0"}
	],
	"software": "Paper 1.20.4",
	"plugins": [
		{"name": "A"},
		{"name": "B", "version": "1.0"}
	]
}`

// Offline documents may still carry stale substructure; accessors must ignore it.
const javaOfflineJSON = `{
	"online": false,
	"host": "offline.example.com",
	"port": 25565,
	"ip_address": null,
	"eula_blocked": true,
	"retrieved_at": 1700000000000,
	"expires_at": 1700000060000,
	"srv_record": null,
	"version": {"name_raw": "stale", "name_clean": "stale", "name_html": "stale", "protocol": 1},
	"players": {"online": 9, "max": 9, "list": [{"name_raw": "ghost", "name_clean": "ghost"}]},
	"motd": {"raw": "stale", "clean": "stale", "html": "stale"},
	"icon": "stale",
	"software": "stale",
	"mods": [{"name": "stale", "version": "1"}],
	"plugins": [{"name": "stale"}]
}`

const bedrockOnlineJSON = `{
	"online": true,
	"host": "demo.mcstatus.io",
	"port": 19132,
	"ip_address": "152.228.215.112",
	"eula_blocked": false,
	"retrieved_at": 1700000000000,
	"expires_at": 1700000060000,
	"version": {"name": "1.20.50", "protocol": 630},
	"players": {"online": 3, "max": 20},
	"motd": {"raw": "§aBedrock", "clean": "Bedrock", "html": "<span>Bedrock</span>"},
	"gamemode": "Survival",
	"server_id": "12345678901234567890",
	"edition": "MCPE"
}`

const bedrockOfflineJSON = `{
	"online": false,
	"host": "offline.example.com",
	"port": 19132,
	"eula_blocked": false,
	"retrieved_at": 1700000000000,
	"expires_at": 1700000060000,
	"gamemode": "stale",
	"server_id": "stale",
	"edition": "stale"
}`

// stubDoer answers every request with a fixed response.
type stubDoer struct {
	mu       sync.Mutex
	status   int
	body     []byte
	err      error
	requests []*http.Request
}

func (d *stubDoer) Do(req *http.Request) (*http.Response, error) {
	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.mu.Unlock()

	if d.err != nil {
		return nil, d.err
	}
	return &http.Response{
		StatusCode: d.status,
		Status:     http.StatusText(d.status),
		Body:       io.NopCloser(bytes.NewReader(d.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func (d *stubDoer) calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

func okDoer(body string) *stubDoer {
	return &stubDoer{status: http.StatusOK, body: []byte(body)}
}

type recordedRequest struct {
	endpoint, outcome string
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []recordedRequest
}

func (o *recordingObserver) ObserveRequest(endpoint, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, recordedRequest{endpoint, outcome})
}

// Offline documents with online-only fields of the wrong shape must still parse.
const javaOfflineMistypedJSON = `{
	"online": false,
	"host": "offline.example.com",
	"port": 25565,
	"eula_blocked": false,
	"retrieved_at": 1700000000000,
	"expires_at": 1700000060000,
	"version": "unknown",
	"players": [1, 2],
	"motd": 42,
	"icon": false,
	"software": {},
	"mods": {},
	"plugins": "none"
}`

const bedrockOfflineMistypedJSON = `{
	"online": false,
	"host": "offline.example.com",
	"port": 19132,
	"eula_blocked": false,
	"retrieved_at": 1700000000000,
	"expires_at": 1700000060000,
	"version": [],
	"players": "many",
	"motd": true,
	"gamemode": 5,
	"server_id": {},
	"edition": 1
}`
