package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildFluxQuery_Defaults(t *testing.T) {
	c := &InfluxDBClient{bucket: "status"}

	q := c.buildFluxQuery(SnapshotFilters{})

	assert.True(t, strings.HasPrefix(q, `from(bucket: "status")`))
	assert.Contains(t, q, "range(start: -24h)")
	assert.Contains(t, q, `r._measurement == "server_status"`)
	assert.Contains(t, q, "pivot(")
	assert.NotContains(t, q, "r.edition")
	assert.NotContains(t, q, "limit(")
}

func TestBuildFluxQuery_Filters(t *testing.T) {
	c := &InfluxDBClient{bucket: "status"}
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	q := c.buildFluxQuery(SnapshotFilters{
		Edition: "java",
		Address: "mc.example.com:25565",
		Start:   start,
		End:     end,
		Limit:   10,
	})

	assert.Contains(t, q, "range(start: 2024-05-01T12:00:00Z, stop: 2024-05-01T14:00:00Z)")
	assert.Contains(t, q, `r.edition == "java"`)
	assert.Contains(t, q, `r.address == "mc.example.com:25565"`)
	assert.Contains(t, q, "limit(n: 10)")
}

func TestFluxStringEscapes(t *testing.T) {
	assert.Equal(t, `"plain"`, fluxString("plain"))
	assert.Equal(t, `"a\"b"`, fluxString(`a"b`))
	assert.Equal(t, `"a\\b"`, fluxString(`a\b`))
	assert.Equal(t, `"\${x}"`, fluxString("${x}"))
}

func TestSnapshotFromValues(t *testing.T) {
	ts := time.Unix(1700000000, 0).UTC()
	s := snapshotFromValues(ts, map[string]interface{}{
		"edition":        "bedrock",
		"address":        "play.example.com",
		"online":         true,
		"players_online": int64(4),
		"players_max":    int64(20),
		"protocol":       int64(589),
		"version":        "1.20.0",
		"_measurement":   "server_status",
	})

	assert.Equal(t, StatusSnapshot{
		Edition:       "bedrock",
		Address:       "play.example.com",
		Online:        true,
		PlayersOnline: 4,
		PlayersMax:    20,
		Protocol:      589,
		Version:       "1.20.0",
		Timestamp:     ts,
	}, s)
}

func TestSnapshotFromValues_MissingFields(t *testing.T) {
	s := snapshotFromValues(time.Time{}, map[string]interface{}{"edition": "java"})

	assert.Equal(t, "java", s.Edition)
	assert.False(t, s.Online)
	assert.Zero(t, s.PlayersOnline)
	assert.Empty(t, s.Version)
}

func TestSnapshotPoint(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	p := snapshotPoint(StatusSnapshot{Edition: "java", Address: "a", Online: true, PlayersOnline: 2, Timestamp: ts})

	assert.Equal(t, "server_status", p.Name())
	assert.Equal(t, ts, p.Time())

	tags := map[string]string{}
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, map[string]string{"edition": "java", "address": "a"}, tags)
	assert.Len(t, p.FieldList(), 5)
}
