package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/payperplay/mcstatus/pkg/logger"
)

const snapshotMeasurement = "server_status"

// StatusSnapshot is one observed server state
type StatusSnapshot struct {
	Edition       string    `json:"edition"`
	Address       string    `json:"address"`
	Online        bool      `json:"online"`
	PlayersOnline int       `json:"players_online"`
	PlayersMax    int       `json:"players_max"`
	Protocol      int       `json:"protocol"`
	Version       string    `json:"version,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// SnapshotFilters for querying snapshots
type SnapshotFilters struct {
	Edition string
	Address string
	Start   time.Time
	End     time.Time
	Limit   int
}

// InfluxDBClient exports status snapshots to InfluxDB
type InfluxDBClient struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI
	queryAPI api.QueryAPI
	org      string
	bucket   string
}

// InfluxDBConfig holds InfluxDB connection configuration
type InfluxDBConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// NewInfluxDBClient creates a new InfluxDB client
func NewInfluxDBClient(config InfluxDBConfig) (*InfluxDBClient, error) {
	client := influxdb2.NewClient(config.URL, config.Token)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to InfluxDB: %w", err)
	}

	if health.Status != "pass" {
		client.Close()
		msg := ""
		if health.Message != nil {
			msg = *health.Message
		}
		return nil, fmt.Errorf("InfluxDB health check failed: %s", msg)
	}

	logger.Info("InfluxDB connection established", map[string]interface{}{
		"url":    config.URL,
		"org":    config.Org,
		"bucket": config.Bucket,
	})

	writeAPI := client.WriteAPI(config.Org, config.Bucket)
	go func() {
		for err := range writeAPI.Errors() {
			logger.Error("InfluxDB write failed", err, nil)
		}
	}()

	return &InfluxDBClient{
		client:   client,
		writeAPI: writeAPI,
		queryAPI: client.QueryAPI(config.Org),
		org:      config.Org,
		bucket:   config.Bucket,
	}, nil
}

// RecordSnapshot writes a snapshot as a time-series point (non-blocking)
func (c *InfluxDBClient) RecordSnapshot(s StatusSnapshot) {
	c.writeAPI.WritePoint(snapshotPoint(s))
}

func snapshotPoint(s StatusSnapshot) *write.Point {
	return influxdb2.NewPoint(
		snapshotMeasurement,
		map[string]string{
			"edition": s.Edition,
			"address": s.Address,
		},
		map[string]interface{}{
			"online":         s.Online,
			"players_online": s.PlayersOnline,
			"players_max":    s.PlayersMax,
			"protocol":       s.Protocol,
			"version":        s.Version,
		},
		s.Timestamp,
	)
}

// Flush ensures all pending writes are sent to InfluxDB
func (c *InfluxDBClient) Flush() {
	c.writeAPI.Flush()
}

// QuerySnapshots returns snapshots matching filters, newest first
func (c *InfluxDBClient) QuerySnapshots(ctx context.Context, filters SnapshotFilters) ([]StatusSnapshot, error) {
	result, err := c.queryAPI.Query(ctx, c.buildFluxQuery(filters))
	if err != nil {
		return nil, fmt.Errorf("failed to query InfluxDB: %w", err)
	}
	defer result.Close()

	snapshots := []StatusSnapshot{}
	for result.Next() {
		record := result.Record()
		snapshots = append(snapshots, snapshotFromValues(record.Time(), record.Values()))

		if filters.Limit > 0 && len(snapshots) >= filters.Limit {
			break
		}
	}

	if result.Err() != nil {
		return nil, fmt.Errorf("query parsing failed: %w", result.Err())
	}

	return snapshots, nil
}

// buildFluxQuery builds a Flux query from filters
func (c *InfluxDBClient) buildFluxQuery(filters SnapshotFilters) string {
	var b strings.Builder
	fmt.Fprintf(&b, `from(bucket: %s)`, fluxString(c.bucket))

	if !filters.Start.IsZero() {
		fmt.Fprintf(&b, "\n  |> range(start: %s", filters.Start.UTC().Format(time.RFC3339))
		if !filters.End.IsZero() {
			fmt.Fprintf(&b, ", stop: %s", filters.End.UTC().Format(time.RFC3339))
		}
		b.WriteString(")")
	} else {
		// Default to last 24 hours
		b.WriteString("\n  |> range(start: -24h)")
	}

	fmt.Fprintf(&b, "\n  |> filter(fn: (r) => r._measurement == %s)", fluxString(snapshotMeasurement))

	if filters.Edition != "" {
		fmt.Fprintf(&b, "\n  |> filter(fn: (r) => r.edition == %s)", fluxString(filters.Edition))
	}
	if filters.Address != "" {
		fmt.Fprintf(&b, "\n  |> filter(fn: (r) => r.address == %s)", fluxString(filters.Address))
	}

	b.WriteString("\n  |> pivot(rowKey: [\"_time\"], columnKey: [\"_field\"], valueColumn: \"_value\")")
	b.WriteString("\n  |> sort(columns: [\"_time\"], desc: true)")

	if filters.Limit > 0 {
		fmt.Fprintf(&b, "\n  |> limit(n: %d)", filters.Limit)
	}

	return b.String()
}

// Close flushes pending writes and closes the client
func (c *InfluxDBClient) Close() {
	c.writeAPI.Flush()
	c.client.Close()
	logger.Info("InfluxDB client closed", nil)
}

func snapshotFromValues(ts time.Time, values map[string]interface{}) StatusSnapshot {
	return StatusSnapshot{
		Edition:       stringValue(values["edition"]),
		Address:       stringValue(values["address"]),
		Online:        boolValue(values["online"]),
		PlayersOnline: intValue(values["players_online"]),
		PlayersMax:    intValue(values["players_max"]),
		Protocol:      intValue(values["protocol"]),
		Version:       stringValue(values["version"]),
		Timestamp:     ts,
	}
}

// fluxString quotes s as a Flux string literal.
func fluxString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "${", `\${`)
	return `"` + r.Replace(s) + `"`
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

func boolValue(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func intValue(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

// Ping reports whether the InfluxDB server is reachable
func (c *InfluxDBClient) Ping(ctx context.Context) error {
	ok, err := c.client.Ping(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("InfluxDB ping failed")
	}
	return nil
}
