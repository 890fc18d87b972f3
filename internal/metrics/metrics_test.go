package metrics

import (
	"testing"
	"time"

	"github.com/payperplay/mcstatus/pkg/mcstatus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ mcstatus.Observer = (*Metrics)(nil)

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest(mcstatus.EndpointJava, mcstatus.OutcomeOK, 120*time.Millisecond)
	m.ObserveRequest(mcstatus.EndpointJava, mcstatus.OutcomeOK, 80*time.Millisecond)
	m.ObserveRequest(mcstatus.EndpointJava, mcstatus.OutcomeRemoteError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("java", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("java", "remote_error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestObserveStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveStatus("bedrock", "example.com", true, 7)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ServerOnline.WithLabelValues("bedrock", "example.com")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.ServerPlayers.WithLabelValues("bedrock", "example.com")))

	m.ObserveStatus("bedrock", "example.com", false, 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ServerOnline.WithLabelValues("bedrock", "example.com")))
}

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveRequest(mcstatus.EndpointIcon, mcstatus.OutcomeOK, time.Millisecond)
	m.ObserveStatus("java", "a", true, 1)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"mcstatus_requests_total",
		"mcstatus_request_duration_seconds",
		"mcstatus_server_online",
		"mcstatus_server_players",
	}, names)

	// A second registration on the same registry must fail loudly.
	assert.Panics(t, func() { New(reg) })
}
