package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"time"

	"github.com/payperplay/mcstatus/internal/models"
	"github.com/payperplay/mcstatus/internal/storage"
	"github.com/payperplay/mcstatus/pkg/config"
	"github.com/payperplay/mcstatus/pkg/logger"
	"github.com/payperplay/mcstatus/pkg/mcstatus"
)

// ErrHistoryDisabled is returned by History when no snapshot store is configured
var ErrHistoryDisabled = errors.New("status history is disabled")

// SnapshotRecorder persists observed server states
type SnapshotRecorder interface {
	RecordSnapshot(s storage.StatusSnapshot)
}

// SnapshotQuerier reads persisted server states back
type SnapshotQuerier interface {
	QuerySnapshots(ctx context.Context, filters storage.SnapshotFilters) ([]storage.StatusSnapshot, error)
}

// StatusObserver receives the outcome of every successful lookup
type StatusObserver interface {
	ObserveStatus(edition, address string, online bool, players int)
}

// LookupOptions overrides the configured defaults for a single lookup
type LookupOptions struct {
	Query   *bool   // Java only
	Timeout float64 // seconds; 0 uses the configured default
}

// StatusService performs status lookups against the mcstatus.io API
type StatusService struct {
	client   *mcstatus.Client
	config   *config.Config
	observer StatusObserver
	recorder SnapshotRecorder
	querier  SnapshotQuerier
	now      func() time.Time
}

// NewStatusService creates a new status service
func NewStatusService(client *mcstatus.Client, cfg *config.Config, observer StatusObserver) *StatusService {
	return &StatusService{
		client:   client,
		config:   cfg,
		observer: observer,
		now:      time.Now,
	}
}

// SetSnapshotRecorder enables snapshot recording (optional)
func (s *StatusService) SetSnapshotRecorder(recorder SnapshotRecorder) {
	s.recorder = recorder
}

// SetSnapshotQuerier enables the history lookup (optional)
func (s *StatusService) SetSnapshotQuerier(querier SnapshotQuerier) {
	s.querier = querier
}

// JavaStatus looks up a Java edition server
func (s *StatusService) JavaStatus(ctx context.Context, address string, opts LookupOptions) (*models.JavaStatusView, error) {
	req := mcstatus.NewJavaRequest(address)
	req.Query = s.config.DefaultQuery
	if opts.Query != nil {
		req.Query = *opts.Query
	}
	req.Timeout = s.timeout(opts.Timeout)

	status, err := s.client.FetchJava(ctx, req)
	if err != nil {
		return nil, err
	}

	view, err := models.NewJavaStatusView(status)
	if err != nil {
		return nil, err
	}

	snapshot := storage.StatusSnapshot{
		Edition:  string(models.EditionJava),
		Address:  address,
		Online:   view.Online,
		Protocol: -1,
	}
	if view.Players != nil {
		snapshot.PlayersOnline = view.Players.Online
		snapshot.PlayersMax = view.Players.Max
	}
	if view.Version != nil {
		snapshot.Protocol = view.Version.Protocol
		snapshot.Version = view.Version.NameClean
	}
	s.record(snapshot)

	return view, nil
}

// BedrockStatus looks up a Bedrock edition server
func (s *StatusService) BedrockStatus(ctx context.Context, address string, opts LookupOptions) (*models.BedrockStatusView, error) {
	req := mcstatus.NewBedrockRequest(address)
	req.Timeout = s.timeout(opts.Timeout)

	status, err := s.client.FetchBedrock(ctx, req)
	if err != nil {
		return nil, err
	}

	view, err := models.NewBedrockStatusView(status)
	if err != nil {
		return nil, err
	}

	snapshot := storage.StatusSnapshot{
		Edition:  string(models.EditionBedrock),
		Address:  address,
		Online:   view.Online,
		Protocol: -1,
	}
	if view.Players != nil {
		snapshot.PlayersOnline = view.Players.Online
		snapshot.PlayersMax = view.Players.Max
	}
	if view.Version != nil {
		snapshot.Protocol = view.Version.Protocol
		snapshot.Version = view.Version.Name
	}
	s.record(snapshot)

	return view, nil
}

// IconURL returns the direct icon URL for address
func (s *StatusService) IconURL(address string, timeout float64) string {
	return s.client.IconURL(address, s.timeout(timeout))
}

// IconPNG fetches the server icon and re-encodes it as PNG
func (s *StatusService) IconPNG(ctx context.Context, address string, timeout float64) ([]byte, error) {
	req := mcstatus.NewIconRequest(address)
	req.Timeout = s.timeout(timeout)

	img, err := s.client.FetchIcon(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}
	return buf.Bytes(), nil
}

// History returns recorded snapshots for a server, newest first. limit is
// clamped to the configured maximum; a zero since means the last 24 hours.
func (s *StatusService) History(ctx context.Context, edition models.Edition, address string, limit int, since time.Time) ([]storage.StatusSnapshot, error) {
	if s.querier == nil {
		return nil, ErrHistoryDisabled
	}

	if limit <= 0 || limit > s.config.HistoryLimit {
		limit = s.config.HistoryLimit
	}

	snapshots, err := s.querier.QuerySnapshots(ctx, storage.SnapshotFilters{
		Edition: string(edition),
		Address: address,
		Start:   since,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return snapshots, nil
}

func (s *StatusService) timeout(t float64) float64 {
	if t == 0 {
		return s.config.DefaultTimeout
	}
	return t
}

func (s *StatusService) record(snapshot storage.StatusSnapshot) {
	snapshot.Timestamp = s.now()

	if s.observer != nil {
		s.observer.ObserveStatus(snapshot.Edition, snapshot.Address, snapshot.Online, snapshot.PlayersOnline)
	}
	if s.recorder != nil {
		s.recorder.RecordSnapshot(snapshot)
	}

	logger.Debug("Status lookup complete", map[string]interface{}{
		"edition": snapshot.Edition,
		"address": snapshot.Address,
		"online":  snapshot.Online,
		"players": snapshot.PlayersOnline,
	})
}
