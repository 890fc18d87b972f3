package service

import (
	"context"
	"sync"
	"time"

	"github.com/payperplay/mcstatus/internal/models"
	"github.com/payperplay/mcstatus/pkg/logger"
)

type watchTarget struct {
	edition models.Edition
	address string
}

// StatusWatcher polls a fixed set of servers so their history is recorded
// even when nobody asks for them.
type StatusWatcher struct {
	service  *StatusService
	targets  []watchTarget
	interval time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup

	mu         sync.Mutex
	lastOnline map[watchTarget]bool
}

// NewStatusWatcher creates a new watcher for the given addresses
func NewStatusWatcher(service *StatusService, java, bedrock []string, interval time.Duration) *StatusWatcher {
	targets := make([]watchTarget, 0, len(java)+len(bedrock))
	for _, address := range java {
		targets = append(targets, watchTarget{models.EditionJava, address})
	}
	for _, address := range bedrock {
		targets = append(targets, watchTarget{models.EditionBedrock, address})
	}

	return &StatusWatcher{
		service:    service,
		targets:    targets,
		interval:   interval,
		stopChan:   make(chan struct{}),
		lastOnline: make(map[watchTarget]bool),
	}
}

// Start begins polling
func (w *StatusWatcher) Start() {
	w.wg.Add(1)
	go w.pollLoop()
	logger.Info("Status watcher started", map[string]interface{}{
		"targets":  len(w.targets),
		"interval": w.interval.String(),
	})
}

// Stop stops polling and waits for an in-flight round to finish
func (w *StatusWatcher) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	logger.Info("Status watcher stopped", nil)
}

func (w *StatusWatcher) pollLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Initial round
	w.pollAll()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.pollAll()
		}
	}
}

// pollAll looks up every target once, sequentially
func (w *StatusWatcher) pollAll() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-w.stopChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	for _, target := range w.targets {
		if ctx.Err() != nil {
			return
		}
		w.poll(ctx, target)
	}
}

func (w *StatusWatcher) poll(ctx context.Context, target watchTarget) {
	var (
		online bool
		err    error
	)

	switch target.edition {
	case models.EditionJava:
		var view *models.JavaStatusView
		if view, err = w.service.JavaStatus(ctx, target.address, LookupOptions{}); err == nil {
			online = view.Online
		}
	case models.EditionBedrock:
		var view *models.BedrockStatusView
		if view, err = w.service.BedrockStatus(ctx, target.address, LookupOptions{}); err == nil {
			online = view.Online
		}
	}

	if err != nil {
		logger.Warn("Watched server lookup failed", map[string]interface{}{
			"edition": string(target.edition),
			"address": target.address,
			"error":   err.Error(),
		})
		return
	}

	w.mu.Lock()
	previous, seen := w.lastOnline[target]
	w.lastOnline[target] = online
	w.mu.Unlock()

	if seen && previous != online {
		msg := "Watched server went offline"
		if online {
			msg = "Watched server came online"
		}
		logger.Info(msg, map[string]interface{}{
			"edition": string(target.edition),
			"address": target.address,
		})
	}
}

// Online reports the last observed state of a watched server
func (w *StatusWatcher) Online(edition models.Edition, address string) (online, known bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	online, known = w.lastOnline[watchTarget{edition, address}]
	return online, known
}
