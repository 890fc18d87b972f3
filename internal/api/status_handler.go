package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/payperplay/mcstatus/internal/middleware"
	"github.com/payperplay/mcstatus/internal/models"
	"github.com/payperplay/mcstatus/internal/service"
)

// StatusHandler serves server status lookups
type StatusHandler struct {
	statusService *service.StatusService
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(statusService *service.StatusService) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
	}
}

// GetJavaStatus handles GET /api/status/java/:address
func (h *StatusHandler) GetJavaStatus(c *gin.Context) {
	opts, ok := lookupOptions(c)
	if !ok {
		return
	}

	if raw := c.Query("query"); raw != "" {
		query, err := strconv.ParseBool(raw)
		if err != nil {
			middleware.HandleAppError(c, middleware.NewBadRequestError("query must be true or false"))
			return
		}
		opts.Query = &query
	}

	view, err := h.statusService.JavaStatus(c.Request.Context(), c.Param("address"), opts)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetBedrockStatus handles GET /api/status/bedrock/:address
func (h *StatusHandler) GetBedrockStatus(c *gin.Context) {
	opts, ok := lookupOptions(c)
	if !ok {
		return
	}

	view, err := h.statusService.BedrockStatus(c.Request.Context(), c.Param("address"), opts)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetIcon handles GET /api/icon/:address
func (h *StatusHandler) GetIcon(c *gin.Context) {
	opts, ok := lookupOptions(c)
	if !ok {
		return
	}

	data, err := h.statusService.IconPNG(c.Request.Context(), c.Param("address"), opts.Timeout)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Cache-Control", "public, max-age=60")
	c.Data(http.StatusOK, "image/png", data)
}

// GetIconURL handles GET /api/icon/:address/url
func (h *StatusHandler) GetIconURL(c *gin.Context) {
	opts, ok := lookupOptions(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": c.Param("address"),
		"url":     h.statusService.IconURL(c.Param("address"), opts.Timeout),
	})
}

// GetHistory handles GET /api/history/:edition/:address
func (h *StatusHandler) GetHistory(c *gin.Context) {
	edition, ok := models.ParseEdition(c.Param("edition"))
	if !ok {
		middleware.HandleAppError(c, middleware.NewBadRequestError("edition must be java or bedrock"))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			middleware.HandleAppError(c, middleware.NewBadRequestError("limit must be a positive integer"))
			return
		}
		limit = n
	}

	var since time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := parseSince(raw, time.Now())
		if err != nil {
			middleware.HandleAppError(c, middleware.NewBadRequestError("since must be an RFC3339 time or a duration such as 6h"))
			return
		}
		since = t
	}

	address := c.Param("address")
	snapshots, err := h.statusService.History(c.Request.Context(), edition, address, limit, since)
	if err != nil {
		if errors.Is(err, service.ErrHistoryDisabled) {
			middleware.HandleAppError(c, middleware.NewServiceUnavailableError("status history is not configured"))
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"edition":   edition,
		"address":   address,
		"snapshots": snapshots,
		"count":     len(snapshots),
	})
}

// lookupOptions reads the shared timeout parameter. It writes the error
// response itself and reports false when the parameter is malformed.
func lookupOptions(c *gin.Context) (service.LookupOptions, bool) {
	var opts service.LookupOptions
	if raw := c.Query("timeout"); raw != "" {
		timeout, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			middleware.HandleAppError(c, middleware.NewBadRequestError("timeout must be a number of seconds"))
			return opts, false
		}
		opts.Timeout = timeout
	}
	return opts, true
}

// parseSince accepts an absolute RFC3339 time or a duration relative to now
func parseSince(raw string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return time.Time{}, err
	}
	if d < 0 {
		d = -d
	}
	return now.Add(-d), nil
}
