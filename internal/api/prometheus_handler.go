package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusHandler serves the collectors of one registry
type PrometheusHandler struct {
	handler http.Handler
}

// NewPrometheusHandler creates a handler for gatherer
func NewPrometheusHandler(gatherer prometheus.Gatherer) *PrometheusHandler {
	return &PrometheusHandler{
		handler: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
}

// MetricsEndpoint serves Prometheus metrics
// GET /prometheus
func (h *PrometheusHandler) MetricsEndpoint(c *gin.Context) {
	h.handler.ServeHTTP(c.Writer, c.Request)
}
