package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/GriffinCanCode/SelectorHeal/internal/document"
	"github.com/GriffinCanCode/SelectorHeal/internal/domain/mapping"
	"github.com/GriffinCanCode/SelectorHeal/internal/domain/selector"
	"github.com/GriffinCanCode/SelectorHeal/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SelectorHeal/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/SelectorHeal/internal/shared/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	rootMessage = "selector-healer is running!"

	// bodyOverhead is the room left for JSON framing and escaping on top of
	// the html limit.
	bodyOverhead = 64 << 10
)

// Analyzer ranks replacements for a failed selector.
type Analyzer interface {
	Analyze(doc *document.Document, failed string) []selector.Candidate
}

// MappingLookup reads stored selector mappings.
type MappingLookup interface {
	Lookup(ctx context.Context, version string) ([]mapping.Mapping, error)
	Available() bool
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	HTML     string `json:"html" binding:"required"`
	Selector string `json:"selector" binding:"required"`
}

// Handlers contains all HTTP handlers
type Handlers struct {
	analyzer     Analyzer
	mappings     MappingLookup
	metrics      *monitoring.Metrics
	logger       *zap.Logger
	maxHTMLBytes int
}

// NewHandlers creates a new handler set. mappings and metrics may be nil.
func NewHandlers(
	analyzer Analyzer,
	mappings MappingLookup,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
	maxHTMLBytes int,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxHTMLBytes <= 0 {
		maxHTMLBytes = document.MaxHTMLSize
	}
	return &Handlers{
		analyzer:     analyzer,
		mappings:     mappings,
		metrics:      metrics,
		logger:       logger.Named("api"),
		maxHTMLBytes: maxHTMLBytes,
	}
}

// Root answers liveness probes.
func (h *Handlers) Root(c *gin.Context) {
	c.String(http.StatusOK, rootMessage)
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	resp := gin.H{
		"status": "healthy",
		"mappings": gin.H{
			"configured": h.mappings != nil,
			"available":  h.mappings != nil && h.mappings.Available(),
		},
	}
	if h.metrics != nil {
		snap := h.metrics.Snapshot()
		resp["uptime"] = h.metrics.Uptime().String()
		resp["requests"] = gin.H{
			"total":       snap.TotalRequests,
			"errors":      snap.TotalErrors,
			"avg_latency": snap.AverageLatency().String(),
		}
		resp["analyses"] = snap.TotalAnalyses
	}
	c.JSON(http.StatusOK, resp)
}

// Analyze returns ranked alternatives for a selector that no longer matches.
func (h *Handlers) Analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(h.maxHTMLBytes+bodyOverhead))

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "html and selector are required"})
		return
	}
	if err := utils.ValidateSelector(req.Selector); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := document.Load(req.HTML, h.maxHTMLBytes)
	if err != nil {
		if errors.Is(err, document.ErrEmptyHTML) || errors.Is(err, document.ErrHTMLTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to load document",
			append(tracing.Fields(c.Request.Context()), zap.Error(err))...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get alternatives"})
		return
	}
	h.logger.Debug("document loaded",
		append(tracing.Fields(c.Request.Context()),
			zap.String("mime", doc.MIME()),
			zap.String("charset", doc.Charset()),
			zap.Int("bytes", len(req.HTML)),
		)...)

	candidates := h.analyzer.Analyze(doc, req.Selector)
	if candidates == nil {
		candidates = []selector.Candidate{}
	}
	c.JSON(http.StatusOK, candidates)
}

// ListMappings returns stored mappings, filtered by the version query
// parameter when present.
func (h *Handlers) ListMappings(c *gin.Context) {
	if h.mappings == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "mapping store is not configured"})
		return
	}

	version := c.Query("version")
	if err := utils.ValidateVersion(version); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mappings, err := h.mappings.Lookup(c.Request.Context(), version)
	if err != nil {
		h.logger.Error("failed to retrieve mappings",
			append(tracing.Fields(c.Request.Context()), zap.String("version", version), zap.Error(err))...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve mappings from database"})
		return
	}
	c.JSON(http.StatusOK, mappings)
}
