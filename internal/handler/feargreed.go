package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"greedometer/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type indicatorResponse struct {
	Key       string     `json:"key"`
	Name      string     `json:"name"`
	Score     float64    `json:"score"`
	Rating    string     `json:"rating,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type fearGreedResponse struct {
	Score          float64             `json:"score"`
	Rating         string              `json:"rating"`
	PreviousClose  float64             `json:"previous_close"`
	Previous1Week  float64             `json:"previous_1_week"`
	Previous1Month float64             `json:"previous_1_month"`
	Previous1Year  float64             `json:"previous_1_year"`
	Timestamp      *time.Time          `json:"timestamp,omitempty"`
	FetchedAt      time.Time           `json:"fetched_at"`
	Indicators     []indicatorResponse `json:"indicators"`
}

// GetFearGreed godoc
// @Summary      Get the current Fear & Greed Index
// @Description  Returns the composite score, comparison values, and all seven indicators
// @Tags         feargreed
// @Produce      json
// @Success      200  {object}  handler.fearGreedResponse
// @Failure      502  {object}  map[string]string
// @Router       /api/feargreed [get]
func (h *Handler) GetFearGreed(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-feargreed")
	defer span.End()

	snap, err := h.index.GetSnapshot(ctx)
	if err != nil {
		abortUpstreamError(c, err)
		return
	}

	indicators := make([]indicatorResponse, 0, len(domain.IndicatorKeys))
	for _, ind := range snap.AllIndicators() {
		indicators = append(indicators, indicatorResponse{
			Key:       ind.Name,
			Name:      ind.DisplayName(),
			Score:     ind.Score,
			Rating:    ind.Rating,
			Timestamp: ind.Timestamp,
		})
	}

	c.JSON(http.StatusOK, fearGreedResponse{
		Score:          snap.Score(),
		Rating:         snap.Rating(),
		PreviousClose:  snap.PreviousClose,
		Previous1Week:  snap.Previous1Week,
		Previous1Month: snap.Previous1Month,
		Previous1Year:  snap.Previous1Year,
		Timestamp:      snap.Composite.Timestamp,
		FetchedAt:      snap.FetchedAt,
		Indicators:     indicators,
	})
}

// GetScore godoc
// @Summary      Get just the composite score and rating
// @Tags         feargreed
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Router       /api/feargreed/score [get]
func (h *Handler) GetScore(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-score")
	defer span.End()

	snap, err := h.index.GetSnapshot(ctx)
	if err != nil {
		abortUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"score": snap.Score(), "rating": snap.Rating()})
}

// GetSignal godoc
// @Summary      Get a naive trading signal derived from the composite score
// @Tags         feargreed
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Router       /api/feargreed/signal [get]
func (h *Handler) GetSignal(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-signal")
	defer span.End()

	snap, err := h.index.GetSnapshot(ctx)
	if err != nil {
		abortUpstreamError(c, err)
		return
	}

	signal, recommendation := domain.SignalForScore(snap.Score())
	c.JSON(http.StatusOK, gin.H{
		"score":          snap.Score(),
		"rating":         snap.Rating(),
		"signal":         signal,
		"recommendation": recommendation,
	})
}

// GetIndicators godoc
// @Summary      Get all seven indicators
// @Tags         feargreed
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Router       /api/feargreed/indicators [get]
func (h *Handler) GetIndicators(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-indicators")
	defer span.End()

	snap, err := h.index.GetSnapshot(ctx)
	if err != nil {
		abortUpstreamError(c, err)
		return
	}

	indicators := make([]indicatorResponse, 0, len(domain.IndicatorKeys))
	for _, ind := range snap.AllIndicators() {
		indicators = append(indicators, indicatorResponse{
			Key:       ind.Name,
			Name:      ind.DisplayName(),
			Score:     ind.Score,
			Rating:    ind.Rating,
			Timestamp: ind.Timestamp,
		})
	}

	c.JSON(http.StatusOK, gin.H{"indicators": indicators})
}

// GetIndicator godoc
// @Summary      Get one indicator by key or name fragment
// @Tags         feargreed
// @Produce      json
// @Param        key  path  string  true  "Indicator key (e.g. market_volatility_vix) or name fragment (e.g. vix)"
// @Success      200  {object}  domain.Indicator
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/feargreed/indicators/{key} [get]
func (h *Handler) GetIndicator(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-indicator")
	defer span.End()

	key := c.Param("key")
	span.SetAttributes(attribute.String("indicator", key))

	snap, err := h.index.GetSnapshot(ctx)
	if err != nil {
		abortUpstreamError(c, err)
		return
	}

	ind := findIndicator(snap, key)
	if ind == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":          "unknown indicator: " + key,
			"supported_keys": domain.IndicatorKeys,
		})
		return
	}

	c.JSON(http.StatusOK, ind)
}

// GetHistory godoc
// @Summary      Get the composite index's historical series
// @Tags         feargreed
// @Produce      json
// @Param        limit  query  int  false  "Number of most recent points to return"  default(30)
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Router       /api/feargreed/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-history")
	defer span.End()

	limit := 30
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	snap, err := h.index.GetSnapshot(ctx)
	if err != nil {
		abortUpstreamError(c, err)
		return
	}

	history := snap.History()
	if len(history) > limit {
		history = history[len(history)-limit:]
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// GetReport godoc
// @Summary      Get the complete textual Fear & Greed report
// @Tags         feargreed
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/feargreed/report [get]
func (h *Handler) GetReport(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-report")
	defer span.End()

	snap, err := h.index.GetSnapshot(ctx)
	if err != nil {
		abortUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": snap.CompleteReport()})
}

// findIndicator matches an exact key first, then falls back to a
// case-insensitive fragment match on display names ("vix", "momentum").
func findIndicator(snap *domain.Snapshot, key string) *domain.Indicator {
	if ind, ok := snap.Indicator(key); ok {
		return ind
	}
	needle := strings.ToLower(strings.NewReplacer("_", " ", "-", " ").Replace(key))
	for _, ind := range snap.AllIndicators() {
		if strings.Contains(strings.ToLower(ind.DisplayName()), needle) {
			return ind
		}
	}
	return nil
}

func abortUpstreamError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrNetwork), errors.Is(err, domain.ErrMalformedData):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
