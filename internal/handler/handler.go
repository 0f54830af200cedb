package handler

import (
	"context"

	"greedometer/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// SnapshotGetter provides the current Fear & Greed snapshot (cached or live).
type SnapshotGetter interface {
	GetSnapshot(ctx context.Context) (*domain.Snapshot, error)
}

type Handler struct {
	tracer trace.Tracer
	index  SnapshotGetter
}

func New(tracer trace.Tracer, index SnapshotGetter) *Handler {
	return &Handler{
		tracer: tracer,
		index:  index,
	}
}

// RegisterRoutes wires the endpoints. Any middleware passed in guards the
// /api group only; /health stays open for probes.
func (h *Handler) RegisterRoutes(r *gin.Engine, middleware ...gin.HandlerFunc) {
	r.GET("/health", h.Health)

	api := r.Group("/api", middleware...)
	api.GET("/feargreed", h.GetFearGreed)
	api.GET("/feargreed/score", h.GetScore)
	api.GET("/feargreed/signal", h.GetSignal)
	api.GET("/feargreed/indicators", h.GetIndicators)
	api.GET("/feargreed/indicators/:key", h.GetIndicator)
	api.GET("/feargreed/history", h.GetHistory)
	api.GET("/feargreed/report", h.GetReport)
}
