package job

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// SnapshotRefresher re-fetches the snapshot and rewrites the cache.
type SnapshotRefresher interface {
	Refresh(ctx context.Context) error
}

// SnapshotPoller periodically refreshes the cached Fear & Greed snapshot so
// presentation surfaces rarely pay for a live upstream call.
type SnapshotPoller struct {
	tracer       trace.Tracer
	indexService SnapshotRefresher
	pollInterval time.Duration
}

func NewSnapshotPoller(tracer trace.Tracer, indexService SnapshotRefresher, pollIntervalSecs int) *SnapshotPoller {
	return &SnapshotPoller{
		tracer:       tracer,
		indexService: indexService,
		pollInterval: time.Duration(pollIntervalSecs) * time.Second,
	}
}

// Start runs the refresh loop. Blocks until ctx is cancelled.
func (p *SnapshotPoller) Start(ctx context.Context) {
	log.Println("Snapshot poller starting...")

	// Run immediately on start so the cache is warm before the first request.
	if err := p.indexService.Refresh(ctx); err != nil {
		log.Printf("snapshot poller initial run error: %v", err)
	}

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Snapshot poller stopped")
			return
		case <-ticker.C:
			if err := p.indexService.Refresh(ctx); err != nil {
				log.Printf("snapshot poller error: %v", err)
			}
		}
	}
}
