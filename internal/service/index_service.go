package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"greedometer/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const (
	snapshotCacheKey = "feargreed:snapshot"
	defaultCacheTTL  = 5 * time.Minute
)

// SnapshotFetcher produces one fresh snapshot per call.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context) (*domain.Snapshot, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// IndexService wraps the fetch/parse core with a short-lived snapshot cache
// for the presentation surfaces. The core itself never caches; a nil Redis
// client turns this into a straight pass-through.
type IndexService struct {
	tracer trace.Tracer
	client SnapshotFetcher
	redis  RedisClient
	ttl    time.Duration
}

func NewIndexService(tracer trace.Tracer, client SnapshotFetcher, redisClient RedisClient, ttlSecs int) *IndexService {
	ttl := defaultCacheTTL
	if ttlSecs > 0 {
		ttl = time.Duration(ttlSecs) * time.Second
	}
	return &IndexService{
		tracer: tracer,
		client: client,
		redis:  redisClient,
		ttl:    ttl,
	}
}

// GetSnapshot returns the cached snapshot when present, otherwise fetches a
// fresh one and caches it. Fetch errors propagate unchanged.
func (s *IndexService) GetSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "index-service.get-snapshot")
	defer span.End()

	if s.redis != nil {
		cached, err := s.getCache(ctx)
		if err != nil {
			log.Printf("redis cache read error: %v", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	snap, err := s.client.FetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if s.redis != nil {
		if err := s.setCache(ctx, snap); err != nil {
			log.Printf("redis cache write error: %v", err)
		}
	}
	return snap, nil
}

// Refresh fetches a fresh snapshot and rewrites the cache. Used by the
// background poller to keep the cache warm.
func (s *IndexService) Refresh(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "index-service.refresh")
	defer span.End()

	snap, err := s.client.FetchSnapshot(ctx)
	if err != nil {
		return err
	}
	if s.redis != nil {
		if err := s.setCache(ctx, snap); err != nil {
			log.Printf("redis cache write error: %v", err)
		}
	}
	log.Printf("Refreshed fear & greed snapshot: score=%.1f rating=%q", snap.Score(), snap.Rating())
	return nil
}

func (s *IndexService) setCache(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, snapshotCacheKey, data, s.ttl).Err()
}

func (s *IndexService) getCache(ctx context.Context) (*domain.Snapshot, error) {
	data, err := s.redis.Get(ctx, snapshotCacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
