// Package feargreed turns CNN's Fear & Greed graphdata document into typed
// snapshots: the composite index, its comparison values, and the seven named
// sub-indicators.
package feargreed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"greedometer/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// Fetcher retrieves the raw graphdata JSON document.
type Fetcher interface {
	FetchGraphData(ctx context.Context) ([]byte, error)
}

// Client fetches and assembles Fear & Greed snapshots. It holds no state
// between calls and does no caching; callers that want a short-lived cache
// wrap it (see service.IndexService).
type Client struct {
	tracer  trace.Tracer
	fetcher Fetcher
}

func NewClient(tracer trace.Tracer, fetcher Fetcher) *Client {
	return &Client{tracer: tracer, fetcher: fetcher}
}

// FetchSnapshot performs one fetch and parses the full document. The
// composite fragment, the historical series, and all seven indicator keys
// are required: a missing key or a malformed fragment fails the whole call
// with domain.ErrMalformedData. A fetcher error propagates as-is without
// any parsing.
func (c *Client) FetchSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	ctx, span := c.tracer.Start(ctx, "feargreed.fetch-snapshot")
	defer span.End()

	body, err := c.fetcher.FetchGraphData(ctx)
	if err != nil {
		return nil, err
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode graphdata: %v", domain.ErrMalformedData, err)
	}

	raw, ok := payload["fear_and_greed"]
	if !ok {
		return nil, fmt.Errorf("%w: missing key fear_and_greed", domain.ErrMalformedData)
	}
	composite, frag, err := parseComposite(raw)
	if err != nil {
		return nil, err
	}

	raw, ok = payload["fear_and_greed_historical"]
	if !ok {
		return nil, fmt.Errorf("%w: missing key fear_and_greed_historical", domain.ErrMalformedData)
	}
	history, err := parseHistorical(raw)
	if err != nil {
		return nil, err
	}
	composite.History = history

	indicators := make(map[string]*domain.Indicator, len(domain.IndicatorKeys))
	for _, key := range domain.IndicatorKeys {
		raw, ok := payload[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing key %s", domain.ErrMalformedData, key)
		}
		ind, err := parseIndicator(key, raw)
		if err != nil {
			return nil, err
		}
		indicators[key] = ind
	}

	return &domain.Snapshot{
		Composite:      composite,
		PreviousClose:  frag.PreviousClose,
		Previous1Week:  frag.Previous1Week,
		Previous1Month: frag.Previous1Month,
		Previous1Year:  frag.Previous1Year,
		Indicators:     indicators,
		FetchedAt:      time.Now(),
	}, nil
}
