package feargreed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"greedometer/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type stubFetcher struct {
	body []byte
	err  error
}

func (s *stubFetcher) FetchGraphData(ctx context.Context) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.body, nil
}

const indicatorFragmentJSON = `{"score":%s,"rating":"%s","timestamp":1701475200000,"data":[{"x":1701388800000,"y":40.1,"rating":"fear"}]}`

func validPayload(t *testing.T) map[string]any {
	t.Helper()
	payload := map[string]any{
		"fear_and_greed": map[string]any{
			"score":            24.37,
			"rating":           "extreme fear",
			"timestamp":        "2025-08-25T23:59:56+00:00",
			"previous_close":   23.03,
			"previous_1_week":  35.6,
			"previous_1_month": 48.2,
			"previous_1_year":  60.1,
		},
		"fear_and_greed_historical": map[string]any{
			"data": []map[string]any{
				{"x": 1, "y": 10, "rating": "a"},
				{"x": 2, "y": 20, "rating": "b"},
			},
		},
	}
	scores := map[string]float64{
		domain.KeyJunkBondDemand:     61.2,
		domain.KeyMarketVolatility:   50.0,
		domain.KeyPutCallOptions:     18.9,
		domain.KeyMarketMomentum:     33.3,
		domain.KeyStockPriceStrength: 8.4,
		domain.KeyStockPriceBreadth:  12.0,
		domain.KeySafeHavenDemand:    72.6,
	}
	for key, score := range scores {
		var frag map[string]any
		if err := json.Unmarshal([]byte(fmt.Sprintf(indicatorFragmentJSON, fmt.Sprint(score), "fear")), &frag); err != nil {
			t.Fatalf("bad fragment template: %v", err)
		}
		payload[key] = frag
	}
	return payload
}

func marshalPayload(t *testing.T, payload map[string]any) []byte {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return body
}

func fetchSnapshot(t *testing.T, payload map[string]any) (*domain.Snapshot, error) {
	t.Helper()
	client := NewClient(testTracer, &stubFetcher{body: marshalPayload(t, payload)})
	return client.FetchSnapshot(context.Background())
}

func TestFetchSnapshotValidPayload(t *testing.T) {
	snap, err := fetchSnapshot(t, validPayload(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Indicators) != 7 {
		t.Fatalf("expected 7 indicators, got %d", len(snap.Indicators))
	}
	for _, key := range domain.IndicatorKeys {
		if _, ok := snap.Indicators[key]; !ok {
			t.Errorf("missing indicator %s", key)
		}
	}

	// Scores pass through exactly, no transformation or rounding.
	if got := snap.Indicators[domain.KeyJunkBondDemand].Score; got != 61.2 {
		t.Fatalf("expected 61.2, got %v", got)
	}
	if got := snap.Indicators[domain.KeyStockPriceStrength].Score; got != 8.4 {
		t.Fatalf("expected 8.4, got %v", got)
	}

	// Composite round-trip.
	if snap.Composite.Score != 24.37 || snap.Composite.Rating != "extreme fear" {
		t.Fatalf("unexpected composite: %+v", snap.Composite)
	}
	if snap.PreviousClose != 23.03 || snap.Previous1Week != 35.6 ||
		snap.Previous1Month != 48.2 || snap.Previous1Year != 60.1 {
		t.Fatalf("unexpected comparisons: %+v", snap)
	}
	if snap.Composite.Timestamp == nil {
		t.Fatal("expected composite timestamp")
	}
	want := time.Date(2025, 8, 25, 23, 59, 56, 0, time.UTC)
	if !snap.Composite.Timestamp.Equal(want) {
		t.Fatalf("unexpected composite timestamp: %v", snap.Composite.Timestamp)
	}

	if snap.FetchedAt.IsZero() {
		t.Fatal("expected fetched_at to be set")
	}
}

func TestFetchSnapshotHistoryOrderPreserved(t *testing.T) {
	snap, err := fetchSnapshot(t, validPayload(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history := snap.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 historical points, got %d", len(history))
	}
	first, second := history[0], history[1]
	if first.Score != 10 || first.Rating != "a" || !first.Timestamp.Equal(time.UnixMilli(1)) {
		t.Fatalf("unexpected first point: %+v", first)
	}
	if second.Score != 20 || second.Rating != "b" || !second.Timestamp.Equal(time.UnixMilli(2)) {
		t.Fatalf("unexpected second point: %+v", second)
	}
}

func TestFetchSnapshotIndicatorTimestamp(t *testing.T) {
	snap, err := fetchSnapshot(t, validPayload(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ind := snap.Indicators[domain.KeyMarketVolatility]
	if ind.Timestamp == nil || !ind.Timestamp.Equal(time.UnixMilli(1701475200000)) {
		t.Fatalf("unexpected indicator timestamp: %v", ind.Timestamp)
	}
	if len(ind.History) != 1 || ind.History[0].Score != 40.1 {
		t.Fatalf("unexpected indicator history: %+v", ind.History)
	}
}

func TestFetchSnapshotOptionalFieldsAbsent(t *testing.T) {
	payload := validPayload(t)
	payload[domain.KeySafeHavenDemand] = map[string]any{"score": 55.5}

	snap, err := fetchSnapshot(t, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ind := snap.Indicators[domain.KeySafeHavenDemand]
	if ind.Score != 55.5 {
		t.Fatalf("unexpected score: %v", ind.Score)
	}
	if ind.Rating != "" || ind.Timestamp != nil || ind.History != nil {
		t.Fatalf("expected absent optional fields, got %+v", ind)
	}
}

func TestFetchSnapshotMissingIndicatorKey(t *testing.T) {
	payload := validPayload(t)
	delete(payload, domain.KeyPutCallOptions)

	_, err := fetchSnapshot(t, payload)
	if !errors.Is(err, domain.ErrMalformedData) {
		t.Fatalf("expected ErrMalformedData, got %v", err)
	}
	if !strings.Contains(err.Error(), domain.KeyPutCallOptions) {
		t.Fatalf("error should name the missing key: %v", err)
	}
}

func TestFetchSnapshotMissingCompositeKey(t *testing.T) {
	payload := validPayload(t)
	delete(payload, "fear_and_greed")

	if _, err := fetchSnapshot(t, payload); !errors.Is(err, domain.ErrMalformedData) {
		t.Fatalf("expected ErrMalformedData, got %v", err)
	}
}

func TestFetchSnapshotMissingHistoricalKey(t *testing.T) {
	payload := validPayload(t)
	delete(payload, "fear_and_greed_historical")

	if _, err := fetchSnapshot(t, payload); !errors.Is(err, domain.ErrMalformedData) {
		t.Fatalf("expected ErrMalformedData, got %v", err)
	}
}

func TestFetchSnapshotNonNumericScore(t *testing.T) {
	payload := validPayload(t)
	payload[domain.KeyStockPriceBreadth] = map[string]any{"score": "not-a-number"}

	if _, err := fetchSnapshot(t, payload); !errors.Is(err, domain.ErrMalformedData) {
		t.Fatalf("expected ErrMalformedData, got %v", err)
	}
}

func TestFetchSnapshotMissingScore(t *testing.T) {
	payload := validPayload(t)
	payload[domain.KeyMarketMomentum] = map[string]any{"rating": "fear"}

	if _, err := fetchSnapshot(t, payload); !errors.Is(err, domain.ErrMalformedData) {
		t.Fatalf("expected ErrMalformedData, got %v", err)
	}
}

func TestFetchSnapshotBadCompositeTimestamp(t *testing.T) {
	payload := validPayload(t)
	payload["fear_and_greed"] = map[string]any{
		"score":     24.37,
		"timestamp": "yesterday-ish",
	}

	if _, err := fetchSnapshot(t, payload); !errors.Is(err, domain.ErrMalformedData) {
		t.Fatalf("expected ErrMalformedData, got %v", err)
	}
}

func TestFetchSnapshotInvalidJSON(t *testing.T) {
	client := NewClient(testTracer, &stubFetcher{body: []byte("<html>blocked</html>")})
	if _, err := client.FetchSnapshot(context.Background()); !errors.Is(err, domain.ErrMalformedData) {
		t.Fatalf("expected ErrMalformedData, got %v", err)
	}
}

func TestFetchSnapshotFetcherErrorPropagates(t *testing.T) {
	fetchErr := fmt.Errorf("%w: connection refused", domain.ErrNetwork)
	client := NewClient(testTracer, &stubFetcher{err: fetchErr})

	snap, err := client.FetchSnapshot(context.Background())
	if snap != nil {
		t.Fatalf("expected no snapshot, got %+v", snap)
	}
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}
