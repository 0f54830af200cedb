package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"greedometer/internal/domain"
)

type stubIndex struct {
	snapshot *domain.Snapshot
	err      error
}

func (s *stubIndex) GetSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot, nil
}

func cliTestSnapshot() *domain.Snapshot {
	ts := time.Date(2025, 8, 25, 23, 59, 56, 0, time.UTC)
	snap := &domain.Snapshot{
		Composite: &domain.Indicator{
			Name:      domain.KeyComposite,
			Score:     24.37,
			Rating:    "extreme fear",
			Timestamp: &ts,
			History: []domain.HistoricalPoint{
				{Timestamp: ts.AddDate(0, 0, -2), Score: 10, Rating: "extreme fear"},
				{Timestamp: ts.AddDate(0, 0, -1), Score: 20, Rating: "extreme fear"},
				{Timestamp: ts, Score: 24.37, Rating: "extreme fear"},
			},
		},
		PreviousClose:  23.03,
		Previous1Week:  32.1,
		Previous1Month: 55.9,
		Previous1Year:  41.2,
		Indicators:     make(map[string]*domain.Indicator),
		FetchedAt:      ts,
	}
	for _, key := range domain.IndicatorKeys {
		snap.Indicators[key] = &domain.Indicator{
			Name:      key,
			Score:     50,
			Rating:    "neutral",
			Timestamp: &ts,
		}
	}
	return snap
}

func TestRunScore(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"score"}, &stubIndex{snapshot: cliTestSnapshot()}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Fear & Greed Now: 24.4 (Extreme Fear)") {
		t.Fatalf("expected summary output, got: %s", out.String())
	}
}

func TestRunSignal(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"signal"}, &stubIndex{snapshot: cliTestSnapshot()}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Signal: BUY") {
		t.Fatalf("expected BUY signal for score 24.37, got: %s", out.String())
	}
}

func TestRunReport(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"report"}, &stubIndex{snapshot: cliTestSnapshot()}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Market Volatility (VIX)") {
		t.Fatalf("expected indicator lines in report, got: %s", text)
	}
	if !strings.Contains(text, "Signal: BUY") {
		t.Fatalf("expected signal in report, got: %s", text)
	}
}

func TestRunHistoryLimit(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"history", "2"}, &stubIndex{snapshot: cliTestSnapshot()}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 history lines, got %d: %s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "20.0") {
		t.Fatalf("expected second-to-last point first, got: %s", lines[0])
	}
}

func TestRunHistoryInvalidCount(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"history", "bogus"}, &stubIndex{snapshot: cliTestSnapshot()}, &out)
	if err == nil {
		t.Fatal("expected error for invalid history count")
	}
}

func TestRunJSON(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"json"}, &stubIndex{snapshot: cliTestSnapshot()}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), `"score": 24.37`) {
		t.Fatalf("expected JSON score field, got: %s", out.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"bogus"}, &stubIndex{snapshot: cliTestSnapshot()}, &out)
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got: %v", err)
	}
}

func TestRunFetchError(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"score"}, &stubIndex{err: errors.New("upstream down")}, &out)
	if err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}
