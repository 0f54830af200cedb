package feargreed

import (
	"encoding/json"
	"fmt"
	"time"

	"greedometer/internal/domain"
)

// indicatorFragment mirrors one indicator object from the graphdata payload.
// Score is a pointer so a missing field is distinguishable from 0; a wrong
// JSON type fails the decode outright.
type indicatorFragment struct {
	Score     *float64    `json:"score"`
	Rating    string      `json:"rating"`
	Timestamp *float64    `json:"timestamp"`
	Data      []histPoint `json:"data"`
}

// histPoint is one element of a fragment's "data" array: x is epoch
// milliseconds, y the score.
type histPoint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Rating string  `json:"rating"`
}

// compositeFragment mirrors the top-level "fear_and_greed" object. Unlike the
// indicator fragments its timestamp is an ISO-8601 string, and it carries the
// four comparison values verbatim.
type compositeFragment struct {
	Score          *float64 `json:"score"`
	Rating         string   `json:"rating"`
	Timestamp      string   `json:"timestamp"`
	PreviousClose  float64  `json:"previous_close"`
	Previous1Week  float64  `json:"previous_1_week"`
	Previous1Month float64  `json:"previous_1_month"`
	Previous1Year  float64  `json:"previous_1_year"`
}

// historicalFragment mirrors the "fear_and_greed_historical" object.
type historicalFragment struct {
	Data []histPoint `json:"data"`
}

// parseIndicator converts one indicator's JSON fragment into a domain record.
// The score must be present and numeric; rating and timestamp default to
// absent. The historical series keeps upstream order: no filtering, no
// deduplication, no sorting.
func parseIndicator(name string, raw json.RawMessage) (*domain.Indicator, error) {
	var frag indicatorFragment
	if err := json.Unmarshal(raw, &frag); err != nil {
		return nil, fmt.Errorf("%w: decode indicator %s: %v", domain.ErrMalformedData, name, err)
	}
	if frag.Score == nil {
		return nil, fmt.Errorf("%w: indicator %s has no numeric score", domain.ErrMalformedData, name)
	}

	ind := &domain.Indicator{
		Name:    name,
		Score:   *frag.Score,
		Rating:  frag.Rating,
		History: historyFromPoints(frag.Data),
	}
	if frag.Timestamp != nil {
		ts := time.UnixMilli(int64(*frag.Timestamp))
		ind.Timestamp = &ts
	}
	return ind, nil
}

// parseComposite converts the "fear_and_greed" fragment into a composite
// record plus the four comparison values.
func parseComposite(raw json.RawMessage) (*domain.Indicator, *compositeFragment, error) {
	var frag compositeFragment
	if err := json.Unmarshal(raw, &frag); err != nil {
		return nil, nil, fmt.Errorf("%w: decode composite: %v", domain.ErrMalformedData, err)
	}
	if frag.Score == nil {
		return nil, nil, fmt.Errorf("%w: composite has no numeric score", domain.ErrMalformedData)
	}

	ind := &domain.Indicator{
		Name:   domain.KeyComposite,
		Score:  *frag.Score,
		Rating: frag.Rating,
	}
	if frag.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, frag.Timestamp)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: parse composite timestamp %q: %v", domain.ErrMalformedData, frag.Timestamp, err)
		}
		ind.Timestamp = &ts
	}
	return ind, &frag, nil
}

// parseHistorical converts the "fear_and_greed_historical" fragment into the
// composite's historical series.
func parseHistorical(raw json.RawMessage) ([]domain.HistoricalPoint, error) {
	var frag historicalFragment
	if err := json.Unmarshal(raw, &frag); err != nil {
		return nil, fmt.Errorf("%w: decode historical series: %v", domain.ErrMalformedData, err)
	}
	return historyFromPoints(frag.Data), nil
}

func historyFromPoints(points []histPoint) []domain.HistoricalPoint {
	if len(points) == 0 {
		return nil
	}
	out := make([]domain.HistoricalPoint, 0, len(points))
	for _, p := range points {
		out = append(out, domain.HistoricalPoint{
			Timestamp: time.UnixMilli(int64(p.X)),
			Score:     p.Y,
			Rating:    p.Rating,
		})
	}
	return out
}
