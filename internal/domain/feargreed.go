package domain

import "time"

// Indicator keys as they appear in the CNN graphdata payload.
const (
	KeyJunkBondDemand     = "junk_bond_demand"
	KeyMarketVolatility   = "market_volatility_vix"
	KeyPutCallOptions     = "put_call_options"
	KeyMarketMomentum     = "market_momentum_sp500"
	KeyStockPriceStrength = "stock_price_strength"
	KeyStockPriceBreadth  = "stock_price_breadth"
	KeySafeHavenDemand    = "safe_haven_demand"
)

// KeyComposite names the overall index record.
const KeyComposite = "composite"

// IndicatorKeys lists the seven indicator keys in display order.
var IndicatorKeys = []string{
	KeyJunkBondDemand,
	KeyMarketVolatility,
	KeyPutCallOptions,
	KeyMarketMomentum,
	KeyStockPriceStrength,
	KeyStockPriceBreadth,
	KeySafeHavenDemand,
}

// IndicatorDisplayName maps API keys to human-readable indicator names.
var IndicatorDisplayName = map[string]string{
	KeyJunkBondDemand:     "Junk Bond Demand",
	KeyMarketVolatility:   "Market Volatility (VIX)",
	KeyPutCallOptions:     "Put and Call Options",
	KeyMarketMomentum:     "Market Momentum (S&P 500)",
	KeyStockPriceStrength: "Stock Price Strength",
	KeyStockPriceBreadth:  "Stock Price Breadth",
	KeySafeHavenDemand:    "Safe Haven Demand",
	KeyComposite:          "Fear & Greed Index",
}

// HistoricalPoint is one past observation of a score and its rating.
type HistoricalPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"score"`
	Rating    string    `json:"rating"`
}

// Indicator is one sentiment indicator (or the composite index) as returned
// by the upstream API. Values are passed through verbatim: scores are not
// clamped to 0-100 and ratings are opaque strings. An Indicator is built once
// from a response and never mutated afterwards.
//
// Timestamp is nil when upstream omitted it. An empty Rating means upstream
// omitted it; the empty string cannot round-trip through JSON any other way.
type Indicator struct {
	Name      string            `json:"name"`
	Score     float64           `json:"score"`
	Rating    string            `json:"rating,omitempty"`
	Timestamp *time.Time        `json:"timestamp,omitempty"`
	History   []HistoricalPoint `json:"history,omitempty"`
}

// DisplayName returns the human-readable name for the indicator key.
func (i *Indicator) DisplayName() string {
	if name, ok := IndicatorDisplayName[i.Name]; ok {
		return name
	}
	return i.Name
}

// Snapshot is the complete result of one fetch: the composite index, its
// comparison values, and all seven indicators. A Snapshot is immutable once
// built; each fetch produces an independent one.
type Snapshot struct {
	Composite      *Indicator            `json:"composite"`
	PreviousClose  float64               `json:"previous_close"`
	Previous1Week  float64               `json:"previous_1_week"`
	Previous1Month float64               `json:"previous_1_month"`
	Previous1Year  float64               `json:"previous_1_year"`
	Indicators     map[string]*Indicator `json:"indicators"`
	FetchedAt      time.Time             `json:"fetched_at"`
}

// Score returns the current composite score.
func (s *Snapshot) Score() float64 {
	return s.Composite.Score
}

// Rating returns the current composite rating.
func (s *Snapshot) Rating() string {
	return s.Composite.Rating
}

// Indicator returns the indicator record for one of the seven fixed keys.
func (s *Snapshot) Indicator(key string) (*Indicator, bool) {
	ind, ok := s.Indicators[key]
	return ind, ok
}

// AllIndicators returns the seven indicators in display order.
func (s *Snapshot) AllIndicators() []*Indicator {
	out := make([]*Indicator, 0, len(IndicatorKeys))
	for _, key := range IndicatorKeys {
		if ind, ok := s.Indicators[key]; ok {
			out = append(out, ind)
		}
	}
	return out
}

// History returns the composite index's historical series, oldest first,
// exactly as upstream returned it.
func (s *Snapshot) History() []HistoricalPoint {
	return s.Composite.History
}
