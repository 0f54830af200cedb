package domain

// TradingSignal is a naive sentiment-based classification of the composite
// score. Purely informational.
type TradingSignal string

const (
	SignalStrongBuy  TradingSignal = "STRONG_BUY"
	SignalBuy        TradingSignal = "BUY"
	SignalHold       TradingSignal = "HOLD"
	SignalSell       TradingSignal = "SELL"
	SignalStrongSell TradingSignal = "STRONG_SELL"
)

// SignalForScore classifies a composite score into a trading signal with a
// short recommendation. Thresholds: <20 STRONG_BUY, <40 BUY, <60 HOLD,
// <80 SELL, else STRONG_SELL.
func SignalForScore(score float64) (TradingSignal, string) {
	switch {
	case score < 20:
		return SignalStrongBuy, "Extreme fear - potential buying opportunity"
	case score < 40:
		return SignalBuy, "Fear in market - consider accumulating"
	case score < 60:
		return SignalHold, "Neutral sentiment - maintain positions"
	case score < 80:
		return SignalSell, "Greed in market - consider taking profits"
	default:
		return SignalStrongSell, "Extreme greed - potential market top"
	}
}

// RatingForScore maps a score to the conventional sentiment band. Used for
// presentation (colors, labels) when upstream supplies no rating of its own;
// upstream-supplied ratings are never overwritten by this.
func RatingForScore(score float64) string {
	switch {
	case score < 25:
		return "extreme fear"
	case score < 45:
		return "fear"
	case score < 55:
		return "neutral"
	case score < 75:
		return "greed"
	default:
		return "extreme greed"
	}
}
