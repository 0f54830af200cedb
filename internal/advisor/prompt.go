package advisor

import (
	"fmt"
	"strings"
	"time"

	"greedometer/internal/domain"
)

const sentimentPhilosophy = `You are a market-sentiment assistant built around CNN's Fear & Greed Index. Your role is to interpret the index and its seven sub-indicators, NOT to generate data yourself.

Sentiment bands:
- 0-24: Extreme Fear. Markets oversold; contrarians look for entries.
- 25-44: Fear. Pessimistic sentiment.
- 45-54: Neutral. Balanced market.
- 55-74: Greed. Optimistic sentiment.
- 75-100: Extreme Greed. Markets possibly overheated.

Rules:
- Always reference the specific scores and indicators you were given.
- Never fabricate data. If data is unavailable, say so.
- Sentiment is one input among many; say so when asked for trade ideas.
- Keep responses concise. You are talking via chat.
- When asked about the market, summarize: current score, notable indicator divergences, and comparison with previous periods.`

func BuildSystemPrompt(sentimentContext string) string {
	var sb strings.Builder
	sb.WriteString(sentimentPhilosophy)
	sb.WriteString("\n\n--- LIVE SENTIMENT DATA (as of ")
	sb.WriteString(time.Now().UTC().Format(time.RFC822))
	sb.WriteString(") ---\n")
	sb.WriteString(sentimentContext)
	return sb.String()
}

// FormatSentimentContext renders a snapshot as prompt context: the complete
// report plus the derived trading signal.
func FormatSentimentContext(snap *domain.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(snap.CompleteReport())

	signal, recommendation := domain.SignalForScore(snap.Score())
	sb.WriteString(fmt.Sprintf("\n\nDerived signal: %s (%s)\n", signal, recommendation))
	return sb.String()
}
