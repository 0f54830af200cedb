package domain

import (
	"fmt"
	"strings"
)

// Report returns a one-line summary of the indicator, e.g.
// "Market Momentum (S&P 500): Greed (75.0)    [Updated Dec 01 at 4:00PM]".
func (i *Indicator) Report() string {
	updated := "N/A"
	if i.Timestamp != nil {
		updated = i.Timestamp.Format("Jan 02 at 3:04PM")
	}
	head := fmt.Sprintf("%s: %s (%.1f)", i.DisplayName(), TitleRating(i.Rating), i.Score)
	pad := 80 - len(head)
	if pad < 1 {
		pad = 1
	}
	return head + strings.Repeat(" ", pad) + fmt.Sprintf("[Updated %s]", updated)
}

// Summary returns the composite score and its comparison values as text.
func (s *Snapshot) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Fear & Greed Now: %.1f (%s)\n", s.Score(), TitleRating(s.Rating()))
	fmt.Fprintf(&sb, "   Previous Close: %.1f\n", s.PreviousClose)
	fmt.Fprintf(&sb, "   1 Week Ago: %.1f\n", s.Previous1Week)
	fmt.Fprintf(&sb, "   1 Month Ago: %.1f\n", s.Previous1Month)
	fmt.Fprintf(&sb, "   1 Year Ago: %.1f", s.Previous1Year)
	return sb.String()
}

// IndicatorsReport returns one report line per indicator, in display order.
func (s *Snapshot) IndicatorsReport() string {
	lines := make([]string, 0, len(IndicatorKeys))
	for _, ind := range s.AllIndicators() {
		lines = append(lines, ind.Report())
	}
	return strings.Join(lines, "\n")
}

// CompleteReport returns the summary followed by the per-indicator report.
// Free-form text; there is no parsing contract on its shape.
func (s *Snapshot) CompleteReport() string {
	return s.Summary() + "\n\n" + s.IndicatorsReport()
}

// TitleRating upper-cases the first letter of each word of a rating label,
// e.g. "extreme fear" -> "Extreme Fear". Empty ratings become "N/A".
func TitleRating(rating string) string {
	if rating == "" {
		return "N/A"
	}
	words := strings.Fields(rating)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
