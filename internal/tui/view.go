package tui

import (
	"fmt"
	"strings"

	"greedometer/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// Sentiment band colors, dark red through dark green.
var bandColors = []struct {
	max   float64
	color lipgloss.Color
}{
	{25, lipgloss.Color("#8B0000")},
	{45, lipgloss.Color("#FF4500")},
	{55, lipgloss.Color("#FFD700")},
	{75, lipgloss.Color("#32CD32")},
	{101, lipgloss.Color("#006400")},
}

func scoreColor(score float64) lipgloss.Color {
	for _, band := range bandColors {
		if score < band.max {
			return band.color
		}
	}
	return bandColors[len(bandColors)-1].color
}

func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("CNN Fear & Greed Index"))
	sb.WriteString("\n\n")

	switch {
	case m.loading:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Fetching index data...\n")
	case m.err != nil:
		sb.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		sb.WriteString("\n")
	case m.snapshot != nil:
		sb.WriteString(m.renderSnapshot())
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("r refresh • q quit"))
	return sb.String()
}

func (m *Model) renderSnapshot() string {
	snap := m.snapshot
	var sb strings.Builder

	scoreStyle := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(snap.Score()))
	sb.WriteString(scoreStyle.Render(fmt.Sprintf("%.1f", snap.Score())))
	sb.WriteString("  ")
	sb.WriteString(scoreStyle.Render(domain.TitleRating(ratingOrBand(snap.Rating(), snap.Score()))))
	sb.WriteString("\n")

	sb.WriteString(m.renderGauge(snap.Score()))
	sb.WriteString("\n\n")

	comparisons := boxStyle.Render(renderComparisons(snap))
	indicators := boxStyle.Render(m.renderIndicators(snap))
	if m.width >= lipgloss.Width(comparisons)+lipgloss.Width(indicators)+2 {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, comparisons, " ", indicators))
	} else {
		sb.WriteString(comparisons)
		sb.WriteString("\n")
		sb.WriteString(indicators)
	}
	sb.WriteString("\n")

	sb.WriteString(labelStyle.Render(fmt.Sprintf("Fetched %s", snap.FetchedAt.Format("Jan 02 15:04:05 MST"))))
	sb.WriteString("\n")
	return sb.String()
}

// renderGauge draws the 0-100 scale with a colored fill up to the score.
func (m *Model) renderGauge(score float64) string {
	width := m.width - 4
	if width > 76 {
		width = 76
	}
	if width < 10 {
		width = 10
	}

	clamped := score
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 100 {
		clamped = 100
	}
	filled := int(clamped / 100 * float64(width))

	fill := lipgloss.NewStyle().Foreground(scoreColor(score)).Render(strings.Repeat("█", filled))
	rest := labelStyle.Render(strings.Repeat("░", width-filled))
	return fill + rest
}

func renderComparisons(snap *domain.Snapshot) string {
	rows := []struct {
		label string
		value float64
	}{
		{"Previous Close", snap.PreviousClose},
		{"1 Week Ago", snap.Previous1Week},
		{"1 Month Ago", snap.Previous1Month},
		{"1 Year Ago", snap.Previous1Year},
	}

	var sb strings.Builder
	sb.WriteString("Comparison\n")
	for _, row := range rows {
		delta := snap.Score() - row.value
		sb.WriteString(fmt.Sprintf("%-15s %5.1f  %s\n", row.label, row.value, labelStyle.Render(fmt.Sprintf("%+.1f", delta))))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m *Model) renderIndicators(snap *domain.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("Indicators\n")
	for _, ind := range snap.AllIndicators() {
		dot := lipgloss.NewStyle().Foreground(scoreColor(ind.Score)).Render("●")
		sb.WriteString(fmt.Sprintf("%s %-26s %5.1f  %s\n", dot, ind.DisplayName(), ind.Score, domain.TitleRating(ratingOrBand(ind.Rating, ind.Score))))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ratingOrBand substitutes the conventional band label when upstream
// supplied no rating.
func ratingOrBand(rating string, score float64) string {
	if rating == "" {
		return domain.RatingForScore(score)
	}
	return rating
}
