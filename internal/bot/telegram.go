package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"greedometer/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// SnapshotGetter provides the latest Fear & Greed snapshot.
type SnapshotGetter interface {
	GetSnapshot(ctx context.Context) (*domain.Snapshot, error)
}

// Asker answers free-form questions with sentiment context. Nil when no
// OpenAI key is configured.
type Asker interface {
	Ask(ctx context.Context, chatID int64, message string) (string, error)
}

func StartTelegramBot(index SnapshotGetter, advisor Asker) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/score", func(c tele.Context) error {
		snapshot, err := index.GetSnapshot(context.Background())
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching Fear & Greed index: %v", err))
		}
		return c.Send(ScoreMessage(snapshot))
	})

	b.Handle("/signal", func(c tele.Context) error {
		snapshot, err := index.GetSnapshot(context.Background())
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching Fear & Greed index: %v", err))
		}
		return c.Send(SignalMessage(snapshot))
	})

	b.Handle("/indicators", func(c tele.Context) error {
		snapshot, err := index.GetSnapshot(context.Background())
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching Fear & Greed index: %v", err))
		}
		return c.Send(IndicatorsMessage(snapshot))
	})

	b.Handle("/ask", func(c tele.Context) error {
		if advisor == nil {
			return c.Send("The advisor is not configured on this deployment.")
		}
		question := strings.TrimSpace(strings.Join(c.Args(), " "))
		if question == "" {
			return c.Send("Usage: /ask <question about market sentiment>")
		}
		reply, err := advisor.Ask(context.Background(), c.Chat().ID, question)
		if err != nil {
			return c.Send(fmt.Sprintf("Advisor error: %v", err))
		}
		return c.Send(reply)
	})

	log.Println("Telegram bot started")
	go b.Start()
}

// ScoreMessage renders the composite score with its comparison values.
func ScoreMessage(s *domain.Snapshot) string {
	return s.Summary()
}

// SignalMessage renders the derived trading signal.
func SignalMessage(s *domain.Snapshot) string {
	signal, recommendation := domain.SignalForScore(s.Score())
	return fmt.Sprintf(
		"Fear & Greed: %.1f (%s)\nSignal: %s\n%s",
		s.Score(), domain.TitleRating(s.Rating()), signal, recommendation,
	)
}

// IndicatorsMessage renders one line per indicator.
func IndicatorsMessage(s *domain.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Fear & Greed Indicators\n")
	for _, ind := range s.AllIndicators() {
		fmt.Fprintf(&sb, "%s: %s (%.1f)\n", ind.DisplayName(), domain.TitleRating(ind.Rating), ind.Score)
	}
	return strings.TrimRight(sb.String(), "\n")
}
