package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"greedometer/internal/cache"
	"greedometer/internal/config"
	"greedometer/internal/domain"
	"greedometer/internal/feargreed"
	"greedometer/internal/provider"
	"greedometer/internal/service"
	"greedometer/internal/tui"
	"greedometer/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
)

const usage = `Usage: greedometer [command]

Commands:
  score        print the composite score and comparison values
  signal       print the derived trading signal
  report       print the complete report
  history [n]  print the n most recent historical scores (default 30)
  json         print the full snapshot as JSON

Without a command an interactive dashboard is started.`

// SnapshotGetter provides the latest Fear & Greed snapshot.
type SnapshotGetter interface {
	GetSnapshot(ctx context.Context) (*domain.Snapshot, error)
}

var (
	loadEnvFunc        = godotenv.Load
	loadConfigFunc     = config.Load
	initRedisFunc      = cache.InitRedis
	initTracerFunc     = tracing.InitTracer
	newCNNProviderFunc = func(tracer trace.Tracer, baseURL string, timeout time.Duration) feargreed.Fetcher {
		return provider.NewCNNProvider(tracer, baseURL, timeout)
	}
	newFearGreedClientFunc = feargreed.NewClient
	newIndexServiceFunc    = service.NewIndexService
	runDashboardFunc       = func(index SnapshotGetter) error {
		_, err := tea.NewProgram(tui.NewModel(index), tea.WithAltScreen()).Run()
		return err
	}
	exitFunc = os.Exit
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx := context.Background()

	os.Setenv("REDIS_URL", cfg.RedisURL)
	initRedisFunc(ctx)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	cnn := newCNNProviderFunc(tracer, cfg.FGIBaseURL, time.Duration(cfg.FGIFetchTimeout)*time.Second)
	client := newFearGreedClientFunc(tracer, cnn)

	var redisClient service.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}
	indexService := newIndexServiceFunc(tracer, client, redisClient, cfg.FGICacheTTLSecs)

	if len(os.Args) > 1 {
		if err := run(ctx, os.Args[1:], indexService, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
		return
	}

	if err := runDashboardFunc(indexService); err != nil {
		log.Fatalf("dashboard error: %v", err)
	}
}

// run executes a one-shot command and writes the result to out.
func run(ctx context.Context, args []string, index SnapshotGetter, out io.Writer) error {
	switch args[0] {
	case "score":
		snap, err := index.GetSnapshot(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, snap.Summary())
		return nil

	case "signal":
		snap, err := index.GetSnapshot(ctx)
		if err != nil {
			return err
		}
		signal, recommendation := domain.SignalForScore(snap.Score())
		fmt.Fprintf(out, "Fear & Greed: %.1f (%s)\nSignal: %s\n%s\n",
			snap.Score(), domain.TitleRating(snap.Rating()), signal, recommendation)
		return nil

	case "report":
		snap, err := index.GetSnapshot(ctx)
		if err != nil {
			return err
		}
		signal, recommendation := domain.SignalForScore(snap.Score())
		fmt.Fprintf(out, "%s\n\nSignal: %s\n%s\n", snap.CompleteReport(), signal, recommendation)
		return nil

	case "history":
		limit := 30
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid history count %q", args[1])
			}
			limit = n
		}
		snap, err := index.GetSnapshot(ctx)
		if err != nil {
			return err
		}
		history := snap.History()
		if len(history) > limit {
			history = history[len(history)-limit:]
		}
		for _, point := range history {
			fmt.Fprintf(out, "%s  %5.1f  %s\n",
				point.Timestamp.Format("2006-01-02"), point.Score, domain.TitleRating(point.Rating))
		}
		return nil

	case "json":
		snap, err := index.GetSnapshot(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)

	case "help", "-h", "--help":
		fmt.Fprintln(out, usage)
		return nil

	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}
