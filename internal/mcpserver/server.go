package mcpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"greedometer/internal/domain"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace"
)

// SnapshotGetter provides the latest Fear & Greed snapshot.
type SnapshotGetter interface {
	GetSnapshot(ctx context.Context) (*domain.Snapshot, error)
}

// Server exposes the Fear & Greed index as MCP tools so LLM clients can
// query live sentiment data.
type Server struct {
	tracer trace.Tracer
	index  SnapshotGetter
	mcp    *mcp.Server
}

func NewServer(tracer trace.Tracer, index SnapshotGetter, version string) *Server {
	s := &Server{
		tracer: tracer,
		index:  index,
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "greedometer",
			Title:   "CNN Fear & Greed Index",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

// Run serves MCP over the given transport until ctx is cancelled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcp.Run(ctx, transport)
}

// HTTPHandler returns a streamable-HTTP handler for the server.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

type noArgs struct{}

type historyArgs struct {
	Days int `json:"days,omitempty" jsonschema:"number of most recent days to include (default 10)"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_fear_greed_score",
		Description: "Get the current CNN Fear & Greed Index score, its rating and comparison values.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, any, error) {
		return s.withSnapshot(ctx, "mcp.get-fear-greed-score", func(snap *domain.Snapshot) string {
			return snap.Summary()
		})
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_fear_greed_indicators",
		Description: "Get the seven Fear & Greed sub-indicators with score, rating and last update time.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, any, error) {
		return s.withSnapshot(ctx, "mcp.get-fear-greed-indicators", func(snap *domain.Snapshot) string {
			return snap.IndicatorsReport()
		})
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_fear_greed_comparison",
		Description: "Compare the current Fear & Greed score with the previous close, week, month and year.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, any, error) {
		return s.withSnapshot(ctx, "mcp.get-fear-greed-comparison", comparisonReport)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_trading_signal",
		Description: "Get a contrarian trading signal derived from the current Fear & Greed score.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, any, error) {
		return s.withSnapshot(ctx, "mcp.get-trading-signal", signalReport)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_fear_greed_history",
		Description: "Get historical Fear & Greed scores for the most recent N days.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args historyArgs) (*mcp.CallToolResult, any, error) {
		days := args.Days
		if days <= 0 {
			days = 10
		}
		return s.withSnapshot(ctx, "mcp.get-fear-greed-history", func(snap *domain.Snapshot) string {
			return historyReport(snap, days)
		})
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_complete_report",
		Description: "Get a complete Fear & Greed report: current score, comparisons, all indicators and the derived signal.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, any, error) {
		return s.withSnapshot(ctx, "mcp.get-complete-report", completeReport)
	})
}

// withSnapshot fetches the current snapshot and renders it with fn. Fetch
// failures are reported as tool errors so the client sees a message instead
// of a protocol failure.
func (s *Server) withSnapshot(ctx context.Context, spanName string, fn func(*domain.Snapshot) string) (*mcp.CallToolResult, any, error) {
	ctx, span := s.tracer.Start(ctx, spanName)
	defer span.End()

	snap, err := s.index.GetSnapshot(ctx)
	if err != nil {
		span.RecordError(err)
		return errorResult(fmt.Sprintf("Error fetching Fear & Greed data: %v", err)), nil, nil
	}
	return textResult(fn(snap)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func comparisonReport(snap *domain.Snapshot) string {
	var sb strings.Builder
	now := snap.Score()
	fmt.Fprintf(&sb, "Fear & Greed Now: %.1f (%s)\n", now, domain.TitleRating(snap.Rating()))
	fmt.Fprintf(&sb, "Previous Close: %.1f (%+.1f)\n", snap.PreviousClose, now-snap.PreviousClose)
	fmt.Fprintf(&sb, "1 Week Ago: %.1f (%+.1f)\n", snap.Previous1Week, now-snap.Previous1Week)
	fmt.Fprintf(&sb, "1 Month Ago: %.1f (%+.1f)\n", snap.Previous1Month, now-snap.Previous1Month)
	fmt.Fprintf(&sb, "1 Year Ago: %.1f (%+.1f)", snap.Previous1Year, now-snap.Previous1Year)
	return sb.String()
}

func signalReport(snap *domain.Snapshot) string {
	signal, recommendation := domain.SignalForScore(snap.Score())
	return fmt.Sprintf(
		"Fear & Greed: %.1f (%s)\nSignal: %s\nRecommendation: %s",
		snap.Score(), domain.TitleRating(snap.Rating()), signal, recommendation,
	)
}

func historyReport(snap *domain.Snapshot, days int) string {
	history := snap.History()
	if len(history) == 0 {
		return "No historical data available."
	}
	if len(history) > days {
		history = history[len(history)-days:]
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Fear & Greed History (last %d entries)\n", len(history))
	for _, point := range history {
		fmt.Fprintf(&sb, "%s: %.1f (%s)\n", point.Timestamp.Format("2006-01-02"), point.Score, domain.TitleRating(point.Rating))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func completeReport(snap *domain.Snapshot) string {
	signal, recommendation := domain.SignalForScore(snap.Score())
	return snap.CompleteReport() + fmt.Sprintf("\n\nSignal: %s\nRecommendation: %s", signal, recommendation)
}
