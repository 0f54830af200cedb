package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"greedometer/internal/cache"
	"greedometer/internal/config"
	"greedometer/internal/feargreed"
	"greedometer/internal/mcpserver"
	"greedometer/internal/provider"
	"greedometer/internal/service"
	"greedometer/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace"
)

const serverVersion = "1.0.0"

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
	newMCPServerFunc       = mcpserver.NewServer
	runStdioFunc           = func(ctx context.Context, srv *mcpserver.Server) error {
		return srv.Run(ctx, &mcp.StdioTransport{})
	}
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	srv := newMCPServerFunc(tracer, indexService, serverVersion)

	switch cfg.MCPTransport {
	case "http":
		addr := fmt.Sprintf("%s:%d", cfg.MCPHTTPBind, cfg.MCPHTTPPort)
		httpSrv := &http.Server{
			Addr:         addr,
			Handler:      srv.HTTPHandler(),
			ReadTimeout:  time.Duration(cfg.MCPRequestTimeoutSecs) * time.Second,
			WriteTimeout: time.Duration(cfg.MCPRequestTimeoutSecs) * time.Second,
		}

		go func() {
			log.Printf("MCP server listening on %s", addr)
			if err := startHTTPServerFunc(httpSrv); err != nil && err != http.ErrServerClosed {
				log.Fatalf("listen: %s\n", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
		waitForSignalFunc(quit)
		log.Println("Shutting down MCP server...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := shutdownHTTPServerFunc(httpSrv, shutdownCtx); err != nil {
			log.Fatal("MCP server forced to shutdown:", err)
		}

		log.Println("MCP server exiting")

	default:
		// stdio: the client owns the process lifecycle.
		if err := runStdioFunc(ctx, srv); err != nil {
			log.Fatalf("MCP server error: %v", err)
		}
	}
}
