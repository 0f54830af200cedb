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

	"greedometer/internal/advisor"
	"greedometer/internal/bot"
	"greedometer/internal/cache"
	"greedometer/internal/config"
	"greedometer/internal/feargreed"
	"greedometer/internal/handler"
	"greedometer/internal/job"
	"greedometer/internal/provider"
	"greedometer/internal/service"
	"greedometer/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "greedometer/docs"
)

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
	newSnapshotPollerFunc  = job.NewSnapshotPoller
	startPollerFunc        = func(p *job.SnapshotPoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newOpenAIClientFunc    = advisor.NewOpenAIClient
	newAdvisorServiceFunc  = advisor.NewAdvisorService
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Greedometer API
// @version         1.0
// @description     CNN Fear & Greed Index service with OpenTelemetry tracing.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Redis (optional, snapshot cache)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Provider, parser, index service
	cnn := newCNNProviderFunc(tracer, cfg.FGIBaseURL, time.Duration(cfg.FGIFetchTimeout)*time.Second)
	client := newFearGreedClientFunc(tracer, cnn)

	var redisClient service.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}
	indexService := newIndexServiceFunc(tracer, client, redisClient, cfg.FGICacheTTLSecs)

	// Background snapshot poller keeps the cache warm
	if cfg.FGIPollingEnabled {
		poller := newSnapshotPollerFunc(tracer, indexService, cfg.FGIPollSecs)
		startPollerFunc(poller, ctx)
	}

	// Advisor (optional)
	var advisorSvc *advisor.AdvisorService
	if cfg.OpenAIAPIKey != "" {
		llmClient := newOpenAIClientFunc(cfg.OpenAIAPIKey)
		advisorSvc = newAdvisorServiceFunc(tracer, llmClient, indexService, nil,
			cfg.OpenAIModel, cfg.AdvisorMaxHistory)
		log.Println("Advisor service enabled")
	}

	// Telegram bot (optional)
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	var asker bot.Asker
	if advisorSvc != nil {
		asker = advisorSvc
	}
	startTelegramBotFunc(indexService, asker)

	// Handlers and routes
	h := newHandlerFunc(tracer, indexService)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("greedometer"))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type", "X-API-Key"},
	}))
	h.RegisterRoutes(r, handler.APIKeyAuth(cfg.APIKey))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
