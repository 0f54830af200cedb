package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"greedometer/internal/config"
	"greedometer/internal/feargreed"
	"greedometer/internal/mcpserver"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestMainBootstrapStdio(t *testing.T) {
	restore := stubMCPDeps("stdio")
	defer restore()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
}

func TestMainBootstrapHTTP(t *testing.T) {
	restore := stubMCPDeps("http")
	defer restore()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
}

func stubMCPDeps(transport string) func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitRedis := initRedisFunc
	origInitTracer := initTracerFunc
	origNewProvider := newCNNProviderFunc
	origRunStdio := runStdioFunc
	origStartHTTP := startHTTPServerFunc
	origShutdownHTTP := shutdownHTTPServerFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			FGIFetchTimeout:       1,
			FGICacheTTLSecs:       1,
			MCPTransport:          transport,
			MCPHTTPBind:           "127.0.0.1",
			MCPHTTPPort:           8090,
			MCPRequestTimeoutSecs: 1,
		}
	}
	initRedisFunc = func(context.Context) {}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newCNNProviderFunc = func(trace.Tracer, string, time.Duration) feargreed.Fetcher { return stubFetcher{} }
	runStdioFunc = func(context.Context, *mcpserver.Server) error { return nil }
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error { return nil }
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initRedisFunc = origInitRedis
		initTracerFunc = origInitTracer
		newCNNProviderFunc = origNewProvider
		runStdioFunc = origRunStdio
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFunc = origShutdownHTTP
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
	}
}

type stubFetcher struct{}

func (stubFetcher) FetchGraphData(ctx context.Context) ([]byte, error) {
	return []byte(`{}`), nil
}
