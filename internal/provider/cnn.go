package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"greedometer/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	cnnBaseURL       = "https://production.dataviz.cnn.io"
	graphDataPath    = "/index/fearandgreed/graphdata"
	defaultTimeout   = 10 * time.Second
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// CNNProvider fetches the raw Fear & Greed graphdata document from CNN.
// One GET per call, no retries, no caching.
type CNNProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

// NewCNNProvider creates a provider with the given base URL and request
// timeout. An empty baseURL targets CNN; a non-positive timeout falls back
// to 10s.
func NewCNNProvider(tracer trace.Tracer, baseURL string, timeout time.Duration) *CNNProvider {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = cnnBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CNNProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		tracer:  tracer,
	}
}

// FetchGraphData returns the full response body. The body is assumed to be
// JSON but is not validated here; parsing happens in the feargreed package.
// Failures map to domain.ErrTimeout or domain.ErrNetwork.
func (p *CNNProvider) FetchGraphData(ctx context.Context) ([]byte, error) {
	_, span := p.tracer.Start(ctx, "cnn.fetch-graphdata")
	defer span.End()

	reqURL := p.baseURL + graphDataPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	// CNN rejects the default Go user agent.
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: cnn API error %d: %s", domain.ErrNetwork, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", domain.ErrNetwork, err)
	}
	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
