package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port             int
	APIKey           string
	RedisURL         string
	TelegramBotToken string

	FGIBaseURL        string
	FGIFetchTimeout   int
	FGICacheTTLSecs   int
	FGIPollSecs       int
	FGIPollingEnabled bool

	MCPTransport          string
	MCPHTTPBind           string
	MCPHTTPPort           int
	MCPRequestTimeoutSecs int

	OpenAIAPIKey      string
	OpenAIModel       string
	AdvisorMaxHistory int

	SSHPort        int
	SSHHostKeyPath string
}

func Load() *Config {
	cfg := &Config{
		APIKey:           os.Getenv("API_KEY"),
		RedisURL:         os.Getenv("REDIS_URL"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		FGIBaseURL:       strings.TrimSpace(os.Getenv("FGI_BASE_URL")),
	}

	cfg.Port = 8080
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Port = n
		}
	}

	cfg.FGIFetchTimeout = 10
	if v := strings.TrimSpace(os.Getenv("FGI_FETCH_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FGIFetchTimeout = n
		}
	}

	cfg.FGICacheTTLSecs = 300
	if v := strings.TrimSpace(os.Getenv("FGI_CACHE_TTL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FGICacheTTLSecs = n
		}
	}

	cfg.FGIPollSecs = 300
	if v := strings.TrimSpace(os.Getenv("FGI_POLL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FGIPollSecs = n
		}
	}

	cfg.FGIPollingEnabled = true
	if v := strings.TrimSpace(os.Getenv("FGI_POLLING_ENABLED")); v != "" {
		cfg.FGIPollingEnabled = strings.EqualFold(v, "true")
	}

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT")))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Printf("Warning: unsupported MCP_TRANSPORT=%q, defaulting to stdio", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}

	cfg.MCPHTTPBind = strings.TrimSpace(os.Getenv("MCP_HTTP_BIND"))
	if cfg.MCPHTTPBind == "" {
		cfg.MCPHTTPBind = "127.0.0.1"
	}

	cfg.MCPHTTPPort = 8090
	if v := strings.TrimSpace(os.Getenv("MCP_HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCPHTTPPort = n
		}
	}

	cfg.MCPRequestTimeoutSecs = 15
	if v := strings.TrimSpace(os.Getenv("MCP_REQUEST_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCPRequestTimeoutSecs = n
		}
	}

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.AdvisorMaxHistory = 20
	if v := os.Getenv("ADVISOR_MAX_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AdvisorMaxHistory = n
		}
	}

	cfg.SSHPort = 2222
	if v := strings.TrimSpace(os.Getenv("SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSHPort = n
		}
	}

	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/greedometer_ed25519"
	}

	return cfg
}
