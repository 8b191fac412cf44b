package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string

	HTTP   HTTPConfig
	OpenAI OpenAIConfig
	SimAI  SimAIConfig
	N8N    N8NConfig
	Redis  RedisConfig
	Log    LogConfig
}

type HTTPConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	RequestTimeout time.Duration
	MaxRetries     int
}

type SimAIConfig struct {
	APIKey         string
	WorkflowURL    string
	RequestTimeout time.Duration
}

type N8NConfig struct {
	WebhookURL     string
	InboundSecret  string
	ForwardRetries int
	RequestTimeout time.Duration
}

type RedisConfig struct {
	URL          string
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
	Output string
	File   string
}

// DefaultSimAIWorkflowURL is the hosted support-reply workflow used when no
// explicit SIM_AI_WORKFLOW_URL override is configured.
const DefaultSimAIWorkflowURL = "https://www.sim.ai/api/workflows/67eecc2f-3a2c-487d-80ee-d8680b8d939a/execute"

// Load reads configuration from the environment, with an optional .env file.
// Every provider credential is optional: a missing key simply routes the
// pipeline through its fallback provider.
func Load() (*Config, error) {
	// .env is a convenience for local development only
	_ = godotenv.Load()

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	requestTimeout, err := getEnvInt("REQUEST_TIMEOUT", 8)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	retryAttempts, err := getEnvInt("RETRY_ATTEMPTS", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid RETRY_ATTEMPTS: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		HTTP: HTTPConfig{
			Port:        port,
			ReadTimeout: 30 * time.Second,
			// WriteTimeout stays zero: the SSE stream holds its response
			// open indefinitely.
			WriteTimeout: 0,
			IdleTimeout:  120 * time.Second,
		},
		OpenAI: OpenAIConfig{
			APIKey:         os.Getenv("OPENAI_API_KEY"),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			RequestTimeout: time.Duration(requestTimeout) * time.Second,
			MaxRetries:     retryAttempts,
		},
		SimAI: SimAIConfig{
			APIKey:         os.Getenv("SIM_AI_API_KEY"),
			WorkflowURL:    getEnv("SIM_AI_WORKFLOW_URL", DefaultSimAIWorkflowURL),
			RequestTimeout: time.Duration(requestTimeout) * time.Second,
		},
		N8N: N8NConfig{
			WebhookURL:     os.Getenv("N8N_WEBHOOK_URL"),
			InboundSecret:  os.Getenv("N8N_INBOUND_SECRET"),
			ForwardRetries: retryAttempts,
			RequestTimeout: time.Duration(requestTimeout) * time.Second,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
			File:   getEnv("LOG_FILE", "logs/codance.log"),
		},
	}

	return cfg, nil
}

// OpenAIEnabled reports whether the OpenAI provider should be attempted at all.
func (c *Config) OpenAIEnabled() bool {
	return c.OpenAI.APIKey != ""
}

// SimAIEnabled reports whether the Sim.ai workflow provider should be attempted.
func (c *Config) SimAIEnabled() bool {
	return c.SimAI.APIKey != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}
