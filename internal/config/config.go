package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	TelegramToken string

	// Card backend configuration
	APIBaseURL   string
	APITimeout   time.Duration
	CardCacheTTL time.Duration

	// Rate limiting for the Celtic Cross spread
	RateLimitCount  int
	RateLimitWindow time.Duration

	// Rendering
	BackgroundPath string
	ArtworkDir     string // if set, artwork is loaded from disk instead of HTTP

	// Bot mode configuration
	WebhookMode bool   // If true, use webhook mode; if false, use polling mode
	WebhookURL  string // URL for webhook (required if WebhookMode is true)

	// ClickHouse configuration (reading journal)
	ClickHouseHost     string
	ClickHousePort     int
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseUseTLS   bool

	UseMockDB bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	// Telegram Bot Token (required)
	config.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	// Card backend base URL (required)
	config.APIBaseURL = os.Getenv("API_BASE_URL")
	if config.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}

	var err error
	config.APITimeout, err = durationEnv("API_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	config.CardCacheTTL, err = durationEnv("CARD_CACHE_TTL", 300*time.Second)
	if err != nil {
		return nil, err
	}

	config.RateLimitCount, err = intEnv("RATE_LIMIT_COUNT", 3)
	if err != nil {
		return nil, err
	}
	config.RateLimitWindow, err = durationEnv("RATE_LIMIT_WINDOW", time.Hour)
	if err != nil {
		return nil, err
	}

	config.BackgroundPath = os.Getenv("BACKGROUND_PATH")
	if config.BackgroundPath == "" {
		config.BackgroundPath = "assets/backgrounds/bg.png"
	}
	config.ArtworkDir = os.Getenv("ARTWORK_DIR")

	// Bot mode configuration
	config.WebhookMode = os.Getenv("WEBHOOK_MODE") == "true"
	if config.WebhookMode {
		config.WebhookURL = os.Getenv("WEBHOOK_URL")
		if config.WebhookURL == "" {
			return nil, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
		}
	}

	// Use Mock DB (default: false)
	config.UseMockDB = os.Getenv("USE_MOCK_DB") == "true"

	// ClickHouse configuration (required if not using mock)
	if !config.UseMockDB {
		config.ClickHouseHost = os.Getenv("CLICKHOUSE_HOST")
		if config.ClickHouseHost == "" {
			return nil, fmt.Errorf("CLICKHOUSE_HOST is required when USE_MOCK_DB is not set")
		}

		config.ClickHousePort, err = intEnv("CLICKHOUSE_PORT", 9000)
		if err != nil {
			return nil, err
		}

		config.ClickHouseDatabase = os.Getenv("CLICKHOUSE_DATABASE")
		if config.ClickHouseDatabase == "" {
			config.ClickHouseDatabase = "default"
		}

		config.ClickHouseUser = os.Getenv("CLICKHOUSE_USER")
		if config.ClickHouseUser == "" {
			config.ClickHouseUser = "default"
		}

		config.ClickHousePassword = os.Getenv("CLICKHOUSE_PASSWORD")
		// Password is optional, can be empty

		config.ClickHouseUseTLS = os.Getenv("CLICKHOUSE_USE_TLS") == "true"
	}

	return config, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// durationEnv parses a duration env var; a bare number is taken as
// seconds for compatibility with the backend's convention.
func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
