package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken      string `env:"BOT_TOKEN"`
	DatabaseURL   string `env:"DATABASE_URL"`
	OpenRouterKey string `env:"OPENROUTER_API_KEY"`

	// Market data: Twelve Data
	TwelveDataKey string `env:"TWELVE_DATA_API_KEY"`
	TwelveDataURL string `env:"TWELVE_DATA_API_URL" envDefault:"https://api.twelvedata.com"`

	// AI
	AIModel string `env:"AI_MODEL" envDefault:"meta-llama/llama-3.1-8b-instruct:free"`

	// Daily analysis limits per tier
	FreeAnalysesPerDay    int `env:"FREE_ANALYSES_PER_DAY" envDefault:"3"`
	PremiumAnalysesPerDay int `env:"PREMIUM_ANALYSES_PER_DAY" envDefault:"50"`

	// Admin
	AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`

	// Aux HTTP server
	Port int `env:"PORT" envDefault:"3000"`

	// Debug
	DebugMode      bool   `env:"DEBUG_MODE" envDefault:"false"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	UseMockData    bool   `env:"DEBUG_USE_MOCK_DATA" envDefault:"false"`
	SkipValidation bool   `env:"DEBUG_SKIP_VALIDATION" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks required credentials. DEBUG_SKIP_VALIDATION disables the
// check so the bot can start against mocks without real keys.
func (c *Config) validate() error {
	if c.SkipValidation {
		return nil
	}
	var missing []string
	if c.BotToken == "" {
		missing = append(missing, "BOT_TOKEN")
	}
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.OpenRouterKey == "" {
		missing = append(missing, "OPENROUTER_API_KEY")
	}
	if c.TwelveDataKey == "" && !c.UseMockData {
		missing = append(missing, "TWELVE_DATA_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
