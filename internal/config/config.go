package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultDatabaseURL    = "tm.db"
	defaultHTTPAddr       = ":8080"
	defaultTagColor       = "blue"
	defaultLogLevel       = "info"
	defaultTokenTTL       = 30 * 24 * time.Hour
	defaultReportInterval = 24 * time.Hour
)

// envKeys binds config keys to the environment variables that set them.
var envKeys = map[string]string{
	"database_url":          "DATABASE_URL",
	"http_addr":             "HTTP_ADDR",
	"jwt_secret":            "JWT_SECRET",
	"token_ttl_hours":       "TOKEN_TTL_HOURS",
	"telegram_token":        "TELEGRAM_TOKEN",
	"report_interval_hours": "REPORT_INTERVAL_HOURS",
	"report_at":             "REPORT_AT",
	"default_tag_color":     "DEFAULT_TAG_COLOR",
	"log_level":             "LOG_LEVEL",
}

// Config keeps runtime settings for the service and the bot.
type Config struct {
	DatabaseURL     string
	HTTPAddr        string
	JWTSecret       string
	TokenTTL        time.Duration
	TelegramToken   string
	ReportInterval  time.Duration
	ReportAt        string // HH:MM; overrides ReportInterval when set
	DefaultTagColor string
	LogLevel        string
}

// Load reads configuration from .env, an optional YAML file at path and the
// environment, in increasing order of precedence.
func Load(path string) (Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetDefault("database_url", defaultDatabaseURL)
	v.SetDefault("http_addr", defaultHTTPAddr)
	v.SetDefault("default_tag_color", defaultTagColor)
	v.SetDefault("log_level", defaultLogLevel)
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		DatabaseURL:     strings.TrimSpace(v.GetString("database_url")),
		HTTPAddr:        strings.TrimSpace(v.GetString("http_addr")),
		JWTSecret:       strings.TrimSpace(v.GetString("jwt_secret")),
		TokenTTL:        parseHours(v.GetString("token_ttl_hours")),
		TelegramToken:   strings.TrimSpace(v.GetString("telegram_token")),
		ReportInterval:  parseHours(v.GetString("report_interval_hours")),
		ReportAt:        strings.TrimSpace(v.GetString("report_at")),
		DefaultTagColor: strings.TrimSpace(v.GetString("default_tag_color")),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultDatabaseURL
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}
	if cfg.DefaultTagColor == "" {
		cfg.DefaultTagColor = defaultTagColor
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.ReportInterval == 0 {
		cfg.ReportInterval = defaultReportInterval
	}

	return cfg, nil
}

// RequireHTTP checks the settings the HTTP API cannot run without.
func (c Config) RequireHTTP() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

// RequireBot checks the settings the Telegram bot cannot run without.
func (c Config) RequireBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	return nil
}

func parseHours(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
