package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config — настройки процесса из окружения.
type Config struct {
	TelegramToken string
	SQLiteDBPath  string
	Roles         []string
	LogLevel      slog.Level
}

// Load читает конфигурацию из окружения; .env подхватывается,
// если есть.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/expenses.db"),
		Roles:         splitRoles(getEnv("BOT_ROLES", "Муж,Жена")),
		LogLevel:      parseLevel(getEnv("LOG_LEVEL", "info")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные поля.
func (c *Config) Validate() error {
	var errs []string

	if c.TelegramToken == "" {
		errs = append(errs, "TELEGRAM_TOKEN is required")
	}
	if c.SQLiteDBPath == "" {
		errs = append(errs, "SQLITE_DB_PATH cannot be empty")
	}
	if len(c.Roles) == 0 {
		errs = append(errs, "BOT_ROLES must name at least one role")
	}
	seen := make(map[string]bool)
	for _, role := range c.Roles {
		if seen[role] {
			errs = append(errs, fmt.Sprintf("duplicate role %q in BOT_ROLES", role))
		}
		seen[role] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func splitRoles(raw string) []string {
	var roles []string
	for _, part := range strings.Split(raw, ",") {
		if role := strings.TrimSpace(part); role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
