package main

import (
	"log/slog"
	"os"

	"github.com/samulyakartem/family-expense-bot/internal/bot"
	"github.com/samulyakartem/family-expense-bot/internal/config"
	"github.com/samulyakartem/family-expense-bot/internal/repository"
	"github.com/samulyakartem/family-expense-bot/internal/service"
	"github.com/samulyakartem/family-expense-bot/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	store, err := repository.NewSQLiteStore(cfg.SQLiteDBPath, logger.With("component", "store"))
	if err != nil {
		logger.Error("open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	tracker := service.NewExpenseTracker(
		store,
		session.NewMemory(),
		cfg.Roles,
		logger.With("component", "tracker"),
	)

	b, err := bot.NewBot(cfg.TelegramToken, tracker, logger.With("component", "bot"))
	if err != nil {
		logger.Error("create bot", "error", err)
		os.Exit(1)
	}

	logger.Info("bot started", "db", cfg.SQLiteDBPath, "roles", cfg.Roles)
	if err := b.Start(); err != nil {
		logger.Error("bot stopped", "error", err)
		os.Exit(1)
	}
}
