package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/samulyakartem/family-expense-bot/internal/bot"
	"github.com/samulyakartem/family-expense-bot/internal/config"
	"github.com/samulyakartem/family-expense-bot/internal/repository"
	"github.com/samulyakartem/family-expense-bot/internal/service"
	"github.com/samulyakartem/family-expense-bot/internal/session"
)

// Request — входящий запрос от API Gateway.
type Request struct {
	Body string `json:"body"`
}

// Response — ответ для API Gateway.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler обрабатывает одно webhook-обновление. Сессии живут в
// памяти процесса, поэтому между холодными стартами незавершённые
// вводы теряются — пользователь просто отправляет сумму заново.
func Handler(ctx context.Context, request Request) (*Response, error) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil)).
		With("request_id", uuid.NewString())

	cfg, err := config.Load()
	if err != nil {
		return errorResponse(logger, err)
	}

	store, err := repository.NewSQLiteStore(cfg.SQLiteDBPath, logger.With("component", "store"))
	if err != nil {
		return errorResponse(logger, err)
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
		return errorResponse(logger, err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(logger, err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(logger *slog.Logger, err error) (*Response, error) {
	logger.Error("webhook failed", "error", err)
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Точка входа для локального тестирования.
}
