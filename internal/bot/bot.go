package bot

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/samulyakartem/family-expense-bot/internal/charts"
	"github.com/samulyakartem/family-expense-bot/internal/model"
	"github.com/samulyakartem/family-expense-bot/internal/service"
)

const msgUsage = "Отправь сумму и (опционально) дату.\nПример:\n1500\n2000 25.02.2026"

// Bot — адаптер Telegram-шлюза: принимает обновления и переводит
// ответы диалога в вызовы Bot API.
type Bot struct {
	api     *tgbotapi.BotAPI
	service *service.ExpenseTracker
	charts  *charts.Generator
	log     *slog.Logger
}

func NewBot(token string, svc *service.ExpenseTracker, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		service: svc,
		charts:  charts.NewGenerator(),
		log:     log,
	}, nil
}

// Start запускает бота в режиме long polling.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		// Ошибка одного обновления не останавливает бота.
		if err := b.handleUpdate(update); err != nil {
			b.log.Error("handle update", "error", err)
		}
	}

	return nil
}

// HandleWebhook — точка входа для входящих webhook-обновлений.
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(update)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	ctx := context.Background()

	if update.CallbackQuery != nil {
		return b.handleCallback(ctx, update.CallbackQuery)
	}

	if update.Message == nil {
		return nil
	}

	if update.Message.IsCommand() {
		b.handleCommand(update.Message)
		return nil
	}

	return b.handleMessage(ctx, update.Message)
}

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		msg := tgbotapi.NewMessage(message.Chat.ID, msgUsage)
		msg.ReplyMarkup = b.getMainKeyboard()
		b.api.Send(msg)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	reply, err := b.service.HandleText(ctx, message.From.ID, message.Text)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Не получилось обработать сообщение, попробуй ещё раз")
		return err
	}

	b.sendReply(message.Chat.ID, 0, reply)
	return nil
}

// handleCallback обрабатывает нажатие inline-кнопки. Callback
// подтверждается ровно один раз на любом исходе, иначе клиент
// бесконечно показывает ожидание.
func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	defer func() {
		response := tgbotapi.NewCallback(callback.ID, "")
		if _, err := b.api.Request(response); err != nil {
			b.log.Error("answer callback", "error", err)
		}
	}()

	if callback.Message == nil {
		return nil
	}
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID
	userID := callback.From.ID

	var (
		reply *service.Reply
		err   error
	)

	switch {
	case strings.HasPrefix(callback.Data, service.RolePrefix):
		role := strings.TrimPrefix(callback.Data, service.RolePrefix)
		reply, err = b.service.SelectRole(ctx, userID, role)
		if errors.Is(err, service.ErrStaleSession) {
			// Роль привязана, но повторять уже нечего.
			b.log.Warn("role selected without pending entry", "user_id", userID)
			return nil
		}

	case strings.HasPrefix(callback.Data, service.CategoryPrefix):
		category := strings.TrimPrefix(callback.Data, service.CategoryPrefix)
		reply, err = b.service.SelectCategory(ctx, userID, category)

	case strings.HasPrefix(callback.Data, service.PeriodPrefix):
		return b.handlePeriod(ctx, chatID, messageID, callback.Data)

	default:
		b.log.Debug("unexpected callback payload", "data", callback.Data)
		return nil
	}

	if errors.Is(err, service.ErrUnknownSelection) {
		b.log.Debug("unknown selection", "data", callback.Data)
		return nil
	}
	if err != nil {
		b.sendErrorMessage(chatID, "Не удалось сохранить, попробуй ещё раз")
		return err
	}

	b.sendReply(chatID, messageID, reply)
	return nil
}

func (b *Bot) handlePeriod(ctx context.Context, chatID int64, messageID int, data string) error {
	sel := model.PeriodSelector(strings.TrimPrefix(data, service.PeriodPrefix))
	switch sel {
	case model.PeriodToday, model.PeriodWeek, model.PeriodMonth:
	default:
		b.log.Debug("unknown period selection", "data", data)
		return nil
	}

	report, err := b.service.BuildReport(ctx, sel)
	if err != nil {
		b.sendErrorMessage(chatID, "Ошибка при формировании отчёта")
		return err
	}

	b.sendReply(chatID, messageID, service.FormatReport(report))

	if report.Empty() {
		return nil
	}

	png, err := b.charts.CategoryBar(report.Categories)
	if err != nil {
		// Текстовый отчёт уже отправлен, график не критичен.
		b.log.Error("render chart", "error", err)
		return nil
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "report.png", Bytes: png})
	if _, err := b.api.Send(photo); err != nil {
		b.log.Error("send chart", "error", err)
	}
	return nil
}

// sendReply отправляет ответ диалога: новое сообщение или правку
// исходного, если ответ этого просит и исходное известно.
func (b *Bot) sendReply(chatID int64, messageID int, reply *service.Reply) {
	if reply == nil {
		return
	}

	if reply.EditOriginal && messageID != 0 {
		edit := tgbotapi.NewEditMessageText(chatID, messageID, reply.Text)
		if _, err := b.api.Send(edit); err != nil {
			b.log.Error("edit message", "error", err)
		}
		return
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if len(reply.Buttons) > 0 {
		msg.ReplyMarkup = inlineKeyboard(reply.Buttons)
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message", "error", err)
	}
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	b.api.Send(msg)
}
