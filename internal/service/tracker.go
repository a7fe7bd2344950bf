package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samulyakartem/family-expense-bot/internal/model"
	"github.com/samulyakartem/family-expense-bot/internal/parser"
	"github.com/samulyakartem/family-expense-bot/internal/repository"
	"github.com/samulyakartem/family-expense-bot/internal/session"
)

// StatsTrigger — зарезервированный текст кнопки статистики.
const StatsTrigger = "📊 Статистика"

// Префиксы payload'ов inline-кнопок. Разбор префикса — дело
// транспортного слоя, сами значения определяет диалог.
const (
	RolePrefix     = "role_"
	CategoryPrefix = "category_"
	PeriodPrefix   = "period_"
)

var (
	// ErrStaleSession — нажатие кнопки, для которого уже нет
	// незавершённого ввода.
	ErrStaleSession = errors.New("no pending entry for user")
	// ErrUnknownSelection — payload вне ожидаемого набора значений.
	ErrUnknownSelection = errors.New("selection outside known set")
)

const (
	msgExample      = "Пример: 1500 или 1500 25.02.2026"
	msgBadDate      = "❌ Неверный формат даты. Используй 25.02.2026"
	msgPickRole     = "Кто записывает расход?"
	msgPickCategory = "Выбери категорию:"
	msgPickPeriod   = "За какой период?"
	msgEmptyPeriod  = "За выбранный период расходов нет 🤷"
	confirmTemplate = "✅ Записал: %s ₽\nКатегория: %s\nДата: %s"
	unassignedLabel = "Без роли"
)

// Button — одна inline-кнопка ответа.
type Button struct {
	Label string
	Data  string
}

// Reply — ответ диалога, не привязанный к транспорту. EditOriginal
// просит шлюз заменить текст исходного сообщения вместо отправки
// нового.
type Reply struct {
	Text         string
	Buttons      [][]Button
	EditOriginal bool
}

// ExpenseTracker — конечный автомат диалога: превращает цепочку
// сообщений и нажатий кнопок одного пользователя в записи о расходах
// и отвечает на запросы статистики.
type ExpenseTracker struct {
	store    repository.Store
	sessions session.Tracker
	roles    []string
	log      *slog.Logger
	now      func() time.Time
}

// NewExpenseTracker создаёт автомат. roles — варианты для кнопок
// выбора роли; агрегация при этом работает по любым ролям из данных.
func NewExpenseTracker(store repository.Store, sessions session.Tracker, roles []string, log *slog.Logger) *ExpenseTracker {
	return &ExpenseTracker{
		store:    store,
		sessions: sessions,
		roles:    roles,
		log:      log,
		now:      time.Now,
	}
}

// HandleText обрабатывает входящее текстовое сообщение.
// Приоритет: триггер статистики, затем привязка роли, затем разбор
// строки расхода.
func (t *ExpenseTracker) HandleText(ctx context.Context, userID int64, text string) (*Reply, error) {
	if text == StatsTrigger {
		return t.periodPrompt(), nil
	}

	_, err := t.store.Role(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNoRole):
		// Текст разберём после выбора роли.
		if t.sessions.Has(userID) {
			t.log.DebugContext(ctx, "pending entry discarded by new message", "user_id", userID)
		}
		t.sessions.Set(userID, model.PendingEntry{Kind: model.AwaitingRole, RawText: text})
		return t.rolePrompt(), nil
	case err != nil:
		return nil, fmt.Errorf("get role: %w", err)
	}

	return t.startEntry(ctx, userID, text)
}

// startEntry — общий шаг разбора строки расхода. Вызывается и для
// свежего сообщения, и при повторе сохранённого текста после
// привязки роли.
func (t *ExpenseTracker) startEntry(ctx context.Context, userID int64, text string) (*Reply, error) {
	entry, err := parser.Parse(text, t.now())
	switch {
	case errors.Is(err, parser.ErrDateFormat):
		return &Reply{Text: msgBadDate}, nil
	case err != nil:
		return &Reply{Text: msgExample}, nil
	}

	if t.sessions.Has(userID) {
		t.log.DebugContext(ctx, "pending entry discarded by new message", "user_id", userID)
	}
	t.sessions.Set(userID, model.PendingEntry{
		Kind:   model.AwaitingCategory,
		Amount: entry.Amount,
		Date:   entry.Date,
	})

	return t.categoryPrompt(), nil
}

// SelectRole обрабатывает нажатие кнопки выбора роли: привязывает
// роль и повторяет отложенный текст через общий шаг разбора.
func (t *ExpenseTracker) SelectRole(ctx context.Context, userID int64, role string) (*Reply, error) {
	if !t.knownRole(role) {
		return nil, ErrUnknownSelection
	}

	if err := t.store.SetRole(ctx, userID, role); err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}

	pending, ok := t.sessions.Take(userID)
	if !ok || pending.Kind != model.AwaitingRole {
		return nil, ErrStaleSession
	}

	return t.startEntry(ctx, userID, pending.RawText)
}

// SelectCategory обрабатывает нажатие кнопки категории. Устаревшее
// нажатие (записи уже нет — повторный клик или рестарт процесса)
// подтверждается молча, без записи и без ошибки пользователю.
func (t *ExpenseTracker) SelectCategory(ctx context.Context, userID int64, category string) (*Reply, error) {
	if !model.KnownCategory(category) {
		return nil, ErrUnknownSelection
	}

	pending, ok := t.sessions.Take(userID)
	if !ok || pending.Kind != model.AwaitingCategory {
		t.log.DebugContext(ctx, "stale category selection", "user_id", userID, "category", category)
		return nil, nil
	}

	record := &model.ExpenseRecord{
		UserID:   userID,
		Amount:   pending.Amount,
		Category: category,
		Date:     pending.Date,
	}
	// Запись не возвращается в трекер при ошибке: пользователь не
	// увидит подтверждения и просто отправит сумму ещё раз.
	if _, err := t.store.AppendExpense(ctx, record); err != nil {
		return nil, fmt.Errorf("append expense: %w", err)
	}

	return &Reply{
		Text: fmt.Sprintf(confirmTemplate,
			record.Amount.String(),
			record.Category,
			record.Date.Format(model.DateLayout)),
		EditOriginal: true,
	}, nil
}

func (t *ExpenseTracker) knownRole(role string) bool {
	for _, r := range t.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (t *ExpenseTracker) rolePrompt() *Reply {
	row := make([]Button, 0, len(t.roles))
	for _, role := range t.roles {
		row = append(row, Button{Label: role, Data: RolePrefix + role})
	}
	return &Reply{
		Text:    msgPickRole,
		Buttons: [][]Button{row},
	}
}

func (t *ExpenseTracker) categoryPrompt() *Reply {
	// Категории по две в ряд, как в исходной клавиатуре.
	var buttons [][]Button
	var row []Button
	for _, cat := range model.Categories {
		row = append(row, Button{Label: cat, Data: CategoryPrefix + cat})
		if len(row) == 2 {
			buttons = append(buttons, row)
			row = nil
		}
	}
	if len(row) > 0 {
		buttons = append(buttons, row)
	}
	return &Reply{
		Text:    msgPickCategory,
		Buttons: buttons,
	}
}

func (t *ExpenseTracker) periodPrompt() *Reply {
	return &Reply{
		Text: msgPickPeriod,
		Buttons: [][]Button{{
			{Label: "Сегодня", Data: PeriodPrefix + string(model.PeriodToday)},
			{Label: "Неделя", Data: PeriodPrefix + string(model.PeriodWeek)},
			{Label: "Месяц", Data: PeriodPrefix + string(model.PeriodMonth)},
		}},
	}
}
