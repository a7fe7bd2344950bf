package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/samulyakartem/family-expense-bot/internal/model"
)

// ErrNoRole — для пользователя нет привязки роли.
var ErrNoRole = errors.New("no role for user")

// UnassignedRole — ключ, под которым в SumByRole попадают записи
// пользователей без привязки роли. Так общий итог всегда равен
// сумме по ролям и сумме по категориям.
const UnassignedRole = ""

// Store — долговременное хранилище записей о расходах и привязок
// ролей. Записи только добавляются, id назначает хранилище.
type Store interface {
	// AppendExpense сохраняет запись и возвращает её id.
	AppendExpense(ctx context.Context, record *model.ExpenseRecord) (int64, error)
	// Role возвращает роль пользователя или ErrNoRole.
	Role(ctx context.Context, userID int64) (string, error)
	// SetRole создаёт или перезаписывает привязку роли.
	SetRole(ctx context.Context, userID int64, role string) error
	// SumByRole суммирует расходы по ролям за диапазон дат
	// (границы включительно). Пользователи без роли попадают
	// под ключ UnassignedRole.
	SumByRole(ctx context.Context, start, end time.Time) (map[string]decimal.Decimal, error)
	// SumByCategory суммирует расходы по категориям за диапазон
	// дат по всем пользователям.
	SumByCategory(ctx context.Context, start, end time.Time) (map[string]decimal.Decimal, error)
}
