package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingKind — на каком шаге застрял незавершённый ввод.
type PendingKind int

const (
	// AwaitingRole — текст пришёл от пользователя без роли,
	// ждём выбора роли.
	AwaitingRole PendingKind = iota
	// AwaitingCategory — сумма и дата разобраны, ждём категорию.
	AwaitingCategory
)

// PendingEntry — незавершённый ввод расхода. Живёт только в памяти
// процесса, на пользователя — не больше одной записи.
type PendingEntry struct {
	Kind PendingKind

	// RawText — исходное сообщение, заполнено для AwaitingRole.
	RawText string

	// Amount и Date заполнены для AwaitingCategory.
	Amount decimal.Decimal
	Date   time.Time
}
