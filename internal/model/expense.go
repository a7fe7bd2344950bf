package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRecord — одна запись о расходе. Неизменяема после создания,
// ID присваивается хранилищем.
type ExpenseRecord struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"user_id"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     time.Time       `json:"date"` // календарная дата, без времени
}

// DateLayout — формат хранения даты записи.
const DateLayout = "2006-01-02"

// Categories — фиксированный набор категорий. Порядок общий для
// клавиатуры выбора и для отчётов.
var Categories = []string{
	"Здоровье/медицина",
	"Авто",
	"Путешествие",
	"Подарки",
	"Ашан/Яблоко",
	"Привоз",
	"Ипотека",
	"Кафе",
	"Коммуналка",
	"Прочее",
}

// KnownCategory проверяет, что метка входит в набор категорий.
func KnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
