package parser

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/samulyakartem/family-expense-bot/internal/model"
)

var (
	// ErrParse — в начале текста нет суммы.
	ErrParse = errors.New("no amount in message")
	// ErrDateFormat — токен похож на дату, но датой не является.
	ErrDateFormat = errors.New("bad date format")
)

// Строка расхода: сумма, опционально дробная часть, опционально
// дата в виде дд.мм.гггг. Хвост после совпадения не проверяется.
var entryRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(\d{2}\.\d{2}\.\d{4})?`)

const dateLayout = "02.01.2006"

// Entry — разобранная строка расхода.
type Entry struct {
	Amount decimal.Decimal
	Date   time.Time
}

// Parse извлекает из текста сумму и дату. Дата по умолчанию —
// календарная дата now. Нулевая сумма отклоняется наравне с
// отсутствующей: запись без денег смысла не имеет.
// Функция чистая, now передаётся снаружи.
func Parse(text string, now time.Time) (Entry, error) {
	m := entryRe.FindStringSubmatch(text)
	if m == nil {
		return Entry{}, ErrParse
	}

	amount, err := decimal.NewFromString(m[1])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if amount.IsZero() {
		return Entry{}, ErrParse
	}

	date := model.Midnight(now)
	if m[2] != "" {
		// Календарная дата без привязки к часовому поясу.
		parsed, err := time.ParseInLocation(dateLayout, m[2], time.UTC)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: %q", ErrDateFormat, m[2])
		}
		date = parsed
	}

	return Entry{Amount: amount, Date: date}, nil
}
