package model

import "time"

// PeriodSelector — выбор периода для отчёта.
type PeriodSelector string

const (
	PeriodToday PeriodSelector = "today"
	PeriodWeek  PeriodSelector = "week"
	PeriodMonth PeriodSelector = "month"
)

// Period — закрытый диапазон календарных дат для агрегации.
// Не хранится, вычисляется из селектора на момент запроса.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod вычисляет диапазон по селектору относительно now:
// today — текущий день, week — последние 7 дней, month — с первого
// числа текущего месяца. Неизвестный селектор трактуется как today.
func NewPeriod(sel PeriodSelector, now time.Time) Period {
	day := Midnight(now)
	switch sel {
	case PeriodWeek:
		return Period{Start: day.AddDate(0, 0, -7), End: day}
	case PeriodMonth:
		return Period{Start: time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC), End: day}
	default:
		return Period{Start: day, End: day}
	}
}

// Contains сообщает, попадает ли дата в диапазон (границы включительно).
func (p Period) Contains(date time.Time) bool {
	return !date.Before(p.Start) && !date.After(p.End)
}

// Midnight нормализует момент времени до календарной даты в UTC.
// Дата расхода — именно дата, а не момент, поэтому никакой
// конверсии часовых поясов здесь нет.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
