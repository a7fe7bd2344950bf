package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/samulyakartem/family-expense-bot/internal/model"
	"github.com/samulyakartem/family-expense-bot/internal/repository"
)

// RoleSum — сумма расходов одной роли за период.
type RoleSum struct {
	Role string
	Sum  decimal.Decimal
}

// CategorySum — сумма расходов по одной категории за период.
type CategorySum struct {
	Name string
	Sum  decimal.Decimal
}

// Report — агрегированный отчёт за период. Роли и категории без
// записей в списки не попадают.
type Report struct {
	Period     model.Period
	Roles      []RoleSum
	Total      decimal.Decimal
	Categories []CategorySum
}

// Empty сообщает, что за период не нашлось ни одной записи.
func (r *Report) Empty() bool {
	return len(r.Categories) == 0
}

// BuildReport считает суммы по ролям и категориям за период.
// Записи пользователей без роли учитываются под отдельной ролью
// "Без роли", поэтому итог всегда сходится с разбивкой по категориям.
func (t *ExpenseTracker) BuildReport(ctx context.Context, sel model.PeriodSelector) (*Report, error) {
	period := model.NewPeriod(sel, t.now())

	roleSums, err := t.store.SumByRole(ctx, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("sum by role: %w", err)
	}
	categorySums, err := t.store.SumByCategory(ctx, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}

	report := &Report{Period: period}

	names := make([]string, 0, len(roleSums))
	for role := range roleSums {
		if role != repository.UnassignedRole {
			names = append(names, role)
		}
	}
	sort.Strings(names)
	for _, role := range names {
		report.Roles = append(report.Roles, RoleSum{Role: role, Sum: roleSums[role]})
		report.Total = report.Total.Add(roleSums[role])
	}
	if sum, ok := roleSums[repository.UnassignedRole]; ok {
		report.Roles = append(report.Roles, RoleSum{Role: unassignedLabel, Sum: sum})
		report.Total = report.Total.Add(sum)
	}

	// Порядок категорий — как в клавиатуре выбора.
	for _, cat := range model.Categories {
		if sum, ok := categorySums[cat]; ok {
			report.Categories = append(report.Categories, CategorySum{Name: cat, Sum: sum})
		}
	}

	return report, nil
}

// FormatReport превращает отчёт в текст ответа. Пустой период —
// отдельное сообщение вместо нулевого отчёта.
func FormatReport(r *Report) *Reply {
	if r.Empty() {
		return &Reply{Text: msgEmptyPeriod, EditOriginal: true}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Отчет %s — %s\n\n",
		r.Period.Start.Format("02.01.2006"),
		r.Period.End.Format("02.01.2006"))

	for _, rs := range r.Roles {
		fmt.Fprintf(&b, "%s: %s ₽\n", rs.Role, rs.Sum.String())
	}
	fmt.Fprintf(&b, "Итого: %s ₽\n\nПо категориям:\n", r.Total.String())

	for _, cs := range r.Categories {
		fmt.Fprintf(&b, "• %s: %s ₽\n", cs.Name, cs.Sum.String())
	}

	return &Reply{Text: b.String(), EditOriginal: true}
}
