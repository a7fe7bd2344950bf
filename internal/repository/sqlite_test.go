package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/samulyakartem/family-expense-bot/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(
		filepath.Join(t.TempDir(), "expenses.db"),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(model.DateLayout, s, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestAppendExpense_AssignsMonotonicIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 3; i++ {
		record := &model.ExpenseRecord{
			UserID:   1,
			Amount:   decimal.NewFromInt(100),
			Category: "Кафе",
			Date:     mustDate(t, "2026-02-25"),
		}
		id, err := store.AppendExpense(ctx, record)
		if err != nil {
			t.Fatal(err)
		}
		if id <= prev {
			t.Errorf("id %d not greater than previous %d", id, prev)
		}
		if record.ID != id {
			t.Errorf("record.ID = %d, want %d", record.ID, id)
		}
		prev = id
	}
}

func TestRoles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Role(ctx, 1); !errors.Is(err, ErrNoRole) {
		t.Fatalf("err = %v, want ErrNoRole for unknown user", err)
	}

	if err := store.SetRole(ctx, 1, "Муж"); err != nil {
		t.Fatal(err)
	}
	role, err := store.Role(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if role != "Муж" {
		t.Errorf("role = %q, want Муж", role)
	}

	// Повторная привязка — upsert, не ошибка.
	if err := store.SetRole(ctx, 1, "Жена"); err != nil {
		t.Fatal(err)
	}
	role, err = store.Role(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if role != "Жена" {
		t.Errorf("role = %q, want overwritten binding", role)
	}
}

func TestSums(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetRole(ctx, 1, "Муж"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetRole(ctx, 2, "Жена"); err != nil {
		t.Fatal(err)
	}

	records := []model.ExpenseRecord{
		{UserID: 1, Amount: dec(t, "1500"), Category: "Кафе", Date: mustDate(t, "2026-02-25")},
		{UserID: 1, Amount: dec(t, "300.50"), Category: "Авто", Date: mustDate(t, "2026-02-18")}, // ровно start
		{UserID: 2, Amount: dec(t, "2000"), Category: "Кафе", Date: mustDate(t, "2026-02-20")},
		{UserID: 3, Amount: dec(t, "100"), Category: "Прочее", Date: mustDate(t, "2026-02-25")}, // без роли
		{UserID: 1, Amount: dec(t, "9999"), Category: "Ипотека", Date: mustDate(t, "2026-02-17")}, // вне диапазона
	}
	for i := range records {
		if _, err := store.AppendExpense(ctx, &records[i]); err != nil {
			t.Fatal(err)
		}
	}

	start, end := mustDate(t, "2026-02-18"), mustDate(t, "2026-02-25")

	t.Run("by role", func(t *testing.T) {
		sums, err := store.SumByRole(ctx, start, end)
		if err != nil {
			t.Fatal(err)
		}
		want := map[string]string{
			"Муж":          "1800.5",
			"Жена":         "2000",
			UnassignedRole: "100",
		}
		if len(sums) != len(want) {
			t.Fatalf("sums = %v, want %v", sums, want)
		}
		for role, w := range want {
			if !sums[role].Equal(dec(t, w)) {
				t.Errorf("role %q = %s, want %s", role, sums[role], w)
			}
		}
	})

	t.Run("by category", func(t *testing.T) {
		sums, err := store.SumByCategory(ctx, start, end)
		if err != nil {
			t.Fatal(err)
		}
		want := map[string]string{
			"Кафе":   "3500",
			"Авто":   "300.5",
			"Прочее": "100",
		}
		if len(sums) != len(want) {
			t.Fatalf("sums = %v, want %v", sums, want)
		}
		for cat, w := range want {
			if !sums[cat].Equal(dec(t, w)) {
				t.Errorf("category %q = %s, want %s", cat, sums[cat], w)
			}
		}
	})

	t.Run("empty range", func(t *testing.T) {
		sums, err := store.SumByCategory(ctx, mustDate(t, "2020-01-01"), mustDate(t, "2020-01-31"))
		if err != nil {
			t.Fatal(err)
		}
		if len(sums) != 0 {
			t.Errorf("sums = %v, want none", sums)
		}
	})
}

// Суммы складываются как decimal, а не float: 0.1 десять раз — ровно 1.
func TestSums_DecimalExact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		record := &model.ExpenseRecord{
			UserID:   1,
			Amount:   dec(t, "0.1"),
			Category: "Прочее",
			Date:     mustDate(t, "2026-02-25"),
		}
		if _, err := store.AppendExpense(ctx, record); err != nil {
			t.Fatal(err)
		}
	}

	sums, err := store.SumByCategory(ctx, mustDate(t, "2026-02-25"), mustDate(t, "2026-02-25"))
	if err != nil {
		t.Fatal(err)
	}
	if !sums["Прочее"].Equal(decimal.NewFromInt(1)) {
		t.Errorf("sum = %s, want exactly 1", sums["Прочее"])
	}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
