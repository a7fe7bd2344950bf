package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/samulyakartem/family-expense-bot/internal/model"
)

// SQLiteStore реализует Store поверх файловой базы SQLite.
type SQLiteStore struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSQLiteStore(dbPath string, log *slog.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, log: log}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) AppendExpense(ctx context.Context, record *model.ExpenseRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, amount, category, date) VALUES (?, ?, ?, ?)`,
		record.UserID,
		record.Amount.String(),
		record.Category,
		record.Date.Format(model.DateLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense id: %w", err)
	}
	record.ID = id

	s.log.InfoContext(ctx, "expense saved",
		"id", id,
		"user_id", record.UserID,
		"amount", record.Amount.String(),
		"category", record.Category,
		"date", record.Date.Format(model.DateLayout))

	return id, nil
}

func (s *SQLiteStore) Role(ctx context.Context, userID int64) (string, error) {
	var role string
	err := s.db.QueryRowContext(ctx,
		`SELECT role FROM roles WHERE user_id = ?`, userID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoRole
	}
	if err != nil {
		return "", fmt.Errorf("select role: %w", err)
	}
	return role, nil
}

func (s *SQLiteStore) SetRole(ctx context.Context, userID int64, role string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO roles (user_id, role) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET role = excluded.role`,
		userID, role)
	if err != nil {
		return fmt.Errorf("upsert role: %w", err)
	}
	return nil
}

// SumByRole суммирует в Go поверх decimal: SUM в SQLite считал бы
// текстовые суммы как float.
func (s *SQLiteStore) SumByRole(ctx context.Context, start, end time.Time) (map[string]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT COALESCE(r.role, ''), e.amount
		 FROM expenses e
		 LEFT JOIN roles r ON r.user_id = e.user_id
		 WHERE e.date BETWEEN ? AND ?`,
		start.Format(model.DateLayout), end.Format(model.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("select expenses by role: %w", err)
	}
	defer rows.Close()

	return sumRows(rows)
}

func (s *SQLiteStore) SumByCategory(ctx context.Context, start, end time.Time) (map[string]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.category, e.amount
		 FROM expenses e
		 WHERE e.date BETWEEN ? AND ?`,
		start.Format(model.DateLayout), end.Format(model.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("select expenses by category: %w", err)
	}
	defer rows.Close()

	return sumRows(rows)
}

func sumRows(rows *sql.Rows) (map[string]decimal.Decimal, error) {
	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("stored amount %q: %w", raw, err)
		}
		sums[key] = sums[key].Add(amount)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}
	return sums, nil
}
