package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 2, 25, 15, 4, 5, 0, time.UTC)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantAmount string
		wantDate   string
		wantErr    error
	}{
		{
			name:       "amount only defaults to today",
			text:       "1500",
			wantAmount: "1500",
			wantDate:   "2026-02-25",
		},
		{
			name:       "amount with date",
			text:       "2000 25.02.2026",
			wantAmount: "2000",
			wantDate:   "2026-02-25",
		},
		{
			name:       "fractional amount",
			text:       "99.90",
			wantAmount: "99.9",
			wantDate:   "2026-02-25",
		},
		{
			name:       "date in the past",
			text:       "300 01.12.2025",
			wantAmount: "300",
			wantDate:   "2025-12-01",
		},
		{
			name:       "trailing text ignored",
			text:       "1500 25.02.2026 обед",
			wantAmount: "1500",
			wantDate:   "2026-02-25",
		},
		{
			name:       "amount with non-numeric tail",
			text:       "12abc",
			wantAmount: "12",
			wantDate:   "2026-02-25",
		},
		{
			name:    "no amount",
			text:    "abc",
			wantErr: ErrParse,
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: ErrParse,
		},
		{
			name:    "negative amount",
			text:    "-100",
			wantErr: ErrParse,
		},
		{
			name:    "zero amount rejected",
			text:    "0",
			wantErr: ErrParse,
		},
		{
			name:    "zero with fraction rejected",
			text:    "0.00",
			wantErr: ErrParse,
		},
		{
			name:    "impossible calendar date",
			text:    "1500 31.02.2026",
			wantErr: ErrDateFormat,
		},
		{
			name:    "date-shaped garbage",
			text:    "1500 99.99.2026",
			wantErr: ErrDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := Parse(tt.text, testNow)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.text, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.text, err)
			}
			if want, _ := decimal.NewFromString(tt.wantAmount); !entry.Amount.Equal(want) {
				t.Errorf("amount = %s, want %s", entry.Amount, tt.wantAmount)
			}
			if got := entry.Date.Format("2006-01-02"); got != tt.wantDate {
				t.Errorf("date = %s, want %s", got, tt.wantDate)
			}
		})
	}
}

func TestParse_RepeatedCallsSameDay(t *testing.T) {
	first, err := Parse("1500", testNow)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Parse("1500", testNow.Add(3*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if !first.Date.Equal(second.Date) {
		t.Errorf("dates differ within same day: %v vs %v", first.Date, second.Date)
	}
}

func TestParse_DateRoundTrip(t *testing.T) {
	entry, err := Parse("2000 25.02.2026", testNow)
	if err != nil {
		t.Fatal(err)
	}

	again, err := Parse("2000 "+entry.Date.Format("02.01.2006"), testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !entry.Date.Equal(again.Date) {
		t.Errorf("round trip drift: %v vs %v", entry.Date, again.Date)
	}
}
