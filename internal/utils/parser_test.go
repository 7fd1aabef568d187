package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"brazilian with currency", "R$ 1.234,56", "1234.56"},
		{"plain integer", "500000", "500000"},
		{"negative", "-10,5", "-10.5"},
		{"millions", "12.345.678,90", "12345678.9"},
		{"empty", "", "0"},
		{"garbage", "abc", "0"},
		{"two commas", "1,2,3", "0"},
		{"only minus", "-", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.in)
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Fatalf("expected %s, got %s", want, got)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(decimal.RequireFromString("1234567.8")); got != "1.234.567,80" {
		t.Fatalf("expected 1.234.567,80, got %s", got)
	}
	if got := FormatAmount(decimal.RequireFromString("-12")); got != "-12,00" {
		t.Fatalf("expected -12,00, got %s", got)
	}
	if got := FormatAmount(decimal.Zero); got != "0,00" {
		t.Fatalf("expected 0,00, got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := ParseDate("15/03/2024"); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := ParseDate("2024-03-15"); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := ParseDate("nope"); !got.IsZero() {
		t.Fatalf("expected zero time, got %v", got)
	}
}

func TestTaxID(t *testing.T) {
	if got := DigitsOnly("12.345.678/0001-90"); got != "12345678000190" {
		t.Fatalf("unexpected digits %q", got)
	}
	if got := FormatTaxID("12345678000190"); got != "12.345.678/0001-90" {
		t.Fatalf("unexpected cnpj mask %q", got)
	}
	if got := FormatTaxID("12345678901"); got != "123.456.789-01" {
		t.Fatalf("unexpected cpf mask %q", got)
	}
}
