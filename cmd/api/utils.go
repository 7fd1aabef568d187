package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/farxc/carteira-devedores/internal/validation"
	"github.com/shopspring/decimal"
)

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func queryBool(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}

// queryDecimal returns nil for an absent parameter and records a violation
// for a malformed one.
func queryDecimal(r *http.Request, key string, v validation.Violations) *decimal.Decimal {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		v[key] = "invalid_number"
		return nil
	}
	return &d
}

// queryTime accepts RFC 3339 or a plain YYYY-MM-DD date.
func queryTime(r *http.Request, key string, v validation.Violations) time.Time {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		v[key] = "invalid_date"
	}
	return t
}
