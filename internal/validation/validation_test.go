package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Kind  string `json:"kind" validate:"omitempty,oneof=a b"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Email: "not-an-email", Kind: "c"})
	fields, ok := Fields(err)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if fields["name"] != "required" || fields["email"] != "invalid_email" || !strings.HasPrefix(fields["kind"], "must_be_one_of") {
		t.Fatalf("unexpected violations %v", fields)
	}
	if !strings.Contains(err.Error(), "email: invalid_email") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestStructValid(t *testing.T) {
	if err := Struct(sample{Name: "Ana", Email: "ana@example.com"}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestViolations(t *testing.T) {
	v := Violations{}
	Required("title", "  ", v)
	Positive("target", decimal.Zero, v)
	NotNegative("current", decimal.NewFromInt(-1), v)
	if len(v) != 3 {
		t.Fatalf("expected 3 violations, got %v", v)
	}
	var verr *Error
	if !errors.As(v.AsError(), &verr) {
		t.Fatalf("expected *Error")
	}
	if (Violations{}).AsError() != nil {
		t.Fatalf("expected nil for empty violations")
	}
}
