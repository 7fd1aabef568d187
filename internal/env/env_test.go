package env

import (
	"testing"
	"time"
)

func TestGetters(t *testing.T) {
	t.Setenv("CRM_TEST_INT", "42")
	t.Setenv("CRM_TEST_BAD_INT", "x")
	t.Setenv("CRM_TEST_BOOL", "true")
	t.Setenv("CRM_TEST_DURATION", "90s")

	if got := GetString("CRM_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := GetInt("CRM_TEST_INT", 1); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := GetInt("CRM_TEST_BAD_INT", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
	if got := GetBool("CRM_TEST_BOOL", false); !got {
		t.Fatalf("expected true")
	}
	if got := GetDuration("CRM_TEST_DURATION", time.Second); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
}
