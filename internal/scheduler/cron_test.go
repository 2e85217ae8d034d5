package scheduler

import (
	"testing"
	"time"
)

func TestParseCron(t *testing.T) {
	expr, err := ParseCron("0 18 * * *")
	if err != nil {
		t.Fatalf("ParseCron: %v", err)
	}
	if expr.String() != "0 18 * * *" {
		t.Errorf("expected raw expression, got %q", expr.String())
	}

	if _, err := ParseCron("61 18 * * *"); err == nil {
		t.Error("expected error for out-of-range minute")
	}
}

func TestIsCron(t *testing.T) {
	tests := map[string]bool{
		"0 18 * * *": true,
		"0 9 * * 0":  true,
		"weekly":     false,
		"":           false,
		"every day":  false,
	}
	for tag, want := range tests {
		if got := IsCron(tag); got != want {
			t.Errorf("IsCron(%q) = %v, want %v", tag, got, want)
		}
	}
}

func TestNextRun(t *testing.T) {
	wednesday := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

	next, ok, err := NextRun("0 9 * * 0", wednesday)
	if err != nil || !ok {
		t.Fatalf("NextRun: ok=%v err=%v", ok, err)
	}
	sunday := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	if !next.Equal(sunday) {
		t.Errorf("expected %v, got %v", sunday, next)
	}

	if _, ok, err := NextRun("weekly", wednesday); ok || err != nil {
		t.Errorf("free-form tag: ok=%v err=%v", ok, err)
	}

	if _, _, err := NextRun("a b c d e", wednesday); err == nil {
		t.Error("expected error for malformed cron tag")
	}
}

func TestCronExpr_Matches(t *testing.T) {
	expr, err := ParseCron("0 18 * * *")
	if err != nil {
		t.Fatalf("ParseCron: %v", err)
	}
	if !expr.Matches(time.Date(2026, 10, 14, 18, 0, 42, 0, time.UTC)) {
		t.Error("expected match within 18:00")
	}
	if expr.Matches(time.Date(2026, 10, 14, 18, 1, 0, 0, time.UTC)) {
		t.Error("expected no match at 18:01")
	}
}
