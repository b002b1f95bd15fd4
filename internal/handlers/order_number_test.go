package handlers

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestFormatOrderNumber(t *testing.T) {
	if got := formatOrderNumber("KM", 42); got != "KM-000042" {
		t.Fatalf("expected KM-000042, got %s", got)
	}
	if got := formatOrderNumber("KM", 1234567); got != "KM-1234567" {
		t.Fatalf("expected KM-1234567, got %s", got)
	}
}

func TestFallbackOrderNumberIsTimestampDerived(t *testing.T) {
	before := time.Now().UnixMilli()
	got := fallbackOrderNumber("KM")
	after := time.Now().UnixMilli()

	if !strings.HasPrefix(got, "KM-") {
		t.Fatalf("expected KM- prefix, got %s", got)
	}

	millis, err := strconv.ParseInt(strings.TrimPrefix(got, "KM-"), 10, 64)
	if err != nil {
		t.Fatalf("expected numeric suffix, got %s", got)
	}
	if millis < before || millis > after {
		t.Fatalf("expected timestamp between %d and %d, got %d", before, after, millis)
	}
}
