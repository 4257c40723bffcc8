package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

func TestNullIntPtr(t *testing.T) {
	t.Run("returns nil for null", func(t *testing.T) {
		if got := nullIntPtr(sql.NullInt64{}); got != nil {
			t.Fatalf("expected nil, got %d", *got)
		}
	})

	t.Run("returns value for valid", func(t *testing.T) {
		got := nullIntPtr(sql.NullInt64{Int64: 12, Valid: true})
		if got == nil || *got != 12 {
			t.Fatalf("expected 12, got %v", got)
		}
	})
}

func TestIntPtrToNull(t *testing.T) {
	t.Run("nil pointer is null", func(t *testing.T) {
		if got := intPtrToNull(nil); got.Valid {
			t.Fatalf("expected invalid null int, got %+v", got)
		}
	})

	t.Run("zero is a valid value", func(t *testing.T) {
		zero := 0
		got := intPtrToNull(&zero)
		if !got.Valid || got.Int64 != 0 {
			t.Fatalf("expected valid zero, got %+v", got)
		}
	})
}

func TestNullTimePtr(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	in := time.Date(2024, 9, 15, 13, 0, 0, 0, loc)

	got := nullTimePtr(sql.NullTime{Time: in, Valid: true})
	if got == nil {
		t.Fatalf("expected time, got nil")
	}
	if got.Location() != time.UTC || !got.Equal(in) {
		t.Fatalf("expected same instant in UTC, got %s", got)
	}
	if nullTimePtr(sql.NullTime{}) != nil {
		t.Fatalf("expected nil for null time")
	}
}

func TestOptionalString(t *testing.T) {
	if got := optionalString("  "); got != nil {
		t.Fatalf("expected nil for blank, got %q", *got)
	}
	got := optionalString(" boom ")
	if got == nil || *got != "boom" {
		t.Fatalf("expected trimmed value, got %v", got)
	}
}

func TestUpsertAll_NoRowsSkipsDatabase(t *testing.T) {
	if err := upsertAll[gameModel](context.Background(), nil, "games", nil, []string{"id"}); err != nil {
		t.Fatalf("expected nil error for empty batch, got %v", err)
	}
}
