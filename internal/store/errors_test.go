package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil) {
		t.Error("nil error reported as unique violation")
	}
	if IsUniqueViolation(errors.New("create theme: boom")) {
		t.Error("plain error reported as unique violation")
	}

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "themes_active_name_idx"}
	if !IsUniqueViolation(pgErr) {
		t.Error("bare unique violation not detected")
	}
	if !IsUniqueViolation(fmt.Errorf("create theme: %w", pgErr)) {
		t.Error("wrapped unique violation not detected")
	}

	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign-key violation misreported as unique violation")
	}
}
