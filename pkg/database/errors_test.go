package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantConflict bool
	}{
		{"serialization failure", &pgconn.PgError{Code: CodeSerializationFailure}, true},
		{"deadlock", fmt.Errorf("update stock: %w", &pgconn.PgError{Code: CodeDeadlockDetected}), true},
		{"lock timeout", &pgconn.PgError{Code: CodeLockNotAvailable}, true},
		{"unique violation", &pgconn.PgError{Code: CodeUniqueViolation}, false},
		{"plain error", errors.New("connection reset"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if errors.Is(got, errkind.ErrConflict) != tt.wantConflict {
				t.Fatalf("MapError(%v) conflict = %v, want %v", tt.err, !tt.wantConflict, tt.wantConflict)
			}
			if !errors.Is(got, tt.err) {
				t.Fatal("mapped error must still wrap the original")
			}
		})
	}
}

func TestMapError_KeepsExistingKind(t *testing.T) {
	errLow := errkind.New(errkind.ErrInsufficientStock, "low")
	if got := MapError(errLow); got != errLow {
		t.Fatalf("expected error with kind to pass through, got %v", got)
	}
	if MapError(nil) != nil {
		t.Fatal("MapError(nil) must be nil")
	}
}

func TestPgCode(t *testing.T) {
	if got := PgCode(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: CodeCheckViolation})); got != CodeCheckViolation {
		t.Fatalf("PgCode = %q, want %q", got, CodeCheckViolation)
	}
	if got := PgCode(errors.New("x")); got != "" {
		t.Fatalf("PgCode = %q, want empty", got)
	}
}
