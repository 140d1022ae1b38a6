package errkind

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew_MatchesSentinelAndKind(t *testing.T) {
	errThing := New(ErrNotFound, "thing not found")
	wrapped := fmt.Errorf("load thing: %w", errThing)

	if !errors.Is(wrapped, errThing) {
		t.Fatal("errors.Is must match the specific sentinel")
	}
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatal("errors.Is must match the kind")
	}
	if errors.Is(wrapped, ErrValidation) {
		t.Fatal("errors.Is must not match an unrelated kind")
	}
	if errThing.Error() != "thing not found" {
		t.Fatalf("unexpected message: %q", errThing.Error())
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"validation", New(ErrValidation, "bad"), ErrValidation},
		{"wrapped insufficient stock", fmt.Errorf("approve: %w", New(ErrInsufficientStock, "low")), ErrInsufficientStock},
		{"bare kind", ErrConflict, ErrConflict},
		{"unknown", errors.New("db down"), nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Fatalf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(fmt.Errorf("tx: %w", ErrConflict)) {
		t.Fatal("wrapped conflict must be retryable")
	}
	if IsRetryable(New(ErrInsufficientStock, "low")) {
		t.Fatal("insufficient stock must not be retryable")
	}
}

func TestLabel(t *testing.T) {
	tests := map[string]error{
		"validation":         New(ErrValidation, "bad"),
		"not_found":          fmt.Errorf("get: %w", New(ErrNotFound, "gone")),
		"invalid_transition": ErrInvalidTransition,
		"insufficient_stock": ErrInsufficientStock,
		"conflict":           ErrConflict,
		"forbidden":          ErrForbidden,
		"unauthenticated":    ErrUnauthenticated,
		"internal":           errors.New("db down"),
	}
	for want, err := range tests {
		if got := Label(err); got != want {
			t.Errorf("Label(%v) = %q, want %q", err, got, want)
		}
	}
}
