package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
)

func TestSentinelErrors_Kinds(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{ErrItemNotFound, errkind.ErrNotFound},
		{ErrInvalidCaliber, errkind.ErrValidation},
		{ErrInvalidQuantity, errkind.ErrValidation},
		{ErrEmptyUpdate, errkind.ErrValidation},
		{ErrInsufficientStock, errkind.ErrInsufficientStock},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Fatalf("%v must be of kind %v", tt.err, tt.kind)
			}
		})
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("%w: %w", ErrInvalidQuantity, errors.New("must be positive"))
	if !errors.Is(wrapped, ErrInvalidQuantity) {
		t.Fatal("errors.Is must match wrapped ErrInvalidQuantity")
	}
	if errors.Is(wrapped, ErrInvalidCaliber) {
		t.Fatal("sentinels of the same kind must stay distinct")
	}
}
