package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
)

func TestSentinelKinds(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{ErrOrderNotFound, errkind.ErrNotFound},
		{ErrIssuanceNotFound, errkind.ErrNotFound},
		{ErrNoMatchingItem, errkind.ErrNotFound},
		{ErrInvalidQuantity, errkind.ErrValidation},
		{ErrInvalidCaliber, errkind.ErrValidation},
		{ErrInvalidStatus, errkind.ErrValidation},
		{ErrIssuedExceedsRequested, errkind.ErrValidation},
		{ErrCaliberMismatch, errkind.ErrValidation},
		{ErrAmbiguousCaliber, errkind.ErrValidation},
		{ErrInvalidTransition, errkind.ErrInvalidTransition},
		{ErrNotOrderOwner, errkind.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("approve order: %w", tt.err)
			if !errors.Is(wrapped, tt.err) || !errors.Is(wrapped, tt.kind) {
				t.Fatalf("%v must match itself and %v", tt.err, tt.kind)
			}
		})
	}
}
