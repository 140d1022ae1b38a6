package models

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Caliber is a value object naming an ammunition caliber, e.g. "9mm" or ".45 ACP".
// Encapsulates validation rules: trimmed, 1 <= runes <= 50, no control characters.
// Calibers are not unique across inventory items.
type Caliber string

const (
	minCaliberLength = 1
	maxCaliberLength = 50
)

// NewCaliber trims s and returns a valid Caliber or an error if constraints are violated.
func NewCaliber(s string) (Caliber, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < minCaliberLength {
		return "", fmt.Errorf("caliber must be at least %d character", minCaliberLength)
	}
	if n > maxCaliberLength {
		return "", fmt.Errorf("caliber must not exceed %d characters", maxCaliberLength)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("caliber must not contain control characters")
		}
	}
	return Caliber(s), nil
}

// Matches reports whether c and other name the same caliber, ignoring case.
func (c Caliber) Matches(other Caliber) bool {
	return strings.EqualFold(string(c), string(other))
}

// String returns the underlying string value.
func (c Caliber) String() string {
	return string(c)
}

// ValidCaliber reports whether s would be accepted by NewCaliber.
func ValidCaliber(s string) bool {
	_, err := NewCaliber(s)
	return err == nil
}
