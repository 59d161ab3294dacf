package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxRoomNameLength bounds room names so they stay usable as SVG ids and
// DOT node names.
const maxRoomNameLength = 128

// ValidateRoomName validates a room name for use as a registry key.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No '#' (reserved as the instance separator, e.g. "Bedroom#2")
//   - Maximum length of 128 characters
func ValidateRoomName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "room name cannot be empty")
	}

	if len(name) > maxRoomNameLength {
		return New(ErrCodeInvalidInput, "room name too long (max %d characters)", maxRoomNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "room name contains invalid control characters")
		}
	}

	if strings.Contains(name, "#") {
		return New(ErrCodeInvalidInput, "room name %q cannot contain '#'", name)
	}

	return nil
}

// ValidatePositive validates that a named dimension is a finite value > 0.
func ValidatePositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite, got %v", field, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %v", field, v)
	}
	return nil
}

// ValidatePath validates a user-supplied file path for safety.
// It prevents obviously malformed input and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
