package errors

import (
	"strings"
	"unicode"
)

// ValidateColorHex validates a CSS-style hex color string.
// Accepted forms are #RGB, #RRGGBB, and #RRGGBBAA (case-insensitive).
func ValidateColorHex(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !strings.HasPrefix(s, "#") {
		return New(ErrCodeInvalidColor, "color must start with '#': %q", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3, 6, 8:
	default:
		return New(ErrCodeInvalidColor, "color must be #RGB, #RRGGBB or #RRGGBBAA: %q", s)
	}
	for _, r := range hex {
		if !isHexDigit(r) {
			return New(ErrCodeInvalidColor, "color contains non-hex character %q: %q", r, s)
		}
	}
	return nil
}

// ValidateFontFamily validates a font family name for safety.
// Family names are used as manifest keys and to locate font files, so the
// validation is intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path traversal sequences
//   - Maximum length of 128 characters
func ValidateFontFamily(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "font family cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "font family too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "font family contains invalid control characters")
		}
	}
	for _, pattern := range []string{"..", "//", "\x00", "\\", "/"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "font family contains invalid characters: %q", pattern)
		}
	}
	return nil
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}
