package errors

import (
	"strings"
	"testing"
)

func TestValidateColorHex(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		wantErr bool
	}{
		{"shorthand", "#FFF", false},
		{"full", "#1a2B3c", false},
		{"with alpha", "#000000CC", false},
		{"empty", "", true},
		{"no hash", "FFFFFF", true},
		{"bad length", "#FFFF", true},
		{"non hex", "#GGGGGG", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColorHex(tt.color)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColorHex(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColor) {
				t.Errorf("expected INVALID_COLOR, got %s", GetCode(err))
			}
		})
	}
}

func TestValidateFontFamily(t *testing.T) {
	tests := []struct {
		name    string
		family  string
		wantErr bool
	}{
		{"simple", "Poppins", false},
		{"spaces", "PT Sans", false},
		{"empty", "", true},
		{"traversal", "../etc/passwd", true},
		{"slash", "fonts/evil", true},
		{"backslash", `fonts\evil`, true},
		{"control char", "Pop\x00pins", true},
		{"too long", strings.Repeat("a", 129), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFontFamily(tt.family)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFontFamily(%q) error = %v, wantErr %v", tt.family, err, tt.wantErr)
			}
		})
	}
}
