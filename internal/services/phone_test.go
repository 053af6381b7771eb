package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigitsNormalizer(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"+7 (912) 345-67-89", "79123456789", true},
		{"8 (912) 345-67-89", "9123456789", true}, // trunk prefix dropped
		{"9123456789", "9123456789", true},
		{"345-67-89", "3456789", true},
		{"ask reception", "", false},
		{"12345", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := DigitsNormalizer{}.Normalize(tt.raw)
		assert.Equal(t, tt.ok, ok, "input %q", tt.raw)
		assert.Equal(t, tt.want, got, "input %q", tt.raw)
	}
}
