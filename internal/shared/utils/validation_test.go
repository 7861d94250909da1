package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateString(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		minLen   int
		maxLen   int
		required bool
		wantErr  string
	}{
		{"valid", "abc", 1, 5, true, ""},
		{"optional empty", "", 1, 5, false, ""},
		{"required empty", "", 1, 5, true, "field is required"},
		{"too short", "a", 2, 5, true, "at least 2"},
		{"too long", "abcdef", 1, 5, true, "must not exceed 5"},
		{"counts runes", "ééééé", 1, 5, true, ""},
		{"null byte", "a\x00b", 1, 5, true, "invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateString(tt.value, "field", tt.minLen, tt.maxLen, tt.required)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSelector(t *testing.T) {
	assert.NoError(t, ValidateSelector("div.card > a[href^='/docs']"))
	assert.NoError(t, ValidateSelector("div[[["), "syntax is not checked")
	assert.Error(t, ValidateSelector("   "))
	assert.Error(t, ValidateSelector(strings.Repeat("a", MaxSelectorLength+1)))
}

func TestValidateVersion(t *testing.T) {
	for _, v := range []string{"", "2.4.0", "v3-beta", "2024_05", "1.0.0+build"} {
		assert.NoError(t, ValidateVersion(v), v)
	}
	for _, v := range []string{"1.0; DROP TABLE", "a b", strings.Repeat("9", MaxVersionLength+1)} {
		assert.Error(t, ValidateVersion(v), v)
	}
}
