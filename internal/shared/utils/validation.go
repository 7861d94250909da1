package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// String length limits
const (
	MaxSelectorLength = 2048
	MaxVersionLength  = 64
)

// VersionPattern allows release labels such as "2.4.0", "v3-beta" or "2024_05".
var VersionPattern = regexp.MustCompile(`^[a-zA-Z0-9._+-]+$`)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateSelector checks a CSS selector submitted for analysis. Syntax is
// not checked here; unparseable selectors simply match nothing.
func ValidateSelector(selector string) error {
	if strings.TrimSpace(selector) == "" {
		return fmt.Errorf("selector is required")
	}
	return ValidateString(selector, "selector", 1, MaxSelectorLength, true)
}

// ValidateVersion checks an optional application version label.
func ValidateVersion(version string) error {
	if err := ValidateString(version, "version", 1, MaxVersionLength, false); err != nil {
		return err
	}

	if version != "" && !VersionPattern.MatchString(version) {
		return fmt.Errorf("version contains invalid characters (only alphanumeric, dots, plus, hyphens, and underscores allowed)")
	}

	return nil
}
