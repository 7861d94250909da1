package selector

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// camelToKebab converts "fooBar" to "foo-bar".
func camelToKebab(s string) string {
	return strings.ToLower(camelBoundary.ReplaceAllString(s, "${1}-${2}"))
}

// kebabToCamel converts "foo-bar" to "fooBar".
func kebabToCamel(s string) string {
	parts := strings.Split(s, "-")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 || b.Len() == 0 {
			b.WriteString(p)
			continue
		}
		runes := []rune(p)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}

// textHint turns a class name into the words it probably labels:
// "submit-button" and "submitButton" both become "submit button".
func textHint(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r == '-' {
			b.WriteRune(' ')
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(strings.TrimSpace(b.String()))
}

// uniqueNonEmpty drops empty and repeated names, keeping first occurrences.
func uniqueNonEmpty(names []string) []string {
	seen := make(map[string]bool, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}

// escapeIdent escapes a class name or id read from the document so it can
// be used after "." or "#".
func escapeIdent(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case i == 0 && r >= '0' && r <= '9':
			fmt.Fprintf(&b, `\%x `, r)
		case r == '-' && len(s) == 1:
			b.WriteString(`\-`)
		case r == '-' || r == '_' || r > unicode.MaxASCII ||
			unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// quoteValue renders s as a double-quoted CSS string.
func quoteValue(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", " ").Replace(s) + `"`
}
