package selector

import "strings"

// Classify assigns selector to exactly one Kind based on its syntax alone.
// Rules are checked in order and the first match wins.
func Classify(selector string) Kind {
	switch {
	case strings.HasPrefix(selector, "."):
		return KindClass
	case strings.HasPrefix(selector, "#"):
		return KindID
	case strings.Contains(selector, "[") && strings.Contains(selector, "]"):
		return KindAttribute
	case strings.ContainsAny(selector, " >"):
		return KindComplex
	default:
		return KindTag
	}
}
