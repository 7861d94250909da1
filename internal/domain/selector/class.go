package selector

import (
	"strings"

	"github.com/GriffinCanCode/SelectorHeal/internal/document"
)

// classTransforms rewrite a class name following common naming conventions.
// The identity transform is deliberate: it reports the failed class itself
// when the markup it was taken from still contains it.
var classTransforms = []func(string) string{
	func(s string) string { return strings.Replace(s, "button", "btn", 1) },
	func(s string) string { return strings.Replace(s, "btn", "button", 1) },
	func(s string) string { return strings.Replace(s, "item", "card", 1) },
	func(s string) string { return strings.Replace(s, "submit", "primary", 1) },
	func(s string) string { return s + "__item" },
	func(s string) string { return s + "--primary" },
	func(s string) string { return s },
	camelToKebab,
	kebabToCamel,
}

// classCandidates proposes replacements for a ".name" selector.
func classCandidates(doc *document.Document, selector string) []Candidate {
	original := strings.TrimPrefix(selector, ".")

	names := make([]string, 0, len(classTransforms))
	for _, transform := range classTransforms {
		names = append(names, transform(original))
	}

	var candidates []Candidate
	for _, name := range uniqueNonEmpty(names) {
		if count := doc.Count("." + name); count > 0 {
			candidates = append(candidates, Candidate{
				Selector:     "." + name,
				Confidence:   Similarity(name, original),
				ElementCount: count,
			})
		}
	}

	return append(candidates, textHintCandidates(doc, original)...)
}

// textHintCandidates scans every element for text that reads like the class
// name and proposes each class found on such elements. Matching is
// case-insensitive: the element text is lower-cased along with the hint, so
// "Submit Button" matches .submitButton. The scan is O(elements × text
// length) per call.
func textHintCandidates(doc *document.Document, className string) []Candidate {
	hint := textHint(className)
	if hint == "" {
		return nil
	}

	var candidates []Candidate
	for _, el := range doc.Elements() {
		if !strings.Contains(strings.ToLower(el.Text()), hint) {
			continue
		}
		for _, class := range el.Classes() {
			sel := "." + escapeIdent(class)
			candidates = append(candidates, Candidate{
				Selector:     sel,
				Confidence:   confidenceTextHint,
				ElementCount: doc.Count(sel),
			})
		}
	}
	return candidates
}
