package selector

import (
	"strings"

	"github.com/GriffinCanCode/SelectorHeal/internal/document"
)

var idTransforms = []func(string) string{
	func(s string) string { return strings.ReplaceAll(s, "-", "_") },
	func(s string) string { return strings.ReplaceAll(s, "_", "-") },
	strings.ToLower,
	camelToKebab,
}

// idCandidates proposes replacements for a "#id" selector. Ids are assumed
// unique, so every candidate counts one element.
func idCandidates(doc *document.Document, selector string) []Candidate {
	original := strings.TrimPrefix(selector, "#")

	names := make([]string, 0, len(idTransforms))
	for _, transform := range idTransforms {
		names = append(names, transform(original))
	}

	var candidates []Candidate
	for _, id := range uniqueNonEmpty(names) {
		if doc.ElementByID(id) != nil {
			candidates = append(candidates, Candidate{
				Selector:     "#" + escapeIdent(id),
				Confidence:   confidenceIDTransform,
				ElementCount: 1,
			})
		}
	}
	if len(candidates) > 0 {
		return candidates
	}

	// Fall back to ids that contain, or are contained in, the original.
	for _, el := range doc.Query("[id]") {
		id := el.ID()
		if id == "" || original == "" {
			continue
		}
		if strings.Contains(original, id) || strings.Contains(id, original) {
			candidates = append(candidates, Candidate{
				Selector:     "#" + escapeIdent(id),
				Confidence:   confidenceIDSubstring,
				ElementCount: 1,
			})
		}
	}
	return candidates
}
