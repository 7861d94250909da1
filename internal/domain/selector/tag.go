package selector

import (
	"github.com/GriffinCanCode/SelectorHeal/internal/document"
)

// tagCandidates proposes attribute- and text-based selectors for the
// elements a bare tag selector still matches.
func tagCandidates(doc *document.Document, selector string) []Candidate {
	elements := doc.Query(selector)

	var candidates []Candidate
	for _, el := range elements {
		if testID, ok := el.Attr("data-testid"); ok {
			sel := "[data-testid=" + quoteValue(testID) + "]"
			candidates = append(candidates, Candidate{
				Selector:     sel,
				Confidence:   confidenceTestID,
				ElementCount: doc.Count(sel),
			})
		} else if name, ok := el.Attr("name"); ok {
			sel := el.Tag() + "[name=" + quoteValue(name) + "]"
			candidates = append(candidates, Candidate{
				Selector:     sel,
				Confidence:   confidenceNamedTag,
				ElementCount: doc.Count(sel),
			})
		}
	}

	// :contains() is a non-standard extension; strict CSS engines reject it.
	for _, el := range elements {
		text := document.NormalizeWhitespace(el.Text())
		if text == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			Selector:     el.Tag() + ":contains(" + quoteValue(text) + ")",
			Confidence:   confidenceContainsText,
			ElementCount: 1,
		})
	}
	return candidates
}
