package selector

import (
	"regexp"
	"strings"

	"github.com/GriffinCanCode/SelectorHeal/internal/document"
)

var combinatorSplit = regexp.MustCompile(`\s*>\s*|\s+`)

// complexCandidates degrades a compound selector to its last part, ignoring
// the ancestry, and also tries the last two parts as a descendant selector.
func complexCandidates(doc *document.Document, selector string) []Candidate {
	var parts []string
	for _, part := range combinatorSplit.Split(strings.TrimSpace(selector), -1) {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	var candidates []Candidate
	last := parts[len(parts)-1]
	switch Classify(last) {
	case KindClass:
		candidates = append(candidates, classCandidates(doc, last)...)
	case KindID:
		candidates = append(candidates, idCandidates(doc, last)...)
	}

	if len(parts) > 2 {
		simplified := parts[len(parts)-2] + " " + last
		// Syntax errors here only mean the shortcut is not usable.
		if elements, err := doc.Find(simplified); err == nil && len(elements) > 0 {
			candidates = append(candidates, Candidate{
				Selector:     simplified,
				Confidence:   confidenceSimplified,
				ElementCount: len(elements),
			})
		}
	}
	return candidates
}
