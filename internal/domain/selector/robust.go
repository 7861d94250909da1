package selector

import (
	"fmt"

	"github.com/GriffinCanCode/SelectorHeal/internal/document"
	"go.uber.org/zap"
)

// robustCandidates synthesizes a tag/class/position selector for every
// element the failed selector still matches. A fault on one element is
// logged and skipped.
func (a *Analyzer) robustCandidates(doc *document.Document, selector string) []Candidate {
	var candidates []Candidate
	for _, el := range doc.Query(selector) {
		if c, ok := a.robustFor(doc, el, selector); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates
}

func (a *Analyzer) robustFor(doc *document.Document, el *document.Element, selector string) (c Candidate, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("robust selector synthesis failed",
				zap.String("selector", selector),
				zap.Any("panic", r),
			)
			c, ok = Candidate{}, false
		}
	}()

	robust := robustSelector(el)

	switch count := doc.Count(robust); {
	case count == 1:
		return Candidate{Selector: robust, Confidence: confidenceRobustUnique, ElementCount: 1}, true
	case count >= 2 && count <= 3:
		parent := el.Parent()
		if parent == nil {
			return Candidate{}, false
		}
		qualified := parentIdentifier(parent) + " > " + robust
		// Emitted as-is: no further narrowing, even when it matches nothing.
		return Candidate{Selector: qualified, Confidence: confidenceRobustQualified, ElementCount: doc.Count(qualified)}, true
	}
	return Candidate{}, false
}

// robustSelector builds tag, then tag.firstClass, then appends
// :nth-child(i) where i is the 1-based position among same-tag siblings.
func robustSelector(el *document.Element) string {
	tag := el.Tag()
	sel := tag
	if classes := el.Classes(); len(classes) > 0 {
		sel += "." + escapeIdent(classes[0])
	}

	parent := el.Parent()
	if parent == nil {
		return sel
	}

	var position, sameTag int
	for _, sibling := range parent.Children() {
		if sibling.Tag() != tag {
			continue
		}
		sameTag++
		if sibling.Same(el) {
			position = sameTag
		}
	}
	if sameTag > 1 {
		sel += fmt.Sprintf(":nth-child(%d)", position)
	}
	return sel
}

// parentIdentifier prefers tag#id, then tag.firstClass, then the bare tag.
func parentIdentifier(parent *document.Element) string {
	if id := parent.ID(); id != "" {
		return parent.Tag() + "#" + escapeIdent(id)
	}
	if classes := parent.Classes(); len(classes) > 0 {
		return parent.Tag() + "." + escapeIdent(classes[0])
	}
	return parent.Tag()
}
