package selector

import (
	"regexp"
	"strings"

	"github.com/GriffinCanCode/SelectorHeal/internal/document"
)

// attributePattern matches the first [name] or [name="value"] group;
// quotes around the value are optional.
var attributePattern = regexp.MustCompile(`\[\s*([^\s=\]~|^$*"']+)\s*(?:=\s*["']?([^"'\]]*)["']?\s*)?\]`)

// alternativeAttributes are tried on each matching element, in priority order.
var alternativeAttributes = []string{"data-testid", "data-cy", "id", "name", "role"}

// attributeCandidates proposes other identifying attributes carried by the
// elements that have the failed selector's attribute.
func attributeCandidates(doc *document.Document, selector string) []Candidate {
	match := attributePattern.FindStringSubmatchIndex(selector)
	if match == nil {
		return nil
	}
	name := selector[match[2]:match[3]]
	hasValue := match[4] >= 0
	var value string
	if hasValue {
		value = selector[match[4]:match[5]]
	}

	var candidates []Candidate
	for _, el := range doc.Query("[" + name + "]") {
		if hasValue {
			if current, _ := el.Attr(name); current != value {
				continue
			}
		}
		for _, attr := range alternativeAttributes {
			attrValue, ok := el.Attr(attr)
			if !ok {
				continue
			}
			sel := "[" + attr + "=" + quoteValue(attrValue) + "]"
			confidence := confidencePlainAttribute
			if strings.HasPrefix(attr, "data-") {
				confidence = confidenceDataAttribute
			}
			candidates = append(candidates, Candidate{
				Selector:     sel,
				Confidence:   confidence,
				ElementCount: doc.Count(sel),
			})
		}
	}
	return candidates
}
