// Package selector proposes replacement CSS selectors for a selector that
// stopped matching.
//
// Given a parsed document and the failed selector, the Analyzer classifies
// the selector (class, id, tag, attribute or complex), runs the strategy
// registered for that kind, always runs the robust-selector synthesizer on
// top, and returns every candidate ranked by confidence.
//
// Confidence scale:
//   - 1.0: the candidate is textually identical to the failed selector
//   - 0.95: data-testid attribute found on a same-tag element
//   - 0.9: id transform resolved, or data-* attribute alternative
//   - 0.85: unique robust selector, or tag[name] alternative
//   - 0.8: parent-qualified robust selector, or simplified complex selector
//   - 0.6–0.9: naming-convention variants, scaled by edit distance
//   - 0.6/0.7: text-content and substring fallbacks
//
// Analysis is synchronous and side-effect free apart from diagnostic logging.
// Selector syntax errors and per-element faults are absorbed where they occur,
// so one bad intermediate selector never hides candidates from other
// strategies.
package selector
