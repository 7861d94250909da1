package selector

// Kind is the syntactic category of a selector.
type Kind int

const (
	KindClass Kind = iota
	KindID
	KindTag
	KindAttribute
	KindComplex
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindID:
		return "id"
	case KindTag:
		return "tag"
	case KindAttribute:
		return "attribute"
	case KindComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// Candidate is a proposed replacement selector.
type Candidate struct {
	Selector     string  `json:"selector"`
	Confidence   float64 `json:"confidence"`
	ElementCount int     `json:"elementCount"`
}

// Fixed confidences for the structural strategies.
const (
	confidenceTestID          = 0.95
	confidenceIDTransform     = 0.9
	confidenceDataAttribute   = 0.9
	confidenceRobustUnique    = 0.85
	confidenceNamedTag        = 0.85
	confidenceRobustQualified = 0.8
	confidenceSimplified      = 0.8
	confidencePlainAttribute  = 0.75
	confidenceIDSubstring     = 0.7
	confidenceContainsText    = 0.7
	confidenceTextHint        = 0.6
)
