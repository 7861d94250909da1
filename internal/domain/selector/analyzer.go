package selector

import (
	"sort"
	"strings"
	"time"

	"github.com/GriffinCanCode/SelectorHeal/internal/document"
	"go.uber.org/zap"
)

// strategy generates candidates for one selector kind.
type strategy func(doc *document.Document, selector string) []Candidate

// strategies holds exactly one generator per Kind.
var strategies = map[Kind]strategy{
	KindClass:     classCandidates,
	KindID:        idCandidates,
	KindTag:       tagCandidates,
	KindAttribute: attributeCandidates,
	KindComplex:   complexCandidates,
}

// Observer receives a summary of every analysis.
type Observer interface {
	ObserveAnalysis(kind string, candidates int, duration time.Duration)
}

// Analyzer ranks replacement selectors for a failed selector.
type Analyzer struct {
	logger   *zap.Logger
	observer Observer
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithObserver reports each analysis to o.
func WithObserver(o Observer) Option {
	return func(a *Analyzer) {
		a.observer = o
	}
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(logger *zap.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Analyzer{logger: logger.Named("selector")}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze returns candidate replacements for failed, sorted by confidence
// descending. Candidates of equal confidence keep generation order: the
// kind-specific strategy first, then robust synthesis. The result is never
// nil and Analyze never panics.
func (a *Analyzer) Analyze(doc *document.Document, failed string) (result []Candidate) {
	start := time.Now()
	kind := Classify(failed)

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("selector analysis failed",
				zap.String("selector", failed),
				zap.Any("panic", r),
			)
			result = []Candidate{}
		}
		if a.observer != nil {
			a.observer.ObserveAnalysis(kind.String(), len(result), time.Since(start))
		}
	}()

	if doc == nil || strings.TrimSpace(failed) == "" {
		return []Candidate{}
	}

	generated := strategies[kind](doc, failed)
	robust := a.robustCandidates(doc, failed)

	a.logger.Debug("candidates generated",
		zap.String("selector", failed),
		zap.Stringer("kind", kind),
		zap.Int("strategy", len(generated)),
		zap.Int("robust", len(robust)),
	)

	result = make([]Candidate, 0, len(generated)+len(robust))
	result = append(result, generated...)
	result = append(result, robust...)

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Confidence > result[j].Confidence
	})
	return result
}
