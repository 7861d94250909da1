package mapping

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidMapping = errors.New("invalid mapping")

// Mapping records that a selector was replaced by another for a given
// version of the target application.
type Mapping struct {
	ID                  uuid.UUID `json:"id"`
	Version             string    `json:"version"`
	OriginalSelector    string    `json:"originalSelector"`
	ReplacementSelector string    `json:"replacementSelector"`
	Confidence          float64   `json:"confidence"`
	CreatedAt           time.Time `json:"createdAt"`
}

// Validate checks that both selectors are present and the confidence lies
// in [0, 1].
func (m Mapping) Validate() error {
	switch {
	case strings.TrimSpace(m.OriginalSelector) == "":
		return fmt.Errorf("%w: original selector is empty", ErrInvalidMapping)
	case strings.TrimSpace(m.ReplacementSelector) == "":
		return fmt.Errorf("%w: replacement selector for %q is empty", ErrInvalidMapping, m.OriginalSelector)
	case m.Confidence < 0 || m.Confidence > 1:
		return fmt.Errorf("%w: confidence %v for %q is outside [0, 1]", ErrInvalidMapping, m.Confidence, m.OriginalSelector)
	}
	return nil
}
