package mapping

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// Upserter writes mappings.
type Upserter interface {
	Upsert(ctx context.Context, mappings []Mapping) error
}

// SeedFile is the layout of a mapping seed file, in YAML:
//
//	version: "2.4.0"
//	mappings:
//	  - original: "#submitBtn"
//	    replacement: "#submit-button"
//	    confidence: 0.9
//
// or the equivalent TOML with a [[mappings]] array of tables.
type SeedFile struct {
	Version  string      `yaml:"version" toml:"version"`
	Mappings []SeedEntry `yaml:"mappings" toml:"mappings"`
}

// SeedEntry is one mapping in a seed file. Confidence defaults to 1.
type SeedEntry struct {
	Original    string   `yaml:"original" toml:"original"`
	Replacement string   `yaml:"replacement" toml:"replacement"`
	Confidence  *float64 `yaml:"confidence" toml:"confidence"`
}

// Format is a seed file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from the file extension; anything that
// is not .toml is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Seeder loads seed files into a store.
type Seeder struct {
	store Upserter
	log   *zap.Logger
}

func NewSeeder(store Upserter, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{store: store, log: logger.Named("mapping_seeder")}
}

// Seed upserts the mappings in every file matching pattern, which is a
// plain path or a doublestar glob such as "seeds/**/*.yaml". It returns the
// number of mappings written. A pattern matching nothing is logged and
// skipped.
func (s *Seeder) Seed(ctx context.Context, pattern string) (int, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return 0, fmt.Errorf("invalid seed pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		s.log.Warn("mapping seed file not found, skipping", zap.String("path", pattern))
		return 0, nil
	}
	sort.Strings(paths)

	total := 0
	for _, path := range paths {
		n, err := s.seedFile(ctx, path)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (s *Seeder) seedFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	mappings, err := ParseSeed(data, FormatFromPath(path))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.store.Upsert(ctx, mappings); err != nil {
		return 0, err
	}

	s.log.Info("seeded selector mappings",
		zap.String("path", path),
		zap.Int("count", len(mappings)))
	return len(mappings), nil
}

// ParseSeed decodes and validates a seed document.
func ParseSeed(data []byte, format Format) ([]Mapping, error) {
	var file SeedFile
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &file)
	default:
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	mappings := make([]Mapping, 0, len(file.Mappings))
	for _, e := range file.Mappings {
		confidence := 1.0
		if e.Confidence != nil {
			confidence = *e.Confidence
		}
		m := Mapping{
			Version:             file.Version,
			OriginalSelector:    e.Original,
			ReplacementSelector: e.Replacement,
			Confidence:          confidence,
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}
