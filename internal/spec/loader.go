// Package spec loads and validates evaluation specs.
package spec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/labeleval/internal/apperr"
	"github.com/DjordjeVuckovic/labeleval/internal/evaluator"
	"github.com/DjordjeVuckovic/labeleval/internal/source"
	"gopkg.in/yaml.v3"
)

// LoadFromFile parses the spec at path. Relative paths inside it resolve
// against the spec's directory. The result is not validated, so callers can
// fill in settings from the environment before calling Validate.
func LoadFromFile(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.resolve(filepath.Dir(path))
	return s, nil
}

// Parse decodes a YAML spec without validating it.
func Parse(data []byte) (*EvalSpec, error) {
	var s EvalSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, apperr.NewValidationWrap("parse spec YAML", err)
	}
	return &s, nil
}

// UseConnection sets conn as the connection of a postgres reference that
// names none.
func (s *EvalSpec) UseConnection(conn string) {
	if s.Reference.Type == ReferencePostgres && s.Reference.Connection == "" {
		s.Reference.Connection = conn
	}
}

// Validate checks s and fills in defaults.
func Validate(s *EvalSpec) error {
	if s.Reference.Type == "" {
		s.Reference.Type = ReferenceCSV
		if s.Reference.Path == "" && s.Reference.Connection != "" {
			s.Reference.Type = ReferencePostgres
		}
	}
	switch s.Reference.Type {
	case ReferenceCSV:
		if s.Reference.Path == "" {
			return apperr.NewValidation("reference has no path")
		}
	case ReferencePostgres:
		if s.Reference.Connection == "" {
			return apperr.NewValidation("postgres reference has no connection")
		}
	default:
		return apperr.NewValidation(fmt.Sprintf("reference has invalid type %q", s.Reference.Type))
	}

	if s.Runs.Dir == "" {
		return apperr.NewValidation("runs have no dir")
	}

	if s.Recovery.Mode == "" {
		s.Recovery.Mode = RecoveryText
	}
	switch s.Recovery.Mode {
	case RecoveryText:
		if s.Recovery.Mapping == "" {
			return apperr.NewValidation("text recovery needs a mapping file")
		}
		if s.Runs.Prefix == "" {
			s.Runs.Prefix = source.DefaultPrefix
		}
	case RecoveryPosition:
		if s.Recovery.OrderedIDs == "" {
			return apperr.NewValidation("position recovery needs an ordered_ids file")
		}
		if s.Runs.Prefix == "" {
			s.Runs.Prefix = source.VisualPrefix
		}
	default:
		return apperr.NewValidation(fmt.Sprintf("recovery has invalid mode %q", s.Recovery.Mode))
	}
	if s.Runs.Suffix == "" {
		s.Runs.Suffix = source.DefaultSuffix
	}

	if s.Evaluation.Workers < 0 {
		return apperr.NewValidation("workers must not be negative")
	}
	if s.Evaluation.Workers == 0 {
		s.Evaluation.Workers = 1
	}

	scoring, err := evaluator.ParseScoring(s.Evaluation.Scoring)
	if err != nil {
		return apperr.NewValidationWrap("invalid evaluation", err)
	}
	s.Evaluation.Scoring = string(scoring)
	return nil
}

func (s *EvalSpec) resolve(dir string) {
	for _, p := range []*string{
		&s.Reference.Path,
		&s.Runs.Dir,
		&s.Recovery.Mapping,
		&s.Recovery.OrderedIDs,
		&s.Output.JSON,
		&s.Output.CSV,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Confine checks a spec supplied by an API client. It may not name a
// database connection or output files, and every input path must stay inside
// root. Relative input paths resolve against root.
func (s *EvalSpec) Confine(root string) error {
	if s.Reference.Connection != "" {
		return apperr.NewValidation("reference connection cannot be set by a request")
	}
	if s.Output.JSON != "" || s.Output.CSV != "" {
		return apperr.NewValidation("output files cannot be set by a request")
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	for _, in := range []struct {
		name string
		path *string
	}{
		{"reference path", &s.Reference.Path},
		{"runs dir", &s.Runs.Dir},
		{"mapping", &s.Recovery.Mapping},
		{"ordered_ids", &s.Recovery.OrderedIDs},
	} {
		if *in.path == "" {
			continue
		}
		p := *in.path
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		p = filepath.Clean(p)

		rel, err := filepath.Rel(root, p)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return apperr.NewValidation(fmt.Sprintf("%s %q is outside the data directory", in.name, *in.path))
		}
		*in.path = p
	}
	return nil
}
