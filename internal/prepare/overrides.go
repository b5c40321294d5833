package prepare

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/labeleval/internal/apperr"
	"gopkg.in/yaml.v3"
)

// LoadOverrides reads section overrides from a YAML file:
//
//	spans:
//	  s50414267: [120, 480]
//	sections:
//	  s50414268: findings
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("read overrides: %w", err)
	}
	return ParseOverrides(data)
}

func ParseOverrides(data []byte) (Overrides, error) {
	var ov Overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return Overrides{}, apperr.NewValidationWrap("parse overrides YAML", err)
	}

	for stem, span := range ov.Spans {
		if span[0] < 0 || span[1] < span[0] {
			return Overrides{}, apperr.NewValidation(fmt.Sprintf("override span for %s is invalid: [%d, %d]", stem, span[0], span[1]))
		}
	}
	for stem, name := range ov.Sections {
		if name == "" {
			return Overrides{}, apperr.NewValidation(fmt.Sprintf("override section for %s is empty", stem))
		}
	}
	return ov, nil
}
