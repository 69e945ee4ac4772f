package esfaker

import (
	"encoding/json"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New()

// FixtureSpec requests Count synthetic documents rendered from the template
// at TemplatePath to be written into Collection.
type FixtureSpec struct {
	Collection   string `validate:"required"`
	TemplatePath string `validate:"required"`
	Count        uint
}

// NewFixtureSpecs pairs the i-th collection, template and count into one
// FixtureSpec. All three slices must have the same, non-zero length.
func NewFixtureSpecs(collections, templates []string, counts []uint) ([]FixtureSpec, error) {
	if len(collections) != len(templates) || len(collections) != len(counts) {
		return nil, &ConfigError{Err: errors.Errorf(
			"collection and count arguments should be present for every template (got %d collections, %d templates, %d counts)",
			len(collections), len(templates), len(counts))}
	}
	if len(templates) == 0 {
		return nil, &ConfigError{Err: errors.New("at least one template is required")}
	}

	specs := make([]FixtureSpec, 0, len(templates))
	for i := range templates {
		spec := FixtureSpec{
			Collection:   collections[i],
			TemplatePath: templates[i],
			Count:        counts[i],
		}
		if err := validate.Struct(spec); err != nil {
			return nil, &ConfigError{Err: errors.Wrapf(err, "fixture %d", i)}
		}
		if err := checkCount(spec); err != nil {
			return nil, &ConfigError{Err: errors.Wrapf(err, "fixture %d", i)}
		}
		specs = append(specs, spec)
	}

	return specs, nil
}

// checkCount rejects counts the ingestion loop cannot represent.
func checkCount(spec FixtureSpec) error {
	if uint64(spec.Count) > math.MaxInt {
		return errors.Errorf("count %d for %q exceeds %d", spec.Count, spec.Collection, math.MaxInt)
	}
	return nil
}

// TemplateDocument is the parsed content of a template file.
type TemplateDocument struct {
	Index  json.RawMessage // Index definition passed to the create call (may be nil)
	Values string          // Document template body (may be empty)
}

// fixture is a FixtureSpec with its template loaded and compiled.
type fixture struct {
	spec     FixtureSpec
	doc      *TemplateDocument
	template *Template
}

// Document is a rendered document ready to be written.
type Document struct {
	ID   string
	Body json.RawMessage
}
