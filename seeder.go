package esfaker

import (
	"context"
	"encoding/json"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Seeder fills collections with documents rendered from templates.
// It prepares every collection, then writes each fixture in order,
// one bulk request at a time.
type Seeder struct {
	store     Store
	renderer  *Renderer
	log       logrus.FieldLogger
	ids       IDGenerator
	progress  ProgressFunc
	metrics   *Metrics
	batchSize int
	append    bool
	refresh   bool
	fixtures  []*fixture
}

// Summary reports what a Seeder submitted.
type Summary struct {
	Attempted     int // Documents submitted, whether or not the store accepted them
	Batches       int // Bulk requests sent
	FailedBatches int // Bulk requests the store did not accept
}

// New creates a Seeder for specs.
//
// Template files are read and compiled during construction, so unreadable
// files, malformed templates and unknown generators are reported before any
// request reaches the store.
func New(store Store, specs []FixtureSpec, opts ...Option) (*Seeder, error) {
	if store == nil {
		return nil, errors.New("esfaker: store must not be nil")
	}
	if len(specs) == 0 {
		return nil, &ConfigError{Err: errors.New("esfaker: no fixtures given")}
	}

	s := &Seeder{
		store:     store,
		log:       logrus.StandardLogger(),
		ids:       ClockIDs(),
		batchSize: DefaultBatchSize,
		refresh:   true,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, &ConfigError{Err: errors.Wrap(err, "esfaker: applying option")}
		}
	}

	if s.renderer == nil {
		s.renderer = NewRenderer(DefaultRegistry())
	}

	fixtures, err := s.loadFixtures(specs)
	if err != nil {
		return nil, errors.Wrap(err, "esfaker")
	}
	s.fixtures = fixtures

	return s, nil
}

// loadFixtures reads and compiles every template, collecting all failures.
func (s *Seeder) loadFixtures(specs []FixtureSpec) ([]*fixture, error) {
	var result *multierror.Error
	fixtures := make([]*fixture, 0, len(specs))

	for _, spec := range specs {
		f, err := s.loadFixture(spec)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		fixtures = append(fixtures, f)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return fixtures, nil
}

func (s *Seeder) loadFixture(spec FixtureSpec) (*fixture, error) {
	if err := checkCount(spec); err != nil {
		return nil, &ConfigError{Err: err}
	}

	doc, err := LoadTemplateDocument(spec.TemplatePath)
	if err != nil {
		return nil, err
	}

	f := &fixture{spec: spec, doc: doc}
	if spec.Count == 0 {
		return f, nil
	}

	if doc.Values == "" {
		return nil, &TemplateError{Path: spec.TemplatePath, Err: errors.Errorf("missing %q section", valuesKey)}
	}

	f.template, err = s.renderer.Compile(spec.TemplatePath, doc.Values)
	if err != nil {
		return nil, &TemplateError{Path: spec.TemplatePath, Err: err}
	}

	// Render one document up front so a template producing invalid JSON
	// is rejected before its collection is touched.
	if _, err := f.render(); err != nil {
		return nil, &TemplateError{Path: spec.TemplatePath, Err: err}
	}

	return f, nil
}

// render produces one document body.
func (f *fixture) render() (json.RawMessage, error) {
	out, err := f.template.Execute()
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(out)) {
		return nil, errors.Errorf("rendered document is not valid JSON: %s", out)
	}
	return json.RawMessage(out), nil
}

// Prepare runs the collection lifecycle for every fixture in order and stops
// at the first failure, before any document is written.
func (s *Seeder) Prepare(ctx context.Context) error {
	for _, f := range s.fixtures {
		log := s.log.WithField("collection", f.spec.Collection)
		if s.append {
			log.Debug("Checking collection exists")
		} else {
			log.Info("Recreating collection")
		}

		if err := EnsureCollection(ctx, s.store, f.spec.Collection, f.doc.Index, s.append); err != nil {
			return errors.Wrap(err, "esfaker")
		}
	}
	return nil
}

// Run prepares all collections and then inserts every fixture.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	if err := s.Prepare(ctx); err != nil {
		return Summary{}, err
	}
	return s.Insert(ctx)
}

// Clean drops every collection managed by this Seeder.
func (s *Seeder) Clean(ctx context.Context) error {
	var result *multierror.Error
	seen := make(map[string]bool)
	for _, f := range s.fixtures {
		if seen[f.spec.Collection] {
			continue
		}
		seen[f.spec.Collection] = true
		if err := s.store.DropCollection(ctx, f.spec.Collection); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Wrap(err, "esfaker: cleaning up")
	}
	return nil
}

// Total returns the number of documents all fixtures will submit.
func (s *Seeder) Total() int {
	total := 0
	for _, f := range s.fixtures {
		total += int(f.spec.Count)
	}
	return total
}
