package esfaker

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultBatchSize is the number of documents per bulk request when WithBatchSize is not given.
const DefaultBatchSize = 1000

// ProgressFunc receives the cumulative number of documents submitted so far,
// including documents of batches the store rejected.
type ProgressFunc func(attempted int)

// Option configures the Seeder.
type Option func(*Seeder) error

// WithBatchSize sets how many documents are sent per bulk request.
func WithBatchSize(n int) Option {
	return func(s *Seeder) error {
		if n < 1 {
			return errors.Errorf("batch size must be positive, got %d", n)
		}
		s.batchSize = n
		return nil
	}
}

// WithAppend makes the Seeder add documents to existing collections
// instead of recreating them.
func WithAppend(enabled bool) Option {
	return func(s *Seeder) error {
		s.append = enabled
		return nil
	}
}

// WithRenderer sets the renderer used for every fixture.
// If not set, a renderer over DefaultRegistry is used.
func WithRenderer(r *Renderer) Option {
	return func(s *Seeder) error {
		if r == nil {
			return errors.New("renderer must not be nil")
		}
		s.renderer = r
		return nil
	}
}

// WithProgress sets the callback invoked after every batch.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Seeder) error {
		s.progress = fn
		return nil
	}
}

// WithLogger sets the logger. If not set, logrus.StandardLogger() is used.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Seeder) error {
		if log == nil {
			return errors.New("logger must not be nil")
		}
		s.log = log
		return nil
	}
}

// WithIDGenerator overrides how document identifiers are assigned.
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Seeder) error {
		if ids == nil {
			return errors.New("id generator must not be nil")
		}
		s.ids = ids
		return nil
	}
}

// WithMetrics records batch counters in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Seeder) error {
		s.metrics = m
		return nil
	}
}

// WithRefresh controls whether collections are refreshed after their last
// batch, when the store supports it. Enabled by default.
func WithRefresh(refresh bool) Option {
	return func(s *Seeder) error {
		s.refresh = refresh
		return nil
	}
}
