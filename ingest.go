package esfaker

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Insert writes every fixture into its collection in input order.
//
// A bulk request the store rejects is logged and counted as attempted; the
// loop carries on with the next batch. Only a template that stops producing
// valid documents or a cancelled context ends the run early.
func (s *Seeder) Insert(ctx context.Context) (Summary, error) {
	var sum Summary

	for _, f := range s.fixtures {
		if err := s.insertFixture(ctx, f, &sum); err != nil {
			return sum, errors.Wrap(err, "esfaker")
		}
	}

	return sum, nil
}

func (s *Seeder) insertFixture(ctx context.Context, f *fixture, sum *Summary) error {
	log := s.log.WithFields(logrus.Fields{
		"collection": f.spec.Collection,
		"template":   f.spec.TemplatePath,
	})
	log.WithField("count", f.spec.Count).Info("Generating documents")

	remaining := int(f.spec.Count)
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		size := min(s.batchSize, remaining)
		docs, err := s.buildBatch(f, size)
		if err != nil {
			return err
		}

		res, err := s.store.BulkWrite(ctx, f.spec.Collection, docs)
		ok := err == nil && res.OK()
		if !ok {
			berr := &BatchError{
				Collection: f.spec.Collection,
				Template:   f.spec.TemplatePath,
				StatusCode: res.StatusCode,
				Err:        err,
			}
			log.WithFields(logrus.Fields{
				"batch":  sum.Batches,
				"status": res.StatusCode,
			}).Error(berr)
			sum.FailedBatches++
		} else if res.DecodeErr != nil {
			log.WithField("batch", sum.Batches).WithError(res.DecodeErr).
				Warn("Could not read per-document results")
		} else if res.Failed > 0 {
			log.WithFields(logrus.Fields{
				"batch":  sum.Batches,
				"failed": res.Failed,
			}).Warn("Store rejected some documents")
		}
		s.metrics.recordBatch(f.spec.Collection, size, ok)

		remaining -= size
		sum.Batches++
		sum.Attempted += size

		if s.progress != nil {
			s.progress(sum.Attempted)
		}
	}

	if r, ok := s.store.(Refresher); ok && s.refresh && f.spec.Count > 0 {
		if err := r.Refresh(ctx, f.spec.Collection); err != nil {
			log.WithError(err).Warn("Could not refresh collection")
		}
	}

	return nil
}

// buildBatch renders size documents and assigns their identifiers.
func (s *Seeder) buildBatch(f *fixture, size int) ([]Document, error) {
	docs := make([]Document, 0, size)
	for i := 0; i < size; i++ {
		body, err := f.render()
		if err != nil {
			return nil, &TemplateError{Path: f.spec.TemplatePath, Err: err}
		}
		docs = append(docs, Document{ID: s.ids(), Body: body})
	}
	return docs, nil
}
