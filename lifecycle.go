package esfaker

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// EnsureCollection brings a collection into the state required before documents are written.
//
// In append mode the collection must already exist and is never modified.
// Otherwise the collection is dropped (if present) and created from schema,
// which must not be empty. Drop and create are separate calls: when create
// fails after a successful drop the collection is left absent, and running
// EnsureCollection again is safe.
func EnsureCollection(ctx context.Context, store Store, name string, schema json.RawMessage, append bool) error {
	if append {
		exists, err := store.CollectionExists(ctx, name)
		if err != nil {
			return &LifecycleError{Collection: name, Err: err}
		}
		if !exists {
			return &LifecycleError{
				Collection: name,
				Err:        errors.Wrap(ErrCollectionMissing, "run without append first"),
			}
		}
		return nil
	}

	if len(schema) == 0 {
		return &LifecycleError{
			Collection: name,
			Err:        errors.Wrap(ErrSchemaRequired, "add an \"index\" section to the template"),
		}
	}

	if err := store.DropCollection(ctx, name); err != nil {
		return &LifecycleError{Collection: name, Err: err}
	}
	if err := store.CreateCollection(ctx, name, schema); err != nil {
		return &LifecycleError{Collection: name, Err: err}
	}

	return nil
}
