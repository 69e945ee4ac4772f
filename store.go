package esfaker

import (
	"context"
	"encoding/json"
)

// Store is the document store fixtures are written to.
type Store interface {
	// CollectionExists reports whether the collection is present.
	CollectionExists(ctx context.Context, name string) (bool, error)
	// CreateCollection creates the collection using the index definition from the template.
	CreateCollection(ctx context.Context, name string, schema json.RawMessage) error
	// DropCollection deletes the collection. Dropping a missing collection is not an error.
	DropCollection(ctx context.Context, name string) error
	// BulkWrite submits docs in a single request. A non-nil error means the
	// request never produced a response.
	BulkWrite(ctx context.Context, name string, docs []Document) (BatchResult, error)
}

// Refresher is implemented by stores that can make written documents
// immediately visible to searches.
type Refresher interface {
	Refresh(ctx context.Context, name string) error
}

// BatchResult is the outcome of one bulk write.
type BatchResult struct {
	Submitted  int // Documents sent in the request
	StatusCode int // Status returned by the store
	Failed     int // Documents the store reported as rejected

	// DecodeErr is set when the store accepted the request but its
	// per-document outcome could not be read; Failed is then unknown.
	DecodeErr error
}

// OK reports whether the store accepted the request.
func (r BatchResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
