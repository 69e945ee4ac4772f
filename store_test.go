package esfaker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// fakeStore records every call made by the code under test.
type fakeStore struct {
	existing map[string]bool
	calls    []string
	batches  map[string][][]Document
	schemas  map[string]json.RawMessage

	existsErr error
	dropErr   error
	createErr error
	decodeErr error
	// statusFor returns the bulk status for the n-th bulk call (0-based).
	statusFor func(n int) int
	bulkCalls int
	refreshed []string
}

var (
	_ Store     = (*fakeStore)(nil)
	_ Refresher = (*fakeStore)(nil)
)

func newFakeStore(existing ...string) *fakeStore {
	s := &fakeStore{
		existing: make(map[string]bool),
		batches:  make(map[string][][]Document),
		schemas:  make(map[string]json.RawMessage),
	}
	for _, name := range existing {
		s.existing[name] = true
	}
	return s
}

func (s *fakeStore) CollectionExists(_ context.Context, name string) (bool, error) {
	s.calls = append(s.calls, "exists "+name)
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.existing[name], nil
}

func (s *fakeStore) CreateCollection(_ context.Context, name string, schema json.RawMessage) error {
	s.calls = append(s.calls, "create "+name)
	if s.createErr != nil {
		return s.createErr
	}
	s.existing[name] = true
	s.schemas[name] = schema
	return nil
}

func (s *fakeStore) DropCollection(_ context.Context, name string) error {
	s.calls = append(s.calls, "drop "+name)
	if s.dropErr != nil {
		return s.dropErr
	}
	delete(s.existing, name)
	return nil
}

func (s *fakeStore) BulkWrite(_ context.Context, name string, docs []Document) (BatchResult, error) {
	s.calls = append(s.calls, fmt.Sprintf("bulk %s %d", name, len(docs)))
	status := http.StatusOK
	if s.statusFor != nil {
		status = s.statusFor(s.bulkCalls)
	}
	s.bulkCalls++
	if status == 0 {
		return BatchResult{Submitted: len(docs)}, errors.New("connection refused")
	}
	s.batches[name] = append(s.batches[name], docs)
	return BatchResult{Submitted: len(docs), StatusCode: status, DecodeErr: s.decodeErr}, nil
}

func (s *fakeStore) Refresh(_ context.Context, name string) error {
	s.refreshed = append(s.refreshed, name)
	return nil
}

// batchSizes returns the size of every bulk request made for name.
func (s *fakeStore) batchSizes(name string) []int {
	var sizes []int
	for _, b := range s.batches[name] {
		sizes = append(sizes, len(b))
	}
	return sizes
}
