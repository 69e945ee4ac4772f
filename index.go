package esfaker

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/pkg/errors"
)

// ElasticsearchStore implements Store on top of the Elasticsearch index and bulk APIs.
type ElasticsearchStore struct {
	client *elasticsearch.Client
}

var (
	_ Store     = (*ElasticsearchStore)(nil)
	_ Refresher = (*ElasticsearchStore)(nil)
)

// NewElasticsearchStore wraps client.
func NewElasticsearchStore(client *elasticsearch.Client) (*ElasticsearchStore, error) {
	if client == nil {
		return nil, errors.New("esfaker: client must not be nil")
	}
	return &ElasticsearchStore{client: client}, nil
}

// CollectionExists reports whether the index exists.
func (s *ElasticsearchStore) CollectionExists(ctx context.Context, name string) (bool, error) {
	res, err := s.client.Indices.Exists(
		[]string{name},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, errors.Wrapf(err, "checking index %q", name)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, errors.Wrapf(checkResponse(res), "checking index %q", name)
	}
}

// CreateCollection creates an index with the given definition
// (the body of the Create Index API: mappings, settings, aliases).
func (s *ElasticsearchStore) CreateCollection(ctx context.Context, name string, schema json.RawMessage) error {
	opts := []func(*esapi.IndicesCreateRequest){
		s.client.Indices.Create.WithContext(ctx),
	}
	if len(schema) > 0 {
		opts = append(opts, s.client.Indices.Create.WithBody(bytes.NewReader(schema)))
	}

	res, err := s.client.Indices.Create(name, opts...)
	if err != nil {
		return errors.Wrapf(err, "creating index %q", name)
	}
	defer res.Body.Close()

	if err := checkResponse(res); err != nil {
		return errors.Wrapf(err, "creating index %q", name)
	}

	return nil
}

// DropCollection deletes an index. A missing index is ignored.
func (s *ElasticsearchStore) DropCollection(ctx context.Context, name string) error {
	res, err := s.client.Indices.Delete(
		[]string{name},
		s.client.Indices.Delete.WithContext(ctx),
		s.client.Indices.Delete.WithIgnoreUnavailable(true),
	)
	if err != nil {
		return errors.Wrapf(err, "deleting index %q", name)
	}
	defer res.Body.Close()

	if err := checkResponse(res); err != nil {
		return errors.Wrapf(err, "deleting index %q", name)
	}

	return nil
}

// BulkWrite indexes docs with a single Bulk API request.
func (s *ElasticsearchStore) BulkWrite(ctx context.Context, name string, docs []Document) (BatchResult, error) {
	result := BatchResult{Submitted: len(docs)}
	if len(docs) == 0 {
		result.StatusCode = http.StatusOK
		return result, nil
	}

	body, err := buildBulkBody(docs)
	if err != nil {
		return result, errors.Wrap(err, "building bulk request body")
	}

	res, err := s.client.Bulk(
		bytes.NewReader(body),
		s.client.Bulk.WithIndex(name),
		s.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return result, errors.Wrapf(err, "bulk indexing into %q", name)
	}
	defer res.Body.Close()

	result.StatusCode = res.StatusCode
	if res.IsError() {
		return result, nil
	}

	var blk bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&blk); err != nil {
		result.DecodeErr = errors.Wrap(err, "decoding bulk response")
		return result, nil
	}
	if blk.Errors {
		for _, item := range blk.Items {
			for _, op := range item {
				if op.Status > 299 {
					result.Failed++
				}
			}
		}
	}

	return result, nil
}

// Refresh forces a refresh on the index so documents are immediately searchable.
func (s *ElasticsearchStore) Refresh(ctx context.Context, name string) error {
	res, err := s.client.Indices.Refresh(
		s.client.Indices.Refresh.WithIndex(name),
		s.client.Indices.Refresh.WithContext(ctx),
	)
	if err != nil {
		return errors.Wrapf(err, "refreshing index %q", name)
	}
	defer res.Body.Close()

	if err := checkResponse(res); err != nil {
		return errors.Wrapf(err, "refreshing index %q", name)
	}

	return nil
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
	} `json:"items"`
}

// buildBulkBody encodes docs as newline-delimited index actions.
func buildBulkBody(docs []Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, doc := range docs {
		meta := map[string]map[string]string{"index": {}}
		if doc.ID != "" {
			meta["index"]["_id"] = doc.ID
		}
		if err := enc.Encode(meta); err != nil {
			return nil, err
		}
		var body bytes.Buffer
		if err := json.Compact(&body, doc.Body); err != nil {
			return nil, err
		}
		buf.Write(body.Bytes())
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// checkResponse checks an Elasticsearch API response for errors.
func checkResponse(res *esapi.Response) error {
	if !res.IsError() {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return errors.Errorf("elasticsearch error [%s]: %s", res.Status(), string(body))
}
