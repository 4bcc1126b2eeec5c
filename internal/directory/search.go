package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/models"
)

const maxCandidates = 1000

var indexMapping = map[string]interface{}{
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"id":              map[string]interface{}{"type": "integer"},
			"name":            map[string]interface{}{"type": "text"},
			"industry":        map[string]interface{}{"type": "keyword"},
			"location":        map[string]interface{}{"type": "keyword"},
			"description":     map[string]interface{}{"type": "text"},
			"trustGrade":      map[string]interface{}{"type": "keyword"},
			"trustPercentage": map[string]interface{}{"type": "integer"},
			"verified":        map[string]interface{}{"type": "boolean"},
			"rating":          map[string]interface{}{"type": "double"},
			"reviewCount":     map[string]interface{}{"type": "integer"},
			"employees":       map[string]interface{}{"type": "keyword"},
			"services":        map[string]interface{}{"type": "keyword"},
		},
	},
}

// SearchIndex narrows candidates with Elasticsearch exact-match filters.
// Free-text matching and size buckets are left to Matches.
type SearchIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchIndex(client *elasticsearch.Client, index string) *SearchIndex {
	return &SearchIndex{client: client, index: index}
}

// EnsureIndex creates the index with its mapping if it does not exist.
func (s *SearchIndex) EnsureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{s.index}}.Do(ctx, s.client)
	if err != nil {
		return errors.NewSearchIndexFailedError(err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	body, _ := json.Marshal(indexMapping)
	res, err = esapi.IndicesCreateRequest{Index: s.index, Body: bytes.NewReader(body)}.Do(ctx, s.client)
	if err != nil {
		return errors.NewSearchIndexFailedError(err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return errors.NewSearchIndexFailedError(fmt.Errorf("create index: %s", res.String()))
	}
	return nil
}

// IndexAll bulk-loads records keyed by business id.
func (s *SearchIndex) IndexAll(ctx context.Context, records []models.BusinessRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range records {
		meta := map[string]interface{}{
			"index": map[string]interface{}{"_index": s.index, "_id": strconv.Itoa(r.ID)},
		}
		if err := enc.Encode(meta); err != nil {
			return 0, errors.NewSearchIndexFailedError(err)
		}
		if err := enc.Encode(r); err != nil {
			return 0, errors.NewSearchIndexFailedError(err)
		}
	}

	res, err := esapi.BulkRequest{Body: &buf, Refresh: "true"}.Do(ctx, s.client)
	if err != nil {
		return 0, errors.NewSearchIndexFailedError(err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, errors.NewSearchIndexFailedError(fmt.Errorf("bulk index: %s", res.String()))
	}

	var bulk struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int `json:"status"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulk); err != nil {
		return 0, errors.NewSearchIndexFailedError(err)
	}

	indexed := 0
	for _, item := range bulk.Items {
		for _, op := range item {
			if op.Status < 300 {
				indexed++
			}
		}
	}
	if bulk.Errors {
		return indexed, errors.NewSearchIndexFailedError(fmt.Errorf("%d of %d documents failed", len(records)-indexed, len(records)))
	}
	return indexed, nil
}

// CandidateIDs returns ids of documents satisfying the exact-match filters in c.
func (s *SearchIndex) CandidateIDs(ctx context.Context, c Criteria) (map[int]struct{}, error) {
	ids, _, err := s.searchIDs(ctx, buildCandidateQuery(c))
	return ids, err
}

// IndexedIDs returns the ids of every indexed document. truncated reports
// that the index holds more documents than one request returns.
func (s *SearchIndex) IndexedIDs(ctx context.Context) (ids map[int]struct{}, truncated bool, err error) {
	return s.searchIDs(ctx, map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
	})
}

func (s *SearchIndex) searchIDs(ctx context.Context, query map[string]interface{}) (map[int]struct{}, bool, error) {
	body, _ := json.Marshal(query)
	size := maxCandidates

	res, err := esapi.SearchRequest{
		Index:          []string{s.index},
		Body:           bytes.NewReader(body),
		Size:           &size,
		SourceIncludes: []string{"id"},
	}.Do(ctx, s.client)
	if err != nil {
		return nil, false, errors.NewSearchIndexFailedError(err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, false, errors.NewSearchIndexFailedError(fmt.Errorf("search: %s", res.String()))
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID int `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, false, errors.NewSearchIndexFailedError(err)
	}

	ids := make(map[int]struct{}, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		ids[hit.Source.ID] = struct{}{}
	}
	return ids, len(r.Hits.Hits) >= maxCandidates, nil
}

func buildCandidateQuery(c Criteria) map[string]interface{} {
	filters := []interface{}{}
	term := func(field, value string) {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{field: value},
		})
	}

	if !isAll(c.Industry) {
		term("industry", c.Industry)
	}
	if !isAll(c.Location) {
		term("location", c.Location)
	}
	if !isAll(c.Grade) {
		term("trustGrade", c.Grade)
	}
	if c.MinRating > 0 {
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{"rating": map[string]interface{}{"gte": c.MinRating}},
		})
	}
	if c.VerifiedOnly {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"verified": true},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": filters,
			},
		},
	}
}
