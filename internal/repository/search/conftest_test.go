package search

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kailas-cloud/scanexplorer/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, body []byte) (*db.SearchResponse, error)
	bodies   []map[string]any
}

func (m *mockStore) Search(ctx context.Context, body []byte) (*db.SearchResponse, error) {
	var decoded map[string]any
	_ = json.Unmarshal(body, &decoded)
	m.bodies = append(m.bodies, decoded)
	if m.searchFn != nil {
		return m.searchFn(ctx, body)
	}
	return &db.SearchResponse{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

// response decodes a literal engine answer.
func response(t *testing.T, raw string) *db.SearchResponse {
	t.Helper()
	var res db.SearchResponse
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return &res
}
