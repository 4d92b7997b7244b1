package opensearch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/kailas-cloud/scanexplorer/internal/db"
)

type fakeTransport struct {
	status int
	body   string
	err    error
	reqs   []*http.Request
	bodies []string
}

func (f *fakeTransport) Perform(req *http.Request) (*http.Response, error) {
	f.reqs = append(f.reqs, req)
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		f.bodies = append(f.bodies, string(b))
	}
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Header:     http.Header{},
	}, nil
}

func newTestStore(ft *fakeTransport) *Store {
	return &Store{transport: ft, index: "pages"}
}

func TestNewStore_Validation(t *testing.T) {
	if _, err := NewStore(Config{Index: "pages"}); err == nil {
		t.Error("expected error without addresses")
	}
	if _, err := NewStore(Config{Addresses: []string{"http://localhost:9200"}}); err == nil {
		t.Error("expected error without index")
	}
	s, err := NewStore(Config{Addresses: []string{"http://localhost:9200"}, Index: "pages", InsecureSkipVerify: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Index() != "pages" {
		t.Errorf("Index() = %q", s.Index())
	}
}

func TestSearch_Success(t *testing.T) {
	ft := &fakeTransport{status: 200, body: `{
		"took": 3,
		"hits": {"total": {"value": 2, "relation": "eq"}, "hits": [
			{"_id": "p1", "_score": 1.5, "_source": {"page_id": "p1"}, "highlight": {"text": ["<em>x</em>"]}}
		]},
		"aggregations": {"total_count": {"value": 7}}
	}`}
	s := newTestStore(ft)

	res, err := s.Search(context.Background(), []byte(`{"size":1}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Hits.Total == nil || res.Hits.Total.Value != 2 {
		t.Errorf("total = %+v", res.Hits.Total)
	}
	if len(res.Hits.Hits) != 1 || res.Hits.Hits[0].ID != "p1" || *res.Hits.Hits[0].Score != 1.5 {
		t.Errorf("hits = %+v", res.Hits.Hits)
	}
	if res.Hits.Hits[0].Highlight["text"][0] != "<em>x</em>" {
		t.Errorf("highlight = %v", res.Hits.Hits[0].Highlight)
	}
	if _, ok := res.Aggregations["total_count"]; !ok {
		t.Error("aggregations not decoded")
	}

	if len(ft.reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ft.reqs))
	}
	if !strings.Contains(ft.reqs[0].URL.Path, "/pages/_search") {
		t.Errorf("path = %s", ft.reqs[0].URL.Path)
	}
	if ft.bodies[0] != `{"size":1}` {
		t.Errorf("body = %s", ft.bodies[0])
	}
}

func TestSearch_StatusError(t *testing.T) {
	ft := &fakeTransport{status: 400, body: `{"error":{"type":"search_phase_execution_exception","reason":"internal detail"}}`}
	_, err := newTestStore(ft).Search(context.Background(), []byte(`{}`))

	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpSearch {
		t.Fatalf("expected db.Error(search), got %v", err)
	}
	var se *db.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if se.Status != 400 || se.Reason != "search_phase_execution_exception" {
		t.Errorf("status error = %+v", se)
	}
	if strings.Contains(err.Error(), "internal detail") {
		t.Error("engine payload leaked into error")
	}
}

func TestSearch_TransportError(t *testing.T) {
	ft := &fakeTransport{err: errors.New("connection refused")}
	_, err := newTestStore(ft).Search(context.Background(), []byte(`{}`))
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpSearch {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestSearch_MalformedBody(t *testing.T) {
	ft := &fakeTransport{status: 200, body: `{"hits": [`}
	_, err := newTestStore(ft).Search(context.Background(), []byte(`{}`))
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpDecodeResult {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestPing(t *testing.T) {
	if err := newTestStore(&fakeTransport{status: 200, body: ""}).Ping(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := newTestStore(&fakeTransport{status: 503, body: ""}).Ping(context.Background())
	var se *db.StatusError
	if !errors.As(err, &se) || se.Status != 503 {
		t.Errorf("expected 503 status error, got %v", err)
	}
}
