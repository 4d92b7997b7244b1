package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scanexplorer/internal/domain"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/compose"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/dsl"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/field"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/scanexplorer/internal/usecase/health"
	searchuc "github.com/kailas-cloud/scanexplorer/internal/usecase/search"
)

// recordingEngine records every body it receives.
type recordingEngine struct {
	bodies        []dsl.Body
	groupedFn     func(body dsl.Body) (int, []result.Bucket, error)
	hitsFn        func(body dsl.Body) (int, []result.Hit, error)
	ocrFn         func(body dsl.Body) (string, error)
	highlightedFn func(body dsl.Body) ([]result.Hit, error)
}

func (e *recordingEngine) Grouped(_ context.Context, body dsl.Body) (int, []result.Bucket, error) {
	e.bodies = append(e.bodies, body)
	if e.groupedFn != nil {
		return e.groupedFn(body)
	}
	return 0, nil, nil
}

func (e *recordingEngine) Hits(_ context.Context, body dsl.Body) (int, []result.Hit, error) {
	e.bodies = append(e.bodies, body)
	if e.hitsFn != nil {
		return e.hitsFn(body)
	}
	return 0, nil, nil
}

func (e *recordingEngine) OCRText(_ context.Context, body dsl.Body) (string, error) {
	e.bodies = append(e.bodies, body)
	if e.ocrFn != nil {
		return e.ocrFn(body)
	}
	return "", nil
}

func (e *recordingEngine) Highlighted(_ context.Context, body dsl.Body) ([]result.Hit, error) {
	e.bodies = append(e.bodies, body)
	if e.highlightedFn != nil {
		return e.highlightedFn(body)
	}
	return nil, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestRouter(engine *recordingEngine, pingErr error) chi.Router {
	svc := searchuc.New(compose.New(field.NewTable(), 0), engine, nil, 0)
	health := healthuc.New(stubPinger{err: pingErr})
	srv := NewServer(svc, health, Limits{Default: 10, Max: 50}, zap.NewNop())
	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&e); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return e
}

// --- Listings ---

func TestSearchCollections_Envelope(t *testing.T) {
	engine := &recordingEngine{
		groupedFn: func(dsl.Body) (int, []result.Bucket, error) {
			return 23, []result.Bucket{{Key: "ApJ..0333", DocCount: 40}, {Key: "AJ...0006", DocCount: 12}}, nil
		},
	}
	r := newTestRouter(engine, nil)

	rr := do(t, r, "/collection/search?q=bibstem:ApJ&page=2&limit=10")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var got result.Listing[result.Collection]
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Page != 2 || got.Limit != 10 || got.Total != 23 || got.PageCount != 3 || got.Query != "bibstem:ApJ" {
		t.Errorf("envelope = %+v", got)
	}
	if len(got.Items) != 2 || got.Items[0].ID != "ApJ..0333" || got.Items[0].Journal != "ApJ.." || got.Items[0].Volume != "0333" {
		t.Errorf("items = %+v", got.Items)
	}
	if len(engine.bodies) != 1 {
		t.Errorf("engine calls = %d, want 1", len(engine.bodies))
	}
}

func TestSearchArticles_EmptyItemsArray(t *testing.T) {
	r := newTestRouter(&recordingEngine{}, nil)

	rr := do(t, r, "/article/search?q=apj")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"items":[]`) {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestSearchPages_DefaultsAndClamp(t *testing.T) {
	engine := &recordingEngine{}
	r := newTestRouter(engine, nil)

	rr := do(t, r, "/page/search?q=apj")
	var got result.Listing[result.Page]
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Page != 1 || got.Limit != 10 {
		t.Errorf("defaults: page = %d, limit = %d", got.Page, got.Limit)
	}

	rr = do(t, r, "/page/search?q=apj&limit=500")
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Limit != 50 {
		t.Errorf("clamped limit = %d, want 50", got.Limit)
	}
}

func TestListing_ValidationFailsBeforeEngine(t *testing.T) {
	tests := []struct {
		name   string
		target string
		typ    string
	}{
		{"unknown key", "/collection/search?q=foo:bar", codeUnknownOption},
		{"invalid enum", "/page/search?q=pagetype:nonsense", codeInvalidValue},
		{"unbalanced quote", `/article/search?q=%22apj`, codeParse},
		{"empty query", "/article/search?q=", codeParse},
		{"zero page", "/collection/search?q=apj&page=0", codePagination},
		{"negative limit", "/page/search?q=apj&limit=-1", codePagination},
		{"non-numeric page", "/page/search?q=apj&page=two", codeBadRequest},
		{"non-numeric volume", "/page/search?q=volume:abc", codeInvalidValue},
		{"page beyond int range", "/collection/search?q=apj&page=9223372036854775807&limit=10", codePagination},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &recordingEngine{}
			r := newTestRouter(engine, nil)

			rr := do(t, r, tt.target)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			if e := decodeError(t, rr); e.Type != tt.typ || e.Message == "" {
				t.Errorf("envelope = %+v, want type %s", e, tt.typ)
			}
			if len(engine.bodies) != 0 {
				t.Errorf("engine called %d times", len(engine.bodies))
			}
		})
	}
}

func TestListing_EngineErrorHidesPayload(t *testing.T) {
	engine := &recordingEngine{
		groupedFn: func(dsl.Body) (int, []result.Bucket, error) {
			return 0, nil, domain.NewEngineError("search", 500, errors.New("search_phase_execution_exception"))
		},
	}
	r := newTestRouter(engine, nil)

	rr := do(t, r, "/collection/search?q=apj")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rr.Code)
	}
	e := decodeError(t, rr)
	if e.Type != codeEngine || strings.Contains(e.Message, "search_phase") {
		t.Errorf("envelope = %+v", e)
	}
}

func TestListing_UnexpectedErrorIs500(t *testing.T) {
	engine := &recordingEngine{
		hitsFn: func(dsl.Body) (int, []result.Hit, error) {
			return 0, nil, errors.New("boom")
		},
	}
	r := newTestRouter(engine, nil)

	rr := do(t, r, "/page/search?q=apj")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if e := decodeError(t, rr); e.Type != codeInternal || e.Message != "internal error" {
		t.Errorf("envelope = %+v", e)
	}
}

// --- OCR ---

func TestPageOCR_PlainText(t *testing.T) {
	engine := &recordingEngine{
		ocrFn: func(dsl.Body) (string, error) { return "THE ASTROPHYSICAL JOURNAL", nil },
	}
	r := newTestRouter(engine, nil)

	rr := do(t, r, "/page/ocr?id=ApJ..0333&page_number=4")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %s", ct)
	}
	if rr.Body.String() != "THE ASTROPHYSICAL JOURNAL" {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestPageOCR_Errors(t *testing.T) {
	notFound := &recordingEngine{
		ocrFn: func(dsl.Body) (string, error) { return "", &domain.NotFoundError{What: "page"} },
	}
	rr := do(t, newTestRouter(notFound, nil), "/page/ocr?id=ApJ..0333&page_number=4")
	if rr.Code != http.StatusNotFound || decodeError(t, rr).Type != codeNotFound {
		t.Errorf("not found: status = %d", rr.Code)
	}

	tests := []struct {
		target string
		typ    string
	}{
		{"/page/ocr?page_number=4", codeBadRequest},
		{"/page/ocr?id=ApJ..0333", codeBadRequest},
		{"/page/ocr?id=ApJ..0333&page_number=0", codePagination},
	}
	for _, tt := range tests {
		engine := &recordingEngine{}
		rr := do(t, newTestRouter(engine, nil), tt.target)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", tt.target, rr.Code)
			continue
		}
		if e := decodeError(t, rr); e.Type != tt.typ {
			t.Errorf("%s: type = %s, want %s", tt.target, e.Type, tt.typ)
		}
		if len(engine.bodies) != 0 {
			t.Errorf("%s: engine called", tt.target)
		}
	}
}

// --- Manifest search ---

func TestSearchManifest(t *testing.T) {
	engine := &recordingEngine{
		highlightedFn: func(dsl.Body) ([]result.Hit, error) {
			return []result.Hit{{PageID: "p7", Label: "iv", PageNumber: 7, Highlights: []string{"the <em>sun</em>"}}}, nil
		},
	}
	r := newTestRouter(engine, nil)

	rr := do(t, r, "/manifest/ApJ..0333/search?q=sun")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var got result.Highlights
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.ID != "ApJ..0333" || got.Query != "sun" || len(got.Items) != 1 || got.Items[0].VolumePageNum != 7 {
		t.Errorf("highlights = %+v", got)
	}
}

func TestSearchManifest_MissingQuery(t *testing.T) {
	engine := &recordingEngine{}
	rr := do(t, newTestRouter(engine, nil), "/manifest/ApJ..0333/search")
	if rr.Code != http.StatusBadRequest || decodeError(t, rr).Type != codeParse {
		t.Errorf("status = %d", rr.Code)
	}
	if len(engine.bodies) != 0 {
		t.Error("engine called")
	}
}

// --- Health ---

func TestHealthCheck(t *testing.T) {
	rr := do(t, newTestRouter(&recordingEngine{}, nil), "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var h HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.Checks["search_engine"] != "ok" {
		t.Errorf("health = %+v", h)
	}

	rr = do(t, newTestRouter(&recordingEngine{}, errors.New("down")), "/health")
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("degraded status = %d", rr.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	rr := do(t, newTestRouter(&recordingEngine{}, nil), "/metrics")
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d", rr.Code)
	}
}
