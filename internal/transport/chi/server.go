package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scanexplorer/internal/domain"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/order"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/request"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/result"
	"github.com/kailas-cloud/scanexplorer/internal/metrics"
	healthuc "github.com/kailas-cloud/scanexplorer/internal/usecase/health"
	searchuc "github.com/kailas-cloud/scanexplorer/internal/usecase/search"
)

// Error envelope types.
const (
	codeParse         = "parse_error"
	codeUnknownOption = "unknown_option"
	codeInvalidValue  = "invalid_value"
	codePagination    = "pagination_error"
	codeBadRequest    = "bad_request"
	codeNotFound      = "not_found"
	codeEngine        = "engine_error"
	codeRateLimited   = "rate_limited"
	codeUnauthorized  = "unauthorized"
	codeInternal      = "internal_error"
)

// Search outcomes reported to metrics.SearchRequestsTotal.
const (
	outcomeOK          = "ok"
	outcomeRejected    = "rejected"
	outcomeNotFound    = "not_found"
	outcomeEngineError = "engine_error"
	outcomeError       = "error"
)

// ErrorResponse is the body of every non-2xx API answer.
type ErrorResponse struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Limits bounds the listing page size. Default applies when limit is omitted;
// larger values are clamped to Max.
type Limits struct {
	Default int
	Max     int
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the search API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	limits        Limits
	limiter       Limiter
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	limits Limits,
	logger *zap.Logger,
) *Server {
	if limits.Default < 1 {
		limits.Default = request.DefaultLimit
	}
	if limits.Max < 1 || limits.Max > request.MaxLimit {
		limits.Max = request.MaxLimit
	}
	s := &Server{
		search: search,
		health: health,
		limits: limits,
		logger: logger,
	}
	// Order matters: the first matching sentinel wins.
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrParse, http.StatusBadRequest, codeParse),
		sentinelHandler(domain.ErrUnknownOption, http.StatusBadRequest, codeUnknownOption),
		sentinelHandler(domain.ErrInvalidValue, http.StatusBadRequest, codeInvalidValue),
		sentinelHandler(domain.ErrPagination, http.StatusBadRequest, codePagination),
		sentinelHandler(errBadParam, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		engineHandler,
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
	}
	return s
}

// WithRateLimit enables per-route request limiting. A nil limiter disables it.
func (s *Server) WithRateLimit(l Limiter) *Server {
	s.limiter = l
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.With(s.rateLimit("collection_search")).Get("/collection/search", s.SearchCollections)
	r.With(s.rateLimit("article_search")).Get("/article/search", s.SearchArticles)
	r.With(s.rateLimit("page_search")).Get("/page/search", s.SearchPages)
	r.With(s.rateLimit("page_ocr")).Get("/page/ocr", s.PageOCR)
	r.With(s.rateLimit("manifest_search")).Get("/manifest/{id}/search", s.SearchManifest)
}

// SearchCollections handles GET /collection/search.
func (s *Server) SearchCollections(w http.ResponseWriter, r *http.Request) {
	listing(s, w, r, "collection", s.search.Collections)
}

// SearchArticles handles GET /article/search.
func (s *Server) SearchArticles(w http.ResponseWriter, r *http.Request) {
	listing(s, w, r, "article", s.search.Articles)
}

// SearchPages handles GET /page/search.
func (s *Server) SearchPages(w http.ResponseWriter, r *http.Request) {
	listing(s, w, r, "page", s.search.Pages)
}

func listing[T any](
	s *Server,
	w http.ResponseWriter,
	r *http.Request,
	entity string,
	run func(context.Context, *request.Request) (result.Listing[T], error),
) {
	req, err := s.listingRequest(r)
	if err != nil {
		s.fail(w, entity, err)
		return
	}
	out, err := run(r.Context(), &req)
	if err != nil {
		s.fail(w, entity, err)
		return
	}
	metrics.SearchRequestsTotal.WithLabelValues(entity, outcomeOK).Inc()
	writeJSON(w, http.StatusOK, out)
}

// PageOCR handles GET /page/ocr and answers with the raw page text.
func (s *Server) PageOCR(w http.ResponseWriter, r *http.Request) {
	const entity = "ocr"
	var (
		id         string
		pageNumber int
	)
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "id", q, &id); err != nil {
		s.fail(w, entity, badParam("id", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "page_number", q, &pageNumber); err != nil {
		s.fail(w, entity, badParam("page_number", err))
		return
	}
	req, err := request.NewOCR(id, pageNumber)
	if err != nil {
		s.fail(w, entity, err)
		return
	}
	text, err := s.search.OCR(r.Context(), req)
	if err != nil {
		s.fail(w, entity, err)
		return
	}
	metrics.SearchRequestsTotal.WithLabelValues(entity, outcomeOK).Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// SearchManifest handles GET /manifest/{id}/search.
func (s *Server) SearchManifest(w http.ResponseWriter, r *http.Request) {
	const entity = "manifest"
	var q string
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &q); err != nil {
		s.fail(w, entity, badParam("q", err))
		return
	}
	req, err := request.NewHighlight(chi.URLParam(r, "id"), q)
	if err != nil {
		s.fail(w, entity, err)
		return
	}
	out, err := s.search.Highlight(r.Context(), req)
	if err != nil {
		s.fail(w, entity, err)
		return
	}
	metrics.SearchRequestsTotal.WithLabelValues(entity, outcomeOK).Inc()
	writeJSON(w, http.StatusOK, out)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// listingRequest binds q, page, limit and sort. Omitted page and limit take
// their defaults; an explicit value below 1 is left for request.New to reject.
func (s *Server) listingRequest(r *http.Request) (request.Request, error) {
	var (
		q     string
		sort  string
		page  = request.DefaultPage
		limit = s.limits.Default
	)
	params := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "q", params, &q); err != nil {
		return request.Request{}, badParam("q", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", params, &page); err != nil {
		return request.Request{}, badParam("page", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", params, &limit); err != nil {
		return request.Request{}, badParam("limit", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "sort", params, &sort); err != nil {
		return request.Request{}, badParam("sort", err)
	}
	if limit > s.limits.Max {
		limit = s.limits.Max
	}
	return request.New(q, page, limit, order.Parse(sort))
}

// fail counts the outcome and writes the error envelope.
func (s *Server) fail(w http.ResponseWriter, entity string, err error) {
	metrics.SearchRequestsTotal.WithLabelValues(entity, outcomeOf(err)).Inc()
	s.handleDomainError(w, err)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrEngine):
		return outcomeEngineError
	case errors.Is(err, domain.ErrNotFound):
		return outcomeNotFound
	case isClientError(err):
		return outcomeRejected
	default:
		return outcomeError
	}
}

func isClientError(err error) bool {
	for _, s := range []error{
		domain.ErrParse, domain.ErrUnknownOption, domain.ErrInvalidValue, domain.ErrPagination, errBadParam,
	} {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Message: message,
		Type:    code,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// Validation errors carry user-facing detail, so their message is passed through.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

// engineHandler hides the engine payload behind the sentinel message.
func engineHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrEngine) {
		return false
	}
	writeError(w, http.StatusBadGateway, codeEngine, domain.ErrEngine.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}
