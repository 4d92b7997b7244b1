package request

import (
	"math"

	"github.com/kailas-cloud/scanexplorer/internal/domain"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/order"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/query"
)

// Listing parameter limits.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Request is a validated listing query.
type Request struct {
	query *query.Compiled
	page  int
	limit int
	sort  order.Order
}

// New parses and validates a listing query. Every syntax, vocabulary and
// pagination problem is reported here, before anything reaches the engine.
// Limits above MaxLimit are clamped.
func New(raw string, page, limit int, sort order.Order) (Request, error) {
	parsed, err := query.Parse(raw)
	if err != nil {
		return Request{}, err
	}
	compiled, err := query.Compile(parsed)
	if err != nil {
		return Request{}, err
	}
	if compiled.IsEmpty() {
		return Request{}, domain.NewParseError(raw, "no valid keyword")
	}
	if page < 1 {
		return Request{}, &domain.PaginationError{Param: "page", Value: page}
	}
	if limit < 1 {
		return Request{}, &domain.PaginationError{Param: "limit", Value: limit}
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page-1 > math.MaxInt/limit {
		return Request{}, &domain.PaginationError{Param: "page", Value: page, Reason: "is out of range"}
	}
	if !sort.IsValid() {
		sort = order.Default
	}
	return Request{query: compiled, page: page, limit: limit, sort: sort}, nil
}

// Query returns the compiled query.
func (r *Request) Query() *query.Compiled { return r.query }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Sort returns the requested order.
func (r *Request) Sort() order.Order { return r.sort }

// Offset returns the index of the first item on the page.
func (r *Request) Offset() int { return (r.page - 1) * r.limit }
