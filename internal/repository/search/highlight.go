package search

import (
	"context"

	"github.com/kailas-cloud/scanexplorer/internal/domain/search/dsl"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/result"
)

// Highlighted runs a highlight body and returns the matching pages with their snippets.
func (r *Repo) Highlighted(ctx context.Context, body dsl.Body) ([]result.Hit, error) {
	res, err := r.search(ctx, "highlight search", body)
	if err != nil {
		return nil, err
	}
	return decodeHits(res.Hits.Hits)
}
