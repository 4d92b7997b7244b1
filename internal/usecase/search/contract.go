package search

import (
	"context"

	"github.com/kailas-cloud/scanexplorer/internal/domain/scan"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/dsl"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/result"
)

// Engine runs composed bodies against the search index.
type Engine interface {
	Grouped(ctx context.Context, body dsl.Body) (int, []result.Bucket, error)
	Hits(ctx context.Context, body dsl.Body) (int, []result.Hit, error)
	OCRText(ctx context.Context, body dsl.Body) (string, error)
	Highlighted(ctx context.Context, body dsl.Body) ([]result.Hit, error)
}

// Catalog resolves authoritative attributes from the relational store.
type Catalog interface {
	Collections(ctx context.Context, ids []string) (map[string]scan.Collection, error)
	Articles(ctx context.Context, ids []string) (map[string]scan.Article, error)
	Resolve(ctx context.Context, id string) (scan.Kind, error)
}
