// Package catalog reads authoritative collection and article attributes from the
// relational store, batched by the ids an aggregation produced.
package catalog

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/scanexplorer/internal/domain"
	"github.com/kailas-cloud/scanexplorer/internal/domain/scan"
)

// store is the consumer interface for catalog lookups (ISP).
type store interface {
	CollectionsByID(ctx context.Context, ids []string) ([]scan.Collection, error)
	ArticlesByID(ctx context.Context, ids []string) ([]scan.Article, error)
	KindOf(ctx context.Context, id string) (scan.Kind, error)
}

// Repo implements usecase/search.Catalog.
type Repo struct {
	store store
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Collections looks up every id in one query, keyed by id. Unknown ids are absent.
func (r *Repo) Collections(ctx context.Context, ids []string) (map[string]scan.Collection, error) {
	rows, err := r.store.CollectionsByID(ctx, dedupe(ids))
	if err != nil {
		return nil, fmt.Errorf("lookup %d collections: %w", len(ids), err)
	}
	out := make(map[string]scan.Collection, len(rows))
	for _, c := range rows {
		out[string(c.ID())] = c
	}
	return out, nil
}

// Articles looks up every id in one query, keyed by id. Unknown ids are absent.
func (r *Repo) Articles(ctx context.Context, ids []string) (map[string]scan.Article, error) {
	rows, err := r.store.ArticlesByID(ctx, dedupe(ids))
	if err != nil {
		return nil, fmt.Errorf("lookup %d articles: %w", len(ids), err)
	}
	out := make(map[string]scan.Article, len(rows))
	for _, a := range rows {
		out[a.ID()] = a
	}
	return out, nil
}

// Resolve tells whether id names an article or a collection with one store
// lookup. Articles win when both exist.
func (r *Repo) Resolve(ctx context.Context, id string) (scan.Kind, error) {
	kind, err := r.store.KindOf(ctx, id)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", id, err)
	}
	if kind != scan.KindArticle && kind != scan.KindCollection {
		return "", &domain.NotFoundError{What: "article or collection " + id}
	}
	return kind, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
