// Package postgres reads collection and article attributes from the relational catalog.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kailas-cloud/scanexplorer/internal/db"
	"github.com/kailas-cloud/scanexplorer/internal/domain/scan"
)

// Compile-time check: Store implements db.Catalog.
var _ db.Catalog = (*Store)(nil)

const (
	selectCollections = `SELECT id, COALESCE(type, '') FROM collection WHERE id = ANY($1)`
	selectArticles    = `SELECT id, COALESCE(collection_id, '') FROM article WHERE id = ANY($1)`
	selectKind        = `SELECT kind FROM (
		SELECT 'article' AS kind, 0 AS rank FROM article WHERE id = $1
		UNION ALL
		SELECT 'collection', 1 FROM collection WHERE id = $1
	) k ORDER BY rank LIMIT 1`
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// Store implements db.Catalog over a pgx pool.
type Store struct {
	pool  querier
	close func()
}

// NewStore opens a pool. Connections are established lazily.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	return &Store{pool: pool, close: pool.Close}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close releases every pooled connection.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// CollectionsByID returns the known collections among ids, in no particular order.
func (s *Store) CollectionsByID(ctx context.Context, ids []string) ([]scan.Collection, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, selectCollections, ids)
	if err != nil {
		return nil, &db.Error{Op: db.OpCollections, Err: err}
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (scan.Collection, error) {
		var id, typ string
		if err := row.Scan(&id, &typ); err != nil {
			return scan.Collection{}, err
		}
		return scan.ReconstructCollection(id, typ), nil
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpCollections, Err: err}
	}
	return out, nil
}

// ArticlesByID returns the known articles among ids, in no particular order.
func (s *Store) ArticlesByID(ctx context.Context, ids []string) ([]scan.Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, selectArticles, ids)
	if err != nil {
		return nil, &db.Error{Op: db.OpArticles, Err: err}
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (scan.Article, error) {
		var id, collectionID string
		if err := row.Scan(&id, &collectionID); err != nil {
			return scan.Article{}, err
		}
		return scan.ReconstructArticle(id, collectionID), nil
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpArticles, Err: err}
	}
	return out, nil
}

// KindOf resolves id against both tables in a single round-trip.
func (s *Store) KindOf(ctx context.Context, id string) (scan.Kind, error) {
	rows, err := s.pool.Query(ctx, selectKind, id)
	if err != nil {
		return "", &db.Error{Op: db.OpResolve, Err: err}
	}
	kinds, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return "", &db.Error{Op: db.OpResolve, Err: err}
	}
	if len(kinds) == 0 {
		return "", nil
	}
	return scan.Kind(kinds[0]), nil
}
