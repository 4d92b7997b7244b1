package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/scanexplorer/internal/domain/scan"
)

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Engine runs search bodies against the page index.
type Engine interface {
	Pinger
	Search(ctx context.Context, body []byte) (*SearchResponse, error)
	Close()
}

// Catalog is the relational store of collections and articles.
type Catalog interface {
	Pinger
	CollectionsByID(ctx context.Context, ids []string) ([]scan.Collection, error)
	ArticlesByID(ctx context.Context, ids []string) ([]scan.Article, error)
	// KindOf names the table holding id, articles first. Empty when unknown.
	KindOf(ctx context.Context, id string) (scan.Kind, error)
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Counter holds expiring counters.
type Counter interface {
	Pinger
	// IncrWindow increments key and starts its TTL when the key is new.
	IncrWindow(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
