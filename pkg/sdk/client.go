package scanexplorer

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbOpenSearch "github.com/kailas-cloud/scanexplorer/internal/db/opensearch"
	dbPostgres "github.com/kailas-cloud/scanexplorer/internal/db/postgres"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/compose"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/field"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/request"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/result"
	catalogrepo "github.com/kailas-cloud/scanexplorer/internal/repository/catalog"
	searchrepo "github.com/kailas-cloud/scanexplorer/internal/repository/search"
	healthuc "github.com/kailas-cloud/scanexplorer/internal/usecase/health"
	searchuc "github.com/kailas-cloud/scanexplorer/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for mocks in tests.
type searchUseCase interface {
	Collections(ctx context.Context, req *request.Request) (result.Listing[result.Collection], error)
	Articles(ctx context.Context, req *request.Request) (result.Listing[result.Article], error)
	Pages(ctx context.Context, req *request.Request) (result.Listing[result.Page], error)
	OCR(ctx context.Context, req request.OCR) (string, error)
	Highlight(ctx context.Context, req request.Highlight) (result.Highlights, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Client is the scanexplorer SDK entry point.
type Client struct {
	engine    pinger
	closers   []func()
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. When a catalog database is configured, the provided
// context is used for its readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addresses) == 0 || cfg.index == "" {
		return nil, errors.New("scanexplorer: opensearch index and address required (use WithOpenSearch)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	engine, err := dbOpenSearch.NewStore(dbOpenSearch.Config{
		Addresses:          cfg.addresses,
		Index:              cfg.index,
		Username:           cfg.username,
		Password:           cfg.password,
		InsecureSkipVerify: cfg.insecure,
	})
	if err != nil {
		return nil, fmt.Errorf("scanexplorer: create opensearch client: %w", err)
	}

	c := &Client{engine: engine, closers: []func(){engine.Close}, obs: obs}
	healthSvc := healthuc.New(engine)

	var catalog searchuc.Catalog
	if cfg.dsn != "" {
		pg, err := dbPostgres.NewStore(ctx, cfg.dsn)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("scanexplorer: create postgres pool: %w", err)
		}
		c.closers = append(c.closers, pg.Close)
		if err := pg.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			c.Close()
			return nil, fmt.Errorf("scanexplorer: database not ready: %w", err)
		}
		catalog = catalogrepo.New(pg)
		healthSvc.With("database", pg)
	}

	composer := compose.New(field.NewTable(), cfg.bucketCeiling)
	c.searchSvc = searchuc.New(composer, searchrepo.New(engine), catalog, cfg.highlightSize)
	c.healthSvc = healthSvc
	return c, nil
}

// Close releases all resources.
func (c *Client) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Ping checks search engine connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.engine.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
