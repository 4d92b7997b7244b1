package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scanexplorer/internal/domain/scan"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/compose"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/dsl"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/request"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/result"
	"github.com/kailas-cloud/scanexplorer/internal/logger"
	"github.com/kailas-cloud/scanexplorer/internal/metrics"
)

// DefaultHighlightSize caps the pages returned by a highlight search.
const DefaultHighlightSize = 100

// Service answers listing, OCR and highlight searches. It makes at most one
// engine call and one catalog call per request.
type Service struct {
	composer      *compose.Composer
	engine        Engine
	catalog       Catalog
	highlightSize int
}

// New creates a search service. catalog may be nil, in which case listings are
// not enriched and highlight scopes are inferred from the id shape.
func New(composer *compose.Composer, engine Engine, catalog Catalog, highlightSize int) *Service {
	if highlightSize <= 0 {
		highlightSize = DefaultHighlightSize
	}
	return &Service{composer: composer, engine: engine, catalog: catalog, highlightSize: highlightSize}
}

// Collections lists collections matching req, largest first unless a sort is requested.
func (s *Service) Collections(ctx context.Context, req *request.Request) (result.Listing[result.Collection], error) {
	body := s.composer.Grouped(req, compose.ByCollection)
	debugBody(ctx, "collection", body)

	total, buckets, err := s.engine.Grouped(ctx, body)
	if err != nil {
		return result.Listing[result.Collection]{}, fmt.Errorf("search collections: %w", err)
	}
	items := result.Collections(buckets)

	if s.catalog != nil && len(items) > 0 {
		start := time.Now()
		found, err := s.catalog.Collections(ctx, result.Keys(buckets))
		metrics.EnrichmentDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			return result.Listing[result.Collection]{}, fmt.Errorf("enrich collections: %w", err)
		}
		result.EnrichCollections(items, found)
	}
	return result.Paginate(req.Page(), req.Limit(), total, req.Query().Raw(), items), nil
}

// Articles lists articles matching req, in reading order unless a sort is requested.
func (s *Service) Articles(ctx context.Context, req *request.Request) (result.Listing[result.Article], error) {
	body := s.composer.Grouped(req, compose.ByArticle)
	debugBody(ctx, "article", body)

	total, buckets, err := s.engine.Grouped(ctx, body)
	if err != nil {
		return result.Listing[result.Article]{}, fmt.Errorf("search articles: %w", err)
	}
	items := result.Articles(buckets)

	if s.catalog != nil && len(items) > 0 {
		start := time.Now()
		found, err := s.catalog.Articles(ctx, result.Keys(buckets))
		metrics.EnrichmentDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			return result.Listing[result.Article]{}, fmt.Errorf("enrich articles: %w", err)
		}
		result.EnrichArticles(items, found)
	}
	return result.Paginate(req.Page(), req.Limit(), total, req.Query().Raw(), items), nil
}

// Pages lists pages matching req ordered by collection and page number. The page
// count is capped at the engine's window ceiling since from/size cannot reach past it.
func (s *Service) Pages(ctx context.Context, req *request.Request) (result.Listing[result.Page], error) {
	body := s.composer.Listing(req)
	debugBody(ctx, "page", body)

	total, hits, err := s.engine.Hits(ctx, body)
	if err != nil {
		return result.Listing[result.Page]{}, fmt.Errorf("search pages: %w", err)
	}
	listing := result.Paginate(req.Page(), req.Limit(), total, req.Query().Raw(), result.Pages(hits))
	listing.PageCount = result.PageCount(min(total, s.composer.BucketCeiling()), req.Limit())
	return listing, nil
}

// OCR returns the raw text of one page.
func (s *Service) OCR(ctx context.Context, req request.OCR) (string, error) {
	body := s.composer.OCR(req, true)
	debugBody(ctx, "ocr", body)

	text, err := s.engine.OCRText(ctx, body)
	if err != nil {
		return "", fmt.Errorf("ocr %s/%d: %w", req.CollectionID(), req.PageNumber(), err)
	}
	return text, nil
}

// Highlight searches the text of every page of one article or collection.
func (s *Service) Highlight(ctx context.Context, req request.Highlight) (result.Highlights, error) {
	kind, err := s.resolve(ctx, req.ID())
	if err != nil {
		return result.Highlights{}, err
	}
	scope := compose.ByArticle
	if kind == scan.KindCollection {
		scope = compose.ByCollection
	}

	body := s.composer.Highlight(req, scope, s.highlightSize)
	debugBody(ctx, "highlight", body)

	hits, err := s.engine.Highlighted(ctx, body)
	if err != nil {
		return result.Highlights{}, fmt.Errorf("highlight %s: %w", req.ID(), err)
	}
	return result.NewHighlights(req.ID(), req.Text(), hits), nil
}

func (s *Service) resolve(ctx context.Context, id string) (scan.Kind, error) {
	if s.catalog == nil {
		if scan.CollectionID(id).Valid() {
			return scan.KindCollection, nil
		}
		return scan.KindArticle, nil
	}
	kind, err := s.catalog.Resolve(ctx, id)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", id, err)
	}
	return kind, nil
}

func debugBody(ctx context.Context, entity string, body dsl.Body) {
	logger.FromContext(ctx).Debug("Compiled search body",
		zap.String("entity", entity),
		zap.Any("body", body),
	)
}
