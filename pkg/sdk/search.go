package scanexplorer

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/scanexplorer/internal/domain/search/order"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/request"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/result"
)

// Result types shared with the HTTP API.
type (
	Collection = result.Collection
	Article    = result.Article
	Page       = result.Page
	Highlights = result.Highlights
	Snippet    = result.Snippet

	CollectionListing = result.Listing[result.Collection]
	ArticleListing    = result.Listing[result.Article]
	PageListing       = result.Listing[result.Page]
)

// ListOptions selects one page of a listing. Zero Page and Limit take the
// defaults (1 and 10); Sort is one of relevance_desc, relevance_asc,
// bibcode_desc, bibcode_asc, collection_desc or collection_asc.
type ListOptions struct {
	Page  int
	Limit int
	Sort  string
}

func (o ListOptions) request(query string) (*request.Request, error) {
	page, limit := o.Page, o.Limit
	if page == 0 {
		page = request.DefaultPage
	}
	if limit == 0 {
		limit = request.DefaultLimit
	}
	req, err := request.New(query, page, limit, order.Parse(o.Sort))
	if err != nil {
		return nil, fmt.Errorf("scanexplorer: %w", err)
	}
	return &req, nil
}

// SearchCollections lists the journal volumes matching query.
func (c *Client) SearchCollections(
	ctx context.Context, query string, opts ListOptions,
) (out CollectionListing, err error) {
	start := time.Now()
	defer func() { c.obs.observe("collection.search", start, err) }()

	req, err := opts.request(query)
	if err != nil {
		return CollectionListing{}, err
	}
	return c.searchSvc.Collections(ctx, req)
}

// SearchArticles lists the articles matching query.
func (c *Client) SearchArticles(
	ctx context.Context, query string, opts ListOptions,
) (out ArticleListing, err error) {
	start := time.Now()
	defer func() { c.obs.observe("article.search", start, err) }()

	req, err := opts.request(query)
	if err != nil {
		return ArticleListing{}, err
	}
	return c.searchSvc.Articles(ctx, req)
}

// SearchPages lists the pages matching query.
func (c *Client) SearchPages(
	ctx context.Context, query string, opts ListOptions,
) (out PageListing, err error) {
	start := time.Now()
	defer func() { c.obs.observe("page.search", start, err) }()

	req, err := opts.request(query)
	if err != nil {
		return PageListing{}, err
	}
	return c.searchSvc.Pages(ctx, req)
}

// OCR returns the text of one page. A page without OCR gives ErrNotFound;
// a page whose OCR is empty gives "".
func (c *Client) OCR(ctx context.Context, collectionID string, pageNumber int) (text string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("page.ocr", start, err) }()

	req, err := request.NewOCR(collectionID, pageNumber)
	if err != nil {
		return "", fmt.Errorf("scanexplorer: %w", err)
	}
	return c.searchSvc.OCR(ctx, req)
}

// Highlight searches the text of one article or collection.
func (c *Client) Highlight(ctx context.Context, id, query string) (out Highlights, err error) {
	start := time.Now()
	defer func() { c.obs.observe("manifest.search", start, err) }()

	req, err := request.NewHighlight(id, query)
	if err != nil {
		return Highlights{}, fmt.Errorf("scanexplorer: %w", err)
	}
	return c.searchSvc.Highlight(ctx, req)
}
