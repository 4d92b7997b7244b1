// Package result shapes engine output into paginated listings.
package result

import (
	"github.com/kailas-cloud/scanexplorer/internal/domain/scan"
)

// Listing is one page of a paginated listing.
type Listing[T any] struct {
	Page      int    `json:"page"`
	PageCount int    `json:"pageCount"`
	Limit     int    `json:"limit"`
	Total     int    `json:"total"`
	Query     string `json:"query"`
	Items     []T    `json:"items"`
}

// PageCount returns ceil(total/limit). A non-positive limit yields zero.
func PageCount(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Paginate wraps items in a listing envelope. Items is never nil so it
// serializes as an empty array.
func Paginate[T any](page, limit, total int, query string, items []T) Listing[T] {
	if items == nil {
		items = []T{}
	}
	return Listing[T]{
		Page:      page,
		PageCount: PageCount(total, limit),
		Limit:     limit,
		Total:     total,
		Query:     query,
		Items:     items,
	}
}

// Bucket is one aggregation bucket: a grouping key and the pages under it.
type Bucket struct {
	Key      string
	DocCount int
}

// Hit is the identity projection of one indexed page.
type Hit struct {
	PageID       string
	CollectionID string
	Label        string
	PageNumber   int
	Highlights   []string
}

// Page is a page listing item.
type Page struct {
	ID            string `json:"id"`
	CollectionID  string `json:"collection_id"`
	Journal       string `json:"journal"`
	Volume        string `json:"volume"`
	Label         string `json:"label"`
	VolumePageNum int    `json:"volume_page_num"`
}

// Collection is a collection listing item. Type is filled by enrichment.
type Collection struct {
	ID      string `json:"id"`
	Journal string `json:"journal"`
	Volume  string `json:"volume"`
	Pages   int    `json:"pages"`
	Type    string `json:"type,omitempty"`
}

// Article is an article listing item. CollectionID is filled by enrichment.
type Article struct {
	ID           string `json:"id"`
	Bibcode      string `json:"bibcode"`
	Pages        int    `json:"pages"`
	CollectionID string `json:"collection_id,omitempty"`
}

// Pages projects hits in engine order, decoding journal and volume from the
// fixed-width collection id.
func Pages(hits []Hit) []Page {
	out := make([]Page, 0, len(hits))
	for _, h := range hits {
		id := scan.CollectionID(h.CollectionID)
		out = append(out, Page{
			ID:            h.PageID,
			CollectionID:  h.CollectionID,
			Journal:       id.Journal(),
			Volume:        id.Volume(),
			Label:         h.Label,
			VolumePageNum: h.PageNumber,
		})
	}
	return out
}

// Collections projects collection buckets in bucket order.
func Collections(buckets []Bucket) []Collection {
	out := make([]Collection, 0, len(buckets))
	for _, b := range buckets {
		id := scan.CollectionID(b.Key)
		out = append(out, Collection{
			ID:      b.Key,
			Journal: id.Journal(),
			Volume:  id.Volume(),
			Pages:   b.DocCount,
		})
	}
	return out
}

// Articles projects article buckets in bucket order.
func Articles(buckets []Bucket) []Article {
	out := make([]Article, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, Article{ID: b.Key, Bibcode: b.Key, Pages: b.DocCount})
	}
	return out
}

// Keys returns the bucket keys in order.
func Keys(buckets []Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Key
	}
	return out
}

// EnrichCollections sets Type on every item found in catalog, keeping item order.
func EnrichCollections(items []Collection, catalog map[string]scan.Collection) {
	for i := range items {
		if c, ok := catalog[items[i].ID]; ok {
			items[i].Type = c.Type()
		}
	}
}

// EnrichArticles sets CollectionID on every item found in catalog, keeping item order.
func EnrichArticles(items []Article, catalog map[string]scan.Article) {
	for i := range items {
		if a, ok := catalog[items[i].ID]; ok {
			items[i].CollectionID = string(a.CollectionID())
		}
	}
}
