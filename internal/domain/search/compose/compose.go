// Package compose turns validated search requests into engine request bodies.
package compose

import (
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/dsl"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/field"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/order"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/query"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/request"
)

// DefaultBucketCeiling is the largest terms aggregation the engine answers safely.
const DefaultBucketCeiling = 10000

// Aggregation names shared with the result decoder.
const (
	AggTotal      = "total_count"
	AggIDs        = "ids"
	AggBucketSort = "bucket_sort"
	AggPageStart  = "page_start"
	AggRelevance  = "relevance"
)

// cardinality is exact below this many distinct values.
const cardinalityPrecision = 40000

// Grouping is the field a grouped listing aggregates pages by.
type Grouping string

// Groupings.
const (
	ByCollection Grouping = field.VolumeID
	ByArticle    Grouping = field.ArticleID
	ByPage       Grouping = field.PageID
)

// IdentitySource is the minimal page projection returned with hits.
var IdentitySource = []string{field.PageID, field.VolumeID, field.PageLabel, field.PageNumber}

// Composer builds engine bodies. It holds only immutable configuration.
type Composer struct {
	fields        *field.Table
	bucketCeiling int
}

// New creates a composer. bucketCeiling <= 0 selects DefaultBucketCeiling.
func New(fields *field.Table, bucketCeiling int) *Composer {
	if bucketCeiling <= 0 {
		bucketCeiling = DefaultBucketCeiling
	}
	return &Composer{fields: fields, bucketCeiling: bucketCeiling}
}

// BucketCeiling returns the terms aggregation size.
func (c *Composer) BucketCeiling() int { return c.bucketCeiling }

// Fields returns the translation table.
func (c *Composer) Fields() *field.Table { return c.fields }

// Query builds the boolean AND tree for q. A plain conjunction becomes one clause per
// filter plus one clause for the free text; anything with operators, ranges or
// repeated keys is sent as a single query string.
func (c *Composer) Query(q *query.Compiled) dsl.Clause {
	if !q.Structured() {
		return dsl.Bool([]dsl.Clause{dsl.QueryString(q.String(c.fields), field.Text)}, nil)
	}
	must := c.fields.Clauses(q.Filters())
	if q.HasFreeText() {
		must = append(must, dsl.QueryString(q.FreeText(), field.Text))
	}
	return dsl.Bool(must, nil)
}

// Listing builds a hits listing ordered by collection then page number.
func (c *Composer) Listing(r *request.Request) dsl.Body {
	sort := []any{
		dsl.SortField(field.VolumeID, dsl.Asc),
		dsl.SortField(field.PageNumber, dsl.Asc),
	}
	if r.Sort().Relevance() {
		sort = append([]any{dsl.SortField("_score", r.Sort().Direction())}, sort...)
	}
	return dsl.Body{
		"query":            c.Query(r.Query()),
		"from":             r.Offset(),
		"size":             r.Limit(),
		"track_total_hits": true,
		"sort":             sort,
		"_source":          IdentitySource,
	}
}

// Grouped builds a bucketed listing: an authoritative distinct count plus one
// window of sorted buckets.
func (c *Composer) Grouped(r *request.Request, g Grouping) dsl.Body {
	sortKey, direction := bucketOrder(r.Sort(), g)

	terms := map[string]any{"field": string(g), "size": c.bucketCeiling}
	if sortKey == "_key" {
		terms["order"] = map[string]any{"_key": direction}
	}

	subAggs := map[string]any{
		AggBucketSort: map[string]any{
			"bucket_sort": map[string]any{
				"sort": []any{dsl.SortField(sortKey, direction)},
				"from": r.Offset(),
				"size": r.Limit(),
			},
		},
	}
	if g == ByArticle {
		subAggs[AggPageStart] = map[string]any{"min": map[string]any{"field": field.PageNumber}}
	}
	if r.Sort().Relevance() {
		subAggs[AggRelevance] = map[string]any{
			"sum": map[string]any{"script": map[string]any{"source": "_score"}},
		}
	}

	return dsl.Body{
		"query": c.Query(r.Query()),
		"size":  0,
		"aggs": map[string]any{
			AggTotal: map[string]any{
				"cardinality": map[string]any{
					"field":               string(g),
					"precision_threshold": cardinalityPrecision,
				},
			},
			AggIDs: map[string]any{
				"terms": terms,
				"aggs":  subAggs,
			},
		},
	}
}

// bucketOrder picks the bucket_sort key. Articles default to reading order inside
// their volume; other groupings default to the largest buckets first.
func bucketOrder(o order.Order, g Grouping) (string, string) {
	switch {
	case o.Relevance():
		return AggRelevance, o.Direction()
	case o.Lexicographic():
		return "_key", o.Direction()
	case g == ByArticle:
		return AggPageStart, dsl.Asc
	default:
		return "_count", dsl.Desc
	}
}

// OCR builds a single-page lookup. The raw text is only fetched when includeText is set.
func (c *Composer) OCR(r request.OCR, includeText bool) dsl.Body {
	source := []string{field.PageID, field.VolumeID, field.PageNumber}
	if includeText {
		source = append(source, field.Text)
	}
	return dsl.Body{
		"query": dsl.Bool([]dsl.Clause{
			dsl.Term(field.VolumeID, r.CollectionID()),
			dsl.Term(field.PageNumber, r.PageNumber()),
		}, nil),
		"size":    1,
		"_source": source,
	}
}

// Highlight builds a full-text search restricted to the pages of one article or
// collection, with text snippets instead of the page text.
func (c *Composer) Highlight(r request.Highlight, scope Grouping, size int) dsl.Body {
	return dsl.Body{
		"query": dsl.Bool(
			[]dsl.Clause{dsl.QueryString(r.Text(), field.Text)},
			[]dsl.Clause{dsl.Term(string(scope), r.ID())},
		),
		"size":    size,
		"sort":    []any{dsl.SortField(field.PageNumber, dsl.Asc)},
		"_source": IdentitySource,
		"highlight": map[string]any{
			"type":   "unified",
			"fields": map[string]any{field.Text: map[string]any{}},
		},
	}
}
