package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/scanexplorer/internal/db"
	"github.com/kailas-cloud/scanexplorer/internal/domain"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/compose"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/dsl"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/field"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/result"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, body []byte) (*db.SearchResponse, error)
}

// Repo implements usecase/search.Engine.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Grouped runs an aggregation body and returns the distinct-count total with
// the windowed buckets in engine order.
func (r *Repo) Grouped(ctx context.Context, body dsl.Body) (int, []result.Bucket, error) {
	res, err := r.search(ctx, "grouped search", body)
	if err != nil {
		return 0, nil, err
	}
	return decodeGrouped(res)
}

// Hits runs a hits listing and returns the exact total with the hits in engine order.
func (r *Repo) Hits(ctx context.Context, body dsl.Body) (int, []result.Hit, error) {
	res, err := r.search(ctx, "search", body)
	if err != nil {
		return 0, nil, err
	}
	hits, err := decodeHits(res.Hits.Hits)
	if err != nil {
		return 0, nil, err
	}
	total := len(hits)
	if res.Hits.Total != nil {
		total = res.Hits.Total.Value
	}
	return total, hits, nil
}

// OCRText returns the text of the best hit. No hit at all is a *domain.NotFoundError;
// a hit without text yields "".
func (r *Repo) OCRText(ctx context.Context, body dsl.Body) (string, error) {
	res, err := r.search(ctx, "ocr lookup", body)
	if err != nil {
		return "", err
	}
	if len(res.Hits.Hits) == 0 {
		return "", &domain.NotFoundError{What: "page"}
	}
	var src struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(res.Hits.Hits[0].Source, &src); err != nil {
		return "", domain.NewEngineError("ocr lookup", 0, fmt.Errorf("decode source: %w", err))
	}
	if src.Text == nil {
		return "", nil
	}
	return *src.Text, nil
}

func (r *Repo) search(ctx context.Context, op string, body dsl.Body) (*db.SearchResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s body: %w", op, err)
	}
	res, err := r.store.Search(ctx, payload)
	if err != nil {
		var se *db.StatusError
		if errors.As(err, &se) {
			return nil, domain.NewEngineError(op, se.Status, err)
		}
		return nil, domain.NewEngineError(op, 0, err)
	}
	if res == nil {
		return nil, domain.NewEngineError(op, 0, errors.New("empty response"))
	}
	return res, nil
}

type cardinality struct {
	Value *int `json:"value"`
}

type terms struct {
	Buckets []struct {
		Key      json.RawMessage `json:"key"`
		DocCount int             `json:"doc_count"`
	} `json:"buckets"`
}

func decodeGrouped(res *db.SearchResponse) (int, []result.Bucket, error) {
	const op = "grouped search"
	rawTotal, ok := res.Aggregations[compose.AggTotal]
	if !ok {
		return 0, nil, domain.NewEngineError(op, 0, fmt.Errorf("missing %s aggregation", compose.AggTotal))
	}
	var total cardinality
	if err := json.Unmarshal(rawTotal, &total); err != nil || total.Value == nil {
		return 0, nil, domain.NewEngineError(op, 0, fmt.Errorf("malformed %s aggregation", compose.AggTotal))
	}

	rawIDs, ok := res.Aggregations[compose.AggIDs]
	if !ok {
		return 0, nil, domain.NewEngineError(op, 0, fmt.Errorf("missing %s aggregation", compose.AggIDs))
	}
	var ids terms
	if err := json.Unmarshal(rawIDs, &ids); err != nil {
		return 0, nil, domain.NewEngineError(op, 0, fmt.Errorf("malformed %s aggregation: %w", compose.AggIDs, err))
	}

	buckets := make([]result.Bucket, 0, len(ids.Buckets))
	for _, b := range ids.Buckets {
		key, err := bucketKey(b.Key)
		if err != nil {
			return 0, nil, domain.NewEngineError(op, 0, err)
		}
		buckets = append(buckets, result.Bucket{Key: key, DocCount: b.DocCount})
	}
	return *total.Value, buckets, nil
}

// bucketKey accepts string keys and, for numeric grouping fields, numbers.
func bucketKey(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("unsupported bucket key %s", raw)
}

type pageSource struct {
	PageID     string `json:"page_id"`
	VolumeID   string `json:"volume_id"`
	PageLabel  string `json:"page_label"`
	PageNumber int    `json:"page_number"`
}

func decodeHits(hits []db.Hit) ([]result.Hit, error) {
	out := make([]result.Hit, 0, len(hits))
	for _, h := range hits {
		var src pageSource
		if err := json.Unmarshal(h.Source, &src); err != nil {
			return nil, domain.NewEngineError("search", 0, fmt.Errorf("decode hit %s: %w", h.ID, err))
		}
		if src.PageID == "" {
			src.PageID = h.ID
		}
		out = append(out, result.Hit{
			PageID:       src.PageID,
			CollectionID: src.VolumeID,
			Label:        src.PageLabel,
			PageNumber:   src.PageNumber,
			Highlights:   h.Highlight[field.Text],
		})
	}
	return out, nil
}
