// Package opensearch runs compiled search bodies against an OpenSearch cluster.
package opensearch

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	opensearch "github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/kailas-cloud/scanexplorer/internal/db"
)

// Compile-time check: Store implements db.Engine.
var _ db.Engine = (*Store)(nil)

// Config holds connection parameters for the cluster.
type Config struct {
	Addresses []string
	Index     string
	Username  string
	Password  string
	// InsecureSkipVerify disables TLS certificate checks (local clusters only).
	InsecureSkipVerify bool
}

// Store executes searches against one index.
type Store struct {
	transport opensearchapi.Transport
	index     string
}

// NewStore creates a cluster client. No request is made until first use.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("addresses is required")
	}
	if cfg.Index == "" {
		return nil, fmt.Errorf("index is required")
	}

	osCfg := opensearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	}
	if cfg.InsecureSkipVerify {
		osCfg.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // opt-in for local clusters
		}
	}

	client, err := opensearch.NewClient(osCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &Store{transport: client, index: cfg.Index}, nil
}

// Index returns the searched index name.
func (s *Store) Index() string { return s.index }

// Ping checks that the cluster answers.
func (s *Store) Ping(ctx context.Context) error {
	res, err := opensearchapi.PingRequest{}.Do(ctx, s.transport)
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	defer res.Body.Close()
	if res.IsError() {
		return &db.Error{Op: db.OpPing, Err: &db.StatusError{Status: res.StatusCode}}
	}
	return nil
}

// Search runs body against the configured index. Non-2xx answers become a
// *db.StatusError carrying only the engine's error type.
func (s *Store) Search(ctx context.Context, body []byte) (*db.SearchResponse, error) {
	req := opensearchapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, s.transport)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, &db.Error{Op: db.OpSearch, Err: &db.StatusError{
			Status: res.StatusCode,
			Reason: errorType(res.Body),
		}}
	}

	var out db.SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &db.Error{Op: db.OpDecodeResult, Err: err}
	}
	return &out, nil
}

// Close is a no-op; the client keeps no resources beyond pooled connections.
func (s *Store) Close() {}

func errorType(body io.Reader) string {
	var payload struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&payload); err != nil {
		return ""
	}
	return payload.Error.Type
}
