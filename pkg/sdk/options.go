package scanexplorer

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addresses []string
	index     string
	username  string
	password  string
	insecure  bool

	dsn string

	bucketCeiling int
	highlightSize int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithOpenSearch sets the page index and the cluster addresses. Required.
func WithOpenSearch(index string, addresses ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.index = index
		c.addresses = addresses
	})
}

// WithBasicAuth sets OpenSearch credentials.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithInsecureTLS skips certificate verification for OpenSearch.
func WithInsecureTLS() Option {
	return optionFunc(func(c *clientConfig) {
		c.insecure = true
	})
}

// WithPostgres enables enrichment and id resolution from the catalog database.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dsn = dsn
	})
}

// WithBucketCeiling caps aggregation buckets and hits pagination.
// Default: 10000.
func WithBucketCeiling(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.bucketCeiling = n
	})
}

// WithHighlightSize caps the pages returned by a highlight search.
// Default: 100.
func WithHighlightSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.highlightSize = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
