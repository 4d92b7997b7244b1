package db

import "encoding/json"

// SearchResponse is the part of an engine search answer the service reads.
// Aggregations stay raw; their shape depends on the request.
type SearchResponse struct {
	Took         int                        `json:"took"`
	TimedOut     bool                       `json:"timed_out"`
	Hits         Hits                       `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations"`
}

// Hits is the hit list with its total.
type Hits struct {
	Total *Total `json:"total"`
	Hits  []Hit  `json:"hits"`
}

// Total is the hit count. Relation is "eq" or "gte".
type Total struct {
	Value    int    `json:"value"`
	Relation string `json:"relation"`
}

// Hit is one matching document.
type Hit struct {
	ID        string              `json:"_id"`
	Score     *float64            `json:"_score"`
	Source    json.RawMessage     `json:"_source"`
	Highlight map[string][]string `json:"highlight"`
}
