// Package dsl builds fragments of the search engine's JSON query language.
package dsl

// Clause is a single query clause such as {"term": {...}}.
type Clause map[string]any

// Body is a complete search request body.
type Body map[string]any

// Sort orders.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Term matches an exact value.
func Term(field string, value any) Clause {
	return Clause{"term": map[string]any{field: value}}
}

// Wildcard matches a pattern where * and ? are wildcards.
func Wildcard(field, pattern string, caseInsensitive bool) Clause {
	cond := map[string]any{"value": pattern}
	if caseInsensitive {
		cond["case_insensitive"] = true
	}
	return Clause{"wildcard": map[string]any{field: cond}}
}

// QueryString runs the engine's query-string syntax against defaultField,
// requiring every term.
func QueryString(query, defaultField string) Clause {
	return Clause{"query_string": map[string]any{
		"query":            query,
		"default_field":    defaultField,
		"default_operator": "AND",
	}}
}

// Bool wraps clauses in a bool query. Empty groups are omitted.
func Bool(must, filter []Clause) Clause {
	b := map[string]any{}
	if len(must) > 0 {
		b["must"] = must
	}
	if len(filter) > 0 {
		b["filter"] = filter
	}
	return Clause{"bool": b}
}

// SortField orders hits by field.
func SortField(field, order string) map[string]any {
	return map[string]any{field: map[string]any{"order": order}}
}
