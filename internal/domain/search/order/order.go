package order

import "strings"

// Order is a requested listing order.
type Order string

// Sort orders. Default leaves the choice to the listed entity.
const (
	Default        Order = ""
	RelevanceDesc  Order = "relevance_desc"
	RelevanceAsc   Order = "relevance_asc"
	BibcodeDesc    Order = "bibcode_desc"
	BibcodeAsc     Order = "bibcode_asc"
	CollectionDesc Order = "collection_desc"
	CollectionAsc  Order = "collection_asc"
)

var all = []Order{RelevanceDesc, RelevanceAsc, BibcodeDesc, BibcodeAsc, CollectionDesc, CollectionAsc}

// Parse resolves a sort parameter case-insensitively. Unknown values give Default.
func Parse(s string) Order {
	v := Order(strings.ToLower(strings.TrimSpace(s)))
	for _, o := range all {
		if o == v {
			return o
		}
	}
	return Default
}

// IsValid checks if the order is one of the supported values or Default.
func (o Order) IsValid() bool {
	if o == Default {
		return true
	}
	for _, v := range all {
		if v == o {
			return true
		}
	}
	return false
}

// Relevance reports whether the order ranks by engine score.
func (o Order) Relevance() bool { return o == RelevanceDesc || o == RelevanceAsc }

// Lexicographic reports whether the order ranks by identifier.
func (o Order) Lexicographic() bool {
	return o == BibcodeDesc || o == BibcodeAsc || o == CollectionDesc || o == CollectionAsc
}

// Direction returns "asc" or "desc".
func (o Order) Direction() string {
	if strings.HasSuffix(string(o), "_asc") {
		return "asc"
	}
	return "desc"
}
