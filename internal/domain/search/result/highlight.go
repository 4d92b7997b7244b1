package result

// Snippet is one page matching a highlight search.
type Snippet struct {
	PageID        string   `json:"page_id"`
	Label         string   `json:"label"`
	VolumePageNum int      `json:"volume_page_num"`
	Highlight     []string `json:"highlight"`
}

// Highlights is the answer to a full-text search inside one article or collection.
type Highlights struct {
	ID    string    `json:"id"`
	Query string    `json:"query"`
	Items []Snippet `json:"items"`
}

// NewHighlights projects hits in page order.
func NewHighlights(id, query string, hits []Hit) Highlights {
	items := make([]Snippet, 0, len(hits))
	for _, h := range hits {
		hl := h.Highlights
		if hl == nil {
			hl = []string{}
		}
		items = append(items, Snippet{
			PageID:        h.PageID,
			Label:         h.Label,
			VolumePageNum: h.PageNumber,
			Highlight:     hl,
		})
	}
	return Highlights{ID: id, Query: query, Items: items}
}
