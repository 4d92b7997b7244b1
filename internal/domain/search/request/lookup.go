package request

import (
	"strings"

	"github.com/kailas-cloud/scanexplorer/internal/domain"
)

// OCR identifies one page by collection and running page number.
type OCR struct {
	collectionID string
	pageNumber   int
}

// NewOCR validates an OCR lookup.
func NewOCR(collectionID string, pageNumber int) (OCR, error) {
	id := strings.TrimSpace(collectionID)
	if id == "" {
		return OCR{}, domain.NewParseError("", "collection id is required")
	}
	if pageNumber < 1 {
		return OCR{}, &domain.PaginationError{Param: "page_number", Value: pageNumber}
	}
	return OCR{collectionID: id, pageNumber: pageNumber}, nil
}

// CollectionID returns the collection the page belongs to.
func (r OCR) CollectionID() string { return r.collectionID }

// PageNumber returns the running page number inside the collection.
func (r OCR) PageNumber() int { return r.pageNumber }

// Highlight is a full-text search inside one article or collection.
type Highlight struct {
	id   string
	text string
}

// NewHighlight validates a highlight search.
func NewHighlight(id, text string) (Highlight, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Highlight{}, domain.NewParseError("", "id is required")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Highlight{}, domain.NewParseError("", "no search query specified")
	}
	return Highlight{id: id, text: text}, nil
}

// ID returns the article or collection id.
func (r Highlight) ID() string { return r.id }

// Text returns the full-text query.
func (r Highlight) Text() string { return r.text }
