package request

import (
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/scanexplorer/internal/domain"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/order"
)

func TestNew_Valid(t *testing.T) {
	r, err := New("apj volume:333", 2, 10, order.BibcodeAsc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Page() != 2 || r.Limit() != 10 {
		t.Errorf("Page/Limit = %d/%d", r.Page(), r.Limit())
	}
	if r.Offset() != 10 {
		t.Errorf("Offset() = %d, want 10", r.Offset())
	}
	if r.Sort() != order.BibcodeAsc {
		t.Errorf("Sort() = %q", r.Sort())
	}
	if r.Query() == nil || r.Query().Raw() != "apj volume:333" {
		t.Error("query not kept")
	}
}

func TestNew_ClampsLimit(t *testing.T) {
	r, err := New("apj", 1, 5000, order.Default)
	if err != nil {
		t.Fatal(err)
	}
	if r.Limit() != MaxLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), MaxLimit)
	}
}

func TestNew_UnknownSortFallsBack(t *testing.T) {
	r, err := New("apj", 1, 10, order.Order("weird"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Sort() != order.Default {
		t.Errorf("Sort() = %q", r.Sort())
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		page, limit int
		want        error
	}{
		{"empty query", "", 1, 10, domain.ErrParse},
		{"blank query", "   ", 1, 10, domain.ErrParse},
		{"bad quoting", `full:"abc`, 1, 10, domain.ErrParse},
		{"unknown key", "foo:bar", 1, 10, domain.ErrUnknownOption},
		{"bad enum", "pagecolor:pink", 1, 10, domain.ErrInvalidValue},
		{"non-numeric volume", "volume:abc", 1, 10, domain.ErrInvalidValue},
		{"page zero", "apj", 0, 10, domain.ErrPagination},
		{"negative limit", "apj", 1, -1, domain.ErrPagination},
		{"offset overflow", "apj", math.MaxInt, 10, domain.ErrPagination},
		{"offset overflow at max limit", "apj", math.MaxInt/MaxLimit + 2, 5000, domain.ErrPagination},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.raw, tc.page, tc.limit, order.Default)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestNew_LargestPageKeepsOffsetPositive(t *testing.T) {
	page := math.MaxInt/10 + 1
	r, err := New("apj", page, 10, order.Default)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Offset() < 0 {
		t.Errorf("Offset() = %d, want non-negative", r.Offset())
	}
}

func TestNewOCR(t *testing.T) {
	r, err := NewOCR(" ApJ..0333 ", 4)
	if err != nil {
		t.Fatal(err)
	}
	if r.CollectionID() != "ApJ..0333" || r.PageNumber() != 4 {
		t.Errorf("got %q/%d", r.CollectionID(), r.PageNumber())
	}
	if _, err := NewOCR("", 1); !errors.Is(err, domain.ErrParse) {
		t.Errorf("missing id: %v", err)
	}
	if _, err := NewOCR("ApJ..0333", 0); !errors.Is(err, domain.ErrPagination) {
		t.Errorf("page 0: %v", err)
	}
}

func TestNewHighlight(t *testing.T) {
	r, err := NewHighlight("1988ApJ...333..123A", " eclipse ")
	if err != nil {
		t.Fatal(err)
	}
	if r.Text() != "eclipse" || r.ID() != "1988ApJ...333..123A" {
		t.Errorf("got %q/%q", r.ID(), r.Text())
	}
	if _, err := NewHighlight("x", ""); !errors.Is(err, domain.ErrParse) {
		t.Errorf("empty text: %v", err)
	}
}
