// Package option defines the closed vocabulary of search keys and normalizes their values.
package option

import (
	"strings"

	"github.com/kailas-cloud/scanexplorer/internal/domain"
)

// Option is a recognized search key.
type Option int

// Search options. Adding one requires a name below and an entry in the field table.
const (
	Bibcode Option = iota
	Bibstem
	Volume
	Page
	PageSequence
	PageType
	PageColor
	Project
	Full

	count
)

// Count is the number of options.
const Count = int(count)

var names = [...]string{
	Bibcode:      "bibcode",
	Bibstem:      "bibstem",
	Volume:       "volume",
	Page:         "page",
	PageSequence: "page_sequence",
	PageType:     "pagetype",
	PageColor:    "pagecolor",
	Project:      "project",
	Full:         "full",
}

// Fails to compile when names and the option list drift apart.
var _ = [1]struct{}{}[len(names)-Count]

// String returns the key as typed by clients.
func (o Option) String() string {
	if o < 0 || o >= count {
		return "unknown"
	}
	return names[o]
}

// IsValid reports whether o is one of the declared options.
func (o Option) IsValid() bool { return o >= 0 && o < count }

// All returns every option in declaration order.
func All() []Option {
	out := make([]Option, Count)
	for i := range out {
		out[i] = Option(i)
	}
	return out
}

// Names returns every key name in declaration order.
func Names() []string {
	return append([]string(nil), names[:]...)
}

// Lookup finds an option by key, ignoring case.
func Lookup(key string) (Option, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	for i, n := range names {
		if n == k {
			return Option(i), true
		}
	}
	return 0, false
}

// Parse finds an option by key or fails with an UnknownOptionError.
func Parse(key string) (Option, error) {
	if o, ok := Lookup(key); ok {
		return o, nil
	}
	return 0, &domain.UnknownOptionError{Key: key, Valid: Names()}
}
