// Package field maps search options to index fields and clause builders.
package field

import (
	"strings"

	"github.com/kailas-cloud/scanexplorer/internal/domain/scan"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/dsl"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/option"
)

// Index field names.
const (
	ArticleID          = "article_bibcodes"
	ArticleIDLowercase = "article_bibcodes_lowercase"
	VolumeID           = "volume_id"
	PageID             = "page_id"
	Text               = "text"
	Journal            = "journal"
	VolumeInt          = "volume_int"
	PageTypeName       = "page_type"
	PageNumber         = "page_number"
	PageLabel          = "page_label"
	PageColorName      = "page_color"
	ProjectName        = "project"
)

// Kind is the clause type a target produces.
type Kind int

// Clause kinds.
const (
	KindTerm Kind = iota
	KindWildcard
	KindQueryString
)

func (k Kind) String() string {
	switch k {
	case KindTerm:
		return "term"
	case KindWildcard:
		return "wildcard"
	case KindQueryString:
		return "query_string"
	default:
		return "unknown"
	}
}

// Target is where an option's value lands in the index.
type Target struct {
	Field           string
	Kind            Kind
	Transform       func(string) string
	CaseInsensitive bool
}

// Clause builds the clause for a normalized value.
func (t Target) Clause(value string) dsl.Clause {
	v := value
	if t.Transform != nil {
		v = t.Transform(value)
	}
	switch t.Kind {
	case KindWildcard:
		return dsl.Wildcard(t.Field, v, t.CaseInsensitive)
	case KindQueryString:
		return dsl.QueryString(v, t.Field)
	default:
		return dsl.Term(t.Field, v)
	}
}

// Table is the immutable option→target mapping. Safe for concurrent reads.
type Table struct {
	targets [option.Count]Target
}

var defaults = [...]Target{
	option.Bibcode:      {Field: ArticleIDLowercase, Kind: KindWildcard, Transform: bibcodePattern},
	option.Bibstem:      {Field: Journal, Kind: KindWildcard, Transform: bibstemPattern, CaseInsensitive: true},
	option.Volume:       {Field: VolumeInt, Kind: KindTerm, Transform: padVolume},
	option.Page:         {Field: PageLabel, Kind: KindQueryString, Transform: phrase},
	option.PageSequence: {Field: PageNumber, Kind: KindTerm},
	option.PageType:     {Field: PageTypeName, Kind: KindTerm},
	option.PageColor:    {Field: PageColorName, Kind: KindTerm},
	option.Project:      {Field: ProjectName, Kind: KindTerm},
	option.Full:         {Field: Text, Kind: KindQueryString},
}

// Fails to compile when an option is appended without a target.
var _ = [1]struct{}{}[len(defaults)-option.Count]

// NewTable returns the standard translation table.
func NewTable() *Table {
	t := &Table{}
	copy(t.targets[:], defaults[:])
	return t
}

// Target returns the target for o.
func (t *Table) Target(o option.Option) Target {
	return t.targets[o]
}

// Clause translates one option value into a clause.
func (t *Table) Clause(o option.Option, value string) dsl.Clause {
	return t.targets[o].Clause(value)
}

// Clauses translates every filter in option order.
func (t *Table) Clauses(filters option.Filters) []dsl.Clause {
	out := make([]dsl.Clause, 0, len(filters))
	for _, o := range filters.Options() {
		out = append(out, t.Clause(o, filters[o]))
	}
	return out
}

// bibstemPattern pads a journal code to its fixed width with dots.
func bibstemPattern(v string) string {
	if len(v) < scan.JournalWidth {
		v += strings.Repeat(".", scan.JournalWidth-len(v))
	}
	return v + "*"
}

// bibcodePattern lowercases a bibcode prefix. A journal+volume prefix uses zero-padded
// volumes locally, so its leading dots become zeros.
func bibcodePattern(v string) string {
	if len(v) == scan.CollectionIDWidth {
		vol := v[scan.JournalWidth:]
		trimmed := strings.TrimLeft(vol, ".")
		vol = strings.Repeat("0", len(vol)-len(trimmed)) + trimmed
		v = v[:scan.JournalWidth] + vol
	}
	return strings.ToLower(v) + "*"
}

func padVolume(v string) string {
	if len(v) >= scan.VolumeWidth {
		return v
	}
	return strings.Repeat("0", scan.VolumeWidth-len(v)) + v
}

func phrase(v string) string {
	v = strings.Trim(v, `"`)
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}
