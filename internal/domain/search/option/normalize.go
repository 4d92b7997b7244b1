package option

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/kailas-cloud/scanexplorer/internal/domain"
	"github.com/kailas-cloud/scanexplorer/internal/domain/scan"
)

// Filters maps options to their normalized values.
type Filters map[Option]string

// Options returns the keys in declaration order.
func (f Filters) Options() []Option {
	out := make([]Option, 0, len(f))
	for o := range f {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Enumerated reports whether the option only accepts a fixed set of values.
func (o Option) Enumerated() bool {
	return o == PageType || o == PageColor || o == Project
}

// Numeric reports whether the option takes a non-negative integer.
func (o Option) Numeric() bool {
	return o == Volume || o == PageSequence
}

// Choices returns the accepted spellings of an enumerated option, nil otherwise.
func (o Option) Choices() []string {
	switch o {
	case PageType:
		return scan.PageTypes()
	case PageColor:
		return scan.PageColors()
	case Project:
		return scan.Projects()
	default:
		return nil
	}
}

// Normalize returns the canonical form of value for o. Quotes are stripped from
// enumerated values, numeric options must be all digits, and other values are
// only trimmed.
func Normalize(o Option, value string) (string, error) {
	if !o.IsValid() {
		return "", &domain.UnknownOptionError{Key: o.String(), Valid: Names()}
	}
	if o.Numeric() {
		v := strings.TrimSpace(value)
		if !isDigits(v) {
			return "", &domain.InvalidValueError{Option: o.String(), Value: value, Want: "a whole number"}
		}
		return v, nil
	}
	if !o.Enumerated() {
		return strings.TrimSpace(value), nil
	}

	v := strings.TrimSpace(strings.ReplaceAll(value, `"`, ""))
	choices := o.Choices()
	match := ""
	for _, c := range choices {
		if c == v {
			match = c
			break
		}
	}
	if match == "" {
		folded := cases.Fold().String(v)
		for _, c := range choices {
			if cases.Fold().String(c) == folded {
				match = c
				break
			}
		}
	}
	if match == "" {
		return "", &domain.InvalidValueError{Option: description(o), Value: value, Valid: choices}
	}
	if o == Project {
		return string(scan.Project(match).Canonical()), nil
	}
	return match, nil
}

// Validate resolves raw keys and normalizes every value into a new Filters map.
// The input is not modified.
func Validate(raw map[string]string) (Filters, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Filters, len(raw))
	for _, k := range keys {
		o, err := Parse(k)
		if err != nil {
			return nil, err
		}
		v, err := Normalize(o, raw[k])
		if err != nil {
			return nil, err
		}
		out[o] = v
	}
	return out, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func description(o Option) string {
	switch o {
	case PageType:
		return "page type"
	case PageColor:
		return "page color"
	case Project:
		return "project"
	default:
		return o.String()
	}
}
