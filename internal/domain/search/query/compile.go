package query

import (
	"strings"

	"github.com/kailas-cloud/scanexplorer/internal/domain/search/field"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/option"
)

type compiledToken struct {
	Token
	opt option.Option
}

// Compiled is a parsed query whose filters have all been validated and normalized.
type Compiled struct {
	raw     string
	tokens  []compiledToken
	filters option.Filters
}

// Compile validates every filter token. It fails on the first unknown key or
// invalid enumerated value; p is left untouched.
func Compile(p *Parsed) (*Compiled, error) {
	c := &Compiled{
		raw:     p.raw,
		tokens:  make([]compiledToken, 0, len(p.tokens)),
		filters: make(option.Filters),
	}
	for _, t := range p.tokens {
		ct := compiledToken{Token: t}
		if t.Kind == KindFilter {
			o, err := option.Parse(t.Key)
			if err != nil {
				return nil, err
			}
			if !t.Range {
				v, err := option.Normalize(o, t.Value)
				if err != nil {
					return nil, err
				}
				ct.Value = v
			}
			ct.opt = o
			c.filters[o] = ct.Value
		}
		c.tokens = append(c.tokens, ct)
	}
	return c, nil
}

// Raw returns the query as typed.
func (c *Compiled) Raw() string { return c.raw }

// IsEmpty reports whether there is nothing to search for.
func (c *Compiled) IsEmpty() bool { return len(c.tokens) == 0 }

// Filters returns the normalized filters, last occurrence winning.
func (c *Compiled) Filters() option.Filters {
	out := make(option.Filters, len(c.filters))
	for k, v := range c.filters {
		out[k] = v
	}
	return out
}

// HasFreeText reports whether any free-text token is present.
func (c *Compiled) HasFreeText() bool {
	for _, t := range c.tokens {
		if t.Kind == KindText {
			return true
		}
	}
	return false
}

// Structured reports whether the query is a plain conjunction that can be expressed
// as one clause per filter. AND is already implied between terms; OR, ranges and
// repeated keys need the query-string form.
func (c *Compiled) Structured() bool {
	seen := make(map[option.Option]bool)
	for _, t := range c.tokens {
		switch {
		case t.Kind == KindOperator && strings.EqualFold(t.Text, "AND"):
			continue
		case t.Kind == KindOperator, t.Range:
			return false
		case t.Kind == KindFilter:
			if seen[t.opt] {
				return false
			}
			seen[t.opt] = true
		}
	}
	return true
}

// String serializes the whole query in engine query-string syntax: filter keys become
// index field names, values their normalized form, and each free-text term is
// parenthesized so it is required on its own.
func (c *Compiled) String(tbl *field.Table) string {
	parts := make([]string, 0, len(c.tokens))
	for _, t := range c.tokens {
		switch t.Kind {
		case KindFilter:
			parts = append(parts, tbl.Target(t.opt).Field+":"+formatValue(t.Token))
		case KindOperator:
			parts = append(parts, t.Text)
		default:
			parts = append(parts, freeTerm(t.Token))
		}
	}
	return strings.Join(parts, " ")
}

// FreeText serializes only the free-text terms, in order.
func (c *Compiled) FreeText() string {
	var parts []string
	for _, t := range c.tokens {
		if t.Kind == KindText {
			parts = append(parts, freeTerm(t.Token))
		}
	}
	return strings.Join(parts, " ")
}

func freeTerm(t Token) string {
	if t.Quoted {
		return `("` + t.Text + `")`
	}
	return "(" + t.Text + ")"
}

func formatValue(t Token) string {
	if t.Range {
		return t.Value
	}
	if t.Quoted || strings.ContainsAny(t.Value, " \t") {
		return `"` + t.Value + `"`
	}
	return t.Value
}
