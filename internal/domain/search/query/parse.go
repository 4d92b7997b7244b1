// Package query tokenizes the hybrid free-text / key:value search syntax.
//
// A query is lexed once into typed tokens (free text, boolean operator, filter pair)
// and serialized to the engine's query-string form only after every filter has been
// validated, so field names are never substituted inside unrelated text.
package query

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/kailas-cloud/scanexplorer/internal/domain"
)

// MaxLength is the longest raw query accepted.
const MaxLength = 4096

var (
	queryLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Range", Pattern: `\[[^\]]*\]`},
		{Name: "Quoted", Pattern: `"[^"]*"`},
		{Name: "Word", Pattern: `[^\s"\[\]]+`},
	})
	symbols = queryLexer.Symbols()

	colonSpace = regexp.MustCompile(`\s*:\s*`)
)

// Kind is the token class.
type Kind int

// Token kinds.
const (
	KindText Kind = iota
	KindOperator
	KindFilter
)

// Token is one whitespace-separated unit of the query.
type Token struct {
	Kind Kind
	// Text is the free-text content or the operator as typed.
	Text string
	// Key is the filter key, lowercased.
	Key string
	// Value is the filter value without surrounding quotes.
	Value string
	// Quoted is set when any part of the text or value was quoted.
	Quoted bool
	// Range is set when the value is a bracketed range such as [1 TO 5].
	Range bool
}

// Parsed is the token list of one raw query.
type Parsed struct {
	raw    string
	tokens []Token
}

type piece struct {
	typ   lexer.TokenType
	value string
}

// Parse tokenizes raw. Quoted segments and bracketed ranges stay single tokens,
// and whitespace around a colon is dropped so "key : value" reads as "key:value".
func Parse(raw string) (*Parsed, error) {
	if len(raw) > MaxLength {
		return nil, domain.NewParseError("", "query too long")
	}
	normalized := colonSpace.ReplaceAllString(raw, ":")

	lx, err := queryLexer.LexString("", normalized)
	if err != nil {
		return nil, domain.NewParseError(raw, err.Error())
	}

	p := &Parsed{raw: raw}
	var pieces []piece
	flush := func() error {
		if len(pieces) == 0 {
			return nil
		}
		tok, err := buildToken(raw, pieces)
		if err != nil {
			return err
		}
		p.tokens = append(p.tokens, tok)
		pieces = pieces[:0]
		return nil
	}

	for {
		t, err := lx.Next()
		if err != nil {
			return nil, domain.NewParseError(raw, unbalancedReason(raw, err))
		}
		if t.EOF() {
			break
		}
		if t.Type == symbols["Whitespace"] {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		pieces = append(pieces, piece{typ: t.Type, value: t.Value})
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return p, nil
}

func unbalancedReason(raw string, err error) string {
	switch {
	case strings.Count(raw, `"`)%2 == 1:
		return "unbalanced quote"
	case strings.Count(raw, "[") != strings.Count(raw, "]"):
		return "unbalanced range bracket"
	default:
		return err.Error()
	}
}

func buildToken(raw string, pieces []piece) (Token, error) {
	first := pieces[0]
	if first.typ == symbols["Word"] {
		if key, rest, ok := strings.Cut(first.value, ":"); ok {
			if key == "" {
				return Token{}, domain.NewParseError(raw, "missing key before ':'")
			}
			valuePieces := pieces[1:]
			if rest != "" {
				valuePieces = append([]piece{{typ: first.typ, value: rest}}, valuePieces...)
			}
			value, quoted := joinPieces(valuePieces)
			if value == "" && !quoted {
				return Token{}, domain.NewParseError(raw, "missing value for "+key)
			}
			return Token{
				Kind:   KindFilter,
				Key:    strings.ToLower(key),
				Value:  value,
				Quoted: quoted,
				Range:  len(valuePieces) == 1 && valuePieces[0].typ == symbols["Range"],
			}, nil
		}
	}

	text, quoted := joinPieces(pieces)
	if !quoted && isOperator(text) {
		return Token{Kind: KindOperator, Text: text}, nil
	}
	return Token{
		Kind:   KindText,
		Text:   text,
		Quoted: quoted,
		Range:  len(pieces) == 1 && first.typ == symbols["Range"],
	}, nil
}

func joinPieces(pieces []piece) (string, bool) {
	var sb strings.Builder
	quoted := false
	for _, p := range pieces {
		if p.typ == symbols["Quoted"] {
			quoted = true
			sb.WriteString(strings.Trim(p.value, `"`))
			continue
		}
		sb.WriteString(p.value)
	}
	return sb.String(), quoted
}

func isOperator(s string) bool {
	u := strings.ToUpper(s)
	return u == "AND" || u == "OR"
}

// Raw returns the query as typed.
func (p *Parsed) Raw() string { return p.raw }

// Tokens returns the token list in input order.
func (p *Parsed) Tokens() []Token { return p.tokens }

// IsEmpty reports whether the query has no tokens.
func (p *Parsed) IsEmpty() bool { return len(p.tokens) == 0 }

// FreeText returns the free-text segments in input order.
func (p *Parsed) FreeText() []string {
	var out []string
	for _, t := range p.tokens {
		if t.Kind == KindText {
			out = append(out, t.Text)
		}
	}
	return out
}

// Filters returns every filter key with its last value.
func (p *Parsed) Filters() map[string]string {
	out := make(map[string]string)
	for _, t := range p.tokens {
		if t.Kind == KindFilter {
			out[t.Key] = t.Value
		}
	}
	return out
}
