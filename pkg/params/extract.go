package params

import (
	"regexp"
	"strings"
)

var tokenRegex = regexp.MustCompile(`(?s)^\s*([A-Za-z_][A-Za-z0-9_]*(?:::[A-Za-z_][A-Za-z0-9_]*)?)\s*(?:\((.*)\))?\s*$`)

// Extract splits a DSL token such as "between(5,10)" or "file::maxSize(2mb)"
// into name, type, function and raw parameter. Tokens that do not fit the
// grammar are returned whole as the name so that resolution reports them.
func Extract(raw string) Token {
	m := tokenRegex.FindStringSubmatchIndex(raw)
	if m == nil {
		name := strings.TrimSpace(raw)
		return Token{Name: name, Func: name}
	}

	tok := Token{Name: raw[m[2]:m[3]]}
	if m[4] >= 0 {
		tok.Param = strings.TrimSpace(raw[m[4]:m[5]])
		tok.HasParam = true
	}

	if typ, fn, ok := strings.Cut(tok.Name, "::"); ok {
		tok.Type = typ
		tok.Func = fn
	} else {
		tok.Func = tok.Name
	}
	return tok
}

// SplitRules splits a DSL string on "|" characters that are not nested
// inside parentheses, so "between(1|10)|integer" yields two tokens.
// Empty tokens are dropped.
func SplitRules(dsl string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range dsl {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '|':
			if depth == 0 {
				out = appendToken(out, dsl[start:i])
				start = i + 1
			}
		}
	}
	return appendToken(out, dsl[start:])
}

func appendToken(out []string, tok string) []string {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return out
	}
	return append(out, tok)
}
