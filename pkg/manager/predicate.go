package manager

import (
	"errors"
	"strings"

	"github.com/leapstack-labs/dataport/pkg/adapter"
	"github.com/leapstack-labs/dataport/pkg/dberr"
)

// Predicate is a raw filter expression with bind values. Expressions use ?
// placeholders regardless of engine; they are rebound to the adapter's
// dialect before execution.
type Predicate struct {
	Expr string
	Args []any
}

// Where builds a predicate.
func Where(expr string, args ...any) Predicate {
	return Predicate{Expr: expr, Args: args}
}

// validate checks the placeholder/argument contract before any statement is
// sent to the engine.
func (p Predicate) validate(kind dberr.Kind, table string) error {
	if strings.TrimSpace(p.Expr) == "" {
		return dberr.Wrap(kind, table, "", errNilPredicate)
	}
	if n := countPlaceholders(p.Expr); n != len(p.Args) {
		return dberr.Newf(kind, "predicate %q has %d placeholders but %d bind values",
			p.Expr, n, len(p.Args))
	}
	return nil
}

var errNilPredicate = errors.New("predicate expression is required")

// countPlaceholders counts ? markers outside quoted regions and comments.
// Statements routed through here may carry -- and /* */ comment text; a ?
// inside a comment is not a bind marker.
func countPlaceholders(expr string) int {
	var (
		n        int
		inSingle bool
		inDouble bool
		inLine   bool
		inBlock  bool
	)

	runes := []rune(expr)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		switch {
		case inLine:
			if c == '\n' {
				inLine = false
			}
		case inBlock:
			if c == '*' && next == '/' {
				i++
				inBlock = false
			}
		case inSingle:
			if c == '\'' {
				inSingle = false
			}
		case inDouble:
			if c == '"' {
				inDouble = false
			}
		case c == '-' && next == '-':
			inLine = true
		case c == '/' && next == '*':
			inBlock = true
		case c == '\'':
			inSingle = true
		case c == '"':
			inDouble = true
		case c == '?':
			n++
		}
	}
	return n
}

// rebind rewrites ? placeholders to the adapter's dialect ($1, $2, ... for
// postgres; unchanged for ?-style engines). Quoted regions and comments are
// left intact.
func rebind(query string, db adapter.Adapter) string {
	// Fast path for ?-style dialects.
	if db.Placeholder(1) == "?" {
		return query
	}

	var (
		b        strings.Builder
		idx      int
		inSingle bool
		inDouble bool
		inLine   bool
		inBlock  bool
	)
	b.Grow(len(query) + 8)

	runes := []rune(query)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		switch {
		case inLine:
			b.WriteRune(c)
			if c == '\n' {
				inLine = false
			}
		case inBlock:
			b.WriteRune(c)
			if c == '*' && next == '/' {
				b.WriteRune(next)
				i++
				inBlock = false
			}
		case inSingle:
			b.WriteRune(c)
			if c == '\'' {
				inSingle = false
			}
		case inDouble:
			b.WriteRune(c)
			if c == '"' {
				inDouble = false
			}
		case c == '-' && next == '-':
			b.WriteRune(c)
			inLine = true
		case c == '/' && next == '*':
			b.WriteRune(c)
			inBlock = true
		case c == '\'':
			b.WriteRune(c)
			inSingle = true
		case c == '"':
			b.WriteRune(c)
			inDouble = true
		case c == '?':
			idx++
			b.WriteString(db.Placeholder(idx))
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
