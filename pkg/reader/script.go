package reader

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/leapstack-labs/dataport/pkg/dberr"
)

// ScriptReader extracts individual statements from a SQL script file.
// Statements are separated by semicolons; separators inside quoted string
// literals, quoted identifiers, or comments are not split points.
type ScriptReader struct{}

// ReadStatements reads the script and returns its statements in order.
// Statements consisting only of comments or whitespace are dropped.
func (r *ScriptReader) ReadStatements(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dberr.New(dberr.KindRead, fmt.Errorf("failed to read sql file %s: %w", path, err))
	}
	return SplitStatements(string(data)), nil
}

// SplitStatements splits SQL text on semicolons, respecting single-quoted
// literals, double-quoted identifiers, line comments (-- to end of line) and
// block comments (/* ... */).
func SplitStatements(src string) []string {
	var (
		stmts      []string
		buf        strings.Builder
		meaningful bool

		inSingle  bool
		inDouble  bool
		inLine    bool
		inBlock   bool
	)

	flush := func() {
		s := strings.TrimSpace(buf.String())
		if meaningful && s != "" {
			stmts = append(stmts, s)
		}
		buf.Reset()
		meaningful = false
	}

	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		switch {
		case inLine:
			buf.WriteRune(c)
			if c == '\n' {
				inLine = false
			}
		case inBlock:
			buf.WriteRune(c)
			if c == '*' && next == '/' {
				buf.WriteRune(next)
				i++
				inBlock = false
			}
		case inSingle:
			buf.WriteRune(c)
			if c == '\'' {
				inSingle = false
			}
		case inDouble:
			buf.WriteRune(c)
			if c == '"' {
				inDouble = false
			}
		case c == '-' && next == '-':
			buf.WriteRune(c)
			inLine = true
		case c == '/' && next == '*':
			buf.WriteRune(c)
			inBlock = true
		case c == '\'':
			buf.WriteRune(c)
			inSingle = true
			meaningful = true
		case c == '"':
			buf.WriteRune(c)
			inDouble = true
			meaningful = true
		case c == ';':
			flush()
		default:
			buf.WriteRune(c)
			if !unicode.IsSpace(c) {
				meaningful = true
			}
		}
	}
	flush()

	return stmts
}

// IsReadStatement reports whether a statement produces a result set.
func IsReadStatement(stmt string) bool {
	upper := strings.ToUpper(strings.TrimSpace(stmt))
	return strings.HasPrefix(upper, "SELECT") || strings.HasPrefix(upper, "WITH")
}
