package reader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dataport/pkg/dberr"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "two statements",
			src:  "CREATE TABLE t (id INT);\nINSERT INTO t VALUES (1);",
			want: []string{"CREATE TABLE t (id INT)", "INSERT INTO t VALUES (1)"},
		},
		{
			name: "no trailing semicolon",
			src:  "SELECT 1",
			want: []string{"SELECT 1"},
		},
		{
			name: "semicolon inside string literal",
			src:  "INSERT INTO t VALUES ('a;b');SELECT 1;",
			want: []string{"INSERT INTO t VALUES ('a;b')", "SELECT 1"},
		},
		{
			name: "semicolon inside quoted identifier",
			src:  `SELECT "a;b" FROM t;`,
			want: []string{`SELECT "a;b" FROM t`},
		},
		{
			name: "line comment with semicolon",
			src:  "SELECT 1 -- trailing; comment\nFROM t;",
			want: []string{"SELECT 1 -- trailing; comment\nFROM t"},
		},
		{
			name: "block comment with semicolon",
			src:  "SELECT /* not; a split */ 1;",
			want: []string{"SELECT /* not; a split */ 1"},
		},
		{
			name: "comment-only statement dropped",
			src:  "-- just a comment\n;SELECT 1;",
			want: []string{"SELECT 1"},
		},
		{
			name: "empty statements dropped",
			src:  ";;;\n;",
			want: nil,
		},
		{
			name: "whitespace trimmed",
			src:  "  \n  SELECT 1  \n ;",
			want: []string{"SELECT 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitStatements(tt.src))
		})
	}
}

func TestIsReadStatement(t *testing.T) {
	tests := []struct {
		stmt string
		want bool
	}{
		{"SELECT * FROM t", true},
		{"  select 1", true},
		{"WITH cte AS (SELECT 1) SELECT * FROM cte", true},
		{"INSERT INTO t VALUES (1)", false},
		{"CREATE TABLE t (id INT)", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsReadStatement(tt.stmt), tt.stmt)
	}
}

func TestScriptReaderReadStatements(t *testing.T) {
	t.Run("reads file in order", func(t *testing.T) {
		path := writeFile(t, "setup.sql",
			"CREATE TABLE t (id INT);\n-- seed data\nINSERT INTO t VALUES (1);\nSELECT * FROM t;\n")

		stmts, err := (&ScriptReader{}).ReadStatements(path)
		require.NoError(t, err)
		require.Len(t, stmts, 3)
		assert.Equal(t, "CREATE TABLE t (id INT)", stmts[0])
		assert.True(t, IsReadStatement(stmts[2]))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := (&ScriptReader{}).ReadStatements(filepath.Join(t.TempDir(), "missing.sql"))
		require.Error(t, err)
		assert.True(t, dberr.IsKind(err, dberr.KindRead))
	})
}
