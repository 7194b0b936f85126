package manager

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dataport/pkg/dberr"
)

func TestCreateTable(t *testing.T) {
	t.Run("definition order preserved", func(t *testing.T) {
		m, mock := newTestManager(t, "postgres", true)

		mock.ExpectExec(regexp.QuoteMeta(
			"CREATE TABLE IF NOT EXISTS users (id SERIAL PRIMARY KEY, name TEXT, age INTEGER)")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := m.CreateTable(context.Background(), "users", []ColumnDef{
			{Name: "id", Type: "SERIAL"},
			{Name: "name", Type: "TEXT"},
			{Name: "age", Type: "INTEGER"},
		}, CreateOptions{PrimaryKey: "id"})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error if exists omits guard", func(t *testing.T) {
		m, mock := newTestManager(t, "sqlite", false)

		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE users (id INTEGER)")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := m.CreateTable(context.Background(), "users",
			[]ColumnDef{{Name: "id", Type: "INTEGER"}}, CreateOptions{ErrorIfExists: true})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no columns rejected", func(t *testing.T) {
		m, _ := newTestManager(t, "sqlite", false)

		err := m.CreateTable(context.Background(), "users", nil, CreateOptions{})
		require.Error(t, err)
		assert.True(t, dberr.IsKind(err, dberr.KindSchema))
	})

	t.Run("engine failure wrapped as schema error", func(t *testing.T) {
		m, mock := newTestManager(t, "sqlite", false)

		mock.ExpectExec("CREATE TABLE").WillReturnError(assert.AnError)

		err := m.CreateTable(context.Background(), "users",
			[]ColumnDef{{Name: "id", Type: "BOGUS"}}, CreateOptions{})
		require.Error(t, err)
		assert.True(t, dberr.IsKind(err, dberr.KindSchema))
	})
}

func TestDropTable(t *testing.T) {
	t.Run("missing table tolerated by default", func(t *testing.T) {
		m, mock := newTestManager(t, "sqlite", false)

		mock.ExpectExec(regexp.QuoteMeta("DROP TABLE IF EXISTS users")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, m.DropTable(context.Background(), "users", DropOptions{}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error if missing omits guard", func(t *testing.T) {
		m, mock := newTestManager(t, "sqlite", false)

		mock.ExpectExec(regexp.QuoteMeta("DROP TABLE users")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, m.DropTable(context.Background(), "users", DropOptions{ErrorIfMissing: true}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
