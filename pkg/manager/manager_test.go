package manager

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dataport/internal/testutil"
	"github.com/leapstack-labs/dataport/pkg/adapter"
	"github.com/leapstack-labs/dataport/pkg/dberr"
)

// mockAdapter backs the manager with a sqlmock connection for tests.
type mockAdapter struct {
	adapter.BaseSQLAdapter
	dialect    string
	returning  bool
	connectErr error
}

func (a *mockAdapter) Connect(_ context.Context, _ adapter.Config) error {
	return a.connectErr
}

func (a *mockAdapter) TableExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (a *mockAdapter) TableColumns(_ context.Context, _ string) ([]adapter.Column, error) {
	return nil, nil
}

func (a *mockAdapter) ListTables(_ context.Context) ([]string, error) {
	return nil, nil
}

func (a *mockAdapter) Placeholder(index int) string {
	if a.dialect == "postgres" {
		return fmt.Sprintf("$%d", index)
	}
	return "?"
}

func (a *mockAdapter) SupportsReturning() bool { return a.returning }
func (a *mockAdapter) DialectName() string     { return a.dialect }

// newTestManager returns a connected manager over a sqlmock database.
func newTestManager(t *testing.T, dialect string, returning bool) (*Manager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a := &mockAdapter{dialect: dialect, returning: returning}
	a.SQLDB = db

	return New(a, adapter.Config{Type: dialect}, WithLogger(testutil.NewTestLogger(t))), mock
}

func TestConnectIdempotent(t *testing.T) {
	m, _ := newTestManager(t, "sqlite", false)

	require.True(t, m.Connected())
	assert.NoError(t, m.Connect(context.Background()))
	assert.NoError(t, m.Connect(context.Background()))
}

func TestConnectFailure(t *testing.T) {
	a := &mockAdapter{dialect: "postgres", connectErr: assert.AnError}
	m := New(a, adapter.Config{Type: "postgres"})

	err := m.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, dberr.IsKind(err, dberr.KindConnection))
}

func TestCloseIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	a := &mockAdapter{dialect: "sqlite"}
	a.SQLDB = db
	m := New(a, adapter.Config{Type: "sqlite"})

	m.Close()
	assert.False(t, m.Connected())

	// Second close must not panic or touch the released connection
	m.Close()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationsRequireOpenSession(t *testing.T) {
	a := &mockAdapter{dialect: "sqlite"}
	m := New(a, adapter.Config{Type: "sqlite"})
	ctx := context.Background()

	err := m.Insert(ctx, "users", map[string]any{"id": 1})
	require.Error(t, err)
	assert.True(t, dberr.IsKind(err, dberr.KindConnection))

	_, err = m.Query(ctx, "SELECT 1")
	require.Error(t, err)
	assert.True(t, dberr.IsKind(err, dberr.KindConnection))

	_, err = m.Tables(ctx)
	require.Error(t, err)
	assert.True(t, dberr.IsKind(err, dberr.KindConnection))
}
