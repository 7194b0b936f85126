package adapter

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dataport/pkg/dberr"
)

// stubAdapter is a minimal Adapter for registry tests.
type stubAdapter struct {
	BaseSQLAdapter
}

func (s *stubAdapter) Connect(_ context.Context, _ Config) error { return nil }
func (s *stubAdapter) TableExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}
func (s *stubAdapter) TableColumns(_ context.Context, _ string) ([]Column, error) {
	return nil, nil
}
func (s *stubAdapter) ListTables(_ context.Context) ([]string, error) { return nil, nil }
func (s *stubAdapter) Placeholder(_ int) string                       { return "?" }
func (s *stubAdapter) SupportsReturning() bool                        { return false }
func (s *stubAdapter) DialectName() string                            { return "stub" }

func TestRegistry(t *testing.T) {
	Register("stub-registry-test", func(_ *slog.Logger) Adapter {
		return &stubAdapter{}
	})

	t.Run("get registered", func(t *testing.T) {
		factory, ok := Get("stub-registry-test")
		require.True(t, ok)
		assert.NotNil(t, factory(nil))
	})

	t.Run("get unregistered", func(t *testing.T) {
		_, ok := Get("no-such-adapter")
		assert.False(t, ok)
	})

	t.Run("is registered", func(t *testing.T) {
		assert.True(t, IsRegistered("stub-registry-test"))
		assert.False(t, IsRegistered("no-such-adapter"))
	})

	t.Run("list contains registered", func(t *testing.T) {
		assert.Contains(t, List(), "stub-registry-test")
	})
}

func TestNew(t *testing.T) {
	Register("stub-new-test", func(_ *slog.Logger) Adapter {
		return &stubAdapter{}
	})

	t.Run("known type", func(t *testing.T) {
		db, err := New(Config{Type: "stub-new-test"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "stub", db.DialectName())
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := New(Config{}, nil)
		require.Error(t, err)
		assert.True(t, dberr.IsKind(err, dberr.KindConfiguration))
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := New(Config{Type: "no-such-adapter"}, nil)
		require.Error(t, err)
		assert.True(t, dberr.IsKind(err, dberr.KindConfiguration))

		var unknown *UnknownAdapterError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "no-such-adapter", unknown.Type)
	})
}
