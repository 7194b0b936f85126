package duckdb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/dataport/pkg/adapter"
)

func TestAdapterDialect(t *testing.T) {
	a := New(nil)

	assert.Equal(t, "duckdb", a.DialectName())
	assert.Equal(t, "?", a.Placeholder(3))
	assert.True(t, a.SupportsReturning())
	assert.False(t, a.Connected())
}

func TestRegistered(t *testing.T) {
	assert.True(t, adapter.IsRegistered("duckdb"))

	db, err := adapter.New(adapter.Config{Type: "duckdb"}, nil)
	assert.NoError(t, err)
	assert.IsType(t, &Adapter{}, db)
}
