package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/dataport/pkg/adapter"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  adapter.Config
		want string
	}{
		{
			name: "defaults",
			cfg:  adapter.Config{Database: "app"},
			want: "host=localhost port=5432 dbname=app sslmode=disable",
		},
		{
			name: "full credentials",
			cfg: adapter.Config{
				Host:     "db.internal",
				Port:     5433,
				Database: "app",
				Username: "svc",
				Password: "pw",
			},
			want: "host=db.internal port=5433 dbname=app sslmode=disable user=svc password=pw",
		},
		{
			name: "sslmode from options",
			cfg: adapter.Config{
				Database: "app",
				Options:  map[string]string{"sslmode": "require"},
			},
			want: "host=localhost port=5432 dbname=app sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildDSN(tt.cfg))
		})
	}
}

func TestAdapterDialect(t *testing.T) {
	a := New(nil)

	assert.Equal(t, "postgres", a.DialectName())
	assert.Equal(t, "$1", a.Placeholder(1))
	assert.Equal(t, "$12", a.Placeholder(12))
	assert.True(t, a.SupportsReturning())
	assert.False(t, a.Connected())
}

func TestRegistered(t *testing.T) {
	assert.True(t, adapter.IsRegistered("postgres"))

	db, err := adapter.New(adapter.Config{Type: "postgres"}, nil)
	assert.NoError(t, err)
	assert.IsType(t, &Adapter{}, db)
}
