package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dataport/pkg/dberr"
)

func TestJSONReader(t *testing.T) {
	t.Run("single object", func(t *testing.T) {
		path := writeFile(t, "one.json", `{"name": "Alice", "age": 30}`)

		d, err := (&JSONReader{}).Read(path)
		require.NoError(t, err)

		assert.Equal(t, []string{"age", "name"}, d.Columns)
		require.Equal(t, 1, d.Len())
		assert.Equal(t, "Alice", d.Rows[0]["name"])
		assert.Equal(t, float64(30), d.Rows[0]["age"])
	})

	t.Run("array of objects", func(t *testing.T) {
		path := writeFile(t, "many.json", `[{"id": 1}, {"id": 2}]`)

		d, err := (&JSONReader{}).Read(path)
		require.NoError(t, err)
		require.Equal(t, 2, d.Len())
		assert.Equal(t, float64(2), d.Rows[1]["id"])
	})

	t.Run("empty array", func(t *testing.T) {
		path := writeFile(t, "empty.json", `[]`)

		d, err := (&JSONReader{}).Read(path)
		require.NoError(t, err)
		assert.True(t, d.Empty())
	})

	t.Run("array of scalars", func(t *testing.T) {
		path := writeFile(t, "scalars.json", `[1, 2, 3]`)

		_, err := (&JSONReader{}).Read(path)
		require.Error(t, err)
		assert.True(t, dberr.IsKind(err, dberr.KindRead))
	})

	t.Run("scalar root", func(t *testing.T) {
		path := writeFile(t, "scalar.json", `42`)

		_, err := (&JSONReader{}).Read(path)
		require.Error(t, err)
		assert.True(t, dberr.IsKind(err, dberr.KindRead))
	})

	t.Run("malformed", func(t *testing.T) {
		path := writeFile(t, "bad.json", `{"name":`)

		_, err := (&JSONReader{}).Read(path)
		require.Error(t, err)
		assert.True(t, dberr.IsKind(err, dberr.KindRead))
	})
}
