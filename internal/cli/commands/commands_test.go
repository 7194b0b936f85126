package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Equal(t, "dataport v1.2.3\n", out.String())
}

func TestImportCommandRequiresTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("name\nAlice\n"), 0644))

	cmd := NewImportCommand()
	cmd.SetArgs([]string{path})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--table is required")
}

func TestImportCommandRejectsUnknownFormat(t *testing.T) {
	cmd := NewImportCommand()
	cmd.SetArgs([]string{"data.parquet", "--table", "t"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestCreateTableCommandRejectsBadDefinition(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing type", args: []string{"users", "id"}},
		{name: "empty name", args: []string{"users", ":INTEGER"}},
		{name: "empty type", args: []string{"users", "id:"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewCreateTableCommand()
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid column definition")
		})
	}
}
