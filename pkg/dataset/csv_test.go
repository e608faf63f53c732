package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/types"
)

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projections.csv")
	content := "name,position,salary\nSmith,RB,7000\nJones,WR,6500\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "position", "salary"}, table.Columns)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, "Smith", table.Cell(table.Rows[0], "name"))
	assert.Equal(t, "6500", table.Cell(table.Rows[1], "salary"))
}

func TestLoadCSVRejectsNonCSV(t *testing.T) {
	_, err := LoadCSV("projections.xlsx")
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := LoadCSV(path)
	assert.True(t, errors.Is(err, types.ErrInvalidDataset))
}

func TestTableColumnLookups(t *testing.T) {
	table := Table{Columns: []string{"a", "b"}, Rows: [][]string{{"1"}}}
	assert.True(t, table.HasColumn("b"))
	assert.False(t, table.HasColumn("c"))
	assert.Equal(t, "", table.Cell(table.Rows[0], "b"), "ragged row reads as missing")
}

func TestColumnMappingRequired(t *testing.T) {
	m := DefaultColumnMapping()
	assert.NotContains(t, m.Required(), "", "all required columns have defaults")
	assert.Empty(t, m.ID, "no id column is assumed")
}

func TestAppendCSVWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lineup.csv")
	header := []string{"name", "salary"}

	require.NoError(t, AppendCSV(path, header, [][]string{{"Smith", "7000"}}))
	require.NoError(t, AppendCSV(path, header, [][]string{{"Jones", "6500"}}))

	table, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, header, table.Columns)
	assert.Len(t, table.Rows, 2)
}

func TestAppendCSVRejectsBadPath(t *testing.T) {
	assert.True(t, errors.Is(AppendCSV("", nil, nil), types.ErrInvalidArgument))
	assert.True(t, errors.Is(AppendCSV("lineup.txt", nil, nil), types.ErrInvalidArgument))
}
