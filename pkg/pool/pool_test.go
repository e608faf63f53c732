package pool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/dataset"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/lp"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/types"
)

var testColumns = []string{"name", "position", "salary", "points", "team", "opponent", "datetime"}

func testTable(rows ...[]string) dataset.Table {
	return dataset.Table{Columns: testColumns, Rows: rows}
}

func TestBuildMissingColumn(t *testing.T) {
	table := dataset.Table{Columns: []string{"name", "position"}, Rows: nil}

	_, err := Build(table, dataset.DefaultColumnMapping(), nil)
	assert.True(t, errors.Is(err, types.ErrInvalidDataset))
}

func TestBuildDuplicateIDs(t *testing.T) {
	table := dataset.Table{
		Columns: append([]string{"id"}, testColumns...),
		Rows: [][]string{
			{"1", "Smith", "RB", "7000", "18.5", "CHI", "DET", "2025-11-02 13:00"},
			{"1", "Jones", "WR", "6500", "15.0", "DET", "CHI", "2025-11-02 13:00"},
		},
	}
	mapping := dataset.DefaultColumnMapping()
	mapping.ID = "id"

	_, err := Build(table, mapping, nil)
	assert.True(t, errors.Is(err, types.ErrInvalidDataset))
}

func TestBuildDropsIncompleteRows(t *testing.T) {
	table := testTable(
		[]string{"Smith", "RB", "7000", "18.5", "CHI", "DET", "2025-11-02 13:00"},
		[]string{"", "RB", "7000", "18.5", "CHI", "DET", "2025-11-02 13:00"},          // missing name
		[]string{"Jones", "XX", "6500", "15.0", "DET", "CHI", "2025-11-02 13:00"},     // bad position
		[]string{"Brown", "WR", "-100", "15.0", "DET", "CHI", "2025-11-02 13:00"},     // bad salary
		[]string{"Davis", "WR", "6500", "abc", "DET", "CHI", "2025-11-02 13:00"},      // bad points
		[]string{"Evans", "WR", "6500", "15.0", "DET", "CHI", "sunday"},               // bad kickoff
		[]string{"Moore", "Wide Receiver", "6400", "14.0", "DET", "CHI", "2025-11-02 16:25"},
	)

	p, err := Build(table, dataset.DefaultColumnMapping(), nil)
	require.NoError(t, err)
	require.Equal(t, 2, p.Len())
	assert.Equal(t, "Smith", p.Player(0).Name)
	assert.Equal(t, types.WR, p.Player(1).Position, "free-text position is normalized")
}

func TestBuildParsesFields(t *testing.T) {
	table := testTable(
		[]string{"Smith", "RB", "7000", "18.5", "CHI", "DET", "2025-11-02 13:00"},
	)

	p, err := Build(table, dataset.DefaultColumnMapping(), nil)
	require.NoError(t, err)
	player := p.Player(0)
	assert.Equal(t, 7000, player.Salary)
	assert.Equal(t, 18.5, player.Projected)
	assert.Equal(t, "CHI", player.Team)
	assert.Equal(t, "DET", player.Opponent)
	assert.Equal(t, 2025, player.Kickoff.Year())
}

func TestBindVariablesUniqueNames(t *testing.T) {
	// duplicate names must not collide: variables are keyed by position
	// and row ordinal
	table := testTable(
		[]string{"Smith", "RB", "7000", "18.5", "CHI", "DET", "2025-11-02 13:00"},
		[]string{"Smith", "RB", "6400", "12.5", "DET", "CHI", "2025-11-02 13:00"},
	)
	p, err := Build(table, dataset.DefaultColumnMapping(), nil)
	require.NoError(t, err)

	prob := lp.NewMaximize("test")
	p.BindVariables(prob)
	require.NotNil(t, p.Var(0))
	require.NotNil(t, p.Var(1))
	assert.Equal(t, "RB_0", p.Var(0).Name)
	assert.Equal(t, "RB_1", p.Var(1).Name)
	assert.Nil(t, p.Var(2))
}

func TestPoolQueries(t *testing.T) {
	table := dataset.Table{
		Columns: append([]string{"id"}, testColumns...),
		Rows: [][]string{
			{"p1", "Smith", "RB", "7000", "18.5", "CHI", "DET", "2025-11-02 13:00"},
			{"p2", "Jones", "WR", "6500", "15.0", "DET", "CHI", "2025-11-02 13:00"},
		},
	}
	mapping := dataset.DefaultColumnMapping()
	mapping.ID = "id"

	p, err := Build(table, mapping, nil)
	require.NoError(t, err)

	assert.True(t, p.HasIDColumn())
	assert.True(t, p.HasTeam("CHI"))
	assert.False(t, p.HasTeam("GB"))
	assert.ElementsMatch(t, []string{"CHI", "DET"}, p.Teams())
	assert.True(t, p.HasPlayerID("p2"))
	assert.False(t, p.HasPlayerID("p3"))
	assert.True(t, p.HasPlayerName("Smith"))
	assert.Equal(t, 1, p.CountPosition(types.RB))
	assert.Equal(t, 0, p.CountPosition(types.QB))

	player, ok := p.PlayerByID("p1")
	require.True(t, ok)
	assert.Equal(t, "Smith", player.Name)
}
