package constraints

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/dataset"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/lp"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/pool"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/types"
)

const rosterSize = 9

func testPool(t *testing.T) *pool.Pool {
	t.Helper()
	table := dataset.Table{
		Columns: []string{"id", "name", "position", "salary", "points", "team", "opponent", "datetime"},
		Rows: [][]string{
			{"p1", "Fields", "QB", "6800", "21.0", "CHI", "DET", "2025-11-02 13:00"},
			{"p2", "Montgomery", "RB", "6200", "16.5", "DET", "CHI", "2025-11-02 13:00"},
			{"p3", "Moore", "WR", "7100", "17.5", "CHI", "DET", "2025-11-02 13:00"},
			{"p4", "St. Brown", "WR", "7600", "19.0", "DET", "CHI", "2025-11-02 13:00"},
			{"p5", "Kmet", "TE", "4300", "9.5", "CHI", "DET", "2025-11-02 13:00"},
			{"p6", "Kelce", "TE", "6900", "16.0", "KC", "LV", "2025-11-02 16:25"},
		},
	}
	mapping := dataset.DefaultColumnMapping()
	mapping.ID = "id"
	p, err := pool.Build(table, mapping, nil)
	require.NoError(t, err)
	return p
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(testPool(t), rosterSize, nil)
}

func TestProposeAppends(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.Propose(&TeamMinPlayers{Team: "CHI", N: 2}))
	require.NoError(t, r.Propose(&SalaryFloor{Min: 40000}))
	assert.Equal(t, 2, r.Len())
}

func TestTeamMinThenConflictingMax(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.Propose(&TeamMinPlayers{Team: "CHI", N: 5}))

	err := r.Propose(&TeamMaxPlayers{Team: "CHI", N: 2})
	assert.True(t, errors.Is(err, types.ErrInvalidConstraint))
	assert.Equal(t, 1, r.Len(), "registry unchanged on rejection")
}

func TestTeamBoundOutsideRoster(t *testing.T) {
	r := testRegistry(t)
	err := r.Propose(&TeamMinPlayers{Team: "CHI", N: rosterSize + 1})
	assert.True(t, errors.Is(err, types.ErrInvalidConstraint))
	assert.Equal(t, 0, r.Len())
}

func TestTeamMinUnknownTeam(t *testing.T) {
	r := testRegistry(t)
	err := r.Propose(&TeamMinPlayers{Team: "GB", N: 1})
	assert.True(t, errors.Is(err, types.ErrInvalidConstraint))
}

func TestCombinedTeamMinimumsExceedRoster(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.Propose(&TeamMinPlayers{Team: "CHI", N: 5}))
	err := r.Propose(&TeamMinPlayers{Team: "DET", N: 5})
	assert.True(t, errors.Is(err, types.ErrInvalidConstraint))
	assert.Equal(t, 1, r.Len())
}

func TestZeroTeamMinimumIsDiscarded(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.Propose(&TeamMinPlayers{Team: "CHI", N: 0}))
	assert.Equal(t, 0, r.Len(), "no-op minimum is absorbed, not stored")
}

func TestProposeTeamExactAtomicRollback(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.Propose(&TeamMinPlayers{Team: "KC", N: 4}))
	before := r.Constraints()

	// the min half breaches the combined team minimums; the pair must
	// land or roll back together
	err := r.ProposeTeamExact("CHI", 6)
	assert.True(t, errors.Is(err, types.ErrInvalidConstraint))
	assert.Equal(t, before, r.Constraints(), "registry exactly as before the pair")
}

func TestProposeTeamRangeMinThenConflictingMaxRollsBack(t *testing.T) {
	r := testRegistry(t)

	// the min half lands first; the max half conflicts with it, so the
	// whole pair must be undone
	err := r.ProposeTeamRange("CHI", 5, 2)
	assert.True(t, errors.Is(err, types.ErrInvalidConstraint))
	assert.Equal(t, 0, r.Len(), "registry exactly as before the pair")
}

func TestProposeTeamRangeSuccess(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.ProposeTeamRange("CHI", 1, 3))
	assert.Equal(t, 2, r.Len())
}

func TestProposeTeamExactSuccess(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.ProposeTeamExact("CHI", 3))
	assert.Equal(t, 2, r.Len())
}

func TestProposeTeamExactZeroKeepsMaxOnly(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.ProposeTeamExact("CHI", 0))
	require.Equal(t, 1, r.Len(), "zero-min half is discarded, max half excludes the team")
	assert.Equal(t, KindTeamMax, r.Constraints()[0].Kind())
}

func TestIncludeAbsentPlayer(t *testing.T) {
	r := testRegistry(t)
	err := r.Propose(&IncludePlayer{Ref: PlayerRef{Key: "p99", ByID: true}})
	assert.True(t, errors.Is(err, types.ErrInvalidConstraint))
	assert.Equal(t, 0, r.Len(), "registry size unchanged")
}

func TestIncludeThenExcludeSamePlayer(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.Propose(&IncludePlayer{Ref: PlayerRef{Key: "p1", ByID: true}}))

	err := r.Propose(&ExcludePlayer{Ref: PlayerRef{Key: "p1", ByID: true}})
	assert.True(t, errors.Is(err, types.ErrInvalidConstraint))
	assert.Equal(t, 1, r.Len())
}

func TestIncludePlayerOnExcludedTeam(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.Propose(&TeamMaxPlayers{Team: "KC", N: 0}))

	err := r.Propose(&IncludePlayer{Ref: PlayerRef{Key: "Kelce"}})
	assert.True(t, errors.Is(err, types.ErrInvalidConstraint))
}

func TestOnlyTeamsIsExclusive(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.Propose(&OnlyTeams{Teams: []string{"CHI", "DET"}}))

	err := r.Propose(&OnlyTeams{Teams: []string{"KC"}})
	assert.True(t, errors.Is(err, types.ErrInvalidConstraint))

	r.Clear()
	assert.NoError(t, r.Propose(&OnlyTeams{Teams: []string{"KC"}}))
}

func TestOnlyTeamsConflictsWithOutsideMinimum(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.Propose(&TeamMinPlayers{Team: "KC", N: 1}))

	err := r.Propose(&OnlyTeams{Teams: []string{"CHI", "DET"}})
	assert.True(t, errors.Is(err, types.ErrInvalidConstraint))
}

func TestGameSlateIsExclusive(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.Propose(&GameSlate{Slate: SlateSunday}))

	err := r.Propose(&GameSlate{Slate: SlateSundayEarly})
	assert.True(t, errors.Is(err, types.ErrInvalidConstraint))

	r.Clear()
	assert.NoError(t, r.Propose(&GameSlate{Slate: SlateSundayEarly}))
}

func TestSalaryFloorAboveCap(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.Propose(&SalaryCap{Max: 45000}))

	err := r.Propose(&SalaryFloor{Min: 46000})
	assert.True(t, errors.Is(err, types.ErrInvalidConstraint))
	assert.Equal(t, 1, r.Len())
}

func TestContributions(t *testing.T) {
	p := testPool(t)
	prob := lp.NewMaximize("test")
	p.BindVariables(prob)

	cases := []struct {
		name       string
		constraint Constraint
		rows       int
	}{
		{"team min", &TeamMinPlayers{Team: "CHI", N: 2}, 1},
		{"team max", &TeamMaxPlayers{Team: "DET", N: 1}, 1},
		{"salary cap", &SalaryCap{Max: 40000}, 1},
		{"salary floor", &SalaryFloor{Min: 30000}, 1},
		{"include", &IncludePlayer{Ref: PlayerRef{Key: "p1", ByID: true}}, 1},
		{"exclude", &ExcludePlayer{Ref: PlayerRef{Key: "Kelce"}}, 1},
		{"only teams", &OnlyTeams{Teams: []string{"CHI", "DET"}}, 1},
		{"only teams covers pool", &OnlyTeams{Teams: []string{"CHI", "DET", "KC"}}, 0},
		{"slate covers pool", &GameSlate{Slate: SlateSunday}, 0}, // every kickoff is on Sunday
	}
	for _, tc := range cases {
		assert.Len(t, tc.constraint.Contribute(p), tc.rows, tc.name)
	}
}

func TestGameSlateContributionExcludesLateWindow(t *testing.T) {
	p := testPool(t)
	prob := lp.NewMaximize("test")
	p.BindVariables(prob)

	rows := (&GameSlate{Slate: SlateSundayEarly}).Contribute(p)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Terms, 1, "only the 16:25 kickoff falls outside the early window")
}
