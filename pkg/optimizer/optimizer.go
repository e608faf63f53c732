// Package optimizer ties the engine together: it owns one session's
// player pool and constraint registry, builds the integer-programming
// model for a site profile, invokes the solver, and extracts the winning
// selection into an immutable lineup.
package optimizer

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/constraints"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/dataset"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/lp"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/pool"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/types"
)

// Optimizer is a single-threaded optimization session. It exclusively owns
// its pool and registry; lineups it produces are detached snapshots.
type Optimizer struct {
	site     Site
	pool     *pool.Pool
	registry *constraints.Registry
	log      logrus.FieldLogger
}

// New builds a session for one site over the given tabular dataset. The
// logger is the session's observability sink and may be nil.
func New(site Site, table dataset.Table, mapping dataset.ColumnMapping, log logrus.FieldLogger) (*Optimizer, error) {
	if site == nil {
		return nil, fmt.Errorf("%w: site must not be nil", types.ErrInvalidArgument)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	log = log.WithField("site", site.Name())

	p, err := pool.Build(table, mapping, log)
	if err != nil {
		return nil, err
	}
	return &Optimizer{
		site:     site,
		pool:     p,
		registry: constraints.NewRegistry(p, site.NumPlayers(), log),
		log:      log,
	}, nil
}

// Pool exposes the session's player pool.
func (o *Optimizer) Pool() *pool.Pool {
	return o.pool
}

// Registry exposes the session's constraint registry.
func (o *Optimizer) Registry() *constraints.Registry {
	return o.registry
}

// SetOnlyTeams restricts optimization to players from the given teams.
func (o *Optimizer) SetOnlyTeams(teams []string) error {
	if len(teams) == 0 {
		return fmt.Errorf("%w: included teams must not be empty", types.ErrInvalidArgument)
	}
	return o.registry.Propose(&constraints.OnlyTeams{Teams: teams})
}

// SetExcludeTeams bars every listed team from optimization.
func (o *Optimizer) SetExcludeTeams(teams []string) error {
	if len(teams) == 0 {
		return fmt.Errorf("%w: teams to exclude must not be empty", types.ErrInvalidArgument)
	}
	for _, team := range teams {
		if err := o.SetMaxPlayersFromTeam(0, team); err != nil {
			return err
		}
	}
	return nil
}

// SetMustIncludeTeam requires at least one player from the given team.
func (o *Optimizer) SetMustIncludeTeam(team string) error {
	return o.SetMinPlayersFromTeam(1, team)
}

// SetMinPlayersFromTeam requires at least n lineup players from a team.
// A zero minimum is absorbed as a no-op.
func (o *Optimizer) SetMinPlayersFromTeam(n int, team string) error {
	if err := o.checkTeamBound(n, team); err != nil {
		return err
	}
	return o.registry.Propose(&constraints.TeamMinPlayers{Team: team, N: n})
}

// SetMaxPlayersFromTeam caps lineup players from a team at n.
func (o *Optimizer) SetMaxPlayersFromTeam(n int, team string) error {
	if err := o.checkTeamBound(n, team); err != nil {
		return err
	}
	return o.registry.Propose(&constraints.TeamMaxPlayers{Team: team, N: n})
}

// SetNumPlayersFromTeam requires exactly n lineup players from a team,
// staged as an atomic min+max pair: both bounds land or neither does.
func (o *Optimizer) SetNumPlayersFromTeam(n int, team string) error {
	if err := o.checkTeamBound(n, team); err != nil {
		return err
	}
	return o.registry.ProposeTeamExact(team, n)
}

// SetPlayersFromTeamRange bounds lineup players from a team to [min, max],
// staged as an atomic pair: both bounds land or neither does.
func (o *Optimizer) SetPlayersFromTeamRange(min, max int, team string) error {
	if err := o.checkTeamBound(min, team); err != nil {
		return err
	}
	if err := o.checkTeamBound(max, team); err != nil {
		return err
	}
	return o.registry.ProposeTeamRange(team, min, max)
}

func (o *Optimizer) checkTeamBound(n int, team string) error {
	if n < 0 || n > o.site.NumPlayers() {
		return fmt.Errorf("%w: team bound %d outside [0, %d]", types.ErrInvalidArgument, n, o.site.NumPlayers())
	}
	if team == "" || !o.pool.HasTeam(team) {
		return fmt.Errorf("%w: unknown team %q", types.ErrInvalidArgument, team)
	}
	return nil
}

// SetMustIncludePlayerID requires the player with the given unique id.
func (o *Optimizer) SetMustIncludePlayerID(id string) error {
	if err := o.checkIDRef(id); err != nil {
		return err
	}
	return o.registry.Propose(&constraints.IncludePlayer{Ref: constraints.PlayerRef{Key: id, ByID: true}})
}

// SetMustIncludePlayerName requires the player with the given name.
func (o *Optimizer) SetMustIncludePlayerName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: player name must not be empty", types.ErrInvalidArgument)
	}
	return o.registry.Propose(&constraints.IncludePlayer{Ref: constraints.PlayerRef{Key: name}})
}

// SetExcludePlayerID bars the player with the given unique id.
func (o *Optimizer) SetExcludePlayerID(id string) error {
	if err := o.checkIDRef(id); err != nil {
		return err
	}
	return o.registry.Propose(&constraints.ExcludePlayer{Ref: constraints.PlayerRef{Key: id, ByID: true}})
}

// SetExcludePlayerName bars the player with the given name.
func (o *Optimizer) SetExcludePlayerName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: player name must not be empty", types.ErrInvalidArgument)
	}
	return o.registry.Propose(&constraints.ExcludePlayer{Ref: constraints.PlayerRef{Key: name}})
}

func (o *Optimizer) checkIDRef(id string) error {
	if id == "" {
		return fmt.Errorf("%w: player id must not be empty", types.ErrInvalidArgument)
	}
	if !o.pool.HasIDColumn() {
		return fmt.Errorf("%w: dataset declared no id column", types.ErrInvalidArgument)
	}
	return nil
}

// SetMaxSalary caps the lineup salary below the site's own cap.
func (o *Optimizer) SetMaxSalary(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: salary cap must be positive", types.ErrInvalidArgument)
	}
	return o.registry.Propose(&constraints.SalaryCap{Max: n})
}

// SetMinSalary forces a minimum lineup salary.
func (o *Optimizer) SetMinSalary(n int) error {
	if n <= 0 || n > o.site.SalaryCap() {
		return fmt.Errorf("%w: salary floor %d outside (0, %d]", types.ErrInvalidArgument, n, o.site.SalaryCap())
	}
	return o.registry.Propose(&constraints.SalaryFloor{Min: n})
}

// SetGameSlate restricts optimization to one kickoff window.
func (o *Optimizer) SetGameSlate(slate constraints.Slate) error {
	return o.registry.Propose(&constraints.GameSlate{Slate: slate})
}

// ClearConstraints discards all user constraints.
func (o *Optimizer) ClearConstraints() {
	o.registry.Clear()
}

// Optimize builds the model for the session's site profile, solves it, and
// extracts the optimal lineup. The model is rebuilt from scratch on every
// call; nothing is cached between runs.
func (o *Optimizer) Optimize() (*OptimizedLineup, error) {
	ranges := o.site.PositionRanges()
	for pos := range ranges {
		if o.pool.CountPosition(pos) == 0 {
			return nil, fmt.Errorf("%w: no eligible players at required position %s", types.ErrInvalidDataset, pos)
		}
	}

	prob := o.buildProblem(ranges)
	o.log.WithFields(logrus.Fields{
		"players":     o.pool.Len(),
		"constraints": prob.NumConstraints(),
	}).Info("Solving lineup model")

	sol, err := prob.Solve()
	if err != nil {
		if errors.Is(err, lp.ErrNoOptimum) {
			return nil, fmt.Errorf("%w: no optimal solution under current constraints", types.ErrUnsolvableLineup)
		}
		return nil, fmt.Errorf("%w: %v", types.ErrSolver, err)
	}

	selected := make([]types.Player, 0, o.site.NumPlayers())
	for i := 0; i < o.pool.Len(); i++ {
		if sol.Selected(o.pool.Var(i)) {
			selected = append(selected, o.pool.Player(i))
		}
	}
	lineup := newOptimizedLineup(o.site, selected)
	o.log.WithFields(logrus.Fields{
		"points": lineup.Points,
		"salary": lineup.Salary,
	}).Info("Lineup optimized")
	return lineup, nil
}

// buildProblem assembles the objective, the structural rows, and every
// registered constraint's contributions into one model.
func (o *Optimizer) buildProblem(ranges map[types.Position]types.Range) *lp.Problem {
	prob := lp.NewMaximize(o.site.Name() + "LineupOptimization")
	o.pool.BindVariables(prob)

	objective := make([]lp.Term, 0, o.pool.Len())
	for i := 0; i < o.pool.Len(); i++ {
		objective = append(objective, lp.Term{Var: o.pool.Var(i), Coef: o.pool.Player(i).Projected})
	}
	prob.SetObjective(objective)

	allVars := make([]*lp.Variable, o.pool.Len())
	salaryTerms := make([]lp.Term, 0, o.pool.Len())
	posTerms := make(map[types.Position][]lp.Term)
	for i := 0; i < o.pool.Len(); i++ {
		player := o.pool.Player(i)
		allVars[i] = o.pool.Var(i)
		salaryTerms = append(salaryTerms, lp.Term{Var: o.pool.Var(i), Coef: float64(player.Salary)})
		posTerms[player.Position] = append(posTerms[player.Position], lp.Term{Var: o.pool.Var(i), Coef: 1})
	}

	for pos, r := range ranges {
		name := fmt.Sprintf("position_%s", pos)
		if r.Min == r.Max {
			prob.AddConstraint(lp.SumEQConstraint(name, posTerms[pos], float64(r.Min)))
		} else {
			prob.AddConstraint(lp.SumRangeConstraint(name, posTerms[pos], float64(r.Min), float64(r.Max)))
		}
	}
	prob.AddConstraint(lp.SumEQConstraint("roster_size", lp.UnitTerms(allVars), float64(o.site.NumPlayers())))
	prob.AddConstraint(lp.SumLEConstraint("salary_cap", salaryTerms, float64(o.site.SalaryCap())))

	for _, c := range o.registry.Constraints() {
		for _, row := range c.Contribute(o.pool) {
			prob.AddConstraint(row)
		}
	}
	return prob
}
