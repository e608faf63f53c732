// Package constraints defines the closed family of user lineup constraints
// and the validating registry that holds them. Each constraint knows how to
// validate itself against the registry's current contents and how to
// contribute its linear inequality rows to the optimization model.
package constraints

import (
	"fmt"
	"strings"

	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/lp"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/pool"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/types"
)

// Kind discriminates the constraint variants.
type Kind string

const (
	KindSalaryCap     Kind = "salary_cap"
	KindSalaryFloor   Kind = "salary_floor"
	KindTeamMin       Kind = "team_min_players"
	KindTeamMax       Kind = "team_max_players"
	KindIncludePlayer Kind = "include_player"
	KindExcludePlayer Kind = "exclude_player"
	KindOnlyTeams     Kind = "only_teams"
	KindGameSlate     Kind = "game_slate"
)

// Constraint is one self-validating lineup rule. Contributions are
// conjunctive, so the order constraints are held in is immaterial to the
// final model.
type Constraint interface {
	Kind() Kind
	Describe() string

	// Validate checks the constraint against the registry's existing
	// contents and the pool. A non-nil error wraps ErrInvalidConstraint.
	Validate(existing []Constraint, p *pool.Pool, rosterSize int) error

	// Contribute emits the constraint's inequality rows: zero, one, or
	// several.
	Contribute(p *pool.Pool) []lp.Constraint
}

// PlayerRef identifies a player by unique id or, failing that, by name.
type PlayerRef struct {
	Key  string
	ByID bool
}

func (r PlayerRef) String() string {
	if r.ByID {
		return "id=" + r.Key
	}
	return "name=" + r.Key
}

func (r PlayerRef) matches(player types.Player) bool {
	if r.ByID {
		return player.ID == r.Key
	}
	return player.Name == r.Key
}

func (r PlayerRef) lookup(p *pool.Pool) (types.Player, bool) {
	if r.ByID {
		return p.PlayerByID(r.Key)
	}
	return p.PlayerByName(r.Key)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", types.ErrInvalidConstraint, fmt.Sprintf(format, args...))
}

// SalaryCap caps the total lineup salary below the site's own cap.
type SalaryCap struct {
	Max int
}

func (c *SalaryCap) Kind() Kind       { return KindSalaryCap }
func (c *SalaryCap) Describe() string { return fmt.Sprintf("salary cap %d", c.Max) }

func (c *SalaryCap) Validate(existing []Constraint, p *pool.Pool, rosterSize int) error {
	for _, other := range existing {
		if floor, ok := other.(*SalaryFloor); ok && floor.Min > c.Max {
			return invalid("salary cap %d is below existing salary floor %d", c.Max, floor.Min)
		}
	}
	return nil
}

func (c *SalaryCap) Contribute(p *pool.Pool) []lp.Constraint {
	return []lp.Constraint{lp.SumLEConstraint("user_salary_cap", salaryTerms(p), float64(c.Max))}
}

// SalaryFloor forces a minimum total lineup salary.
type SalaryFloor struct {
	Min int
}

func (c *SalaryFloor) Kind() Kind       { return KindSalaryFloor }
func (c *SalaryFloor) Describe() string { return fmt.Sprintf("salary floor %d", c.Min) }

func (c *SalaryFloor) Validate(existing []Constraint, p *pool.Pool, rosterSize int) error {
	for _, other := range existing {
		if sc, ok := other.(*SalaryCap); ok && c.Min > sc.Max {
			return invalid("salary floor %d is above existing salary cap %d", c.Min, sc.Max)
		}
	}
	return nil
}

func (c *SalaryFloor) Contribute(p *pool.Pool) []lp.Constraint {
	return []lp.Constraint{lp.SumGEConstraint("user_salary_floor", salaryTerms(p), float64(c.Min))}
}

// TeamMinPlayers requires at least N lineup players from one team.
// A zero minimum is a no-op and is discarded by the registry.
type TeamMinPlayers struct {
	Team string
	N    int
}

func (c *TeamMinPlayers) Kind() Kind       { return KindTeamMin }
func (c *TeamMinPlayers) Describe() string { return fmt.Sprintf("at least %d from %s", c.N, c.Team) }

func (c *TeamMinPlayers) Validate(existing []Constraint, p *pool.Pool, rosterSize int) error {
	if !p.HasTeam(c.Team) {
		return invalid("team %q not found in player pool", c.Team)
	}
	if c.N < 0 || c.N > rosterSize {
		return invalid("team minimum %d outside [0, %d]", c.N, rosterSize)
	}
	minTotal := c.N
	for _, other := range existing {
		switch o := other.(type) {
		case *TeamMaxPlayers:
			if o.Team == c.Team && o.N < c.N {
				return invalid("team minimum %d exceeds existing maximum %d for %s", c.N, o.N, c.Team)
			}
		case *TeamMinPlayers:
			if o.Team != c.Team {
				minTotal += o.N
			} else if o.N > minTotal {
				minTotal = o.N
			}
		case *OnlyTeams:
			if !o.contains(c.Team) {
				return invalid("team %s is excluded by an only-teams constraint", c.Team)
			}
		}
	}
	if minTotal > rosterSize {
		return invalid("combined team minimums %d exceed roster size %d", minTotal, rosterSize)
	}
	return nil
}

func (c *TeamMinPlayers) Contribute(p *pool.Pool) []lp.Constraint {
	name := fmt.Sprintf("team_min_%s", c.Team)
	return []lp.Constraint{lp.SumGEConstraint(name, teamTerms(p, c.Team), float64(c.N))}
}

// TeamMaxPlayers caps lineup players from one team at N. A zero maximum
// excludes the team entirely.
type TeamMaxPlayers struct {
	Team string
	N    int
}

func (c *TeamMaxPlayers) Kind() Kind       { return KindTeamMax }
func (c *TeamMaxPlayers) Describe() string { return fmt.Sprintf("at most %d from %s", c.N, c.Team) }

func (c *TeamMaxPlayers) Validate(existing []Constraint, p *pool.Pool, rosterSize int) error {
	if !p.HasTeam(c.Team) {
		return invalid("team %q not found in player pool", c.Team)
	}
	if c.N < 0 || c.N > rosterSize {
		return invalid("team maximum %d outside [0, %d]", c.N, rosterSize)
	}
	for _, other := range existing {
		switch o := other.(type) {
		case *TeamMinPlayers:
			if o.Team == c.Team && o.N > c.N {
				return invalid("team maximum %d is below existing minimum %d for %s", c.N, o.N, c.Team)
			}
		case *IncludePlayer:
			if c.N == 0 {
				if player, ok := o.Ref.lookup(p); ok && player.Team == c.Team {
					return invalid("cannot exclude team %s: player %s is required", c.Team, o.Ref)
				}
			}
		}
	}
	return nil
}

func (c *TeamMaxPlayers) Contribute(p *pool.Pool) []lp.Constraint {
	name := fmt.Sprintf("team_max_%s", c.Team)
	return []lp.Constraint{lp.SumLEConstraint(name, teamTerms(p, c.Team), float64(c.N))}
}

// IncludePlayer forces a player into every optimized lineup.
type IncludePlayer struct {
	Ref PlayerRef
}

func (c *IncludePlayer) Kind() Kind       { return KindIncludePlayer }
func (c *IncludePlayer) Describe() string { return "include player " + c.Ref.String() }

func (c *IncludePlayer) Validate(existing []Constraint, p *pool.Pool, rosterSize int) error {
	player, ok := c.Ref.lookup(p)
	if !ok {
		return invalid("player %s not found in player pool", c.Ref)
	}
	includes := 1
	for _, other := range existing {
		switch o := other.(type) {
		case *ExcludePlayer:
			if o.Ref == c.Ref {
				return invalid("player %s is already excluded", c.Ref)
			}
		case *IncludePlayer:
			includes++
		case *TeamMaxPlayers:
			if o.Team == player.Team && o.N == 0 {
				return invalid("player %s plays for excluded team %s", c.Ref, player.Team)
			}
		case *OnlyTeams:
			if !o.contains(player.Team) {
				return invalid("player %s plays for a team excluded by an only-teams constraint", c.Ref)
			}
		}
	}
	if includes > rosterSize {
		return invalid("cannot require %d players in a %d-player lineup", includes, rosterSize)
	}
	return nil
}

func (c *IncludePlayer) Contribute(p *pool.Pool) []lp.Constraint {
	terms := refTerms(p, c.Ref)
	if len(terms) == 0 {
		return nil
	}
	return []lp.Constraint{lp.SumGEConstraint("include_"+c.Ref.Key, terms, 1)}
}

// ExcludePlayer bars a player from every optimized lineup.
type ExcludePlayer struct {
	Ref PlayerRef
}

func (c *ExcludePlayer) Kind() Kind       { return KindExcludePlayer }
func (c *ExcludePlayer) Describe() string { return "exclude player " + c.Ref.String() }

func (c *ExcludePlayer) Validate(existing []Constraint, p *pool.Pool, rosterSize int) error {
	if _, ok := c.Ref.lookup(p); !ok {
		return invalid("player %s not found in player pool", c.Ref)
	}
	for _, other := range existing {
		if o, ok := other.(*IncludePlayer); ok && o.Ref == c.Ref {
			return invalid("player %s is already required", c.Ref)
		}
	}
	return nil
}

func (c *ExcludePlayer) Contribute(p *pool.Pool) []lp.Constraint {
	terms := refTerms(p, c.Ref)
	if len(terms) == 0 {
		return nil
	}
	return []lp.Constraint{lp.SumLEConstraint("exclude_"+c.Ref.Key, terms, 0)}
}

// OnlyTeams restricts lineups to players from the given teams. Sugar for
// excluding every other team, contributed as a single aggregate row.
type OnlyTeams struct {
	Teams []string
}

func (c *OnlyTeams) Kind() Kind       { return KindOnlyTeams }
func (c *OnlyTeams) Describe() string { return "only teams " + strings.Join(c.Teams, ",") }

func (c *OnlyTeams) contains(team string) bool {
	for _, t := range c.Teams {
		if t == team {
			return true
		}
	}
	return false
}

func (c *OnlyTeams) Validate(existing []Constraint, p *pool.Pool, rosterSize int) error {
	if len(c.Teams) == 0 {
		return invalid("only-teams requires at least one team")
	}
	for _, other := range existing {
		switch o := other.(type) {
		case *OnlyTeams:
			return invalid("an only-teams constraint is already set; clear constraints first")
		case *TeamMinPlayers:
			if !c.contains(o.Team) {
				return invalid("team %s has a required minimum but is outside the only-teams set", o.Team)
			}
		case *IncludePlayer:
			if player, ok := o.Ref.lookup(p); ok && !c.contains(player.Team) {
				return invalid("required player %s plays outside the only-teams set", o.Ref)
			}
		}
	}
	return nil
}

func (c *OnlyTeams) Contribute(p *pool.Pool) []lp.Constraint {
	terms := make([]lp.Term, 0)
	for i := 0; i < p.Len(); i++ {
		if !c.contains(p.Player(i).Team) {
			terms = append(terms, lp.Term{Var: p.Var(i), Coef: 1})
		}
	}
	if len(terms) == 0 {
		return nil
	}
	return []lp.Constraint{lp.SumLEConstraint("only_teams", terms, 0)}
}

// GameSlate restricts lineups to games inside one kickoff window. Slate
// constraints are mutually exclusive within a registry.
type GameSlate struct {
	Slate Slate
}

func (c *GameSlate) Kind() Kind       { return KindGameSlate }
func (c *GameSlate) Describe() string { return "game slate " + string(c.Slate) }

func (c *GameSlate) Validate(existing []Constraint, p *pool.Pool, rosterSize int) error {
	if !c.Slate.Valid() {
		return invalid("unknown game slate %q", c.Slate)
	}
	for _, other := range existing {
		if other.Kind() == KindGameSlate {
			return invalid("a game slate is already set; clear constraints first")
		}
	}
	return nil
}

func (c *GameSlate) Contribute(p *pool.Pool) []lp.Constraint {
	terms := make([]lp.Term, 0)
	for i := 0; i < p.Len(); i++ {
		if !c.Slate.Contains(p.Player(i).Kickoff) {
			terms = append(terms, lp.Term{Var: p.Var(i), Coef: 1})
		}
	}
	if len(terms) == 0 {
		return nil
	}
	return []lp.Constraint{lp.SumLEConstraint("game_slate", terms, 0)}
}

func salaryTerms(p *pool.Pool) []lp.Term {
	terms := make([]lp.Term, 0, p.Len())
	for i := 0; i < p.Len(); i++ {
		terms = append(terms, lp.Term{Var: p.Var(i), Coef: float64(p.Player(i).Salary)})
	}
	return terms
}

func teamTerms(p *pool.Pool, team string) []lp.Term {
	terms := make([]lp.Term, 0)
	for i := 0; i < p.Len(); i++ {
		if p.Player(i).Team == team {
			terms = append(terms, lp.Term{Var: p.Var(i), Coef: 1})
		}
	}
	return terms
}

func refTerms(p *pool.Pool, ref PlayerRef) []lp.Term {
	terms := make([]lp.Term, 0, 1)
	for i := 0; i < p.Len(); i++ {
		if ref.matches(p.Player(i)) {
			terms = append(terms, lp.Term{Var: p.Var(i), Coef: 1})
		}
	}
	return terms
}
