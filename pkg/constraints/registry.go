package constraints

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/pool"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/types"
)

// Registry is the ordered, mutable collection of user constraints for one
// optimizer session. Every addition is validated against the current
// contents first; a rejected proposal leaves the registry untouched.
type Registry struct {
	pool        *pool.Pool
	rosterSize  int
	constraints []Constraint
	log         logrus.FieldLogger
}

// NewRegistry creates an empty registry bound to the session's pool and
// the site's roster size. The logger may be nil.
func NewRegistry(p *pool.Pool, rosterSize int, log logrus.FieldLogger) *Registry {
	if log == nil {
		log = logrus.New()
	}
	return &Registry{pool: p, rosterSize: rosterSize, log: log}
}

// Propose validates the constraint against the registry's current contents
// and appends it on success. A zero team-minimum is a no-op: it is
// accepted but silently discarded rather than stored.
func (r *Registry) Propose(c Constraint) error {
	if c == nil {
		return fmt.Errorf("%w: constraint must not be nil", types.ErrInvalidArgument)
	}
	if tm, ok := c.(*TeamMinPlayers); ok && tm.N == 0 {
		r.log.WithField("team", tm.Team).Debug("Discarding zero team-minimum constraint")
		return nil
	}
	if err := c.Validate(r.constraints, r.pool, r.rosterSize); err != nil {
		return err
	}
	r.constraints = append(r.constraints, c)
	r.log.WithFields(logrus.Fields{"kind": c.Kind(), "constraint": c.Describe()}).
		Info("Constraint accepted")
	return nil
}

// ProposeTeamRange stages a min and a max player bound for one team as a
// single atomic operation: if the second half fails, the first is undone
// and the registry is exactly as before the pair began.
func (r *Registry) ProposeTeamRange(team string, min, max int) error {
	before := len(r.constraints)
	if err := r.Propose(&TeamMinPlayers{Team: team, N: min}); err != nil {
		return err
	}
	if err := r.Propose(&TeamMaxPlayers{Team: team, N: max}); err != nil {
		r.constraints = r.constraints[:before]
		return err
	}
	return nil
}

// ProposeTeamExact requires exactly n players from one team, staged as an
// atomic min+max pair.
func (r *Registry) ProposeTeamExact(team string, n int) error {
	return r.ProposeTeamRange(team, n, n)
}

// Clear discards all user constraints. Structural per-position constraints
// live in the model builder and are unaffected.
func (r *Registry) Clear() {
	r.constraints = nil
	r.log.Debug("Cleared user constraints")
}

// Len returns the number of stored constraints.
func (r *Registry) Len() int {
	return len(r.constraints)
}

// Constraints returns the stored constraints in insertion order.
func (r *Registry) Constraints() []Constraint {
	out := make([]Constraint, len(r.constraints))
	copy(out, r.constraints)
	return out
}
