// Package lp provides a thin 0-1 integer-programming model layer over GLPK.
// The engine builds a Problem in memory (variables, objective, constraint
// rows) and hands the whole model to the solver in a single blocking call.
package lp

import "fmt"

// BoundKind selects how a constraint row is bounded.
type BoundKind int

const (
	// SumLE bounds the row from above: terms <= Hi.
	SumLE BoundKind = iota
	// SumGE bounds the row from below: terms >= Lo.
	SumGE
	// SumEQ fixes the row: terms == Lo.
	SumEQ
	// SumRange bounds the row on both sides: Lo <= terms <= Hi.
	SumRange
)

// Variable is a binary decision variable. Its value is only meaningful in
// the Solution returned by a successful Solve.
type Variable struct {
	Name string
	col  int // 1-based GLPK column index
}

// Term is one coefficient*variable product in a linear expression.
type Term struct {
	Var  *Variable
	Coef float64
}

// Constraint is one linear inequality row of the model.
type Constraint struct {
	Name  string
	Terms []Term
	Kind  BoundKind
	Lo    float64
	Hi    float64
}

// Problem is a maximization 0-1 integer program under construction.
// A Problem is built and solved once; it is not safe for concurrent use.
type Problem struct {
	name        string
	vars        []*Variable
	objective   []Term
	constraints []Constraint
}

// NewMaximize creates an empty maximization problem.
func NewMaximize(name string) *Problem {
	return &Problem{name: name}
}

// NewBinaryVar adds a fresh binary variable to the problem. Names must be
// unique within the problem; collisions are the caller's responsibility.
func (p *Problem) NewBinaryVar(name string) *Variable {
	v := &Variable{Name: name, col: len(p.vars) + 1}
	p.vars = append(p.vars, v)
	return v
}

// SetObjective replaces the objective function with the given terms.
func (p *Problem) SetObjective(terms []Term) {
	p.objective = terms
}

// AddConstraint appends one inequality row to the model.
func (p *Problem) AddConstraint(c Constraint) {
	p.constraints = append(p.constraints, c)
}

// NumVars returns the number of decision variables added so far.
func (p *Problem) NumVars() int {
	return len(p.vars)
}

// NumConstraints returns the number of constraint rows added so far.
func (p *Problem) NumConstraints() int {
	return len(p.constraints)
}

// Solution holds the certified-optimal variable assignment of a solved
// problem.
type Solution struct {
	Objective float64
	values    []float64
}

// Value returns the solved value of v, 0 or 1 for binary variables.
func (s *Solution) Value(v *Variable) float64 {
	if v == nil || v.col < 1 || v.col > len(s.values) {
		return 0
	}
	return s.values[v.col-1]
}

// Selected reports whether binary variable v resolved to 1.
func (s *Solution) Selected(v *Variable) bool {
	return s.Value(v) > 0.5
}

// SumLEConstraint builds a terms <= hi row.
func SumLEConstraint(name string, terms []Term, hi float64) Constraint {
	return Constraint{Name: name, Terms: terms, Kind: SumLE, Hi: hi}
}

// SumGEConstraint builds a terms >= lo row.
func SumGEConstraint(name string, terms []Term, lo float64) Constraint {
	return Constraint{Name: name, Terms: terms, Kind: SumGE, Lo: lo}
}

// SumEQConstraint builds a terms == v row.
func SumEQConstraint(name string, terms []Term, v float64) Constraint {
	return Constraint{Name: name, Terms: terms, Kind: SumEQ, Lo: v, Hi: v}
}

// SumRangeConstraint builds a lo <= terms <= hi row.
func SumRangeConstraint(name string, terms []Term, lo, hi float64) Constraint {
	return Constraint{Name: name, Terms: terms, Kind: SumRange, Lo: lo, Hi: hi}
}

// UnitTerms builds coefficient-1 terms over the given variables.
func UnitTerms(vars []*Variable) []Term {
	terms := make([]Term, 0, len(vars))
	for _, v := range vars {
		terms = append(terms, Term{Var: v, Coef: 1})
	}
	return terms
}

func (c Constraint) String() string {
	switch c.Kind {
	case SumLE:
		return fmt.Sprintf("%s: sum(%d terms) <= %v", c.Name, len(c.Terms), c.Hi)
	case SumGE:
		return fmt.Sprintf("%s: sum(%d terms) >= %v", c.Name, len(c.Terms), c.Lo)
	case SumEQ:
		return fmt.Sprintf("%s: sum(%d terms) == %v", c.Name, len(c.Terms), c.Lo)
	default:
		return fmt.Sprintf("%s: %v <= sum(%d terms) <= %v", c.Name, c.Lo, len(c.Terms), c.Hi)
	}
}
