package lp

import (
	"errors"
	"fmt"

	"github.com/lukpank/go-glpk/glpk"
)

// Solve outcomes are classified into exactly three buckets: an optimal
// Solution, ErrNoOptimum, or ErrSolverFailure.
var (
	// ErrNoOptimum means the solver terminated without a certified optimum:
	// the model is infeasible, unbounded, or only an incumbent was found.
	ErrNoOptimum = errors.New("no optimal solution")

	// ErrSolverFailure means the solver process itself failed.
	ErrSolverFailure = errors.New("solver process failed")
)

// Solve loads the model into GLPK and runs the integer optimizer with
// console output suppressed. Only a certified-optimal assignment is
// returned; suboptimal incumbents are rejected with ErrNoOptimum.
func (p *Problem) Solve() (*Solution, error) {
	if len(p.vars) == 0 {
		return nil, fmt.Errorf("%w: model has no decision variables", ErrNoOptimum)
	}

	prob := glpk.New()
	defer prob.Delete()

	prob.SetProbName(p.name)
	prob.SetObjName("objective")
	prob.SetObjDir(glpk.MAX)

	prob.AddCols(len(p.vars))
	for _, v := range p.vars {
		prob.SetColName(v.col, v.Name)
		prob.SetColKind(v.col, glpk.BV)
	}
	for _, t := range p.objective {
		prob.SetObjCoef(t.Var.col, t.Coef)
	}

	if n := len(p.constraints); n > 0 {
		prob.AddRows(n)
	}
	for i, c := range p.constraints {
		row := i + 1
		prob.SetRowName(row, c.Name)
		switch c.Kind {
		case SumLE:
			prob.SetRowBnds(row, glpk.UP, 0, c.Hi)
		case SumGE:
			prob.SetRowBnds(row, glpk.LO, c.Lo, 0)
		case SumEQ:
			prob.SetRowBnds(row, glpk.FX, c.Lo, c.Hi)
		case SumRange:
			prob.SetRowBnds(row, glpk.DB, c.Lo, c.Hi)
		}
		// GLPK uses 1-based sparse rows with a dummy leading element.
		ind := make([]int32, 1, len(c.Terms)+1)
		val := make([]float64, 1, len(c.Terms)+1)
		for _, t := range c.Terms {
			ind = append(ind, int32(t.Var.col))
			val = append(val, t.Coef)
		}
		prob.SetMatRow(row, ind, val)
	}

	iocp := glpk.NewIocp()
	iocp.SetPresolve(true)
	iocp.SetMsgLev(glpk.MSG_OFF)

	if err := prob.Intopt(iocp); err != nil {
		// With the presolver on, an infeasible model surfaces as an
		// Intopt error rather than a status code.
		var oe glpk.OptError
		if errors.As(err, &oe) && (oe == glpk.ENOPFS || oe == glpk.ENODFS) {
			return nil, fmt.Errorf("%w: %v", ErrNoOptimum, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSolverFailure, err)
	}

	switch prob.MipStatus() {
	case glpk.OPT:
		// proceed
	case glpk.NOFEAS, glpk.UNBND, glpk.UNDEF, glpk.FEAS, glpk.INFEAS:
		return nil, fmt.Errorf("%w: solver status %v", ErrNoOptimum, prob.MipStatus())
	default:
		return nil, fmt.Errorf("%w: unexpected solver status %v", ErrSolverFailure, prob.MipStatus())
	}

	sol := &Solution{
		Objective: prob.MipObjVal(),
		values:    make([]float64, len(p.vars)),
	}
	for _, v := range p.vars {
		sol.values[v.col-1] = prob.MipColVal(v.col)
	}
	return sol, nil
}
