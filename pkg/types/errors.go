package types

import "errors"

// Domain error classes. Callers match with errors.Is; producers wrap with %w
// and attach a reason.
var (
	// ErrInvalidArgument flags malformed caller input (negative bound,
	// unknown team). Checked before any mutation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidDataset flags an unusable player dataset: missing mapped
	// columns, non-unique ids, or a required position with no eligible rows.
	ErrInvalidDataset = errors.New("invalid dataset")

	// ErrInvalidConstraint flags a constraint that conflicts with the
	// registry or references an entity absent from the pool. The registry
	// is unchanged when it is returned.
	ErrInvalidConstraint = errors.New("invalid constraint")

	// ErrUnsolvableLineup means the model has no feasible optimum under the
	// current constraints. Callers may relax constraints and retry.
	ErrUnsolvableLineup = errors.New("unsolvable lineup")

	// ErrSolver flags a solver-process failure. Fatal, never retried.
	ErrSolver = errors.New("solver failure")
)
