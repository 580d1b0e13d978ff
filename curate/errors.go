package curate

import "errors"

var (
	// ErrProvider wraps any failed catalog or playlist call.
	ErrProvider = errors.New("provider error")

	// ErrInvalidArgument is returned for out-of-range creativity levels,
	// unknown policies and strategies, and non-positive durations.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInfeasiblePool is returned when a pool can't be grown or selected
	// from within the attempt bounds.
	ErrInfeasiblePool = errors.New("infeasible pool")

	// ErrPartialSubmission is returned when a playlist was created but one or
	// more batches couldn't be appended to it.
	ErrPartialSubmission = errors.New("partial submission")
)
