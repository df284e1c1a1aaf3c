package graph

import "errors"

var (
	// ErrInvalidArgument is returned for malformed construction inputs.
	ErrInvalidArgument = errors.New("graph: invalid argument")
	// ErrFitDidNotConverge is returned when the regression solver fails.
	ErrFitDidNotConverge = errors.New("graph: fit did not converge")
)
