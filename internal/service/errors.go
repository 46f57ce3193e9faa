package service

import "errors"

// Error kinds surfaced by the core (spec §7). Store-call failures are
// wrapped as ErrInfrastructure with step context via fmt.Errorf("%w", ...)
// so callers can branch with errors.Is while still seeing which step failed
// in the error string.
var (
	// ErrInvalidInput marks a request that failed validation at the service
	// boundary (bad side, price out of range, unknown card). 400 at the
	// HTTP edge.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTraderMissing marks a trader lookup that returned a definitive No.
	// 400 at the HTTP edge.
	ErrTraderMissing = errors.New("trader missing")

	// ErrInfrastructure marks any store call that failed or returned
	// Unknown. 500 at the HTTP edge; logged with cause.
	ErrInfrastructure = errors.New("infrastructure error")

	// ErrConflict is reserved for a future strengthened crash-consistency
	// design (spec §9) and is never raised today.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks a query facade lookup for an entity that does not
	// exist (e.g. an invalid card id). 404 at the HTTP edge.
	ErrNotFound = errors.New("not found")
)
