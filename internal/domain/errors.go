package domain

import "errors"

var (
	// ErrLedgerNotFound is returned when a user has no ledger at all.
	// A user with a ledger but no records in range yields an empty slice
	// instead.
	ErrLedgerNotFound = errors.New("ledger not found for user")

	// ErrInvalidRange is returned for an unknown range token.
	ErrInvalidRange = errors.New("invalid range: expected 1d, 7d, 30d, 90d, or 1y")
)
