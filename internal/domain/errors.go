package domain

import "github.com/cockroachdb/errors"

// Sentinel errors reported at the engine boundary. Wrap them to add context; check with errors.Is.
var (
	// ErrSourceUnavailable means the store file could not be opened for reading.
	ErrSourceUnavailable = errors.New("store source unavailable")

	// ErrStoreFull means the store reached its capacity and the new entry was rejected.
	ErrStoreFull = errors.New("store full")

	// ErrWriteFailure means the store file could not be appended to.
	ErrWriteFailure = errors.New("store write failure")

	// ErrInvalidEntry means the pair cannot be represented in the store file format.
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrDuplicate means the question is already stored verbatim.
	ErrDuplicate = errors.New("question already known")

	// ErrUnknownMetric is returned for metric or encoder names that are not registered.
	ErrUnknownMetric = errors.New("unknown metric")
)
