package engine

import "errors"

var (
	// ErrInvalidConfig marks a configuration rejected at build time.
	ErrInvalidConfig = errors.New("invalid engine configuration")
	// ErrTooFewDocuments is returned when fewer documents than the configured minimum are supplied.
	ErrTooFewDocuments = errors.New("too few documents")
	// ErrTooManyDocuments is returned when more documents than the configured maximum are supplied.
	ErrTooManyDocuments = errors.New("too many documents")
	// ErrDuplicateDocument is returned when the same filename is ingested twice.
	ErrDuplicateDocument = errors.New("duplicate document")
	// ErrNotFound is returned by registry lookups for unknown candidate ids.
	ErrNotFound = errors.New("candidate not found")
	// ErrGenerationFormat marks a generation response that could not be
	// decoded into the expected structure.
	ErrGenerationFormat = errors.New("generation response format error")
	// ErrGenerationTimeout marks a generation call cut off by the caller's deadline.
	ErrGenerationTimeout = errors.New("generation timed out")
)
