package domain

import "errors"

var (
	ErrSectionNotFound    = errors.New("section not found")
	ErrProjectNotSet      = errors.New("no active project")
	ErrAuthRequired       = errors.New("authentication required")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrDuplicateTitle     = errors.New("duplicate section title")
	ErrGenerationInFlight = errors.New("generation already in flight for section")

	// ErrPersistOutline covers a failed outline submit or the section list
	// fetch that follows it; ErrReconcile covers a server response that
	// could not be correlated back to the triggering section.
	ErrPersistOutline = errors.New("outline persist failed")
	ErrReconcile      = errors.New("section reconciliation failed")
)
