// Package domain holds the error taxonomy shared by the registry's domain
// packages. Callers wrap these sentinels with fmt.Errorf("%w: ...") and the
// HTTP layer classifies them with errors.Is.
package domain

import "errors"

var (
	// ErrInvalidQuery reports malformed filter or form input.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrNotFound reports a point lookup miss.
	ErrNotFound = errors.New("not found")

	// ErrMissingImage reports a point creation without an uploaded image.
	ErrMissingImage = errors.New("missing image")

	// ErrTransactionFailed reports a storage failure inside the point creation
	// transaction. The transaction has been rolled back when this is returned.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrStorageUnavailable reports a connection-level storage failure.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrUpstreamUnavailable reports a failure of the locality lookup API.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
