// Package apperr defines the error taxonomy shared by every layer.
//
// Repositories and services wrap these sentinels with fmt.Errorf("%w: ...")
// and callers classify with errors.Is. Only ErrStoreUnavailable is ever
// retried; everything else is terminal for the request.
package apperr

import "errors"

var (
	// ErrUnauthenticated means no verified caller identity was presented.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means the caller is authenticated but policy denies the
	// operation on the target scope.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the referenced entity is absent or already purged.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument means the input is malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPrecursorMissing means a provider event arrived before the event
	// that should have created its target (webhook ordering violation).
	ErrPrecursorMissing = errors.New("precursor missing")

	// ErrStoreUnavailable means the backing store failed transiently.
	ErrStoreUnavailable = errors.New("store unavailable")
)
