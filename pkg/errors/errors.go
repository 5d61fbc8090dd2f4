// Package errors defines the error kinds the index surfaces. Callers
// classify failures with errors.Is against the sentinels; the serve command
// maps them onto HTTP statuses.
package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrIndexNotFound means the index artifacts are absent for the queried
	// root; the caller has to run a build first.
	ErrIndexNotFound = errors.New("index not found, run build first")

	// ErrCorruptIndex means the artifacts disagree with their own declared
	// shape: a table row with the wrong arity, a non-integer count, or a
	// postings block whose decode does not land exactly on its byte
	// boundary. Corruption fails the whole operation; there is no partial
	// recovery.
	ErrCorruptIndex = errors.New("corrupt index")

	// ErrIndexLocked means another build holds the exclusive lock on the
	// index directory.
	ErrIndexLocked = errors.New("index locked by another build")
)

// HTTPStatusCode maps an error to the status the search API responds with.
func HTTPStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrIndexNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrIndexLocked):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
