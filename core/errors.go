// Package core holds the error taxonomy shared across the retrieval stack.
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable means the chunk corpus file could not be opened.
	// Fatal to startup.
	ErrStoreUnavailable = errors.New("chunk store unavailable")

	// ErrProviderUnavailable means the embedding provider call failed
	// (network, auth, bad response). Request-scoped.
	ErrProviderUnavailable = errors.New("embedding provider unavailable")

	// ErrQueryRejected means the query was empty or too short after trimming.
	ErrQueryRejected = errors.New("query rejected")

	// ErrIndexNotReady means the index has not finished its startup load.
	// Callers are expected to tolerate this by serving an empty result.
	ErrIndexNotReady = errors.New("index not ready")
)

// ProviderError wraps a provider failure with the operation that hit it.
// errors.Is(err, ErrProviderUnavailable) holds for every ProviderError.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	return []error{ErrProviderUnavailable, e.Err}
}

// SearchError annotates a search-path failure with its operation.
type SearchError struct {
	Op  string
	Err error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}
