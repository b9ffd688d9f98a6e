package model

import (
	"errors"
	"fmt"
)

// Error sentinels for the failure kinds surfaced by the loader.
//
// Retryable kinds (ErrTimeout, ErrFetchFailed) are retried internally by the
// scheduler up to the configured count; once exhausted, the terminal error
// wraps ErrRetriesExhausted together with the last attempt's error. The
// remaining kinds are never retried.
var (
	// ErrInvalidArgument indicates a missing or invalid construction-time
	// input, such as a nil URL resolver.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTimeout indicates a single fetch attempt exceeded its deadline.
	ErrTimeout = errors.New("attempt timed out")

	// ErrFetchFailed indicates a transient fetch failure.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrRetriesExhausted indicates a fetch failed on every attempt.
	// The error is delivered to every waiter attached to the unit and to
	// every dependency closure that includes it.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrMalformedManifest indicates the manifest could not be decoded or
	// describes an invalid graph.
	ErrMalformedManifest = errors.New("malformed manifest")

	// ErrAssetNotFound indicates a requested named object is absent from a
	// loaded unit, or has an unexpected type.
	ErrAssetNotFound = errors.New("asset not found")
)

// ErrDependencyCycle indicates the dependency graph revisited a unit id
// already being resolved in the current closure. The graph is required to be
// a DAG, so a cycle is treated as a malformed manifest.
var ErrDependencyCycle = fmt.Errorf("dependency cycle: %w", ErrMalformedManifest)
