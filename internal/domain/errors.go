package domain

import (
	"context"
	"errors"
)

// FailureKind classifies why a route candidate or oracle call did not succeed.
type FailureKind string

const (
	FailureNone                FailureKind = ""
	FailureInvalidRequest      FailureKind = "invalid_request"
	FailureResolverUnavailable FailureKind = "resolver_unavailable"
	FailureDepotNotFound       FailureKind = "depot_not_found"
	FailureOracle              FailureKind = "oracle_failure"
	FailureNoViableCandidate   FailureKind = "no_viable_candidate"
	FailureCanceled            FailureKind = "canceled"
)

var (
	ErrInvalidRequest      = errors.New("invalid planning request")
	ErrResolverUnavailable = errors.New("depot registry unavailable")
	ErrDepotNotFound       = errors.New("depot not found")
	ErrNoViableCandidate   = errors.New("no viable route candidate")
)

// KindOf maps an error to the failure kind it represents.
// Context cancellation wins over any wrapped sentinel.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return FailureCanceled
	case errors.Is(err, ErrInvalidRequest):
		return FailureInvalidRequest
	case errors.Is(err, ErrResolverUnavailable):
		return FailureResolverUnavailable
	case errors.Is(err, ErrDepotNotFound):
		return FailureDepotNotFound
	case errors.Is(err, ErrNoViableCandidate):
		return FailureNoViableCandidate
	default:
		return FailureOracle
	}
}
