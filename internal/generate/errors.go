package generate

import (
	"errors"
	"fmt"
)

// FailureKind classifies a backend failure independently of the transport
// library that produced it.
type FailureKind int

const (
	// FailQuota marks quota exhaustion or rate limiting.
	FailQuota FailureKind = iota
	// FailTransient marks a temporary transport fault (5xx, timeout).
	FailTransient
	// FailFatal marks everything else. The cascade still advances: a
	// permanently broken backend must not block the remaining ones.
	FailFatal
)

func (k FailureKind) String() string {
	switch k {
	case FailQuota:
		return "quota"
	case FailTransient:
		return "transient"
	default:
		return "fatal"
	}
}

// BackendError wraps a transport error with its classification.
type BackendError struct {
	Kind FailureKind
	Err  error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s failure: %v", e.Kind, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from err, defaulting to FailFatal.
func KindOf(err error) FailureKind {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Kind
	}
	return FailFatal
}
