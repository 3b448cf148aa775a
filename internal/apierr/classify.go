package apierr

import (
	"errors"
	"strings"
)

// Kind is the classification of a failed backend call.
type Kind int

const (
	// KindFatal covers everything that is neither quota nor server related:
	// malformed requests, auth failures, network errors, cancellation.
	KindFatal Kind = iota
	// KindQuotaExhausted means the backend's quota or rate limit was hit.
	KindQuotaExhausted
	// KindServerUnavailable means a transient server-side fault.
	KindServerUnavailable
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindFatal:
		return "fatal"
	case KindQuotaExhausted:
		return "quota_exhausted"
	case KindServerUnavailable:
		return "server_unavailable"
	default:
		return "unknown"
	}
}

// Message markers for backends that expose no structured error kind.
// Matched case-sensitively unless listed in a *Fold slice.
var (
	quotaMarkers      = []string{"429", "RESOURCE_EXHAUSTED"}
	quotaMarkersFold  = []string{"quota"}
	serverMarkers     = []string{"503", "UNAVAILABLE"}
	serverMarkersFold = []string{"overloaded"}
)

// serverFaulter is implemented by errors that declare themselves server-side
// faults, whatever their message says.
type serverFaulter interface {
	ServerFault() bool
}

// Classify maps a backend failure to exactly one Kind.
//
// Structured information is consulted first (sentinels set by adapters,
// errors implementing ServerFault() bool), then the message is scanned for
// markers. The quota check runs before the server check, so a failure that
// matches both is KindQuotaExhausted. A nil error is KindFatal.
func Classify(err error) Kind {
	if err == nil {
		return KindFatal
	}

	msg := err.Error()

	if errors.Is(err, ErrQuotaExhausted) || containsAny(msg, quotaMarkers, quotaMarkersFold) {
		return KindQuotaExhausted
	}

	if errors.Is(err, ErrServerUnavailable) || isServerFault(err) ||
		containsAny(msg, serverMarkers, serverMarkersFold) {
		return KindServerUnavailable
	}

	return KindFatal
}

// isServerFault reports whether any error in the chain declares itself a
// server-side fault.
func isServerFault(err error) bool {
	var sf serverFaulter
	return errors.As(err, &sf) && sf.ServerFault()
}

// containsAny reports whether msg contains one of exact (case-sensitive) or
// one of fold (case-insensitive).
func containsAny(msg string, exact, fold []string) bool {
	for _, m := range exact {
		if strings.Contains(msg, m) {
			return true
		}
	}
	lower := strings.ToLower(msg)
	for _, m := range fold {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
