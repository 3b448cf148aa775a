// Package llm provides fetch.Backend implementations for hosted LLM APIs.
//
// Every adapter maps its provider's typed errors to apierr sentinels at the
// boundary, keeping the provider message in the error text:
//
//	429, 402       -> apierr.ErrQuotaExhausted
//	5xx            -> apierr.ErrServerUnavailable
//	401, 403       -> apierr.ErrAuthFailed
//	other 4xx      -> apierr.ErrBadRequest
//
// Anything else (network failures, cancellation) passes through unchanged.
package llm

import (
	"fmt"
	"net/http"

	"github.com/alnah/go-wotd/internal/apierr"
)

// sentinelForStatus returns the apierr sentinel for an HTTP status code,
// or nil when the status carries no classification.
func sentinelForStatus(status int) error {
	switch {
	case status == http.StatusTooManyRequests, status == http.StatusPaymentRequired:
		return apierr.ErrQuotaExhausted
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return apierr.ErrAuthFailed
	case status >= http.StatusInternalServerError:
		return apierr.ErrServerUnavailable
	case status >= http.StatusBadRequest:
		return apierr.ErrBadRequest
	default:
		return nil
	}
}

// wrapStatus wraps msg with the sentinel for status, or returns fallback.
func wrapStatus(status int, msg string, fallback error) error {
	sentinel := sentinelForStatus(status)
	if sentinel == nil {
		return fallback
	}
	return fmt.Errorf("%s: %w", msg, sentinel)
}
