package llm_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/alnah/go-wotd/internal/apierr"
	"github.com/alnah/go-wotd/internal/llm"
)

// ---------------------------------------------------------------------------
// TestSentinelForStatus - HTTP status to sentinel mapping
// ---------------------------------------------------------------------------

func TestSentinelForStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   error
	}{
		{http.StatusOK, nil},
		{http.StatusTooManyRequests, apierr.ErrQuotaExhausted},
		{http.StatusPaymentRequired, apierr.ErrQuotaExhausted},
		{http.StatusUnauthorized, apierr.ErrAuthFailed},
		{http.StatusForbidden, apierr.ErrAuthFailed},
		{http.StatusInternalServerError, apierr.ErrServerUnavailable},
		{http.StatusBadGateway, apierr.ErrServerUnavailable},
		{http.StatusServiceUnavailable, apierr.ErrServerUnavailable},
		{http.StatusBadRequest, apierr.ErrBadRequest},
		{http.StatusNotFound, apierr.ErrBadRequest},
		{0, nil},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			got := llm.SentinelForStatus(tt.status)
			if !errors.Is(got, tt.want) || (tt.want == nil && got != nil) {
				t.Errorf("SentinelForStatus(%d) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}
