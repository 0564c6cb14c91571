package llm

import (
	"context"
	"errors"
	"net"

	"algodraft-be/internal/pkg/apperror"
)

// TransportError classifies a failed backend round trip. Deadline
// overruns become BackendTimeout, caller cancellation passes through
// untagged, everything else is a rejection by the backend.
func TransportError(provider string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperror.Wrap(apperror.KindBackendTimeout, provider+" request timed out", err)
	}
	return apperror.Wrap(apperror.KindBackendRejected, provider+" request failed", err)
}

// StatusError reports a non-success HTTP status from a backend.
func StatusError(provider string, status int, body string) error {
	return apperror.Newf(apperror.KindBackendRejected, "%s error: status %d, body: %s", provider, status, body)
}
