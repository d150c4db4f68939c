package domain

import "fmt"

// BackendError carries a business-rule failure reported by the core API
// (bad credentials, duplicate email, invalid reset token). The Message is the
// backend's own `message` field and is safe to show inline next to a form.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("core api returned status %d", e.Status)
}

// NewBackendError builds a BackendError, substituting fallback when the
// backend supplied no message of its own.
func NewBackendError(status int, message, fallback string) *BackendError {
	if message == "" {
		message = fallback
	}
	return &BackendError{Status: status, Message: message}
}
