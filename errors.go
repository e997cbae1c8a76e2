package permkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for permkit operations.
var (
	// ErrPermissionDenied is the single error kind signalled by permission
	// checks. Match it with errors.Is or IsPermissionDenied.
	ErrPermissionDenied = errors.New("permkit: permission denied")

	// ErrNoSubject is returned by the HTTP middleware when no subject could
	// be resolved from the request. The core decision path never returns it.
	ErrNoSubject = errors.New("permkit: no subject in request")
)

// PermissionDeniedError reports a failed permission check. It carries the
// canonical permission string and, when known, the subject's display name.
type PermissionDeniedError struct {
	Permission string // canonical "Domain::ObjectType::Action"
	Subject    string // subject display name, may be empty
}

// Error implements the error interface.
func (e *PermissionDeniedError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("permkit: permission denied: %s (subject %q)", e.Permission, e.Subject)
	}
	return fmt.Sprintf("permkit: permission denied: %s", e.Permission)
}

// Unwrap returns ErrPermissionDenied so errors.Is matching works.
func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// IsPermissionDenied checks whether an error is a denied permission check.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// DeniedPermission extracts the canonical permission string from a denial.
// Returns "" if err does not wrap a PermissionDeniedError.
func DeniedPermission(err error) string {
	var denied *PermissionDeniedError
	if errors.As(err, &denied) {
		return denied.Permission
	}
	return ""
}
