package permkit

// Checker binds a Subject to a Service for handler-side permission checks.
// It is typically created once per request and stored in the context by
// the middleware.
//
// A Checker holds no snapshot of its own; every call reads the service's
// current snapshot, so a checker created before a role-set update answers
// with the updated roles afterwards.
type Checker struct {
	subject Subject
	service *Service
}

// NewChecker creates a Checker for a subject.
func NewChecker(subject Subject, service *Service) *Checker {
	return &Checker{subject: subject, service: service}
}

// Subject returns the subject this checker is for.
func (c *Checker) Subject() Subject {
	return c.subject
}

// Can reports whether the subject holds the permission.
//
// Example:
//
//	if checker.Can(InvoiceGenerate) {
//	    // subject may generate invoices
//	}
func (c *Checker) Can(p Permission) bool {
	return c.service.Allowed(c.subject, p)
}

// CanAny reports whether the subject holds at least one of the
// permissions.
func (c *Checker) CanAny(perms ...Permission) bool {
	for _, p := range perms {
		if c.service.Allowed(c.subject, p) {
			return true
		}
	}
	return false
}

// CanAll reports whether the subject holds every one of the permissions.
func (c *Checker) CanAll(perms ...Permission) bool {
	for _, p := range perms {
		if !c.service.Allowed(c.subject, p) {
			return false
		}
	}
	return true
}

// Check returns the error form of a permission check, a
// *PermissionDeniedError when the subject lacks p.
func (c *Checker) Check(p Permission) error {
	return c.service.HasPermission(c.subject, p)
}

// RoleNames returns the role names the subject is checked against: its own
// ordered list, or the service's fallback roles when the list is empty.
func (c *Checker) RoleNames() []string {
	names := c.subject.Roles()
	if len(names) == 0 {
		return c.service.FallbackRoles()
	}
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Permissions expands the subject's grants against the service registry:
// every registered permission the subject holds, sorted by full name.
// Useful for documentation and UI; authorization itself never enumerates.
func (c *Checker) Permissions() []PermissionInfo {
	var granted []PermissionInfo
	for _, info := range c.service.Registry().All() {
		if c.service.check(c.subject, info.FullName, info.Domain, info.ObjectType) {
			granted = append(granted, info)
		}
	}
	return granted
}
