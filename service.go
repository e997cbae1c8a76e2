package permkit

import (
	"sort"
	"sync/atomic"
)

// DefaultFallbackRole is substituted for subjects that hold no roles when
// neither the builder nor an updater configured fallback roles.
const DefaultFallbackRole = "Default"

// snapshot is the unit of atomic replacement: the role map plus the
// fallback role names. Bundling both means an updater that overrides the
// fallback roles still commits with a single pointer swap.
type snapshot struct {
	roles    map[string]*Role
	fallback []string
}

// Service answers permission checks against an atomically replaceable role
// set. Construct one with NewBuilder().…Build() and replace its role set at
// runtime through Updater or CopyUpdater.
//
// Readers are wait-free: HasPermission loads the snapshot pointer once and
// works exclusively on that snapshot, so a concurrently committed update
// either happened before the load (the reader sees the new role set) or
// after it (the old one), never a mixture. Roles and their compiled
// permissions are immutable, so a role captured mid-check stays valid even
// after the map has been swapped for subsequent callers.
type Service struct {
	state    atomic.Pointer[snapshot]
	registry *Registry
}

// HasPermission checks whether the subject holds p through any of its
// roles.
//
// A subject with no roles is checked against the service's fallback roles.
// Role names missing from the current snapshot are skipped silently. The
// first role that grants p wins and nil is returned; if no role grants it,
// the returned error is a *PermissionDeniedError wrapping
// ErrPermissionDenied. The check is read-only and never blocks.
func (s *Service) HasPermission(subject Subject, p Permission) error {
	if s.check(subject, p.String(), p.Domain(), p.ObjectType()) {
		return nil
	}
	return &PermissionDeniedError{Permission: p.String(), Subject: subject.Name()}
}

// Allowed is a boolean convenience wrapper around HasPermission.
func (s *Service) Allowed(subject Subject, p Permission) bool {
	return s.check(subject, p.String(), p.Domain(), p.ObjectType())
}

func (s *Service) check(subject Subject, canonical, domain, objectType string) bool {
	snap := s.state.Load()

	names := subject.Roles()
	if len(names) == 0 {
		names = snap.fallback
	}

	for _, name := range names {
		role, ok := snap.roles[name]
		if !ok {
			continue
		}
		if role.compiled.Matches(canonical, domain, objectType) {
			return true
		}
	}
	return false
}

// Role returns the named role from the current snapshot.
func (s *Service) Role(name string) (*Role, bool) {
	role, ok := s.state.Load().roles[name]
	return role, ok
}

// Roles returns the records of every role in the current snapshot, sorted
// by name, for introspection and persistence.
func (s *Service) Roles() []RoleRecord {
	snap := s.state.Load()

	records := make([]RoleRecord, 0, len(snap.roles))
	for _, role := range snap.roles {
		records = append(records, role.Record())
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records
}

// FallbackRoles returns the fallback role names of the current snapshot.
func (s *Service) FallbackRoles() []string {
	fallback := s.state.Load().fallback
	names := make([]string, len(fallback))
	copy(names, fallback)
	return names
}

// Registry returns the permission registry. The registry is fixed at
// construction; updates never touch it.
func (s *Service) Registry() *Registry {
	return s.registry
}
