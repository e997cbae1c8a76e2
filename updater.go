package permkit

import (
	"context"
)

// Updater accumulates a replacement role set for a live Service and
// commits it with exactly one atomic swap. Create one with Service.Updater
// (empty, for full replacement) or Service.CopyUpdater (seeded with the
// live roles, for incremental add/remove/overwrite edits).
//
// An Updater is not safe for concurrent use; build it on one goroutine and
// call Apply when it is complete. Concurrent readers are never blocked and
// never see a partially applied update.
type Updater struct {
	service  *Service
	roles    map[string]*Role
	fallback []string // nil keeps the live service's fallback roles
}

// Updater returns a clean updater with an empty role set.
func (s *Service) Updater() *Updater {
	return &Updater{
		service: s,
		roles:   make(map[string]*Role),
	}
}

// CopyUpdater returns an updater seeded with the current snapshot's roles.
func (s *Service) CopyUpdater() *Updater {
	snap := s.state.Load()

	roles := make(map[string]*Role, len(snap.roles))
	for name, role := range snap.roles {
		roles[name] = role
	}
	return &Updater{service: s, roles: roles}
}

// AddRole adds one role to the accumulated set, replacing any role with
// the same name.
func (u *Updater) AddRole(role *Role) *Updater {
	u.roles[role.Name()] = role
	return u
}

// RemoveRole removes a role by name. Removing a name that is not present
// is a no-op.
func (u *Updater) RemoveRole(name string) *Updater {
	delete(u.roles, name)
	return u
}

// LoadRoles adds multiple roles.
func (u *Updater) LoadRoles(roles []*Role) *Updater {
	for _, role := range roles {
		u.AddRole(role)
	}
	return u
}

// LoadRecords compiles and adds roles from persisted records.
func (u *Updater) LoadRecords(records []RoleRecord) *Updater {
	for _, rec := range records {
		u.AddRole(FromRecord(rec))
	}
	return u
}

// LoadFrom pulls records from an external source and adds them.
func (u *Updater) LoadFrom(ctx context.Context, source RecordSource) error {
	records, err := source.Load(ctx)
	if err != nil {
		return err
	}
	u.LoadRecords(records)
	return nil
}

// FallbackRoles overrides the service's fallback roles as part of the next
// Apply. If never called, Apply leaves the live fallback roles untouched.
func (u *Updater) FallbackRoles(names ...string) *Updater {
	u.fallback = make([]string, len(names))
	copy(u.fallback, names)
	return u
}

// Apply replaces the service's role set with the updater's accumulated one
// in a single atomic swap. It performs no validation and never touches the
// registry. In-flight checks keep the snapshot they already captured;
// checks starting after Apply see the new one.
//
// The updater stays usable after Apply; a later Apply swaps again.
func (u *Updater) Apply() {
	roles := make(map[string]*Role, len(u.roles))
	for name, role := range u.roles {
		roles[name] = role
	}

	fallback := u.fallback
	if fallback == nil {
		fallback = u.service.state.Load().fallback
	}

	u.service.state.Store(&snapshot{roles: roles, fallback: fallback})
}
