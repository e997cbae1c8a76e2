package permkit

import (
	"context"
)

// Builder accumulates the initial role set, fallback roles, and permission
// registrations for a Service. Create one with NewBuilder; the zero value
// is not usable.
//
// Example:
//
//	service := permkit.NewBuilder().
//		RegisterDomain(Orders, Users).
//		AddRole(permkit.NewRole("Admin", "*")).
//		FallbackRoles("Guest").
//		Build()
type Builder struct {
	roles    map[string]*Role
	fallback []string
	registry *Registry
}

// NewBuilder creates an empty service builder.
func NewBuilder() *Builder {
	return &Builder{
		roles:    make(map[string]*Role),
		registry: NewRegistry(),
	}
}

// AddRole adds a role to the initial set. Adding a role whose name is
// already present replaces it.
func (b *Builder) AddRole(role *Role) *Builder {
	b.roles[role.Name()] = role
	return b
}

// LoadRoles adds multiple roles.
func (b *Builder) LoadRoles(roles []*Role) *Builder {
	for _, role := range roles {
		b.AddRole(role)
	}
	return b
}

// LoadRecords compiles and adds roles from persisted records.
func (b *Builder) LoadRecords(records []RoleRecord) *Builder {
	for _, rec := range records {
		b.AddRole(FromRecord(rec))
	}
	return b
}

// LoadFrom pulls records from an external source and adds them.
func (b *Builder) LoadFrom(ctx context.Context, source RecordSource) error {
	records, err := source.Load(ctx)
	if err != nil {
		return err
	}
	b.LoadRecords(records)
	return nil
}

// FallbackRoles sets the role names substituted for subjects that hold no
// roles. Left unset, the service falls back to the single role "Default".
// Calling it with no arguments configures an empty fallback, which denies
// every check for role-less subjects.
func (b *Builder) FallbackRoles(names ...string) *Builder {
	b.fallback = make([]string, len(names))
	copy(b.fallback, names)
	return b
}

// RegisterDomain records every declared permission of the given domains in
// the service's registry for later introspection.
func (b *Builder) RegisterDomain(domains ...*Domain) *Builder {
	for _, d := range domains {
		d.Register(b.registry)
	}
	return b
}

// Build finalizes the accumulated state into a live Service holding its
// first snapshot. The builder can keep being used afterwards; the service
// owns its own copy of the role map.
func (b *Builder) Build() *Service {
	roles := make(map[string]*Role, len(b.roles))
	for name, role := range b.roles {
		roles[name] = role
	}

	fallback := b.fallback
	if fallback == nil {
		fallback = []string{DefaultFallbackRole}
	} else {
		fallback = append([]string(nil), fallback...)
	}

	s := &Service{registry: b.registry}
	s.state.Store(&snapshot{roles: roles, fallback: fallback})
	return s
}
