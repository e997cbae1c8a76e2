package permkit

// RoleRecord is the persistable form of a role: its name and the ordered
// pattern list it was declared with. It is the only entity external storage
// deals in; compiled permissions are a derived cache and are recomputed on
// construction, never serialized.
type RoleRecord struct {
	Name        string   `json:"name" yaml:"name"`
	Permissions []string `json:"permissions" yaml:"permissions"`
}

// Role is an immutable named bundle of permission patterns. The pattern
// list is compiled exactly once at construction; changing a role's patterns
// means constructing a new Role.
type Role struct {
	name     string
	patterns []string
	compiled *CompiledPermissions
}

// NewRole builds a role from its name and ordered pattern list.
func NewRole(name string, patterns ...string) *Role {
	ps := make([]string, len(patterns))
	copy(ps, patterns)
	return &Role{
		name:     name,
		patterns: ps,
		compiled: Compile(ps),
	}
}

// FromRecord reconstructs a Role from its persisted record.
func FromRecord(rec RoleRecord) *Role {
	return NewRole(rec.Name, rec.Permissions...)
}

// Name returns the role name. Names are unique within one service
// instance.
func (r *Role) Name() string {
	return r.name
}

// Patterns returns a copy of the raw pattern list the role was declared
// with, retained for introspection and persistence.
func (r *Role) Patterns() []string {
	ps := make([]string, len(r.patterns))
	copy(ps, r.patterns)
	return ps
}

// Compiled returns the role's compiled permission set.
func (r *Role) Compiled() *CompiledPermissions {
	return r.compiled
}

// Record returns the persistable representation of the role.
func (r *Role) Record() RoleRecord {
	return RoleRecord{Name: r.name, Permissions: r.Patterns()}
}

// Grants reports whether the role's compiled permissions cover p.
func (r *Role) Grants(p Permission) bool {
	return r.compiled.Matches(p.String(), p.Domain(), p.ObjectType())
}
