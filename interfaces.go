package permkit

import (
	"context"
)

// Subject is any entity that can be authorized. Implementations expose the
// ordered role names the subject holds and a display name used only in
// diagnostics. No other subject data is read.
type Subject interface {
	Roles() []string
	Name() string
}

// RecordSource supplies role records from external storage. The store and
// rolefile subpackages implement it; the core only consumes the records.
type RecordSource interface {
	Load(ctx context.Context) ([]RoleRecord, error)
}

// StaticSubject is a Subject with a fixed role list, handy for tests and
// for request plumbing that resolves role names up front.
type StaticSubject struct {
	SubjectName string
	RoleNames   []string
}

// Roles returns the subject's role names.
func (s StaticSubject) Roles() []string {
	return s.RoleNames
}

// Name returns the subject's display name.
func (s StaticSubject) Name() string {
	return s.SubjectName
}

// NewSubject creates a StaticSubject from a display name and role names.
func NewSubject(name string, roles ...string) StaticSubject {
	return StaticSubject{SubjectName: name, RoleNames: roles}
}
