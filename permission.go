package permkit

import (
	"strings"
)

// Permission identifies one declared action on one object type. Values are
// created through Domain and ObjectType declarations, compare with ==, and
// carry their canonical "Domain::ObjectType::Action" string precomputed so
// the authorization hot path never formats.
type Permission struct {
	domain      string
	objectType  string
	action      string
	description string
	full        string
}

// Domain returns the domain name, e.g. "Orders".
func (p Permission) Domain() string {
	return p.domain
}

// ObjectType returns the object type name, e.g. "Invoice".
func (p Permission) ObjectType() string {
	return p.objectType
}

// Action returns the action name, e.g. "Generate".
func (p Permission) Action() string {
	return p.action
}

// Description returns the human-readable description the action was
// declared with.
func (p Permission) Description() string {
	return p.description
}

// String returns the canonical permission string. It is the wire form used
// by pattern matching, persistence, and the registry.
func (p Permission) String() string {
	return p.full
}

// IsZero reports whether p is the zero Permission, i.e. not backed by a
// declaration.
func (p Permission) IsZero() bool {
	return p.full == ""
}

// Info returns the registry record for the permission.
func (p Permission) Info() PermissionInfo {
	return PermissionInfo{
		Domain:      p.domain,
		ObjectType:  p.objectType,
		Action:      p.action,
		FullName:    p.full,
		Description: p.description,
	}
}

// Domain groups the object types of one permission namespace. Declare
// domains, object types, and actions once at startup, typically as package
// level variables, and use the returned Permission values at call sites:
//
//	var (
//		Orders          = permkit.NewDomain("Orders")
//		Invoice         = Orders.Object("Invoice")
//		InvoiceRead     = Invoice.Action("Read", "View invoices")
//		InvoiceGenerate = Invoice.Action("Generate", "Generate invoices")
//	)
//
// Declarations are not safe for concurrent use; finish them before the
// service starts answering checks, then treat the Domain as immutable.
type Domain struct {
	name    string
	objects []*ObjectType
	byName  map[string]*ObjectType
}

// NewDomain starts declaring a new permission domain.
func NewDomain(name string) *Domain {
	return &Domain{
		name:   name,
		byName: make(map[string]*ObjectType),
	}
}

// Name returns the domain name.
func (d *Domain) Name() string {
	return d.name
}

// Object declares an object type within the domain, or returns the
// existing one if it was already declared.
func (d *Domain) Object(name string) *ObjectType {
	if o, ok := d.byName[name]; ok {
		return o
	}
	o := &ObjectType{
		domain:   d,
		name:     name,
		byAction: make(map[string]Permission),
	}
	d.objects = append(d.objects, o)
	d.byName[name] = o
	return o
}

// Objects returns the declared object types in declaration order.
func (d *Domain) Objects() []*ObjectType {
	objects := make([]*ObjectType, len(d.objects))
	copy(objects, d.objects)
	return objects
}

// Permissions enumerates every declared permission of every object type in
// the domain, in declaration order.
func (d *Domain) Permissions() []Permission {
	var perms []Permission
	for _, o := range d.objects {
		perms = append(perms, o.perms...)
	}
	return perms
}

// Parse resolves a canonical permission string against this domain's
// declarations. All three segments must match exactly; anything else
// returns false.
func (d *Domain) Parse(s string) (Permission, bool) {
	parts := strings.Split(s, Separator)
	if len(parts) != 3 || parts[0] != d.name {
		return Permission{}, false
	}
	o, ok := d.byName[parts[1]]
	if !ok {
		return Permission{}, false
	}
	p, ok := o.byAction[parts[2]]
	return p, ok
}

// Register adds every declared permission of the domain to a registry.
func (d *Domain) Register(r *Registry) {
	for _, p := range d.Permissions() {
		r.Add(p.Info())
	}
}

// ObjectType is one resource category within a Domain. It owns a closed,
// finite set of declared actions.
type ObjectType struct {
	domain   *Domain
	name     string
	perms    []Permission
	byAction map[string]Permission
}

// Name returns the object type name.
func (o *ObjectType) Name() string {
	return o.name
}

// Domain returns the name of the domain the object type belongs to.
func (o *ObjectType) Domain() string {
	return o.domain.name
}

// Action declares an action on the object type and returns its Permission
// value. Declaring an action that already exists replaces its description
// and returns the updated value.
func (o *ObjectType) Action(name, description string) Permission {
	p := Permission{
		domain:      o.domain.name,
		objectType:  o.name,
		action:      name,
		description: description,
		full:        o.domain.name + Separator + o.name + Separator + name,
	}

	if _, ok := o.byAction[name]; ok {
		for i := range o.perms {
			if o.perms[i].action == name {
				o.perms[i] = p
			}
		}
	} else {
		o.perms = append(o.perms, p)
	}
	o.byAction[name] = p

	return p
}

// Permissions returns every declared action value in declaration order.
func (o *ObjectType) Permissions() []Permission {
	perms := make([]Permission, len(o.perms))
	copy(perms, o.perms)
	return perms
}

// Parse resolves a canonical permission string against this object type.
func (o *ObjectType) Parse(s string) (Permission, bool) {
	parts := strings.Split(s, Separator)
	if len(parts) != 3 || parts[0] != o.domain.name || parts[1] != o.name {
		return Permission{}, false
	}
	p, ok := o.byAction[parts[2]]
	return p, ok
}
