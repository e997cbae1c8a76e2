// Package permkit provides role-based access control with compiled
// permission patterns and atomically swappable role sets.
//
// Permissions are identified by a canonical string with three segments,
// "Domain::ObjectType::Action". Roles declare what they grant through a
// small pattern grammar, and each role's pattern list is compiled once
// into a normalized set representation so the authorization hot path is a
// handful of hash lookups with no allocation.
//
// # Core Concepts
//
// Permission: one declared action on one object type, e.g.
// "Orders::Invoice::Generate". Applications declare domains, object types,
// and actions once at startup and keep the returned Permission values as
// typed constants.
//
// Pattern: a string inside a role declaration denoting what the role
// grants:
//
//   - "*" grants everything
//   - "Orders::*" grants every permission in the Orders domain
//   - "Orders::Invoice::*" grants every action on Orders::Invoice
//   - "Orders::Invoice::{Read,Generate}" grants the listed actions
//   - "Orders::Invoice::Read" grants exactly one permission
//
// Strings that fit none of these shapes are accepted, stored, and never
// match anything.
//
// Role: a named, immutable bundle of patterns. Compilation happens at
// construction; changing a role means constructing a new one.
//
// Service: holds the live role map behind one atomic pointer. Permission
// checks load a snapshot and never block; updates build a complete
// replacement map and commit it with a single swap, so concurrent readers
// see either the old role set or the new one, never a mixture.
//
// # Basic Usage
//
//	// 1. Declare permissions (at application startup)
//	var (
//		Orders          = permkit.NewDomain("Orders")
//		Invoice         = Orders.Object("Invoice")
//		InvoiceRead     = Invoice.Action("Read", "View invoices")
//		InvoiceGenerate = Invoice.Action("Generate", "Generate invoices")
//		InvoiceSend     = Invoice.Action("Send", "Send invoices to customers")
//	)
//
//	// 2. Build the service
//	service := permkit.NewBuilder().
//		RegisterDomain(Orders).
//		AddRole(permkit.NewRole("OrderManager",
//			"Orders::Order::*",
//			"Orders::Invoice::{Read,Generate}",
//		)).
//		AddRole(permkit.NewRole("Admin", "*")).
//		Build()
//
//	// 3. Check permissions
//	if err := service.HasPermission(user, InvoiceGenerate); err != nil {
//		// permkit.IsPermissionDenied(err) == true
//	}
//
// # Runtime Updates
//
// The role set of a live service is replaced wholesale, never edited in
// place:
//
//	up := service.Updater() // or service.CopyUpdater() for incremental edits
//	up.AddRole(permkit.NewRole("Auditor", "Orders::Invoice::Read"))
//	up.Apply() // one atomic swap; in-flight checks are undisturbed
//
// # Subjects
//
// Anything exposing its ordered role names and a display name can be
// authorized:
//
//	type Subject interface {
//		Roles() []string
//		Name() string
//	}
//
// A subject with no roles is checked against the service's fallback roles
// ("Default" unless configured otherwise). Role names that don't exist in
// the current snapshot contribute nothing and are not an error.
//
// # Persistence
//
// RoleRecord {Name, Permissions} is the only persistable entity. The store
// subpackage keeps records in PostgreSQL through dbkit/bun; the rolefile
// subpackage loads them from YAML files and can hot-reload a live service
// when the file changes. Compiled permissions are a derived cache and are
// never serialized.
package permkit
