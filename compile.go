package permkit

import (
	"strings"
)

// Separator splits the segments of canonical permission strings and
// patterns. Domain and object type names never contain it.
const Separator = "::"

// objectKey identifies a (domain, object type) pair in the object-wildcard
// set. A comparable struct key keeps the hot-path lookup free of string
// concatenation.
type objectKey struct {
	domain string
	object string
}

// CompiledPermissions is the normalized, immutable form of a role's pattern
// list.
//
// Patterns fold into four layers: a global flag, a domain-wildcard set, an
// object-wildcard set, and a set of exact canonical strings. A broader
// layer subsumes the narrower ones: the global flag empties everything
// else, a domain wildcard removes that domain's object wildcards and exact
// entries, and an object wildcard removes its exact entries. The same
// pattern list therefore compiles to the same match set in any order.
type CompiledPermissions struct {
	global  bool
	domains map[string]struct{}
	objects map[objectKey]struct{}
	exact   map[string]struct{}
}

// Compile normalizes an ordered list of permission patterns.
//
// Supported shapes:
//
//	"*"                                everything
//	"Orders::*"                        every permission in the Orders domain
//	"Orders::Invoice::*"               every action on Orders::Invoice
//	"Orders::Invoice::{Read,Generate}" the listed actions (whitespace trimmed)
//	"Orders::Invoice::Read"            exactly one permission
//
// Strings fitting none of these shapes are kept verbatim as exact entries.
// They can never equal a canonical permission string, so they are
// permanently inert rather than an error. Compilation cannot fail.
func Compile(patterns []string) *CompiledPermissions {
	c := &CompiledPermissions{
		domains: make(map[string]struct{}),
		objects: make(map[objectKey]struct{}),
		exact:   make(map[string]struct{}),
	}

	for _, pattern := range patterns {
		if pattern == "*" {
			// The global grant subsumes everything accumulated so far and
			// everything that would follow.
			return &CompiledPermissions{global: true}
		}
		c.add(pattern)
	}

	return c
}

func (c *CompiledPermissions) add(pattern string) {
	parts := strings.Split(pattern, Separator)

	switch {
	case len(parts) == 2 && parts[1] == "*":
		c.addDomain(parts[0])
	case len(parts) == 3 && parts[2] == "*":
		c.addObject(parts[0], parts[1])
	case len(parts) == 3 && strings.HasPrefix(parts[2], "{") && strings.HasSuffix(parts[2], "}"):
		c.addActionSet(parts[0], parts[1], parts[2])
	default:
		c.addExact(parts, pattern)
	}
}

// addDomain grants every permission of the domain and drops the object
// wildcards and exact entries it subsumes.
func (c *CompiledPermissions) addDomain(domain string) {
	c.domains[domain] = struct{}{}

	for key := range c.objects {
		if key.domain == domain {
			delete(c.objects, key)
		}
	}

	prefix := domain + Separator
	for perm := range c.exact {
		if strings.HasPrefix(perm, prefix) {
			delete(c.exact, perm)
		}
	}
}

func (c *CompiledPermissions) addObject(domain, object string) {
	if _, ok := c.domains[domain]; ok {
		// Already covered by the domain wildcard.
		return
	}

	c.objects[objectKey{domain: domain, object: object}] = struct{}{}

	prefix := domain + Separator + object + Separator
	for perm := range c.exact {
		if strings.HasPrefix(perm, prefix) {
			delete(c.exact, perm)
		}
	}
}

// addActionSet expands "D::O::{A,B}" into one exact entry per action.
func (c *CompiledPermissions) addActionSet(domain, object, actions string) {
	if _, ok := c.domains[domain]; ok {
		return
	}
	if _, ok := c.objects[objectKey{domain: domain, object: object}]; ok {
		return
	}

	prefix := domain + Separator + object + Separator
	for _, action := range strings.Split(strings.Trim(actions, "{}"), ",") {
		c.exact[prefix+strings.TrimSpace(action)] = struct{}{}
	}
}

// addExact stores an exact pattern unless a wildcard already covers it.
// Malformed patterns land here too and stay inert.
func (c *CompiledPermissions) addExact(parts []string, pattern string) {
	if len(parts) >= 2 {
		if _, ok := c.domains[parts[0]]; ok {
			return
		}
	}
	if len(parts) == 3 {
		if _, ok := c.objects[objectKey{domain: parts[0], object: parts[1]}]; ok {
			return
		}
	}
	c.exact[pattern] = struct{}{}
}

// Matches reports whether the compiled set grants the permission identified
// by its canonical string, domain, and object type. Four constant-time map
// lookups; nothing is allocated and no strings are built.
func (c *CompiledPermissions) Matches(canonical, domain, objectType string) bool {
	if c.global {
		return true
	}
	if _, ok := c.domains[domain]; ok {
		return true
	}
	if _, ok := c.objects[objectKey{domain: domain, object: objectType}]; ok {
		return true
	}
	_, ok := c.exact[canonical]
	return ok
}

// MatchesPermission reports whether the compiled set grants a declared
// Permission value.
func (c *CompiledPermissions) MatchesPermission(p Permission) bool {
	return c.Matches(p.String(), p.Domain(), p.ObjectType())
}

// Global reports whether the set grants every permission.
func (c *CompiledPermissions) Global() bool {
	return c.global
}
