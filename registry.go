package permkit

import (
	"sort"
	"sync"
)

// PermissionInfo describes one registered permission for documentation and
// UI purposes. The registry plays no part in authorization decisions.
type PermissionInfo struct {
	Domain      string `json:"domain"`
	ObjectType  string `json:"object_type"`
	Action      string `json:"action"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
}

// Registry holds the declared permissions of an application for read-only
// enumeration. It is filled while a service is being built and should be
// treated as immutable after initialization.
type Registry struct {
	mu    sync.RWMutex
	perms map[string]PermissionInfo
}

// NewRegistry creates an empty permission registry.
func NewRegistry() *Registry {
	return &Registry{
		perms: make(map[string]PermissionInfo),
	}
}

// Add registers permission records, keyed by their canonical full name.
// Registering the same full name again replaces the record.
func (r *Registry) Add(infos ...PermissionInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, info := range infos {
		r.perms[info.FullName] = info
	}
}

// Get returns the record registered under a canonical permission string.
func (r *Registry) Get(fullName string) (PermissionInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.perms[fullName]
	return info, ok
}

// All returns every registered permission sorted by full name.
func (r *Registry) All() []PermissionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]PermissionInfo, 0, len(r.perms))
	for _, info := range r.perms {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].FullName < infos[j].FullName
	})
	return infos
}

// Len returns the number of registered permissions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.perms)
}
