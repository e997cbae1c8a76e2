package permkit

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistryAddGet tests registration and lookup by canonical name.
func TestRegistryAddGet(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Len())

	r.Add(invoiceGenerate.Info())

	info, ok := r.Get("Orders::Invoice::Generate")
	require.True(t, ok)
	assert.Equal(t, "Orders", info.Domain)
	assert.Equal(t, "Invoice", info.ObjectType)
	assert.Equal(t, "Generate", info.Action)
	assert.Equal(t, "Generate invoices", info.Description)

	_, ok = r.Get("Orders::Invoice::Shred")
	assert.False(t, ok)
}

// TestRegistryReplace tests that re-registering a full name replaces the
// record instead of duplicating it.
func TestRegistryReplace(t *testing.T) {
	r := NewRegistry()
	r.Add(PermissionInfo{FullName: "Orders::Order::Read", Description: "old"})
	r.Add(PermissionInfo{FullName: "Orders::Order::Read", Description: "new"})

	assert.Equal(t, 1, r.Len())
	info, ok := r.Get("Orders::Order::Read")
	require.True(t, ok)
	assert.Equal(t, "new", info.Description)
}

// TestRegistryAll tests enumeration order and completeness after domain
// registration.
func TestRegistryAll(t *testing.T) {
	r := NewRegistry()
	testOrders.Register(r)

	all := r.All()
	assert.Len(t, all, len(testOrders.Permissions()))
	assert.True(t, sort.SliceIsSorted(all, func(i, j int) bool {
		return all[i].FullName < all[j].FullName
	}))

	for _, p := range testOrders.Permissions() {
		_, ok := r.Get(p.String())
		assert.True(t, ok, "missing %s", p)
	}
}
