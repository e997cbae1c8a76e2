package rolefile

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernandezvara/permkit"
)

func writeRoleFile(t *testing.T, path, document string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(document), 0o644))
}

// TestWatcherStart tests the initial load-and-apply.
func TestWatcherStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.yaml")
	writeRoleFile(t, path, sampleDocument)

	service := permkit.NewBuilder().Build()
	w, err := NewWatcher(path, service)
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer func() { require.NoError(t, w.Stop()) }()

	_, ok := service.Role("OrderManager")
	assert.True(t, ok)
	assert.Equal(t, []string{"Guest"}, service.FallbackRoles())
}

// TestWatcherStartMissingFile tests that a missing file fails Start
// instead of silently watching nothing.
func TestWatcherStartMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	service := permkit.NewBuilder().Build()
	w, err := NewWatcher(path, service)
	require.NoError(t, err)

	assert.Error(t, w.Start(context.Background()))
}

// TestWatcherReloadsOnWrite tests the debounced reload after the file
// changes on disk.
func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.yaml")
	writeRoleFile(t, path, "roles:\n  - name: Viewer\n    permissions: [\"Orders::Order::Read\"]\n")

	service := permkit.NewBuilder().Build()
	w, err := NewWatcher(path, service, WithDebounceDelay(20*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer func() { require.NoError(t, w.Stop()) }()

	_, ok := service.Role("Viewer")
	require.True(t, ok)

	writeRoleFile(t, path, "roles:\n  - name: Editor\n    permissions: [\"Orders::Order::*\"]\n")

	require.Eventually(t, func() bool {
		_, ok := service.Role("Editor")
		return ok
	}, 5*time.Second, 10*time.Millisecond, "updated role set never applied")

	// The old set was fully replaced, not merged.
	_, ok = service.Role("Viewer")
	assert.False(t, ok)
}

// TestWatcherBadReloadKeepsRoles tests that a broken file leaves the
// service on its previous role set and reports through the callback.
func TestWatcherBadReloadKeepsRoles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.yaml")
	writeRoleFile(t, path, "roles:\n  - name: Viewer\n    permissions: [\"Orders::Order::Read\"]\n")

	var failures atomic.Int32
	service := permkit.NewBuilder().Build()
	w, err := NewWatcher(path, service,
		WithDebounceDelay(20*time.Millisecond),
		WithErrorCallback(func(error) { failures.Add(1) }),
	)
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer func() { require.NoError(t, w.Stop()) }()

	writeRoleFile(t, path, "roles: [unclosed")

	require.Eventually(t, func() bool {
		return failures.Load() > 0
	}, 5*time.Second, 10*time.Millisecond, "reload failure never reported")

	_, ok := service.Role("Viewer")
	assert.True(t, ok)
}

// TestWatcherForceReload tests reloading on demand without a file event.
func TestWatcherForceReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.yaml")
	writeRoleFile(t, path, "roles:\n  - name: Viewer\n    permissions: [\"Orders::Order::Read\"]\n")

	service := permkit.NewBuilder().Build()
	w, err := NewWatcher(path, service)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer func() { require.NoError(t, w.Stop()) }()

	writeRoleFile(t, path, "roles:\n  - name: Editor\n    permissions: [\"Orders::Order::*\"]\n")
	require.NoError(t, w.ForceReload())

	_, ok := service.Role("Editor")
	assert.True(t, ok)
}

// TestWatcherStopIdempotent tests that Stop and double Stop are safe.
func TestWatcherStopIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.yaml")
	writeRoleFile(t, path, sampleDocument)

	service := permkit.NewBuilder().Build()
	w, err := NewWatcher(path, service)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
