package permkit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPermissionDeniedError tests message formatting and sentinel
// unwrapping.
func TestPermissionDeniedError(t *testing.T) {
	withSubject := &PermissionDeniedError{Permission: "Orders::Invoice::Send", Subject: "alice"}
	assert.Equal(t, `permkit: permission denied: Orders::Invoice::Send (subject "alice")`, withSubject.Error())

	anonymous := &PermissionDeniedError{Permission: "Orders::Invoice::Send"}
	assert.Equal(t, "permkit: permission denied: Orders::Invoice::Send", anonymous.Error())

	assert.True(t, errors.Is(withSubject, ErrPermissionDenied))
	assert.True(t, IsPermissionDenied(withSubject))
}

// TestIsPermissionDeniedThroughWrapping tests matching across fmt.Errorf
// wrapping layers.
func TestIsPermissionDeniedThroughWrapping(t *testing.T) {
	service := newTestService()
	err := service.HasPermission(NewSubject("alice", "OrderManager"), invoiceSend)
	require.Error(t, err)

	wrapped := fmt.Errorf("handling request: %w", err)
	assert.True(t, IsPermissionDenied(wrapped))
	assert.Equal(t, "Orders::Invoice::Send", DeniedPermission(wrapped))

	assert.False(t, IsPermissionDenied(errors.New("something else")))
	assert.Equal(t, "", DeniedPermission(errors.New("something else")))
	assert.Equal(t, "", DeniedPermission(nil))
}
