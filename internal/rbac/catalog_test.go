package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

func TestDefaultCatalogMatchesCoreScopes(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, shared.CoreScopes(), c.Keys())
	assert.Len(t, c.Groups(), 4)
	for _, key := range shared.CoreScopes() {
		assert.True(t, c.IsValidKey(key), key)
	}
	assert.False(t, c.IsValidKey("user_fly"))
	assert.Equal(t, shared.GroupAuditLogs, c.GroupOf(shared.PermAuditLogsView))
}

func TestCatalogIsImmutable(t *testing.T) {
	c := DefaultCatalog()
	perms := c.Permissions()
	perms[0].Key = "mutated"
	assert.Equal(t, shared.PermUserView, c.Permissions()[0].Key)
}

func TestNewCatalogRejectsBadInput(t *testing.T) {
	_, err := NewCatalog([]Group{{ID: "G"}}, []Permission{{Key: "a", Group: "G"}, {Key: "a", Group: "G"}})
	assert.Error(t, err)

	_, err = NewCatalog([]Group{{ID: "G"}}, []Permission{{Key: "a", Group: "H"}})
	assert.Error(t, err)
}

func TestValidateReportsUnknownKey(t *testing.T) {
	c := DefaultCatalog()
	require.NoError(t, c.Validate([]string{shared.PermRoleAdd, shared.PermUserView}))

	err := c.Validate([]string{shared.PermRoleAdd, "nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValidation)
}
