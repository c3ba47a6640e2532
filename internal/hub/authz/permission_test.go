package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wantMatrix is the design permission table, spelled out per role.
var wantMatrix = map[Role]map[Permission]bool{
	RoleOwner: {
		PermManageTeam: true, PermManageBilling: true, PermInviteMembers: true,
		PermRemoveMembers: true, PermChangeRoles: true, PermManageIntegrations: true,
		PermViewAuditLog: true, PermTransferOwnership: true, PermEditContexts: true,
		PermViewContexts: true, PermDeleteContexts: true, PermShareContexts: true,
		PermManageContextUsers: true,
	},
	RoleAdmin: {
		PermManageTeam: true, PermManageBilling: false, PermInviteMembers: true,
		PermRemoveMembers: true, PermChangeRoles: true, PermManageIntegrations: true,
		PermViewAuditLog: true, PermTransferOwnership: false, PermEditContexts: true,
		PermViewContexts: true, PermDeleteContexts: true, PermShareContexts: true,
		PermManageContextUsers: true,
	},
	RoleEditor: {
		PermManageTeam: false, PermManageBilling: false, PermInviteMembers: false,
		PermRemoveMembers: false, PermChangeRoles: false, PermManageIntegrations: false,
		PermViewAuditLog: false, PermTransferOwnership: false, PermEditContexts: true,
		PermViewContexts: true, PermDeleteContexts: true, PermShareContexts: true,
		PermManageContextUsers: false,
	},
	RoleViewer: {
		PermManageTeam: false, PermManageBilling: false, PermInviteMembers: false,
		PermRemoveMembers: false, PermChangeRoles: false, PermManageIntegrations: false,
		PermViewAuditLog: false, PermTransferOwnership: false, PermEditContexts: false,
		PermViewContexts: true, PermDeleteContexts: false, PermShareContexts: false,
		PermManageContextUsers: false,
	},
}

func TestPermissionsOfMatchesDesignTable(t *testing.T) {
	for _, role := range Roles() {
		got := PermissionsOf(role)
		require.NotNil(t, got, "role %s has no permission set", role)
		for _, perm := range Permissions() {
			assert.Equal(t, wantMatrix[role][perm], got[perm], "role=%s perm=%s", role, perm)
		}
	}
}

func TestEveryRoleHasCompleteSet(t *testing.T) {
	for _, role := range Roles() {
		set := PermissionsOf(role)
		assert.Len(t, set, len(Permissions()), "role %s permission set incomplete", role)
	}
}

func TestOwnerGrantsEverything(t *testing.T) {
	for _, perm := range Permissions() {
		assert.True(t, HasPermission(RoleOwner, perm).Allowed, "owner should hold %s", perm)
	}
}

func TestHasPermissionDenialReason(t *testing.T) {
	d := HasPermission(RoleViewer, PermInviteMembers)
	require.False(t, d.Allowed)
	assert.Equal(t, "role viewer lacks invite-members", d.Reason)
}
