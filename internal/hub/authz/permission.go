// Copyright 2025 Crew Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package authz

// Permission 权限点
type Permission string

const (
	PermManageTeam         Permission = "manage-team"
	PermManageBilling      Permission = "manage-billing"
	PermInviteMembers      Permission = "invite-members"
	PermRemoveMembers      Permission = "remove-members"
	PermChangeRoles        Permission = "change-roles"
	PermManageIntegrations Permission = "manage-integrations"
	PermViewAuditLog       Permission = "view-audit-log"
	PermTransferOwnership  Permission = "transfer-ownership"
	PermEditContexts       Permission = "edit-contexts"
	PermViewContexts       Permission = "view-contexts"
	PermDeleteContexts     Permission = "delete-contexts"
	PermShareContexts      Permission = "share-contexts"
	PermManageContextUsers Permission = "manage-context-users"
)

// Permissions returns every permission point in the catalog.
func Permissions() []Permission {
	return []Permission{
		PermManageTeam,
		PermManageBilling,
		PermInviteMembers,
		PermRemoveMembers,
		PermChangeRoles,
		PermManageIntegrations,
		PermViewAuditLog,
		PermTransferOwnership,
		PermEditContexts,
		PermViewContexts,
		PermDeleteContexts,
		PermShareContexts,
		PermManageContextUsers,
	}
}

// rolePermissions 内置角色权限表
// 每个角色对应唯一一份固定权限集，进程启动即确定，运行期只读。
var rolePermissions = map[Role]map[Permission]bool{
	RoleOwner: {
		PermManageTeam:         true,
		PermManageBilling:      true,
		PermInviteMembers:      true,
		PermRemoveMembers:      true,
		PermChangeRoles:        true,
		PermManageIntegrations: true,
		PermViewAuditLog:       true,
		PermTransferOwnership:  true,
		PermEditContexts:       true,
		PermViewContexts:       true,
		PermDeleteContexts:     true,
		PermShareContexts:      true,
		PermManageContextUsers: true,
	},
	RoleAdmin: {
		PermManageTeam:         true,
		PermManageBilling:      false,
		PermInviteMembers:      true,
		PermRemoveMembers:      true,
		PermChangeRoles:        true,
		PermManageIntegrations: true,
		PermViewAuditLog:       true,
		PermTransferOwnership:  false,
		PermEditContexts:       true,
		PermViewContexts:       true,
		PermDeleteContexts:     true,
		PermShareContexts:      true,
		PermManageContextUsers: true,
	},
	RoleEditor: {
		PermManageTeam:         false,
		PermManageBilling:      false,
		PermInviteMembers:      false,
		PermRemoveMembers:      false,
		PermChangeRoles:        false,
		PermManageIntegrations: false,
		PermViewAuditLog:       false,
		PermTransferOwnership:  false,
		PermEditContexts:       true,
		PermViewContexts:       true,
		PermDeleteContexts:     true,
		PermShareContexts:      true,
		PermManageContextUsers: false,
	},
	RoleViewer: {
		PermManageTeam:         false,
		PermManageBilling:      false,
		PermInviteMembers:      false,
		PermRemoveMembers:      false,
		PermChangeRoles:        false,
		PermManageIntegrations: false,
		PermViewAuditLog:       false,
		PermTransferOwnership:  false,
		PermEditContexts:       false,
		PermViewContexts:       true,
		PermDeleteContexts:     false,
		PermShareContexts:      false,
		PermManageContextUsers: false,
	},
}

// PermissionsOf 返回角色的固定权限集
// The returned map is shared; callers must treat it as read-only.
func PermissionsOf(r Role) map[Permission]bool {
	return rolePermissions[r]
}
