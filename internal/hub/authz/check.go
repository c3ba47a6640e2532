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

import "fmt"

// Denial reasons rendered verbatim to the admin UI.
const (
	ReasonSelfManage       = "cannot manage yourself"
	ReasonHigherRole       = "cannot manage users with higher role"
	ReasonAdminPeer        = "admins cannot manage other admins or owners"
	ReasonInsufficient     = "insufficient permissions to manage users"
	ReasonPromoteAboveSelf = "cannot promote user to a role higher than your own"
	ReasonOwnerTransfer    = "only owners can transfer ownership"
	ReasonNoSeats          = "no available seats"
)

// Decision 鉴权结果
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// HasPermission 检查角色是否拥有指定权限点
func HasPermission(role Role, perm Permission) Decision {
	if rolePermissions[role][perm] {
		return allow()
	}
	return deny(fmt.Sprintf("role %s lacks %s", role, perm))
}

// CanManageUser decides whether an actor may manage (role-change, deactivate,
// reactivate, remove) a target. An empty target role means the target does not
// exist yet, e.g. when inviting a new user.
func CanManageUser(actorRole, targetRole Role, isSelf bool) Decision {
	// self-management is never allowed, regardless of rank
	if isSelf {
		return deny(ReasonSelfManage)
	}
	if targetRole == "" {
		return allow()
	}
	if !AtLeast(actorRole, targetRole) {
		return deny(ReasonHigherRole)
	}
	if actorRole == RoleOwner {
		return allow()
	}
	if actorRole == RoleAdmin {
		if targetRole == RoleEditor || targetRole == RoleViewer {
			return allow()
		}
		return deny(ReasonAdminPeer)
	}
	return deny(ReasonInsufficient)
}

// CanChangeRole decides whether an actor may move a target from its current
// role to a new one.
func CanChangeRole(actorRole, targetCurrentRole, targetNewRole Role, isSelf bool) Decision {
	if d := CanManageUser(actorRole, targetCurrentRole, isSelf); !d.Allowed {
		return d
	}
	if d := HasPermission(actorRole, PermChangeRoles); !d.Allowed {
		return d
	}
	if !AtLeast(actorRole, targetNewRole) {
		return deny(ReasonPromoteAboveSelf)
	}
	if targetNewRole == RoleOwner && actorRole != RoleOwner {
		return deny(ReasonOwnerTransfer)
	}
	return allow()
}

// CanInviteMembers 检查角色能否邀请成员，并校验剩余席位
func CanInviteMembers(role Role, availableSeats int) Decision {
	if d := HasPermission(role, PermInviteMembers); !d.Allowed {
		return d
	}
	if availableSeats <= 0 {
		return deny(ReasonNoSeats)
	}
	return allow()
}

// CanRemoveMember 检查角色能否移除目标成员
func CanRemoveMember(actorRole, targetRole Role, isSelf bool) Decision {
	if d := HasPermission(actorRole, PermRemoveMembers); !d.Allowed {
		return d
	}
	return CanManageUser(actorRole, targetRole, isSelf)
}

// CanViewAuditLog 查看审计日志
func CanViewAuditLog(role Role) Decision {
	return HasPermission(role, PermViewAuditLog)
}

// CanManageIntegrations 管理集成
func CanManageIntegrations(role Role) Decision {
	return HasPermission(role, PermManageIntegrations)
}

// CanManageBilling 管理账单
func CanManageBilling(role Role) Decision {
	return HasPermission(role, PermManageBilling)
}

// CanEditContexts 编辑上下文
func CanEditContexts(role Role) Decision {
	return HasPermission(role, PermEditContexts)
}

// CanViewContexts 查看上下文
func CanViewContexts(role Role) Decision {
	return HasPermission(role, PermViewContexts)
}

// CanDeleteContexts 删除上下文
func CanDeleteContexts(role Role) Decision {
	return HasPermission(role, PermDeleteContexts)
}

// CanShareContexts 分享上下文
func CanShareContexts(role Role) Decision {
	return HasPermission(role, PermShareContexts)
}

// CanManageContextUsers 管理上下文用户
func CanManageContextUsers(role Role) Decision {
	return HasPermission(role, PermManageContextUsers)
}
