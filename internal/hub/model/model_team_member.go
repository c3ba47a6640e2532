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

package model

import "time"

// TeamMember 团队成员表
type TeamMember struct {
	BaseModel
	MemberId     string    `gorm:"column:member_id;not null;uniqueIndex" json:"memberId"`            // 成员唯一标识
	TeamId       string    `gorm:"column:team_id;not null;index:idx_team_user,unique" json:"teamId"` // 团队ID
	UserId       string    `gorm:"column:user_id;not null;index:idx_team_user,unique" json:"userId"` // 用户ID
	Email        string    `gorm:"column:email;not null" json:"email"`                               // 邮箱(冗余)
	Name         string    `gorm:"column:name" json:"name"`                                          // 显示名称
	Role         string    `gorm:"column:role;not null" json:"role"`                                 // 角色
	Status       string    `gorm:"column:status;not null" json:"status"`                             // 状态: active/inactive
	JoinedAt     time.Time `gorm:"column:joined_at" json:"joinedAt"`                                 // 加入时间
	LastActiveAt time.Time `gorm:"column:last_active_at" json:"lastActiveAt"`                        // 最近活跃时间
}

func (TeamMember) TableName() string {
	return "t_team_member"
}

// TeamMemberStatus 成员状态
const (
	MemberStatusActive   = "active"   // 正常
	MemberStatusInactive = "inactive" // 停用
)

// ChangeRoleReq request for changing a member role
type ChangeRoleReq struct {
	NewRole string `json:"newRole"`
}
