package model

import "time"

// TeamInvitation 团队邀请表
type TeamInvitation struct {
	BaseModel
	InvitationId string    `gorm:"column:invitation_id;not null;uniqueIndex" json:"invitationId"` // 邀请唯一标识
	TeamId       string    `gorm:"column:team_id;not null;index" json:"teamId"`                   // 团队ID
	Email        string    `gorm:"column:email;not null" json:"email"`                            // 被邀请人邮箱
	Role         string    `gorm:"column:role;not null" json:"role"`                              // 受邀角色
	InvitedBy    string    `gorm:"column:invited_by;not null" json:"invitedBy"`                   // 邀请人用户ID
	Message      string    `gorm:"column:message" json:"message"`                                 // 邀请附言
	Token        string    `gorm:"column:token;not null;uniqueIndex" json:"-"`                    // 邀请令牌（带外发送）
	Status       string    `gorm:"column:status;not null;index" json:"status"`                    // 状态
	ExpiresAt    time.Time `gorm:"column:expires_at;not null" json:"expiresAt"`                   // 过期时间
}

func (TeamInvitation) TableName() string {
	return "t_team_invitation"
}

// InvitationStatus 邀请状态
// pending 之外的状态都是终态，不允许再次流转。
const (
	InvitationStatusPending   = "pending"   // 待接受
	InvitationStatusAccepted  = "accepted"  // 已接受
	InvitationStatusExpired   = "expired"   // 已过期
	InvitationStatusCancelled = "cancelled" // 已取消
)

// Pending reports whether the invitation is still open at the given instant.
// Expiry is a derivable predicate: an invitation past expiresAt is treated as
// expired even before the background sweep rewrites its status field.
func (i *TeamInvitation) Pending(now time.Time) bool {
	return i.Status == InvitationStatusPending && now.Before(i.ExpiresAt)
}

// Expired reports whether the invitation should be treated as expired.
func (i *TeamInvitation) Expired(now time.Time) bool {
	return i.Status == InvitationStatusExpired ||
		(i.Status == InvitationStatusPending && !now.Before(i.ExpiresAt))
}

// InviteMembersReq 批量邀请请求
type InviteMembersReq struct {
	Emails  []string `json:"emails"`
	Role    string   `json:"role"`
	Message string   `json:"message,omitempty"`
}

// AcceptInvitationReq 接受邀请（由身份提供方回调）
type AcceptInvitationReq struct {
	Token  string `json:"token"`
	UserId string `json:"userId"`
	Name   string `json:"name"`
}
