package model

import "gorm.io/datatypes"

/**
 * @file: model_team.go
 * @description: 团队表模型
 */

// Team 团队表
type Team struct {
	BaseModel
	TeamId   string         `gorm:"column:team_id;not null;uniqueIndex" json:"teamId"`  // 团队唯一标识
	Name     string         `gorm:"column:name;not null" json:"name"`                   // 团队名称
	OwnerId  string         `gorm:"column:owner_id;not null" json:"ownerId"`            // 所有者用户ID
	MaxSeats int            `gorm:"column:max_seats;not null" json:"maxSeats"`          // 席位上限（由计费方案决定）
	Settings datatypes.JSON `gorm:"column:settings;type:json" json:"settings"`          // 团队设置
}

func (Team) TableName() string {
	return "t_team"
}

// TeamSettings 团队设置结构
type TeamSettings struct {
	DefaultRole       string `json:"default_role"`        // 默认角色
	AllowMemberInvite bool   `json:"allow_member_invite"` // 允许成员邀请
	RequireApproval   bool   `json:"require_approval"`    // 需要审批
}

// UpdateMaxSeatsReq 计费方案变更后由外部协作方调用
type UpdateMaxSeatsReq struct {
	MaxSeats int `json:"maxSeats"`
}
