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

package repo

import (
	"errors"
	"time"

	"github.com/go-crew/crew/internal/hub/errs"
	"github.com/go-crew/crew/internal/hub/model"
	"github.com/go-crew/crew/pkg/database"
	"gorm.io/gorm"
)

type ITeamInvitationRepository interface {
	GetInvitation(teamId, invitationId string) (*model.TeamInvitation, error)
	GetByToken(token string) (*model.TeamInvitation, error)
	ListInvitations(teamId string) ([]model.TeamInvitation, error)
	CreateBatch(invitations []model.TeamInvitation) error
	UpdateStatus(teamId, invitationId, status string) error
	Touch(teamId, invitationId string, createdAt, expiresAt time.Time) error
	Accept(invitation *model.TeamInvitation, member *model.TeamMember) error
	MarkExpired(now time.Time) ([]string, int64, error)
}

type TeamInvitationRepo struct {
	database.IDatabase
}

func NewTeamInvitationRepo(db database.IDatabase) ITeamInvitationRepository {
	return &TeamInvitationRepo{IDatabase: db}
}

// GetInvitation 获取邀请
func (r *TeamInvitationRepo) GetInvitation(teamId, invitationId string) (*model.TeamInvitation, error) {
	var invitation model.TeamInvitation
	err := r.Database().
		Where("team_id = ? AND invitation_id = ?", teamId, invitationId).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrInvitationNotFound
		}
		return nil, errs.Persistence("get invitation", err)
	}
	return &invitation, nil
}

// GetByToken 通过令牌获取邀请（接受回调使用，不带 teamId）
func (r *TeamInvitationRepo) GetByToken(token string) (*model.TeamInvitation, error) {
	var invitation model.TeamInvitation
	err := r.Database().Where("token = ?", token).First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrInvitationNotFound
		}
		return nil, errs.Persistence("get invitation by token", err)
	}
	return &invitation, nil
}

// ListInvitations 列出团队邀请
func (r *TeamInvitationRepo) ListInvitations(teamId string) ([]model.TeamInvitation, error) {
	var invitations []model.TeamInvitation
	err := r.Database().
		Where("team_id = ?", teamId).
		Order("created_at ASC").
		Find(&invitations).Error
	if err != nil {
		return nil, errs.Persistence("list invitations", err)
	}
	return invitations, nil
}

// CreateBatch 批量创建邀请，整批同一事务，任一失败全部回滚
func (r *TeamInvitationRepo) CreateBatch(invitations []model.TeamInvitation) error {
	if len(invitations) == 0 {
		return nil
	}
	err := r.Database().Transaction(func(tx *gorm.DB) error {
		for i := range invitations {
			if err := tx.Create(&invitations[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errs.Persistence("create invitations", err)
	}
	return nil
}

// UpdateStatus 更新邀请状态
func (r *TeamInvitationRepo) UpdateStatus(teamId, invitationId, status string) error {
	res := r.Database().Model(&model.TeamInvitation{}).
		Where("team_id = ? AND invitation_id = ?", teamId, invitationId).
		Update("status", status)
	if res.Error != nil {
		return errs.Persistence("update invitation status", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrInvitationNotFound
	}
	return nil
}

// Touch 重发邀请：创建时间与过期时间都从重发时刻重新起算
func (r *TeamInvitationRepo) Touch(teamId, invitationId string, createdAt, expiresAt time.Time) error {
	res := r.Database().Model(&model.TeamInvitation{}).
		Where("team_id = ? AND invitation_id = ?", teamId, invitationId).
		Updates(map[string]any{"created_at": createdAt, "expires_at": expiresAt})
	if res.Error != nil {
		return errs.Persistence("touch invitation", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrInvitationNotFound
	}
	return nil
}

// Accept 接受邀请：状态翻转与成员插入在同一事务内完成
func (r *TeamInvitationRepo) Accept(invitation *model.TeamInvitation, member *model.TeamMember) error {
	err := r.Database().Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TeamInvitation{}).
			Where("invitation_id = ? AND status = ?", invitation.InvitationId, model.InvitationStatusPending).
			Update("status", model.InvitationStatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(member).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrInvitationNotFound
		}
		return errs.Persistence("accept invitation", err)
	}
	return nil
}

// MarkExpired 将所有已过期的 pending 邀请置为 expired，
// 返回受影响的团队ID和翻转的邀请数
func (r *TeamInvitationRepo) MarkExpired(now time.Time) ([]string, int64, error) {
	var teamIds []string
	err := r.Database().Model(&model.TeamInvitation{}).
		Where("status = ? AND expires_at <= ?", model.InvitationStatusPending, now).
		Distinct().
		Pluck("team_id", &teamIds).Error
	if err != nil {
		return nil, 0, errs.Persistence("scan expired invitations", err)
	}
	if len(teamIds) == 0 {
		return nil, 0, nil
	}
	res := r.Database().Model(&model.TeamInvitation{}).
		Where("status = ? AND expires_at <= ?", model.InvitationStatusPending, now).
		Update("status", model.InvitationStatusExpired)
	if res.Error != nil {
		return nil, 0, errs.Persistence("mark invitations expired", res.Error)
	}
	return teamIds, res.RowsAffected, nil
}
