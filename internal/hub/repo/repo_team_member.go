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

	"github.com/go-crew/crew/internal/hub/errs"
	"github.com/go-crew/crew/internal/hub/model"
	"github.com/go-crew/crew/pkg/database"
	"gorm.io/gorm"
)

type ITeamMemberRepository interface {
	GetMember(teamId, memberId string) (*model.TeamMember, error)
	GetByUserId(teamId, userId string) (*model.TeamMember, error)
	ListMembers(teamId string) ([]model.TeamMember, error)
	AddMember(member *model.TeamMember) error
	UpdateRole(teamId, memberId, role string) error
	UpdateStatus(teamId, memberId, status string) error
	RemoveMember(teamId, memberId string) error
}

type TeamMemberRepo struct {
	database.IDatabase
}

func NewTeamMemberRepo(db database.IDatabase) ITeamMemberRepository {
	return &TeamMemberRepo{IDatabase: db}
}

// GetMember 获取团队成员
func (r *TeamMemberRepo) GetMember(teamId, memberId string) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.Database().
		Where("team_id = ? AND member_id = ?", teamId, memberId).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrMemberNotFound
		}
		return nil, errs.Persistence("get member", err)
	}
	return &member, nil
}

// GetByUserId 按用户ID获取团队成员
func (r *TeamMemberRepo) GetByUserId(teamId, userId string) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.Database().
		Where("team_id = ? AND user_id = ?", teamId, userId).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrMemberNotFound
		}
		return nil, errs.Persistence("get member by user", err)
	}
	return &member, nil
}

// ListMembers 列出团队成员
func (r *TeamMemberRepo) ListMembers(teamId string) ([]model.TeamMember, error) {
	var members []model.TeamMember
	err := r.Database().
		Where("team_id = ?", teamId).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, errs.Persistence("list members", err)
	}
	return members, nil
}

// AddMember 添加团队成员
func (r *TeamMemberRepo) AddMember(member *model.TeamMember) error {
	if err := r.Database().Create(member).Error; err != nil {
		return errs.Persistence("add member", err)
	}
	return nil
}

// UpdateRole 更新团队成员角色
func (r *TeamMemberRepo) UpdateRole(teamId, memberId, role string) error {
	res := r.Database().Model(&model.TeamMember{}).
		Where("team_id = ? AND member_id = ?", teamId, memberId).
		Update("role", role)
	if res.Error != nil {
		return errs.Persistence("update member role", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrMemberNotFound
	}
	return nil
}

// UpdateStatus 更新团队成员状态
func (r *TeamMemberRepo) UpdateStatus(teamId, memberId, status string) error {
	res := r.Database().Model(&model.TeamMember{}).
		Where("team_id = ? AND member_id = ?", teamId, memberId).
		Update("status", status)
	if res.Error != nil {
		return errs.Persistence("update member status", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrMemberNotFound
	}
	return nil
}

// RemoveMember 移除团队成员
func (r *TeamMemberRepo) RemoveMember(teamId, memberId string) error {
	res := r.Database().
		Where("team_id = ? AND member_id = ?", teamId, memberId).
		Delete(&model.TeamMember{})
	if res.Error != nil {
		return errs.Persistence("remove member", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrMemberNotFound
	}
	return nil
}
