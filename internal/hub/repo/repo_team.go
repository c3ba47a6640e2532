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

type ITeamRepository interface {
	GetTeam(teamId string) (*model.Team, error)
	CreateTeam(team *model.Team) error
	UpdateMaxSeats(teamId string, maxSeats int) error
}

type TeamRepo struct {
	database.IDatabase
}

func NewTeamRepo(db database.IDatabase) ITeamRepository {
	return &TeamRepo{IDatabase: db}
}

// GetTeam 获取团队
func (r *TeamRepo) GetTeam(teamId string) (*model.Team, error) {
	var team model.Team
	err := r.Database().Where("team_id = ?", teamId).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTeamNotFound
		}
		return nil, errs.Persistence("get team", err)
	}
	return &team, nil
}

// CreateTeam 创建团队
func (r *TeamRepo) CreateTeam(team *model.Team) error {
	if err := r.Database().Create(team).Error; err != nil {
		return errs.Persistence("create team", err)
	}
	return nil
}

// UpdateMaxSeats 更新席位上限（计费方案变更）
func (r *TeamRepo) UpdateMaxSeats(teamId string, maxSeats int) error {
	res := r.Database().Model(&model.Team{}).
		Where("team_id = ?", teamId).
		Update("max_seats", maxSeats)
	if res.Error != nil {
		return errs.Persistence("update max seats", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrTeamNotFound
	}
	return nil
}
