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

package service

import (
	"time"

	"github.com/go-crew/crew/internal/hub/model"
)

// ComputeStats 基于成员与邀请列表重算席位统计。
// 派生值从不落库；每次变更后整体重算，不做增量维护。
// availableSeats = maxSeats - totalMembers - pendingInvites，可为负
// （外部计费降级席位上限时出现超卖，保留符号交给展示层处理）。
func ComputeStats(members []model.TeamMember, invitations []model.TeamInvitation, maxSeats int, now time.Time) model.TeamStats {
	stats := model.TeamStats{
		TotalMembers: len(members),
		MaxSeats:     maxSeats,
	}
	for i := range members {
		if members[i].Status == model.MemberStatusActive {
			stats.ActiveMembers++
		}
	}
	for i := range invitations {
		if invitations[i].Pending(now) {
			stats.PendingInvites++
		}
	}
	stats.AvailableSeats = maxSeats - stats.TotalMembers - stats.PendingInvites
	return stats
}
