package service

import (
	"testing"
	"time"

	"github.com/go-crew/crew/internal/hub/model"
	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	members := []model.TeamMember{
		{MemberId: "m1", Status: model.MemberStatusActive},
		{MemberId: "m2", Status: model.MemberStatusActive},
		{MemberId: "m3", Status: model.MemberStatusActive},
	}
	invitations := []model.TeamInvitation{
		{InvitationId: "i1", Status: model.InvitationStatusPending, ExpiresAt: now.Add(24 * time.Hour)},
	}

	stats := ComputeStats(members, invitations, 5, now)
	assert.Equal(t, 3, stats.TotalMembers)
	assert.Equal(t, 3, stats.ActiveMembers)
	assert.Equal(t, 1, stats.PendingInvites)
	assert.Equal(t, 1, stats.AvailableSeats)
	assert.Equal(t, 5, stats.MaxSeats)
}

func TestComputeStatsInactiveMemberHoldsSeat(t *testing.T) {
	now := time.Now()
	members := []model.TeamMember{
		{MemberId: "m1", Status: model.MemberStatusActive},
		{MemberId: "m2", Status: model.MemberStatusInactive},
	}

	stats := ComputeStats(members, nil, 3, now)
	assert.Equal(t, 2, stats.TotalMembers)
	assert.Equal(t, 1, stats.ActiveMembers)
	assert.Equal(t, 1, stats.AvailableSeats)
}

func TestComputeStatsExpiredInviteFreesSeat(t *testing.T) {
	now := time.Now()
	invitations := []model.TeamInvitation{
		// 已越过 expiresAt 的 pending 邀请，即使后台还没翻转状态也不计数
		{InvitationId: "i1", Status: model.InvitationStatusPending, ExpiresAt: now.Add(-time.Minute)},
		{InvitationId: "i2", Status: model.InvitationStatusCancelled, ExpiresAt: now.Add(24 * time.Hour)},
		{InvitationId: "i3", Status: model.InvitationStatusAccepted, ExpiresAt: now.Add(24 * time.Hour)},
	}

	stats := ComputeStats(nil, invitations, 4, now)
	assert.Equal(t, 0, stats.PendingInvites)
	assert.Equal(t, 4, stats.AvailableSeats)
}

func TestComputeStatsNegativeSeats(t *testing.T) {
	now := time.Now()
	members := []model.TeamMember{
		{MemberId: "m1", Status: model.MemberStatusActive},
		{MemberId: "m2", Status: model.MemberStatusActive},
		{MemberId: "m3", Status: model.MemberStatusActive},
	}

	// 计费降档到 2 席后超卖，保留负值
	stats := ComputeStats(members, nil, 2, now)
	assert.Equal(t, -1, stats.AvailableSeats)
}
