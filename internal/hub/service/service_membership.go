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
	"context"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-crew/crew/internal/hub/authz"
	"github.com/go-crew/crew/internal/hub/consts"
	"github.com/go-crew/crew/internal/hub/errs"
	"github.com/go-crew/crew/internal/hub/model"
	"github.com/go-crew/crew/internal/hub/repo"
	"github.com/go-crew/crew/pkg/cache"
	"github.com/go-crew/crew/pkg/id"
	"github.com/go-crew/crew/pkg/log"
	"github.com/go-crew/crew/pkg/metrics"
)

// DefaultInviteTTL 邀请有效期
const DefaultInviteTTL = 7 * 24 * time.Hour

// Actor 发起操作的成员身份
type Actor struct {
	UserId string
	Role   authz.Role
}

// MembershipService 团队成员生命周期服务。
// 每个团队一把互斥锁：同一团队的变更串行执行，校验先于任何写入，
// 失败的调用不留下任何半成品状态。
type MembershipService struct {
	teamRepo   repo.ITeamRepository
	memberRepo repo.ITeamMemberRepository
	inviteRepo repo.ITeamInvitationRepository

	notifier  InviteNotifier
	cache     cache.ICache
	now       func() time.Time
	inviteTTL time.Duration

	locks sync.Map // teamId -> *sync.Mutex

	mu       sync.Mutex
	watchers map[string]map[chan model.TeamSnapshot]struct{}
}

type Option func(*MembershipService)

// WithNotifier 配置邀请投递网关
func WithNotifier(n InviteNotifier) Option {
	return func(s *MembershipService) { s.notifier = n }
}

// WithCache 配置 redis 广播通道
func WithCache(c cache.ICache) Option {
	return func(s *MembershipService) { s.cache = c }
}

// WithClock 注入时钟，测试用
func WithClock(now func() time.Time) Option {
	return func(s *MembershipService) { s.now = now }
}

// WithInviteTTL 覆盖默认邀请有效期
func WithInviteTTL(ttl time.Duration) Option {
	return func(s *MembershipService) { s.inviteTTL = ttl }
}

func NewMembershipService(teamRepo repo.ITeamRepository, memberRepo repo.ITeamMemberRepository,
	inviteRepo repo.ITeamInvitationRepository, opts ...Option) *MembershipService {
	s := &MembershipService{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		inviteRepo: inviteRepo,
		notifier:   NopNotifier{},
		now:        time.Now,
		inviteTTL:  DefaultInviteTTL,
		watchers:   make(map[string]map[chan model.TeamSnapshot]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MembershipService) lock(teamId string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(teamId, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// decisionErr 将鉴权拒绝映射到对外错误类型
func decisionErr(d authz.Decision) error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case authz.ReasonSelfManage:
		return errs.ErrSelfActionDisallowed
	case authz.ReasonNoSeats:
		return errs.ErrSeatLimitExceeded
	case authz.ReasonPromoteAboveSelf, authz.ReasonOwnerTransfer:
		return errs.InvalidRoleTransition(d.Reason)
	default:
		return errs.PermissionDenied(d.Reason)
	}
}

// ActorFor 解析操作者在团队内的身份。停用成员不得发起任何操作。
func (s *MembershipService) ActorFor(teamId, userId string) (Actor, error) {
	member, err := s.memberRepo.GetByUserId(teamId, userId)
	if err != nil {
		return Actor{}, err
	}
	if member.Status != model.MemberStatusActive {
		return Actor{}, errs.PermissionDenied("member is deactivated")
	}
	return Actor{UserId: userId, Role: authz.Role(member.Role)}, nil
}

// Invite 批量邀请。整批先过完所有校验再写库：任一邮箱非法、角色不合法
// 或席位不足，则整批拒绝，一条都不创建。
func (s *MembershipService) Invite(actor Actor, teamId string, req *model.InviteMembersReq) ([]model.TeamInvitation, error) {
	mu := s.lock(teamId)
	mu.Lock()
	defer mu.Unlock()

	invitations, err := s.invite(actor, teamId, req)
	metrics.RecordMutation("invite", err)
	return invitations, err
}

func (s *MembershipService) invite(actor Actor, teamId string, req *model.InviteMembersReq) ([]model.TeamInvitation, error) {
	team, err := s.teamRepo.GetTeam(teamId)
	if err != nil {
		return nil, err
	}

	role, err := authz.ParseRole(req.Role)
	if err != nil {
		return nil, errs.InvalidRoleTransition(err.Error())
	}
	if role == authz.RoleOwner {
		return nil, errs.InvalidRoleTransition(authz.ReasonOwnerTransfer)
	}
	if !authz.AtLeast(actor.Role, role) {
		return nil, errs.InvalidRoleTransition(authz.ReasonPromoteAboveSelf)
	}

	if len(req.Emails) == 0 {
		return nil, errs.InvalidEmail("")
	}
	for _, email := range req.Emails {
		if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
			return nil, errs.InvalidEmail(email)
		}
	}

	stats, err := s.stats(teamId, team.MaxSeats)
	if err != nil {
		return nil, err
	}
	if d := authz.CanInviteMembers(actor.Role, stats.AvailableSeats); !d.Allowed {
		return nil, decisionErr(d)
	}
	// 整批计数：批次大于剩余席位时整批拒绝
	if len(req.Emails) > stats.AvailableSeats {
		return nil, errs.ErrSeatLimitExceeded
	}

	now := s.now()
	invitations := make([]model.TeamInvitation, 0, len(req.Emails))
	for _, email := range req.Emails {
		invitations = append(invitations, model.TeamInvitation{
			InvitationId: id.GetUlid(),
			TeamId:       teamId,
			Email:        strings.TrimSpace(email),
			Role:         string(role),
			InvitedBy:    actor.UserId,
			Message:      req.Message,
			Token:        id.GetUUIDWithoutHyphens(),
			Status:       model.InvitationStatusPending,
			ExpiresAt:    now.Add(s.inviteTTL),
		})
	}
	if err := s.inviteRepo.CreateBatch(invitations); err != nil {
		return nil, err
	}

	for i := range invitations {
		metrics.InvitationsSentTotal.Inc()
		go s.notifier.NotifyInvited(invitations[i], team.Name)
	}
	s.broadcast(teamId)
	return invitations, nil
}

// ResendInvitation 重发待处理邀请，有效期从重发时刻重新起算
func (s *MembershipService) ResendInvitation(actor Actor, teamId, invitationId string) (*model.TeamInvitation, error) {
	mu := s.lock(teamId)
	mu.Lock()
	defer mu.Unlock()

	invitation, err := s.resendInvitation(actor, teamId, invitationId)
	metrics.RecordMutation("resend_invitation", err)
	return invitation, err
}

func (s *MembershipService) resendInvitation(actor Actor, teamId, invitationId string) (*model.TeamInvitation, error) {
	if d := authz.HasPermission(actor.Role, authz.PermInviteMembers); !d.Allowed {
		return nil, decisionErr(d)
	}
	team, err := s.teamRepo.GetTeam(teamId)
	if err != nil {
		return nil, err
	}
	invitation, err := s.inviteRepo.GetInvitation(teamId, invitationId)
	if err != nil {
		return nil, err
	}

	// 过期即视为非 pending，哪怕后台扫描还没翻转状态
	now := s.now()
	if !invitation.Pending(now) {
		return nil, errs.ErrInvitationNotFound
	}

	expiresAt := now.Add(s.inviteTTL)
	if err := s.inviteRepo.Touch(teamId, invitationId, now, expiresAt); err != nil {
		return nil, err
	}
	invitation.CreatedAt = now
	invitation.ExpiresAt = expiresAt

	metrics.InvitationsSentTotal.Inc()
	go s.notifier.NotifyInvited(*invitation, team.Name)
	s.broadcast(teamId)
	return invitation, nil
}

// CancelInvitation 取消待处理邀请，立即释放席位
func (s *MembershipService) CancelInvitation(actor Actor, teamId, invitationId string) error {
	mu := s.lock(teamId)
	mu.Lock()
	defer mu.Unlock()

	err := s.cancelInvitation(actor, teamId, invitationId)
	metrics.RecordMutation("cancel_invitation", err)
	return err
}

func (s *MembershipService) cancelInvitation(actor Actor, teamId, invitationId string) error {
	if d := authz.HasPermission(actor.Role, authz.PermInviteMembers); !d.Allowed {
		return decisionErr(d)
	}
	invitation, err := s.inviteRepo.GetInvitation(teamId, invitationId)
	if err != nil {
		return err
	}
	// 终态邀请（已取消、已接受、已过期）不允许再次取消
	if !invitation.Pending(s.now()) {
		return errs.ErrInvitationNotFound
	}
	if err := s.inviteRepo.UpdateStatus(teamId, invitationId, model.InvitationStatusCancelled); err != nil {
		return err
	}
	s.broadcast(teamId)
	return nil
}

// AcceptInvitation 身份提供方确认后回调：令牌换成员。
// 状态翻转与成员落库在同一事务内，不会出现已接受却没有成员的中间态。
func (s *MembershipService) AcceptInvitation(req *model.AcceptInvitationReq) (*model.TeamMember, error) {
	invitation, err := s.inviteRepo.GetByToken(req.Token)
	if err != nil {
		metrics.RecordMutation("accept_invitation", err)
		return nil, err
	}

	mu := s.lock(invitation.TeamId)
	mu.Lock()
	defer mu.Unlock()

	member, err := s.acceptInvitation(invitation, req)
	metrics.RecordMutation("accept_invitation", err)
	return member, err
}

func (s *MembershipService) acceptInvitation(invitation *model.TeamInvitation, req *model.AcceptInvitationReq) (*model.TeamMember, error) {
	now := s.now()
	if invitation.Expired(now) {
		// 后台扫描还没跑到也一样拒绝，顺手把状态写实
		if invitation.Status == model.InvitationStatusPending {
			if err := s.inviteRepo.UpdateStatus(invitation.TeamId, invitation.InvitationId, model.InvitationStatusExpired); err != nil {
				log.Errorw("flip expired invitation failed", "invitationId", invitation.InvitationId, "err", err)
			}
			s.broadcast(invitation.TeamId)
		}
		return nil, errs.ErrInvitationExpired
	}
	if !invitation.Pending(now) {
		return nil, errs.ErrInvitationNotFound
	}

	member := &model.TeamMember{
		MemberId:     id.GetUlid(),
		TeamId:       invitation.TeamId,
		UserId:       req.UserId,
		Email:        invitation.Email,
		Name:         req.Name,
		Role:         invitation.Role,
		Status:       model.MemberStatusActive,
		JoinedAt:     now,
		LastActiveAt: now,
	}
	if err := s.inviteRepo.Accept(invitation, member); err != nil {
		return nil, err
	}
	s.broadcast(invitation.TeamId)
	return member, nil
}

// ChangeRole 变更成员角色
func (s *MembershipService) ChangeRole(actor Actor, teamId, memberId string, req *model.ChangeRoleReq) (*model.TeamMember, error) {
	mu := s.lock(teamId)
	mu.Lock()
	defer mu.Unlock()

	member, err := s.changeRole(actor, teamId, memberId, req)
	metrics.RecordMutation("change_role", err)
	return member, err
}

func (s *MembershipService) changeRole(actor Actor, teamId, memberId string, req *model.ChangeRoleReq) (*model.TeamMember, error) {
	member, err := s.memberRepo.GetMember(teamId, memberId)
	if err != nil {
		return nil, err
	}
	newRole, err := authz.ParseRole(req.NewRole)
	if err != nil {
		return nil, errs.InvalidRoleTransition(err.Error())
	}

	isSelf := member.UserId == actor.UserId
	if d := authz.CanChangeRole(actor.Role, authz.Role(member.Role), newRole, isSelf); !d.Allowed {
		return nil, decisionErr(d)
	}
	if member.Role == string(newRole) {
		return member, nil
	}
	if err := s.memberRepo.UpdateRole(teamId, memberId, string(newRole)); err != nil {
		return nil, err
	}
	member.Role = string(newRole)
	s.broadcast(teamId)
	return member, nil
}

// RemoveMember 移除成员，席位立即释放
func (s *MembershipService) RemoveMember(actor Actor, teamId, memberId string) error {
	mu := s.lock(teamId)
	mu.Lock()
	defer mu.Unlock()

	err := s.removeMember(actor, teamId, memberId)
	metrics.RecordMutation("remove_member", err)
	return err
}

func (s *MembershipService) removeMember(actor Actor, teamId, memberId string) error {
	member, err := s.memberRepo.GetMember(teamId, memberId)
	if err != nil {
		return err
	}
	isSelf := member.UserId == actor.UserId
	if d := authz.CanRemoveMember(actor.Role, authz.Role(member.Role), isSelf); !d.Allowed {
		return decisionErr(d)
	}
	if err := s.memberRepo.RemoveMember(teamId, memberId); err != nil {
		return err
	}
	s.broadcast(teamId)
	return nil
}

// DeactivateMember 停用成员：保留成员记录和席位占用，仅禁止访问
func (s *MembershipService) DeactivateMember(actor Actor, teamId, memberId string) (*model.TeamMember, error) {
	mu := s.lock(teamId)
	mu.Lock()
	defer mu.Unlock()

	member, err := s.setMemberStatus(actor, teamId, memberId, model.MemberStatusInactive)
	metrics.RecordMutation("deactivate_member", err)
	return member, err
}

// ReactivateMember 恢复已停用成员。成员始终占着席位，恢复不做席位校验。
func (s *MembershipService) ReactivateMember(actor Actor, teamId, memberId string) (*model.TeamMember, error) {
	mu := s.lock(teamId)
	mu.Lock()
	defer mu.Unlock()

	member, err := s.setMemberStatus(actor, teamId, memberId, model.MemberStatusActive)
	metrics.RecordMutation("reactivate_member", err)
	return member, err
}

func (s *MembershipService) setMemberStatus(actor Actor, teamId, memberId, status string) (*model.TeamMember, error) {
	member, err := s.memberRepo.GetMember(teamId, memberId)
	if err != nil {
		return nil, err
	}
	isSelf := member.UserId == actor.UserId
	if d := authz.CanManageUser(actor.Role, authz.Role(member.Role), isSelf); !d.Allowed {
		return nil, decisionErr(d)
	}
	if member.Status == status {
		return member, nil
	}
	if err := s.memberRepo.UpdateStatus(teamId, memberId, status); err != nil {
		return nil, err
	}
	member.Status = status
	s.broadcast(teamId)
	return member, nil
}

// UpdateMaxSeats 计费方案变更回调。降档可使 availableSeats 变负，
// 已有成员和待处理邀请一律保留，不做强制驱逐。
func (s *MembershipService) UpdateMaxSeats(actor Actor, teamId string, maxSeats int) error {
	mu := s.lock(teamId)
	mu.Lock()
	defer mu.Unlock()

	err := s.updateMaxSeats(actor, teamId, maxSeats)
	metrics.RecordMutation("update_max_seats", err)
	return err
}

func (s *MembershipService) updateMaxSeats(actor Actor, teamId string, maxSeats int) error {
	if d := authz.CanManageBilling(actor.Role); !d.Allowed {
		return decisionErr(d)
	}
	if err := s.teamRepo.UpdateMaxSeats(teamId, maxSeats); err != nil {
		return err
	}
	s.broadcast(teamId)
	return nil
}

// Members 列出团队成员。读路径同样走团队锁，
// 绝不读到一半提交的变更。
func (s *MembershipService) Members(teamId string) ([]model.TeamMember, error) {
	mu := s.lock(teamId)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.teamRepo.GetTeam(teamId); err != nil {
		return nil, err
	}
	return s.memberRepo.ListMembers(teamId)
}

// Invitations 列出团队邀请
func (s *MembershipService) Invitations(teamId string) ([]model.TeamInvitation, error) {
	mu := s.lock(teamId)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.teamRepo.GetTeam(teamId); err != nil {
		return nil, err
	}
	return s.inviteRepo.ListInvitations(teamId)
}

// Stats 返回当前席位统计
func (s *MembershipService) Stats(teamId string) (*model.TeamStats, error) {
	mu := s.lock(teamId)
	mu.Lock()
	defer mu.Unlock()

	team, err := s.teamRepo.GetTeam(teamId)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats(teamId, team.MaxSeats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *MembershipService) stats(teamId string, maxSeats int) (model.TeamStats, error) {
	members, err := s.memberRepo.ListMembers(teamId)
	if err != nil {
		return model.TeamStats{}, err
	}
	invitations, err := s.inviteRepo.ListInvitations(teamId)
	if err != nil {
		return model.TeamStats{}, err
	}
	stats := ComputeStats(members, invitations, maxSeats, s.now())
	metrics.AvailableSeats.WithLabelValues(teamId).Set(float64(stats.AvailableSeats))
	return stats, nil
}

// Snapshot 组装团队完整快照
func (s *MembershipService) Snapshot(teamId string) (*model.TeamSnapshot, error) {
	mu := s.lock(teamId)
	mu.Lock()
	defer mu.Unlock()

	return s.snapshot(teamId)
}

// snapshot 调用方必须已持有团队锁
func (s *MembershipService) snapshot(teamId string) (*model.TeamSnapshot, error) {
	team, err := s.teamRepo.GetTeam(teamId)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.ListMembers(teamId)
	if err != nil {
		return nil, err
	}
	invitations, err := s.inviteRepo.ListInvitations(teamId)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(members, invitations, team.MaxSeats, s.now())
	metrics.AvailableSeats.WithLabelValues(teamId).Set(float64(stats.AvailableSeats))
	return &model.TeamSnapshot{
		TeamId:      teamId,
		Members:     members,
		Invitations: invitations,
		Stats:       stats,
	}, nil
}

// Subscribe 订阅团队快照推送，返回取消函数。通道缓冲为1，
// 慢消费者只会丢中间帧，最终总能看到最新快照。
func (s *MembershipService) Subscribe(teamId string) (<-chan model.TeamSnapshot, func()) {
	ch := make(chan model.TeamSnapshot, 1)

	s.mu.Lock()
	if s.watchers[teamId] == nil {
		s.watchers[teamId] = make(map[chan model.TeamSnapshot]struct{})
	}
	s.watchers[teamId][ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if set, ok := s.watchers[teamId]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(s.watchers, teamId)
			}
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// broadcast 变更提交后推送最新快照：进程内通道 + redis 频道。
// 由持锁的变更路径调用，因此直接走 snapshot。
func (s *MembershipService) broadcast(teamId string) {
	snapshot, err := s.snapshot(teamId)
	if err != nil {
		log.Errorw("build team snapshot failed", "teamId", teamId, "err", err)
		return
	}

	s.mu.Lock()
	for ch := range s.watchers[teamId] {
		select {
		case ch <- *snapshot:
		default:
			// 腾掉旧帧，塞最新的
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- *snapshot:
			default:
			}
		}
	}
	s.mu.Unlock()

	if s.cache != nil {
		payload, err := sonic.Marshal(snapshot)
		if err != nil {
			log.Errorw("marshal team snapshot failed", "teamId", teamId, "err", err)
			return
		}
		if err := s.cache.Publish(context.Background(), consts.TeamSnapshotChannel+teamId, payload).Err(); err != nil {
			log.Errorw("publish team snapshot failed", "teamId", teamId, "err", err)
		}
	}
}

// SweepExpired 定时任务入口：把过期的 pending 邀请批量置为 expired
func (s *MembershipService) SweepExpired() {
	teamIds, count, err := s.inviteRepo.MarkExpired(s.now())
	if err != nil {
		log.Errorw("sweep expired invitations failed", "err", err)
		return
	}
	if count == 0 {
		return
	}
	metrics.InvitationsExpiredTotal.Add(float64(count))
	log.Infow("swept expired invitations", "count", count, "teams", len(teamIds))
	for _, teamId := range teamIds {
		mu := s.lock(teamId)
		mu.Lock()
		s.broadcast(teamId)
		mu.Unlock()
	}
}
