package router

import (
	"github.com/go-crew/crew/internal/hub/model"
	"github.com/go-crew/crew/pkg/http"
	"github.com/go-crew/crew/pkg/http/middleware"
	"github.com/go-crew/crew/pkg/log"
	"github.com/gofiber/fiber/v2"
)

/**
 * @file: router_invitation.go
 * @description: 邀请生命周期路由
 */

func (rt *Router) invitationRouter(r fiber.Router, auth fiber.Handler) {
	invitationGroup := r.Group("/team/:teamId/invitation")
	{
		// 批量邀请
		invitationGroup.Post("/invite", auth, rt.inviteMembers)

		// 重发邀请
		invitationGroup.Post("/:invitationId/resend", auth, rt.resendInvitation)

		// 取消邀请
		invitationGroup.Post("/:invitationId/cancel", auth, rt.cancelInvitation)
	}

	// 接受邀请由身份提供方回调，凭令牌而非登录态
	r.Post("/invitation/accept", rt.acceptInvitation)
}

// inviteMembers 批量邀请成员
func (rt *Router) inviteMembers(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	if teamId == "" {
		return http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Path())
	}

	var req model.InviteMembersReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("invite members failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	actor, err := rt.actor(c, teamId)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return repErr(c, err)
	}

	invitations, err := rt.Svc.Invite(actor, teamId, &req)
	if err != nil {
		log.Errorf("invite members failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(middleware.DETAIL, invitations)
	return nil
}

// resendInvitation 重发邀请，有效期重新起算
func (rt *Router) resendInvitation(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	if teamId == "" {
		return http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Path())
	}
	invitationId := c.Params("invitationId")

	actor, err := rt.actor(c, teamId)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return repErr(c, err)
	}

	invitation, err := rt.Svc.ResendInvitation(actor, teamId, invitationId)
	if err != nil {
		log.Errorf("resend invitation failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(middleware.DETAIL, invitation)
	return nil
}

// cancelInvitation 取消邀请
func (rt *Router) cancelInvitation(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	if teamId == "" {
		return http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Path())
	}
	invitationId := c.Params("invitationId")

	actor, err := rt.actor(c, teamId)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return repErr(c, err)
	}

	if err := rt.Svc.CancelInvitation(actor, teamId, invitationId); err != nil {
		log.Errorf("cancel invitation failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(middleware.OPERATION, "cancelInvitation")
	return nil
}

// acceptInvitation 令牌换成员
func (rt *Router) acceptInvitation(c *fiber.Ctx) error {
	var req model.AcceptInvitationReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("accept invitation failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}
	if req.Token == "" || req.UserId == "" {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	member, err := rt.Svc.AcceptInvitation(&req)
	if err != nil {
		log.Errorf("accept invitation failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(middleware.DETAIL, member)
	return nil
}
