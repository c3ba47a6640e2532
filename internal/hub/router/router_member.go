package router

import (
	"github.com/go-crew/crew/internal/hub/model"
	"github.com/go-crew/crew/pkg/http"
	"github.com/go-crew/crew/pkg/http/middleware"
	"github.com/go-crew/crew/pkg/log"
	"github.com/gofiber/fiber/v2"
)

/**
 * @file: router_member.go
 * @description: 成员生命周期路由
 */

func (rt *Router) memberRouter(r fiber.Router, auth fiber.Handler) {
	memberGroup := r.Group("/team/:teamId/member")
	{
		// 变更角色
		memberGroup.Put("/:memberId/role", auth, rt.changeRole)

		// 移除成员
		memberGroup.Delete("/:memberId", auth, rt.removeMember)

		// 停用/恢复成员
		memberGroup.Post("/:memberId/deactivate", auth, rt.deactivateMember)
		memberGroup.Post("/:memberId/reactivate", auth, rt.reactivateMember)
	}
}

// changeRole 变更成员角色
func (rt *Router) changeRole(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	if teamId == "" {
		return http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Path())
	}
	memberId := c.Params("memberId")

	var req model.ChangeRoleReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("change role failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	actor, err := rt.actor(c, teamId)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return repErr(c, err)
	}

	member, err := rt.Svc.ChangeRole(actor, teamId, memberId, &req)
	if err != nil {
		log.Errorf("change role failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(middleware.DETAIL, member)
	return nil
}

// removeMember 移除成员
func (rt *Router) removeMember(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	if teamId == "" {
		return http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Path())
	}
	memberId := c.Params("memberId")

	actor, err := rt.actor(c, teamId)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return repErr(c, err)
	}

	if err := rt.Svc.RemoveMember(actor, teamId, memberId); err != nil {
		log.Errorf("remove member failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(middleware.OPERATION, "removeMember")
	return nil
}

// deactivateMember 停用成员
func (rt *Router) deactivateMember(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	if teamId == "" {
		return http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Path())
	}
	memberId := c.Params("memberId")

	actor, err := rt.actor(c, teamId)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return repErr(c, err)
	}

	member, err := rt.Svc.DeactivateMember(actor, teamId, memberId)
	if err != nil {
		log.Errorf("deactivate member failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(middleware.DETAIL, member)
	return nil
}

// reactivateMember 恢复成员
func (rt *Router) reactivateMember(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	if teamId == "" {
		return http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Path())
	}
	memberId := c.Params("memberId")

	actor, err := rt.actor(c, teamId)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return repErr(c, err)
	}

	member, err := rt.Svc.ReactivateMember(actor, teamId, memberId)
	if err != nil {
		log.Errorf("reactivate member failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(middleware.DETAIL, member)
	return nil
}
