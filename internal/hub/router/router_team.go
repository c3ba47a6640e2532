package router

import (
	"github.com/go-crew/crew/internal/hub/consts"
	"github.com/go-crew/crew/pkg/http"
	"github.com/go-crew/crew/pkg/http/middleware"
	"github.com/go-crew/crew/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/go-crew/crew/internal/hub/model"
)

/**
 * @file: router_team.go
 * @description: 团队查询路由
 */

func (rt *Router) teamRouter(r fiber.Router, auth fiber.Handler) {
	teamGroup := r.Group("/team")
	{
		// 席位统计
		teamGroup.Get("/:teamId/stats", auth, rt.getTeamStats)

		// 成员列表
		teamGroup.Get("/:teamId/members", auth, rt.listMembers)

		// 邀请列表
		teamGroup.Get("/:teamId/invitations", auth, rt.listInvitations)

		// 团队快照
		teamGroup.Get("/:teamId/snapshot", auth, rt.getTeamSnapshot)

		// 计费方案变更席位上限
		teamGroup.Put("/:teamId/seats", auth, rt.updateMaxSeats)

		// 快照推送
		teamGroup.Get("/:teamId/watch", websocket.New(rt.watchTeam))
	}
}

// getTeamStats 席位统计
func (rt *Router) getTeamStats(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	if teamId == "" {
		return http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Path())
	}

	stats, err := rt.Svc.Stats(teamId)
	if err != nil {
		log.Errorf("get team stats failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(middleware.DETAIL, stats)
	return nil
}

// listMembers 成员列表
func (rt *Router) listMembers(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	if teamId == "" {
		return http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Path())
	}

	members, err := rt.Svc.Members(teamId)
	if err != nil {
		log.Errorf("list members failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(middleware.DETAIL, members)
	return nil
}

// listInvitations 邀请列表
func (rt *Router) listInvitations(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	if teamId == "" {
		return http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Path())
	}

	invitations, err := rt.Svc.Invitations(teamId)
	if err != nil {
		log.Errorf("list invitations failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(middleware.DETAIL, invitations)
	return nil
}

// getTeamSnapshot 完整快照
func (rt *Router) getTeamSnapshot(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	if teamId == "" {
		return http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Path())
	}

	snapshot, err := rt.Svc.Snapshot(teamId)
	if err != nil {
		log.Errorf("get team snapshot failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(middleware.DETAIL, snapshot)
	return nil
}

// updateMaxSeats 计费方案变更后由外部协作方调用
func (rt *Router) updateMaxSeats(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	if teamId == "" {
		return http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Path())
	}

	var req model.UpdateMaxSeatsReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update max seats failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	actor, err := rt.actor(c, teamId)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return repErr(c, err)
	}

	if err := rt.Svc.UpdateMaxSeats(actor, teamId, req.MaxSeats); err != nil {
		log.Errorf("update max seats failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(middleware.OPERATION, "updateMaxSeats")
	return nil
}

// watchTeam 通过 websocket 持续推送团队快照
func (rt *Router) watchTeam(conn *websocket.Conn) {
	teamId := conn.Params("teamId")
	if teamId == "" {
		_ = conn.Close()
		return
	}

	snapshots, cancel := rt.Svc.Subscribe(teamId)
	defer cancel()
	defer func() { _ = conn.Close() }()

	// 先推一帧当前状态
	if snapshot, err := rt.Svc.Snapshot(teamId); err == nil {
		if err := conn.WriteJSON(snapshot); err != nil {
			return
		}
	}

	for snapshot := range snapshots {
		if err := conn.WriteJSON(snapshot); err != nil {
			log.Debugf("watch %s%s closed: %v", consts.TeamSnapshotChannel, teamId, err)
			return
		}
	}
}
