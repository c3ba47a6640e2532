package router

import (
	"errors"

	"github.com/go-crew/crew/internal/hub/errs"
	"github.com/go-crew/crew/internal/hub/service"
	"github.com/go-crew/crew/internal/hub/tool"
	"github.com/go-crew/crew/pkg/ctx"
	httpx "github.com/go-crew/crew/pkg/http"
	"github.com/go-crew/crew/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

/**
 * @file: router.go
 * @description: setup router
 *  		     internal api router, use by web
 */

type Router struct {
	Http *httpx.Http
	Ctx  *ctx.Context
	Svc  *service.MembershipService
}

func NewRouter(httpConf *httpx.Http, ctx *ctx.Context, svc *service.MembershipService) *Router {
	return &Router{
		Http: httpConf,
		Ctx:  ctx,
		Svc:  svc,
	}
}

func (rt *Router) Router() *fiber.App {

	app := httpx.NewApp(*rt.Http)

	// cors interceptor
	app.Use(middleware.CorsMiddleware())

	// panic recover
	app.Use(middleware.ExceptionMiddleware)

	if rt.Http.AccessLog {
		app.Use(httpx.AccessLogFormat(rt.Ctx.Log.Desugar()))
	}

	// unified response interceptor
	app.Use(middleware.UnifiedResponseMiddleware())

	if rt.Http.ExposeMetrics {
		metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get("/metrics", func(c *fiber.Ctx) error {
			metricsHandler(c.Context())
			return nil
		})
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// hub router, internal api router
	hub := app.Group(rt.Http.ContextPath)
	{
		auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, rt.Http.Auth.RedisKeyPrefix, rt.Ctx.GetRedis())

		rt.teamRouter(hub, auth)
		rt.memberRouter(hub, auth)
		rt.invitationRouter(hub, auth)
	}

	return app
}

// actor 从令牌解析操作者，并定位其在团队内的角色
func (rt *Router) actor(c *fiber.Ctx, teamId string) (service.Actor, error) {
	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		return service.Actor{}, &authError{err: err}
	}
	return rt.Svc.ActorFor(teamId, claims.UserId)
}

type authError struct{ err error }

func (e *authError) Error() string { return e.err.Error() }
func (e *authError) Unwrap() error { return e.err }

// repErr 把领域错误映射为统一错误响应
func repErr(c *fiber.Ctx, err error) error {
	var (
		denied     *errs.PermissionDeniedError
		transition *errs.InvalidRoleTransitionError
		email      *errs.InvalidEmailError
		auth       *authError
	)
	switch {
	case errors.As(err, &auth):
		return httpx.WithRepErrMsg(c, httpx.AuthenticationFailed.Code, httpx.AuthenticationFailed.Msg, c.Path())
	case errors.Is(err, errs.ErrSelfActionDisallowed):
		return httpx.WithRepErrMsg(c, httpx.SelfActionDisallowed.Code, err.Error(), c.Path())
	case errors.Is(err, errs.ErrSeatLimitExceeded):
		return httpx.WithRepErrMsg(c, httpx.SeatLimitExceeded.Code, err.Error(), c.Path())
	case errors.Is(err, errs.ErrInvitationNotFound):
		return httpx.WithRepErrMsg(c, httpx.InvitationNotFound.Code, err.Error(), c.Path())
	case errors.Is(err, errs.ErrInvitationExpired):
		return httpx.WithRepErrMsg(c, httpx.InvitationExpired.Code, err.Error(), c.Path())
	case errors.Is(err, errs.ErrMemberNotFound):
		return httpx.WithRepErrMsg(c, httpx.MemberNotFound.Code, err.Error(), c.Path())
	case errors.Is(err, errs.ErrTeamNotFound):
		return httpx.WithRepErrMsg(c, httpx.TeamNotFound.Code, err.Error(), c.Path())
	case errors.As(err, &denied):
		return httpx.WithRepErrMsg(c, httpx.PermissionDenied.Code, denied.Reason, c.Path())
	case errors.As(err, &transition):
		return httpx.WithRepErrMsg(c, httpx.InvalidRoleTransition.Code, transition.Reason, c.Path())
	case errors.As(err, &email):
		return httpx.WithRepErrMsg(c, httpx.InvalidEmail.Code, err.Error(), c.Path())
	case errs.IsPersistence(err):
		return httpx.WithRepErrMsg(c, httpx.PersistenceFailure.Code, httpx.PersistenceFailure.Msg, c.Path())
	default:
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, httpx.Failed.Msg, c.Path())
	}
}
