package router

import (
	"github.com/go-crew/crew/pkg/ctx"
	"github.com/go-crew/crew/pkg/http"
	"github.com/google/wire"

	"github.com/go-crew/crew/internal/hub/service"
)

// ProviderSet 提供路由相关的依赖
var ProviderSet = wire.NewSet(ProvideRouter)

// ProvideRouter 提供路由实例
func ProvideRouter(httpConf *http.Http, ctx *ctx.Context, svc *service.MembershipService) *Router {
	return NewRouter(httpConf, ctx, svc)
}
