//go:build wireinject
// +build wireinject

package main

import (
	"time"

	"github.com/go-crew/crew/internal/hub/conf"
	"github.com/go-crew/crew/internal/hub/repo"
	"github.com/go-crew/crew/internal/hub/router"
	"github.com/go-crew/crew/internal/hub/service"
	"github.com/go-crew/crew/pkg/ctx"
	"github.com/go-crew/crew/pkg/database"
	"github.com/go-crew/crew/pkg/http"
	"github.com/google/wire"
)

func initRouter(configPath string, appCtx *ctx.Context) (*router.Router, error) {
	panic(wire.Build(
		// 配置层
		confProviderSet,
		// 仓储层
		provideDatabase,
		repo.ProviderSet,
		// 服务层
		serviceProviderSet,
		// 路由层
		router.ProviderSet,
	))
}

// confProviderSet 配置层 ProviderSet
var confProviderSet = wire.NewSet(
	provideConf,
	provideHttpConfig,
)

func provideConf(configPath string) conf.AppConfig {
	return conf.NewConf(configPath)
}

func provideHttpConfig(appConf conf.AppConfig) *http.Http {
	return &appConf.Http
}

func provideDatabase(appCtx *ctx.Context) database.IDatabase {
	return database.NewGormDB(appCtx.DB)
}

// serviceProviderSet 服务层 ProviderSet
// NewMembershipService 的函数式选项由配置决定，wire 不支持可变参，故在此展开
var serviceProviderSet = wire.NewSet(
	provideMembershipService,
)

func provideMembershipService(appConf conf.AppConfig, appCtx *ctx.Context,
	teamRepo repo.ITeamRepository, memberRepo repo.ITeamMemberRepository,
	inviteRepo repo.ITeamInvitationRepository) *service.MembershipService {
	opts := []service.Option{
		service.WithCache(appCtx.GetRedis()),
	}
	if appConf.Invite.TTLHours > 0 {
		opts = append(opts, service.WithInviteTTL(time.Duration(appConf.Invite.TTLHours)*time.Hour))
	}
	if appConf.Invite.NotifyWebhook != "" {
		opts = append(opts, service.WithNotifier(service.NewWebhookNotifier(appConf.Invite.NotifyWebhook)))
	}
	return service.NewMembershipService(teamRepo, memberRepo, inviteRepo, opts...)
}
