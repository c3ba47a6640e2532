package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/robfig/cron"

	"github.com/go-crew/crew/internal/hub/conf"
	"github.com/go-crew/crew/internal/hub/repo"
	"github.com/go-crew/crew/internal/hub/router"
	"github.com/go-crew/crew/internal/hub/service"
	"github.com/go-crew/crew/pkg/cache"
	"github.com/go-crew/crew/pkg/ctx"
	"github.com/go-crew/crew/pkg/database"
	"github.com/go-crew/crew/pkg/http"
	"github.com/go-crew/crew/pkg/log"
	"github.com/go-crew/crew/pkg/runner"
)

/**
 * @file: main.go
 * @description: hub program
 */

var (
	configFile string
)

func init() {
	flag.StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path, e.g. -conf ./conf.d")
}

func main() {
	flag.Parse()
	printRunner()

	appConf := conf.NewConf(configFile)

	logger, err := log.NewLog(&appConf.Log)
	if err != nil {
		panic(err)
	}

	redis, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		panic(err)
	}

	db, err := database.NewDatabase(appConf.Database)
	if err != nil {
		panic(err)
	}

	Ctx := ctx.NewContext(context.Background(), db, redis, logger.Sugar())

	gormDB := database.NewGormDB(db)
	teamRepo := repo.NewTeamRepo(gormDB)
	memberRepo := repo.NewTeamMemberRepo(gormDB)
	inviteRepo := repo.NewTeamInvitationRepo(gormDB)

	opts := []service.Option{
		service.WithCache(redis),
	}
	if appConf.Invite.TTLHours > 0 {
		opts = append(opts, service.WithInviteTTL(time.Duration(appConf.Invite.TTLHours)*time.Hour))
	}
	if appConf.Invite.NotifyWebhook != "" {
		opts = append(opts, service.WithNotifier(service.NewWebhookNotifier(appConf.Invite.NotifyWebhook)))
	}
	svc := service.NewMembershipService(teamRepo, memberRepo, inviteRepo, opts...)

	// 过期邀请扫描
	sweepSpec := appConf.Invite.SweepSpec
	if sweepSpec == "" {
		sweepSpec = "0 */10 * * * *"
	}
	c := cron.New()
	if err := c.AddFunc(sweepSpec, svc.SweepExpired); err != nil {
		panic(err)
	}
	c.Start()
	defer c.Stop()

	route := router.NewRouter(&appConf.Http, Ctx, svc)

	// http srv
	app := route.Router()
	httpClean := http.Serve(appConf.Http, app)

	httpClean()
}

func printRunner() {
	fmt.Println("runner.pwd:", runner.Pwd)
	fmt.Println("runner.hostname:", runner.Hostname)
}
