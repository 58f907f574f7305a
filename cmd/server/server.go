package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mergington-activities/config"
	"mergington-activities/internal/global/database"
	"mergington-activities/internal/global/lock"
	"mergington-activities/internal/global/logger"
	"mergington-activities/internal/global/middleware"
	"mergington-activities/internal/global/notify"
	"mergington-activities/internal/global/response"
	"mergington-activities/internal/global/sentry"
	"mergington-activities/internal/module"
	"mergington-activities/internal/store"
	"mergington-activities/tools"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var log *slog.Logger

// App 进程级依赖，Init 构造一次
type App struct {
	DB       *gorm.DB
	Store    *store.Store
	Redis    *redis.Client
	Webhook  *notify.Webhook
	Modules  []module.Module
	Notifier notify.Notifier
	Locker   lock.Locker
}

func Init() *App {
	config.Init()
	cfg := config.Get()
	log = logger.New("Server")

	if err := sentry.Init(); err != nil {
		log.Error("Sentry 初始化失败", "error", err)
	}

	db, err := database.Open(cfg)
	tools.PanicOnErr(err)
	app := &App{DB: db, Store: store.New(db)}

	ctx := context.Background()
	tools.PanicOnErr(app.Store.Init(ctx))
	seeded, err := app.Store.SeedIfEmpty(ctx)
	tools.PanicOnErr(err)
	if seeded {
		log.Info("已写入默认活动")
	}

	app.Locker = lock.NewLocal()
	if cfg.Redis.Host != "" {
		app.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		tools.PanicOnErr(app.Redis.Ping(ctx).Err())
		app.Locker = lock.NewRedis(app.Redis, time.Duration(cfg.Redis.LockTTL)*time.Millisecond, logger.New("Lock"))
		log.Info("使用 Redis 分布式锁", "addr", app.Redis.Options().Addr)
	}

	app.Notifier = notify.Nop{}
	if cfg.Webhook.URL != "" {
		app.Webhook = notify.NewWebhook(
			cfg.Webhook.URL,
			time.Duration(cfg.Webhook.TimeoutMs)*time.Millisecond,
			cfg.Webhook.RetryCount,
			logger.New("Webhook"),
		)
		app.Notifier = app.Webhook
	}

	app.Modules = module.New(module.Deps{
		Store:     app.Store,
		Locker:    app.Locker,
		Notifier:  app.Notifier,
		StaticDir: cfg.Storage.Static,
		Admin:     cfg.JWT.AccessSecret != "",
	})
	for _, m := range app.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
	return app
}

// Engine 组装中间件与路由
func (app *App) Engine() *gin.Engine {
	cfg := config.Get()
	gin.SetMode(string(cfg.Mode))
	r := gin.New()

	switch cfg.Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	default:
		r.Use(gin.Logger())
	}
	r.Use(sentry.Middleware())
	if sentry.Enabled() {
		r.Use(middleware.SentryEnrichIP())
	}
	r.Use(middleware.Metrics())
	r.Use(middleware.Recovery())

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, response.ErrNotFound)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	for _, m := range app.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + cfg.Prefix))
	}
	return r
}

// Run 启动 HTTP 服务，收到 SIGINT/SIGTERM 后优雅退出
func (app *App) Run() {
	cfg := config.Get()
	srv := &http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: app.Engine(),
	}

	go func() {
		log.Info("HTTP 服务启动", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			tools.PanicOnErr(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP 服务关闭失败", "error", err)
	}
	app.Close()
}

// Close 释放外部连接
func (app *App) Close() {
	if app.Webhook != nil {
		app.Webhook.Wait()
	}
	if app.Redis != nil {
		_ = app.Redis.Close()
	}
	if sqlDB, err := app.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	sentry.Flush(2 * time.Second)
	log.Info("服务已退出")
}
