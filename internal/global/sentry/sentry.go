package sentry

import (
	"fmt"
	"time"

	"mergington-activities/config"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// CodedError 带错误码的错误，错误码即 HTTP 状态码
type CodedError interface {
	error
	GetCode() int32
}

// Enabled 是否配置了 Sentry
func Enabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// Init 初始化 Sentry SDK，未配置 DSN 时直接返回
func Init() error {
	cfg := config.Get()
	if cfg.Sentry.Dsn == "" {
		return nil
	}

	tracesSampleRate := cfg.Sentry.SampleRate
	if tracesSampleRate <= 0 {
		tracesSampleRate = 1.0
	}
	environment := cfg.Sentry.Environment
	if environment == "" {
		environment = string(cfg.Mode)
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.Dsn,
		Environment:      environment,
		Release:          "mergington-activities@1.0.0",
		SampleRate:       1.0,
		EnableTracing:    true,
		TracesSampleRate: tracesSampleRate,
		EnableLogs:       true,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	return nil
}

// Middleware 返回 Sentry Gin 中间件，未启用时为空中间件
func Middleware() gin.HandlerFunc {
	if !Enabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return sentrygin.New(sentrygin.Options{
		Repanic:         true, // 交给后面的 Recovery 处理
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// CaptureException 只上报 5xx，业务错误不上报
func CaptureException(c *gin.Context, err error) {
	if !Enabled() || !shouldReport(err) {
		return
	}
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetRequest(c.Request)
			scope.SetTag("path", c.Request.URL.Path)
			scope.SetTag("method", c.Request.Method)
			if name := c.Param("name"); name != "" {
				scope.SetTag("activity", name)
			}
			hub.CaptureException(err)
		})
	}
}

func shouldReport(err error) bool {
	if e, ok := err.(CodedError); ok {
		return e.GetCode() >= 500 && e.GetCode() < 600
	}
	return true
}

// Flush 程序退出前调用
func Flush(timeout time.Duration) {
	if Enabled() {
		sentry.Flush(timeout)
	}
}
