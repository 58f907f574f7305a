package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"mergington-activities/config"

	sentryslog "github.com/getsentry/sentry-go/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	instance *slog.Logger
	once     sync.Once
)

// fanout 把同一条日志分发给多个 handler（控制台/文件 + Sentry）
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}

// NewHandler 按配置构造 slog.Handler
// release 且配置了文件路径时输出 JSON 到轮转文件，否则输出文本到 w
func NewHandler(cfg *config.Config, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: cfg.Mode == config.ModeRelease,
		Level:     ParseLevel(cfg.Log.Level),
	}

	var base slog.Handler
	if cfg.Mode == config.ModeRelease && cfg.Log.FilePath != "" {
		base = slog.NewJSONHandler(&lumberjack.Logger{
			Filename:   cfg.Log.FilePath,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		}, opts)
	} else {
		base = slog.NewTextHandler(w, opts)
	}

	if cfg.Sentry.Dsn == "" {
		return base
	}
	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
		AddSource:  cfg.Mode == config.ModeRelease,
	}.NewSentryHandler(context.Background())
	return fanout{base, sentryHandler}
}

// Get 获取全局 Logger 实例
func Get() *slog.Logger {
	once.Do(func() {
		cfg := config.Get()
		instance = slog.New(NewHandler(cfg, os.Stdout)).With(
			"app_name", "mergington-activities",
			"env", string(cfg.Mode),
		)
	})
	return instance
}

// New 创建带 module 字段的 Logger
func New(module string) *slog.Logger {
	return Get().With("module", module)
}

// WithContext 附加请求方 IP，便于在 Sentry 中定位
func WithContext(base *slog.Logger, c interface {
	ClientIP() string
	GetHeader(string) string
}) *slog.Logger {
	l := base.With("client_ip", c.ClientIP())
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		l = l.With("x_forwarded_for", forwardedFor)
	}
	return l
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
