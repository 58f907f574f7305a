package middleware

import (
	"bytes"
	"log/slog"
	"strings"
	"time"

	sentrylib "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// maxResponseLogSize 日志中记录的响应体最大大小（4KB）
const maxResponseLogSize = 4 * 1024

// responseBodyWriter 截留响应体前 maxResponseLogSize 字节
type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseBodyWriter) Write(b []byte) (int, error) {
	if remaining := maxResponseLogSize - w.body.Len(); remaining > 0 {
		if len(b) <= remaining {
			w.body.Write(b)
		} else {
			w.body.Write(b[:remaining])
		}
	}
	return w.ResponseWriter.Write(b)
}

// Logger 请求日志；xlsx 等二进制响应不记录响应体
func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		blw := &responseBodyWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = blw

		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}
		if strings.HasPrefix(c.Writer.Header().Get("Content-Type"), "application/json") {
			attrs = append(attrs, "response_body", blw.body.String())
		}
		if c.Writer.Status() >= 500 {
			log.Error("HTTP Request", attrs...)
			return
		}
		log.Info("HTTP Request", attrs...)
	}
}

// SentryEnrichIP 放在 sentry 中间件之后，为后续上报附加请求方 IP
func SentryEnrichIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.ConfigureScope(func(scope *sentrylib.Scope) {
				clientIP := c.ClientIP()
				scope.SetUser(sentrylib.User{IPAddress: clientIP})
				scope.SetTag("client_ip", clientIP)
				if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
					scope.SetTag("x_forwarded_for", forwardedFor)
				}
			})
		}
		c.Next()
	}
}
