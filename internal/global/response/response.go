package response

import (
	"errors"
	"fmt"
	"net/http"

	"mergington-activities/config"
	"mergington-activities/internal/global/logger"
	"mergington-activities/internal/global/sentry"

	"github.com/gin-gonic/gin"
)

// Message 变更类接口的统一返回体
type Message struct {
	Message string `json:"message"`
}

// ResponseBody 失败时的返回体
type ResponseBody struct {
	Detail string `json:"detail"`
	Origin string `json:"origin,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func SuccessMessage(c *gin.Context, format string, args ...any) {
	c.JSON(http.StatusOK, Message{Message: fmt.Sprintf(format, args...)})
}

// Fail 写出错误响应，非 *Error 按 500 处理；5xx 上报 Sentry
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrServerInternal.WithOrigin(err)
	}
	c.Set(ErrorContextKey, e)

	body := ResponseBody{Detail: e.Message}
	if config.Get().Mode == config.ModeDebug {
		body.Origin = e.Origin
	}
	if e.Code >= http.StatusInternalServerError {
		sentry.CaptureException(c, e)
	}
	c.AbortWithStatusJSON(int(e.Code), body)
}

// Recovery 在 defer 中调用，把 panic 转换为 500
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("%v", r)
		}
		logger.WithContext(logger.New("Recovery"), c).Error("panic recovered",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		Fail(c, ErrServerInternal.WithOrigin(err))
	}
}
