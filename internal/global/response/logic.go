package response

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrorContextKey 是用于在 gin.Context 中存储错误对象的键
const ErrorContextKey = "error"

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Error 业务错误，Code 即 HTTP 状态码
type Error struct {
	Code    int32  `json:"code"`
	Message string `json:"detail"`
	Origin  string `json:"origin,omitempty"`
	cause   error
	stack   pkgerrors.StackTrace
}

func newError(code int32, msg string) *Error {
	return &Error{
		Code:    code,
		Message: msg,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("code:%d, msg:%s", e.Code, e.Message)
}

// GetCode 实现 sentry.CodedError
func (e *Error) GetCode() int32 {
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) StackTrace() pkgerrors.StackTrace {
	if e.stack != nil {
		return e.stack
	}
	if st, ok := e.cause.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// Is 按错误码比较，WithOrigin/WithTips 派生出的错误与原错误相等
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// WithOrigin 附带原始错误，仅 debug 模式会返回给前端
func (e *Error) WithOrigin(err error) *Error {
	if err == nil {
		return e
	}
	if _, ok := err.(stackTracer); !ok {
		err = pkgerrors.WithStack(err)
	}

	derived := &Error{
		Code:    e.Code,
		Message: e.Message,
		Origin:  fmt.Sprintf("%+v", err),
		cause:   err,
	}
	if st, ok := err.(stackTracer); ok {
		derived.stack = st.StackTrace()
	}
	return derived
}

// WithTips 在消息后追加提示，release 模式同样可见
func (e *Error) WithTips(tips string) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message + ": " + tips,
		cause:   e.cause,
		stack:   e.stack,
	}
}
