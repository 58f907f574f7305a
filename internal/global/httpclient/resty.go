package httpclient

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// New 创建出站 HTTP 客户端，失败时按指数退避重试 retry 次
func New(timeout time.Duration, retry int) *resty.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return resty.New().
		SetTimeout(timeout).
		SetRetryCount(retry).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("User-Agent", "mergington-activities/1.0").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
}
