// Package notify 把报名变动推送给外部系统（例如家校通知服务）
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"mergington-activities/internal/global/httpclient"

	"github.com/go-resty/resty/v2"
)

type EventType string

const (
	EventSignup     EventType = "signup"
	EventUnregister EventType = "unregister"
)

type Event struct {
	Type     EventType `json:"type"`
	Activity string    `json:"activity"`
	Email    string    `json:"email"`
	At       time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// Nop 未配置 webhook 时使用
type Nop struct{}

func (Nop) Notify(context.Context, Event) {}

// Webhook 异步 POST JSON 到指定地址，失败只记录日志，不影响请求结果
type Webhook struct {
	url    string
	client *resty.Client
	log    *slog.Logger
	wg     sync.WaitGroup
}

func NewWebhook(url string, timeout time.Duration, retry int, log *slog.Logger) *Webhook {
	return &Webhook{
		url:    url,
		client: httpclient.New(timeout, retry),
		log:    log,
	}
}

func (w *Webhook) Notify(ctx context.Context, event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	// 请求结束后 ctx 会被取消，投递不能继承它
	ctx = context.WithoutCancel(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if err := w.Send(ctx, event); err != nil {
			w.log.Warn("webhook 投递失败",
				"type", event.Type,
				"activity", event.Activity,
				"email", event.Email,
				"error", err,
			)
		}
	}()
}

// Send 同步投递一次事件
func (w *Webhook) Send(ctx context.Context, event Event) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(w.url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("webhook responded %s", resp.Status())
	}
	return nil
}

// Wait 等待所有进行中的投递结束，关闭服务前调用
func (w *Webhook) Wait() {
	w.wg.Wait()
}
