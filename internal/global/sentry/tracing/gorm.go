// Package tracing 为 GORM 提供 Sentry 性能追踪
package tracing

import (
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
)

const (
	gormSpanKey    = "sentry:span"
	gormStartKey   = "sentry:start"
	callbackPrefix = "sentry_tracing"
)

// GormPlugin 为每条 SQL 创建子 span，挂在请求的 transaction 下
type GormPlugin struct {
	// slowThreshold 为 0 时记录全部查询
	slowThreshold time.Duration
}

func NewGormPlugin(slowThreshold time.Duration) *GormPlugin {
	return &GormPlugin{slowThreshold: slowThreshold}
}

func (p *GormPlugin) Name() string {
	return "SentryTracingPlugin"
}

func (p *GormPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	errs := []error{
		cb.Create().Before("gorm:create").Register(callbackPrefix+":before_create", p.before("db.sql.create")),
		cb.Query().Before("gorm:query").Register(callbackPrefix+":before_query", p.before("db.sql.query")),
		cb.Update().Before("gorm:update").Register(callbackPrefix+":before_update", p.before("db.sql.update")),
		cb.Delete().Before("gorm:delete").Register(callbackPrefix+":before_delete", p.before("db.sql.delete")),
		cb.Row().Before("gorm:row").Register(callbackPrefix+":before_row", p.before("db.sql.row")),
		cb.Raw().Before("gorm:raw").Register(callbackPrefix+":before_raw", p.before("db.sql.raw")),

		cb.Create().After("gorm:create").Register(callbackPrefix+":after_create", p.after),
		cb.Query().After("gorm:query").Register(callbackPrefix+":after_query", p.after),
		cb.Update().After("gorm:update").Register(callbackPrefix+":after_update", p.after),
		cb.Delete().After("gorm:delete").Register(callbackPrefix+":after_delete", p.after),
		cb.Row().After("gorm:row").Register(callbackPrefix+":after_row", p.after),
		cb.Raw().After("gorm:raw").Register(callbackPrefix+":after_raw", p.after),
	}
	return errors.Join(errs...)
}

func (p *GormPlugin) before(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Statement == nil || db.Statement.Context == nil {
			return
		}
		db.InstanceSet(gormStartKey, time.Now())

		parent := sentry.SpanFromContext(db.Statement.Context)
		if parent == nil {
			return
		}
		span := parent.StartChild(operation)
		span.Description = db.Statement.Table
		if span.Description == "" {
			span.Description = "unknown"
		}
		span.SetData("db.system", db.Dialector.Name())
		db.InstanceSet(gormSpanKey, span)
	}
}

func (p *GormPlugin) after(db *gorm.DB) {
	if db.Statement == nil {
		return
	}
	startVal, ok := db.InstanceGet(gormStartKey)
	if !ok {
		return
	}
	start, _ := startVal.(time.Time)

	spanVal, ok := db.InstanceGet(gormSpanKey)
	if !ok {
		return
	}
	span, ok := spanVal.(*sentry.Span)
	if !ok || span == nil {
		return
	}

	if p.slowThreshold > 0 && time.Since(start) < p.slowThreshold {
		span.Sampled = sentry.SampledFalse
	}
	span.SetData("db.rows_affected", db.RowsAffected)
	if db.Error != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("db.error", db.Error.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}
