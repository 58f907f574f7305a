package activity

import (
	"context"
	"errors"
	"time"

	"mergington-activities/internal/global/logger"
	"mergington-activities/internal/global/metrics"
	"mergington-activities/internal/global/notify"
	"mergington-activities/internal/global/response"
	"mergington-activities/internal/store"

	"github.com/gin-gonic/gin"
)

// ParticipantReq 报名/退出的查询参数
// email 必须出现在查询串中，空字符串照常接受，不校验邮箱格式
type ParticipantReq struct {
	Email string `form:"email"`
}

func bindParticipant(c *gin.Context) (ParticipantReq, bool) {
	var req ParticipantReq
	if _, ok := c.GetQuery("email"); !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("email is required"))
		return req, false
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return req, false
	}
	return req, true
}

// Signup 学生报名活动
// 校验顺序：活动存在 -> 未重复报名 -> 未满员 -> 写入
func (m *ModuleActivity) Signup(c *gin.Context) {
	name := c.Param("name")
	req, ok := bindParticipant(c)
	if !ok {
		return
	}

	err := m.signup(c.Request.Context(), name, req.Email)
	metrics.RecordSignup(signupResult(err))
	if err != nil {
		logger.WithContext(log, c).Warn("报名失败", "activity", name, "email", req.Email, "error", err)
		fail(c, err)
		return
	}

	log.Info("报名成功", "activity", name, "email", req.Email)
	m.Notifier.Notify(c.Request.Context(), notify.Event{
		Type:     notify.EventSignup,
		Activity: name,
		Email:    req.Email,
		At:       time.Now(),
	})
	response.SuccessMessage(c, "Signed up %s for %s", req.Email, name)
}

// signup 在活动锁内开启事务；写入后再计数一次，超员则整体回滚
func (m *ModuleActivity) signup(ctx context.Context, name, email string) error {
	unlock, err := m.Locker.Lock(ctx, name)
	if err != nil {
		return response.ErrServerInternal.WithOrigin(err)
	}
	defer unlock()

	return m.Store.Transaction(ctx, func(tx *store.Store) error {
		activity, err := tx.FindActivityForUpdate(ctx, name)
		if err != nil {
			return err
		}
		if activity.HasParticipant(email) {
			return response.ErrAlreadySignedUp
		}
		if !activity.Unlimited() && len(activity.Participants) >= activity.MaxParticipants {
			return response.ErrActivityFull
		}

		if _, err := tx.AddParticipant(ctx, activity, email); err != nil {
			if errors.Is(err, store.ErrParticipantExists) {
				return response.ErrAlreadySignedUp
			}
			return err
		}

		if activity.Unlimited() {
			return nil
		}
		count, err := tx.CountParticipants(ctx, activity)
		if err != nil {
			return err
		}
		if count > int64(activity.MaxParticipants) {
			return response.ErrActivityFull
		}
		return nil
	})
}

// Unregister 学生退出活动
func (m *ModuleActivity) Unregister(c *gin.Context) {
	name := c.Param("name")
	req, ok := bindParticipant(c)
	if !ok {
		return
	}

	err := m.unregister(c.Request.Context(), name, req.Email)
	metrics.RecordUnregister(unregisterResult(err))
	if err != nil {
		logger.WithContext(log, c).Warn("退出活动失败", "activity", name, "email", req.Email, "error", err)
		fail(c, err)
		return
	}

	log.Info("退出活动成功", "activity", name, "email", req.Email)
	m.Notifier.Notify(c.Request.Context(), notify.Event{
		Type:     notify.EventUnregister,
		Activity: name,
		Email:    req.Email,
		At:       time.Now(),
	})
	response.SuccessMessage(c, "Unregistered %s from %s", req.Email, name)
}

func (m *ModuleActivity) unregister(ctx context.Context, name, email string) error {
	unlock, err := m.Locker.Lock(ctx, name)
	if err != nil {
		return response.ErrServerInternal.WithOrigin(err)
	}
	defer unlock()

	return m.Store.Transaction(ctx, func(tx *store.Store) error {
		activity, err := tx.FindActivityForUpdate(ctx, name)
		if err != nil {
			return err
		}
		if !activity.HasParticipant(email) {
			return response.ErrNotSignedUp
		}
		err = tx.RemoveParticipant(ctx, activity, email)
		if errors.Is(err, store.ErrParticipantNotFound) {
			return response.ErrNotSignedUp
		}
		return err
	})
}

func signupResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, store.ErrActivityNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, response.ErrAlreadySignedUp):
		return metrics.ResultDuplicate
	case errors.Is(err, response.ErrActivityFull):
		return metrics.ResultFull
	default:
		return metrics.ResultError
	}
}

func unregisterResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, store.ErrActivityNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, response.ErrNotSignedUp):
		return metrics.ResultNotEnrolled
	default:
		return metrics.ResultError
	}
}
