package activity

import (
	"log/slog"

	"mergington-activities/internal/global/lock"
	"mergington-activities/internal/global/logger"
	"mergington-activities/internal/global/notify"
	"mergington-activities/internal/store"
)

var log *slog.Logger

// ModuleActivity 活动列表、报名与退出，以及管理员接口
type ModuleActivity struct {
	Store    *store.Store
	Locker   lock.Locker
	Notifier notify.Notifier
	// Admin 为 false 时不挂载 /admin 路由（未配置 JWT 密钥）
	Admin bool
}

func (m *ModuleActivity) GetName() string {
	return "Activity"
}

func (m *ModuleActivity) Init() {
	log = logger.New("Activity")
	if m.Locker == nil {
		m.Locker = lock.NewLocal()
	}
	if m.Notifier == nil {
		m.Notifier = notify.Nop{}
	}
}
