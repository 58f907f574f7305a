package module

import (
	"mergington-activities/internal/global/lock"
	"mergington-activities/internal/global/notify"
	"mergington-activities/internal/module/activity"
	"mergington-activities/internal/module/ping"
	"mergington-activities/internal/module/web"
	"mergington-activities/internal/store"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

// Deps 启动时构造一次，显式注入各模块
type Deps struct {
	Store     *store.Store
	Locker    lock.Locker
	Notifier  notify.Notifier
	StaticDir string
	Admin     bool
}

// New 在这里注册模块
func New(deps Deps) []Module {
	return []Module{
		&ping.ModulePing{},
		&web.ModuleWeb{StaticDir: deps.StaticDir},
		&activity.ModuleActivity{
			Store:    deps.Store,
			Locker:   deps.Locker,
			Notifier: deps.Notifier,
			Admin:    deps.Admin,
		},
	}
}
