package activity

import (
	"errors"

	"mergington-activities/internal/global/response"
	"mergington-activities/internal/model"
	"mergington-activities/internal/store"

	"github.com/gin-gonic/gin"
)

// ActivityView GET /activities 中每个活动的结构，以活动名为 key
type ActivityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func toView(a *model.Activity) ActivityView {
	return ActivityView{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    a.Emails(),
	}
}

// ListActivities 返回全部活动及报名名单
func (m *ModuleActivity) ListActivities(c *gin.Context) {
	activities, err := m.Store.ListActivities(c.Request.Context())
	if err != nil {
		log.Error("查询活动列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	result := make(map[string]ActivityView, len(activities))
	for i := range activities {
		result[activities[i].Name] = toView(&activities[i])
	}
	response.Success(c, result)
}

// fail 把 store 层错误翻译为响应错误
func fail(c *gin.Context, err error) {
	var e *response.Error
	switch {
	case errors.As(err, &e):
		response.Fail(c, e)
	case errors.Is(err, store.ErrActivityNotFound):
		response.Fail(c, response.ErrActivityNotFound)
	case errors.Is(err, store.ErrActivityExists):
		response.Fail(c, response.ErrActivityExists)
	default:
		log.Error("数据库操作失败", "path", c.Request.URL.Path, "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
	}
}
