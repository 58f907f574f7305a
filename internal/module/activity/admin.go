package activity

import (
	"time"

	"mergington-activities/internal/global/jwt"
	"mergington-activities/internal/global/response"
	"mergington-activities/internal/model"
	"mergington-activities/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ActivityCreateReq 管理员新建活动
type ActivityCreateReq struct {
	Name            string `json:"name" binding:"required,max=200"`
	Description     string `json:"description"`
	Schedule        string `json:"schedule" binding:"max=200"`
	MaxParticipants int    `json:"max_participants" binding:"gte=0"` // 0 表示不限人数
}

// CreateActivity 新建活动，名称重复返回 409
func (m *ModuleActivity) CreateActivity(c *gin.Context) {
	var req ActivityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("绑定新建活动请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	activity := model.Activity{
		Name:            req.Name,
		Description:     req.Description,
		Schedule:        req.Schedule,
		MaxParticipants: req.MaxParticipants,
	}
	if err := m.Store.CreateActivity(c.Request.Context(), &activity); err != nil {
		fail(c, err)
		return
	}

	operator := ""
	if claims, ok := jwt.GetUserPayload(c); ok {
		operator = claims.Subject
	}
	log.Info("活动创建成功", "activity", activity.Name, "max_participants", activity.MaxParticipants, "operator", operator)
	response.SuccessMessage(c, "Created activity %s", activity.Name)
}

// DeleteActivity 删除活动及其全部报名记录
func (m *ModuleActivity) DeleteActivity(c *gin.Context) {
	name := c.Param("name")

	unlock, err := m.Locker.Lock(c.Request.Context(), name)
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	defer unlock()

	removed, err := m.Store.DeleteActivity(c.Request.Context(), name)
	if err != nil {
		fail(c, err)
		return
	}

	log.Info("活动删除成功", "activity", name, "participants_removed", removed)
	response.SuccessMessage(c, "Deleted %s and %d participant(s)", name, removed)
}

// RosterRow 导出名单中的一行
type RosterRow struct {
	Email      string    `excel:"Email"`
	SignedUpAt time.Time `excel:"Signed Up At"`
}

// ExportParticipants 导出某活动的报名名单为 xlsx
func (m *ModuleActivity) ExportParticipants(c *gin.Context) {
	name := c.Param("name")
	activity, err := m.Store.FindActivity(c.Request.Context(), name)
	if err != nil {
		fail(c, err)
		return
	}

	rows := make([]RosterRow, 0, len(activity.Participants))
	for _, p := range activity.Participants {
		rows = append(rows, RosterRow{Email: p.Email, SignedUpAt: p.CreatedAt})
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Participants"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	if err := tools.WriteSheet(f, sheet, rows); err != nil {
		log.Error("生成名单失败", "activity", name, "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	log.Info("导出名单成功", "activity", name, "count", len(rows))
	tools.SendAttachment(c, name+" participants.xlsx", tools.ExcelContentType, buf.Bytes())
}
