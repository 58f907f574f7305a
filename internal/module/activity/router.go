package activity

import (
	"mergington-activities/internal/global/jwt"
	"mergington-activities/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (m *ModuleActivity) InitRouter(r *gin.RouterGroup) {
	activityGroup := r.Group("/activities")
	{
		activityGroup.GET("", m.ListActivities)
		activityGroup.POST("/:name/signup", m.Signup)
		activityGroup.DELETE("/:name/unregister", m.Unregister)
	}

	if !m.Admin {
		return
	}
	adminGroup := r.Group("/admin/activities")
	adminGroup.Use(middleware.Auth(jwt.RoleAdmin))
	{
		adminGroup.POST("", m.CreateActivity)
		adminGroup.DELETE("/:name", m.DeleteActivity)
		adminGroup.GET("/:name/participants.xlsx", m.ExportParticipants)
	}
}
