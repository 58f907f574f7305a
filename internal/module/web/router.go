package web

import (
	"net/http"
	"strings"

	"mergington-activities/tools"

	"github.com/gin-gonic/gin"
)

func (w *ModuleWeb) InitRouter(r *gin.RouterGroup) {
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, strings.TrimSuffix(r.BasePath(), "/")+IndexPath)
	})

	if w.StaticDir == "" || !tools.DirExist(w.StaticDir) {
		log.Warn("静态文件目录不存在，跳过挂载", "dir", w.StaticDir)
		return
	}
	r.Static("/static", w.StaticDir)
}
