// Package web 首页跳转与前端静态文件
package web

import (
	"log/slog"

	"mergington-activities/internal/global/logger"
)

var log *slog.Logger

// IndexPath 前端入口，以目录形式访问，由文件服务返回 index.html
// 直接请求 /static/index.html 会被 http.FileServer 301 到目录
const IndexPath = "/static/"

type ModuleWeb struct {
	StaticDir string
}

func (w *ModuleWeb) GetName() string {
	return "Web"
}

func (w *ModuleWeb) Init() {
	log = logger.New("Web")
}
