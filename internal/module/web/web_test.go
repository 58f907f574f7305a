package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, dir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := &ModuleWeb{StaticDir: dir}
	m.Init()
	r := gin.New()
	m.InitRouter(r.Group("/"))
	return r
}

func TestRootRedirects(t *testing.T) {
	r := newEngine(t, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, IndexPath, w.Header().Get("Location"))
}

func TestServesStaticDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Mergington High School</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("load();"), 0o644))

	r := newEngine(t, dir)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")

	// 跟随首页跳转，一次到达入口页
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, location, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Mergington High School")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "load();", w.Body.String())
}

func TestRedirectHonoursPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := &ModuleWeb{}
	m.Init()
	r := gin.New()
	m.InitRouter(r.Group("/school"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/school/", nil))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/school/static/", w.Header().Get("Location"))
}
