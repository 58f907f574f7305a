package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"mergington-activities/config"
	"mergington-activities/internal/global/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthEngine() *gin.Engine {
	r := gin.New()
	r.GET("/admin", Auth(jwt.RoleAdmin), func(c *gin.Context) {
		claims, ok := jwt.GetUserPayload(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, claims.Subject)
	})
	return r
}

func TestAuth(t *testing.T) {
	cfg := config.Default()
	cfg.JWT.AccessSecret = "middleware-secret"
	config.Set(cfg)
	t.Cleanup(func() { config.Set(nil) })

	admin, err := jwt.GenerateToken("principal", jwt.RoleAdmin)
	require.NoError(t, err)
	student, err := jwt.GenerateToken("student", jwt.RoleStudent)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"insufficient role", "Bearer " + student, http.StatusForbidden},
		{"admin", "Bearer " + admin, http.StatusOK},
	}
	r := newAuthEngine()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, tc.status, w.Code)
		})
	}
}

func TestLoggerRecordsRequest(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(Logger(slog.New(slog.NewTextHandler(&buf, nil))))
	r.GET("/activities", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"Chess Club": gin.H{}})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/activities", nil))

	require.Equal(t, http.StatusOK, w.Code)
	out := buf.String()
	require.Contains(t, out, "path=/activities")
	require.Contains(t, out, "status=200")
	require.Contains(t, out, "Chess Club")
}

func TestRecoveryAndMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Metrics(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
