package middleware

import (
	"strings"

	"mergington-activities/internal/global/jwt"
	"mergington-activities/internal/global/response"

	"github.com/gin-gonic/gin"
)

// Auth 校验 Bearer token，角色低于 minRoleID 时拒绝
func Auth(minRoleID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, response.ErrUnauthorized)
			return
		}
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			response.Fail(c, response.ErrTokenInvalid)
			return
		}

		payload, valid := jwt.ParseToken(token)
		if !valid {
			response.Fail(c, response.ErrTokenInvalid)
			return
		}
		if payload.RoleID < minRoleID {
			response.Fail(c, response.ErrForbidden)
			return
		}
		c.Set(jwt.PayloadKey, payload)
		c.Next()
	}
}
