package jwt

import (
	"errors"
	"time"

	"mergington-activities/config"

	"github.com/golang-jwt/jwt"
)

const (
	RoleStudent = 0
	RoleAdmin   = 1
)

type Claims struct {
	RoleID int `json:"role_id"`
	jwt.StandardClaims
}

// GenerateToken 签发 HS256 token，过期时间取 JWT.AccessExpire
func GenerateToken(subject string, roleID int) (string, error) {
	cfg := config.Get().JWT
	if cfg.AccessSecret == "" {
		return "", errors.New("jwt access secret is not configured")
	}
	now := time.Now()
	claims := Claims{
		RoleID: roleID,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Duration(cfg.AccessExpire) * time.Second).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.AccessSecret))
}

// ParseToken 校验签名与过期时间
func ParseToken(token string) (*Claims, bool) {
	secret := config.Get().JWT.AccessSecret
	if secret == "" {
		return nil, false
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}
	return claims, true
}
