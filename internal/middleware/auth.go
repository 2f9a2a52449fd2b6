// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-management/internal/common/jwt"
	"github.com/dumeirei/hotel-management/internal/common/response"

	apperrors "github.com/dumeirei/hotel-management/internal/common/errors"
)

// 上下文键
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUsername  = "username"
	ContextKeySessionID = "session_id"
	ContextKeyClaims    = "claims"
)

// DefaultCookieName 默认会话 Cookie 名
const DefaultCookieName = "hotel_session"

// LoginPath 未登录浏览器请求的跳转地址
const LoginPath = "/login"

// SessionVerifier 校验会话令牌（签名、有效期与是否已注销）
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*jwt.Claims, error)
}

// AuthConfig 会话门禁配置
type AuthConfig struct {
	Verifier   SessionVerifier
	CookieName string
}

// Auth 会话门禁中间件
func Auth(config *AuthConfig) gin.HandlerFunc {
	cookieName := config.CookieName
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			deny(c, apperrors.ErrUnauthorized)
			return
		}

		claims, err := config.Verifier.Verify(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				deny(c, apperrors.ErrTokenExpired)
			case apperrors.IsAppError(err):
				deny(c, apperrors.GetAppError(err))
			default:
				deny(c, apperrors.ErrTokenInvalid)
			}
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalSession 识别会话但不强制登录
func OptionalSession(config *AuthConfig) gin.HandlerFunc {
	cookieName := config.CookieName
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	return func(c *gin.Context) {
		if token := extractToken(c, cookieName); token != "" {
			if claims, err := config.Verifier.Verify(c.Request.Context(), token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyUsername, claims.Username)
	c.Set(ContextKeySessionID, claims.SessionID())
	c.Set(ContextKeyClaims, claims)
}

// deny 浏览器请求跳转登录页，其余返回 401
func deny(c *gin.Context, appErr *apperrors.AppError) {
	if WantsHTML(c) {
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
		return
	}
	response.Unauthorized(c, appErr.Code, appErr.Message)
	c.Abort()
}

// WantsHTML 判断请求是否来自浏览器页面导航
func WantsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	if accept == "" {
		return false
	}
	if strings.Contains(accept, "application/json") {
		return false
	}
	return strings.Contains(accept, "text/html")
}

// extractToken 依次从 Authorization 头、查询参数、Cookie 中提取令牌
func extractToken(c *gin.Context, cookieName string) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if token := c.Query("token"); token != "" {
		return token
	}

	token, _ := c.Cookie(cookieName)
	return token
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(ContextKeyUserID); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// GetUsername 从上下文获取用户名
func GetUsername(c *gin.Context) string {
	return c.GetString(ContextKeyUsername)
}

// GetSessionID 从上下文获取会话 ID
func GetSessionID(c *gin.Context) string {
	return c.GetString(ContextKeySessionID)
}

// IsLoggedIn 判断是否已登录
func IsLoggedIn(c *gin.Context) bool {
	return GetUserID(c) != 0
}
