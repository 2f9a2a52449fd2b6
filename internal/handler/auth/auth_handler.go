// Package auth 提供认证与员工账号相关的 HTTP Handler
package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-management/internal/common/handler"
	"github.com/dumeirei/hotel-management/internal/common/response"
	"github.com/dumeirei/hotel-management/internal/middleware"
	authService "github.com/dumeirei/hotel-management/internal/service/auth"
)

// 提示信息
const (
	MessageRegistered = "Usuario registrado exitosamente. Inicia sesión."
	MessageLoggedIn   = "Sesión iniciada correctamente."
	MessageLoggedOut  = "Sesión cerrada."
	MessageDeleted    = "Usuario eliminado exitosamente."
)

// CookieConfig 会话 Cookie 设置
type CookieConfig struct {
	Name   string
	Secure bool
}

// Handler 认证处理器
type Handler struct {
	authService *authService.AuthService
	cookie      CookieConfig
}

// NewHandler 创建认证处理器
func NewHandler(authSvc *authService.AuthService, cookie CookieConfig) *Handler {
	if cookie.Name == "" {
		cookie.Name = middleware.DefaultCookieName
	}
	return &Handler{authService: authSvc, cookie: cookie}
}

// FormInfo 注册/登录表单约束
type FormInfo struct {
	MinUsername int `json:"min_username"`
	MinPassword int `json:"min_password"`
}

func formInfo() FormInfo {
	return FormInfo{
		MinUsername: authService.MinUsernameLength,
		MinPassword: authService.MinPasswordLength,
	}
}

// RegisterForm 注册表单
// @Summary 注册表单约束
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response{data=FormInfo}
// @Router /register [get]
func (h *Handler) RegisterForm(c *gin.Context) {
	response.Success(c, formInfo())
}

// Register 注册员工账号
// @Summary 注册员工账号
// @Tags 认证
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body authService.RegisterRequest true "请求参数"
// @Success 200 {object} response.Response{data=authService.UserInfo}
// @Router /register [post]
func (h *Handler) Register(c *gin.Context) {
	var req authService.RegisterRequest
	if !handler.Bind(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if handler.HandleError(c, err) {
		return
	}
	handler.SetTarget(c, user.ID)
	response.SuccessWithMessage(c, MessageRegistered, user)
}

// LoginForm 登录表单
// @Summary 登录表单约束
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response{data=FormInfo}
// @Router /login [get]
func (h *Handler) LoginForm(c *gin.Context) {
	response.Success(c, formInfo())
}

// Login 登录并写入会话 Cookie
// @Summary 登录
// @Tags 认证
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body authService.LoginRequest true "请求参数"
// @Success 200 {object} response.Response{data=authService.LoginResult}
// @Router /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req authService.LoginRequest
	if !handler.Bind(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if handler.HandleError(c, err) {
		return
	}

	maxAge := int(time.Until(result.Token.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, result.Token.Value, maxAge, "/", "", h.cookie.Secure, true)
	response.SuccessWithMessage(c, MessageLoggedIn, result)
}

// Logout 注销会话并清除 Cookie，未登录时同样成功
// @Summary 退出登录
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response
// @Router /logout [get]
func (h *Handler) Logout(c *gin.Context) {
	h.authService.Logout(c.Request.Context(), middleware.GetSessionID(c))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.SuccessWithMessage(c, MessageLoggedOut, nil)
}

// ListUsers 员工账号列表
// @Summary 员工账号列表
// @Tags 用户
// @Produce json
// @Success 200 {object} response.Response{data=response.ListData}
// @Router /usuarios [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	handler.MustSucceedList(c, err, users, int64(len(users)))
}

// DeleteUser 删除员工账号
// @Summary 删除员工账号
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response
// @Router /eliminar_usuario/{id} [post]
func (h *Handler) DeleteUser(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "usuario")
	if !ok {
		return
	}

	err := h.authService.DeleteUser(c.Request.Context(), userID, id)
	handler.MustSucceedWithMessage(c, err, MessageDeleted, nil)
}

// RegisterRoutes 注册公开路由，limiters 挂在注册与登录的 POST 上；logout 需挂在可选会话中间件之后
func (h *Handler) RegisterRoutes(r gin.IRoutes, limiters ...gin.HandlerFunc) {
	r.GET("/register", h.RegisterForm)
	r.POST("/register", append(limiters[:len(limiters):len(limiters)], h.Register)...)
	r.GET("/login", h.LoginForm)
	r.POST("/login", append(limiters[:len(limiters):len(limiters)], h.Login)...)
	r.GET("/logout", h.Logout)
}

// RegisterProtectedRoutes 注册需要登录的路由
func (h *Handler) RegisterProtectedRoutes(r gin.IRoutes) {
	r.GET("/usuarios", h.ListUsers)
	r.POST("/eliminar_usuario/:id", h.DeleteUser)
}
