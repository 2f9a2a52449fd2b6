// Package response 提供统一的 API 响应格式
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response API 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// CodeKey 上下文中保存业务码的键，供操作日志与追踪读取
const CodeKey = "response_code"

func write(c *gin.Context, status int, resp Response) {
	c.Set(CodeKey, resp.Code)
	c.JSON(status, resp)
}

// ListData 列表数据结构
type ListData struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	write(c, http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 成功响应（带提示消息）
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// SuccessList 列表成功响应
func SuccessList(c *gin.Context, list interface{}, total int64) {
	write(c, http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data: ListData{
			List:  list,
			Total: total,
		},
	})
}

// Error 业务错误响应
func Error(c *gin.Context, code int, message string) {
	write(c, http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithData 业务错误响应（带数据，用于回填表单）
func ErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	write(c, http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// BadRequest 请求参数错误
func BadRequest(c *gin.Context, message string) {
	write(c, http.StatusBadRequest, Response{
		Code:    400,
		Message: message,
	})
}

// Unauthorized 未登录
func Unauthorized(c *gin.Context, code int, message string) {
	if message == "" {
		message = "Debe iniciar sesión"
	}
	write(c, http.StatusUnauthorized, Response{
		Code:    code,
		Message: message,
	})
}

// NotFound 资源不存在
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "not found"
	}
	write(c, http.StatusNotFound, Response{
		Code:    404,
		Message: message,
	})
}

// InternalError 服务器内部错误
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "internal server error"
	}
	write(c, http.StatusInternalServerError, Response{
		Code:    500,
		Message: message,
	})
}

// TooManyRequests 请求过于频繁
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}
	write(c, http.StatusTooManyRequests, Response{
		Code:    429,
		Message: message,
	})
}
