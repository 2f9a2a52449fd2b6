// Package handler 提供 API Handler 的通用辅助函数
// 统一错误处理、参数解析与表单绑定
package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/common/logger"
	commonmw "github.com/dumeirei/hotel-management/internal/common/middleware"
	"github.com/dumeirei/hotel-management/internal/common/response"
	"github.com/dumeirei/hotel-management/internal/middleware"
)

// HandleError 处理错误并发送响应
// err 为 nil 时返回 false；否则已写入响应，调用方应直接 return
//
// 使用示例:
//
//	result, err := service.DoSomething()
//	if handler.HandleError(c, err) {
//	    return
//	}
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if !errors.IsAppError(err) {
		logger.Error("未处理的错误",
			logger.RequestID(middleware.GetRequestID(c)),
			logger.Path(c.Request.URL.Path),
			zap.Error(err),
		)
		response.InternalError(c, errors.ErrInternalError.Message)
		return true
	}

	appErr := errors.GetAppError(err)
	if appErr.Code == errors.ErrDatabaseError.Code || appErr.Code == errors.ErrInternalError.Code {
		// 存储故障记录原始错误，仅向客户端返回通用消息
		logger.Error("存储操作失败",
			logger.RequestID(middleware.GetRequestID(c)),
			logger.Method(c.Request.Method),
			logger.Path(c.Request.URL.Path),
			zap.Error(appErr.Unwrap()),
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
	return true
}

// MustSucceed 有错误则返回错误响应，否则返回成功响应
func MustSucceed(c *gin.Context, err error, data interface{}) {
	if HandleError(c, err) {
		return
	}
	response.Success(c, data)
}

// MustSucceedWithMessage 带成功提示消息的 MustSucceed
func MustSucceedWithMessage(c *gin.Context, err error, message string, data interface{}) {
	if HandleError(c, err) {
		return
	}
	response.SuccessWithMessage(c, message, data)
}

// MustSucceedList 列表版本的 MustSucceed
func MustSucceedList(c *gin.Context, err error, list interface{}, total int64) {
	if HandleError(c, err) {
		return
	}
	response.SuccessList(c, list, total)
}

// RequireUserID 获取当前用户 ID，未登录时返回 401
func RequireUserID(c *gin.Context) (int64, bool) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		response.Unauthorized(c, errors.ErrUnauthorized.Code, errors.ErrUnauthorized.Message)
		return 0, false
	}
	return userID, true
}

// ParseID 解析路径参数 "id"
//
// 使用示例:
//
//	id, ok := handler.ParseID(c, "reserva")
//	if !ok {
//	    return
//	}
func ParseID(c *gin.Context, resourceName string) (int64, bool) {
	return ParseParamID(c, "id", resourceName)
}

// ParseParamID 解析指定路径参数为正整数 ID
func ParseParamID(c *gin.Context, paramName, resourceName string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "ID de "+resourceName+" inválido")
		return 0, false
	}
	return id, true
}

// Bind 绑定表单或 JSON 请求体，失败时返回 400
func Bind(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		response.BadRequest(c, errors.ErrInvalidParams.Message)
		return false
	}
	return true
}

// Term 读取搜索词（查询参数或表单字段 termino），去除首尾空白
func Term(c *gin.Context) string {
	if v, ok := c.GetPostForm("termino"); ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(c.Query("termino"))
}

// SetTarget 记录操作目标 ID，供操作日志使用
func SetTarget(c *gin.Context, id int64) {
	c.Set(commonmw.TargetIDKey, id)
}
