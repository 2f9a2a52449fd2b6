package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/common/response"
	"github.com/dumeirei/hotel-management/internal/models"
	"github.com/dumeirei/hotel-management/internal/repository"
)

// TargetIDKey 处理器可写入的目标 ID（如新建记录的 ID）
const TargetIDKey = "operation_target_id"

// 会话中间件写入的上下文键
const (
	userIDKey   = "user_id"
	usernameKey = "username"
)

// OperationLogger 操作日志中间件
type OperationLogger struct {
	repo    *repository.OperationLogRepository
	timeout time.Duration
}

// NewOperationLogger 创建操作日志中间件
func NewOperationLogger(repo *repository.OperationLogRepository) *OperationLogger {
	return &OperationLogger{repo: repo, timeout: 5 * time.Second}
}

// OperationConfig 路由对应的模块与动作
type OperationConfig struct {
	Module string
	Action string
}

var operationMap = map[string]OperationConfig{
	"POST /agregar":                       {Module: "clientes", Action: "crear"},
	"POST /eliminar/:id":                  {Module: "clientes", Action: "eliminar"},
	"POST /register":                      {Module: "usuarios", Action: "crear"},
	"POST /eliminar_usuario/:id":          {Module: "usuarios", Action: "eliminar"},
	"POST /crear_reserva/:cliente_id":     {Module: "reservas", Action: "crear"},
	"POST /eliminar_reserva/:id":          {Module: "reservas", Action: "eliminar"},
	"POST /cambiar_estado_reserva/:id":    {Module: "reservas", Action: "cambiar_estado"},
	"POST /checkin_reserva/:id":           {Module: "reservas", Action: "checkin"},
	"POST /checkout_reserva/:id":          {Module: "reservas", Action: "checkout"},
	"POST /agregar_habitacion":            {Module: "habitaciones", Action: "crear"},
	"POST /editar_habitacion/:id":         {Module: "habitaciones", Action: "editar"},
	"POST /cambiar_estado_habitacion/:id": {Module: "habitaciones", Action: "cambiar_estado"},
	"POST /eliminar_habitacion/:id":       {Module: "habitaciones", Action: "eliminar"},
	"POST /registrar_pago/:reserva_id":    {Module: "pagos", Action: "registrar"},
	"POST /cambiar_estado_pago/:id":       {Module: "pagos", Action: "cambiar_estado"},
	"POST /eliminar_pago/:id":             {Module: "pagos", Action: "eliminar"},
}

var sensitiveFields = []string{"password", "token", "secret"}

// Lookup 返回路由对应的操作配置
func Lookup(method, fullPath string) (OperationConfig, bool) {
	cfg, ok := operationMap[method+" "+fullPath]
	return cfg, ok
}

// Log 记录登录用户成功的写操作
func (l *OperationLogger) Log() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, ok := Lookup(c.Request.Method, c.FullPath())
		if !ok || l.repo == nil {
			c.Next()
			return
		}

		var body []byte
		if c.Request.Body != nil && strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		c.Next()

		entry, ok := l.buildEntry(c, cfg, body)
		if !ok {
			return
		}
		requestID := c.GetString("request_id")
		// 上下文在请求结束后会被复用，日志内容需在此同步收集
		go l.save(entry, requestID)
	}
}

func (l *OperationLogger) buildEntry(c *gin.Context, cfg OperationConfig, body []byte) (*models.OperationLog, bool) {
	uid, ok := c.Get(userIDKey)
	if !ok {
		return nil, false
	}
	userID, ok := uid.(int64)
	if !ok {
		return nil, false
	}
	if !succeeded(c) {
		return nil, false
	}

	entry := &models.OperationLog{
		UserID:     userID,
		Username:   c.GetString(usernameKey),
		Module:     cfg.Module,
		Action:     cfg.Action,
		TargetID:   targetID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		Params:     requestParams(c, body),
		StatusCode: c.Writer.Status(),
		IP:         c.ClientIP(),
	}
	if ua := c.Request.UserAgent(); ua != "" {
		entry.UserAgent = &ua
	}
	return entry, true
}

func (l *OperationLogger) save(entry *models.OperationLog, requestID string) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	if err := l.repo.Create(ctx, entry); err != nil {
		logger.Error("保存操作日志失败",
			logger.RequestID(requestID),
			logger.Module(entry.Module),
			logger.Action(entry.Action),
			zap.Error(err),
		)
	}
}

// succeeded 仅当 HTTP 状态成功且业务码为 0（或为重定向）时视为成功
func succeeded(c *gin.Context) bool {
	status := c.Writer.Status()
	if status >= http.StatusMultipleChoices && status < http.StatusBadRequest {
		return true
	}
	if status >= http.StatusBadRequest {
		return false
	}
	if code, ok := c.Get(response.CodeKey); ok {
		if v, ok := code.(int); ok {
			return v == 0
		}
	}
	return true
}

func targetID(c *gin.Context) *int64 {
	if v, ok := c.Get(TargetIDKey); ok {
		if id, ok := v.(int64); ok {
			return &id
		}
	}
	for _, name := range []string{"id", "reserva_id", "cliente_id"} {
		if raw := c.Param(name); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				return &id
			}
		}
	}
	return nil
}

func requestParams(c *gin.Context, body []byte) models.JSON {
	params := models.JSON{}
	if len(body) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(body, &data); err == nil {
			for k, v := range data {
				params[k] = v
			}
		}
	} else {
		// 处理器绑定后表单已解析
		form := c.Request.PostForm
		if c.Request.MultipartForm != nil {
			form = c.Request.MultipartForm.Value
		}
		for k, vs := range form {
			if len(vs) == 1 {
				params[k] = vs[0]
			} else {
				params[k] = vs
			}
		}
	}
	if len(params) == 0 {
		return nil
	}
	return filterSensitive(params)
}

func filterSensitive(params models.JSON) models.JSON {
	out := make(models.JSON, len(params))
	for k, v := range params {
		lower := strings.ToLower(k)
		masked := false
		for _, f := range sensitiveFields {
			if strings.Contains(lower, f) {
				masked = true
				break
			}
		}
		if masked {
			out[k] = "***"
			continue
		}
		if nested, ok := v.(map[string]interface{}); ok {
			out[k] = map[string]interface{}(filterSensitive(nested))
			continue
		}
		out[k] = v
	}
	return out
}
