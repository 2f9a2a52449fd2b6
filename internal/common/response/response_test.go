// Package response 统一响应格式单元测试
package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTest 创建测试用的 Gin 上下文
func setupTest() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

// parseResponse 解析响应为 Response 结构
func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSuccess(t *testing.T) {
	c, w := setupTest()

	Success(c, map[string]interface{}{"id": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "success", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestSuccessWithMessage(t *testing.T) {
	c, w := setupTest()

	SuccessWithMessage(c, "Cliente agregado correctamente", gin.H{"id": 5})

	resp := parseResponse(t, w)
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "Cliente agregado correctamente", resp.Message)
}

func TestSuccessList(t *testing.T) {
	c, w := setupTest()

	SuccessList(c, []string{"101", "102"}, 2)

	var body struct {
		Code int `json:"code"`
		Data struct {
			List  []string `json:"list"`
			Total int64    `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, []string{"101", "102"}, body.Data.List)
	assert.Equal(t, int64(2), body.Data.Total)
}

func TestError_KeepsHTTP200(t *testing.T) {
	c, w := setupTest()

	Error(c, 3001, "Ya existe un cliente con esa identificación")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, 3001, resp.Code)
	assert.Nil(t, resp.Data)
	code, ok := c.Get(CodeKey)
	require.True(t, ok)
	assert.Equal(t, 3001, code)
}

func TestErrorWithData(t *testing.T) {
	c, w := setupTest()

	ErrorWithData(c, 1001, "Datos inválidos", gin.H{"nombre": "A"})

	resp := parseResponse(t, w)
	assert.Equal(t, 1001, resp.Code)
	assert.NotNil(t, resp.Data)
}

func TestStatusHelpers(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *gin.Context)
		wantStatus int
		wantCode   int
		wantMsg    string
	}{
		{"BadRequest", func(c *gin.Context) { BadRequest(c, "mal") }, http.StatusBadRequest, 400, "mal"},
		{"Unauthorized 默认消息", func(c *gin.Context) { Unauthorized(c, 2000, "") }, http.StatusUnauthorized, 2000, "Debe iniciar sesión"},
		{"NotFound", func(c *gin.Context) { NotFound(c, "") }, http.StatusNotFound, 404, "not found"},
		{"InternalError", func(c *gin.Context) { InternalError(c, "") }, http.StatusInternalServerError, 500, "internal server error"},
		{"TooManyRequests", func(c *gin.Context) { TooManyRequests(c, "") }, http.StatusTooManyRequests, 429, "too many requests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTest()
			tt.call(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := parseResponse(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}
