package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-management/internal/common/response"
	"github.com/dumeirei/hotel-management/internal/models"
	"github.com/dumeirei/hotel-management/internal/repository"
)

func setupOperationLogTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.OperationLog{}))
	return db
}

func waitForOperationLog(t *testing.T, db *gorm.DB, where string, args ...interface{}) *models.OperationLog {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var log models.OperationLog
		if err := db.Where(where, args...).Order("id DESC").First(&log).Error; err == nil {
			return &log
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("operation log not created: %s", where)
	return nil
}

func countOperationLogs(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.OperationLog{}).Count(&n).Error)
	return n
}

func newOperationRouter(db *gorm.DB, signedIn bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	op := NewOperationLogger(repository.NewOperationLogRepository(db))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if signedIn {
			c.Set("user_id", int64(9))
			c.Set("username", "recepcion")
		}
		c.Next()
	})
	r.Use(op.Log())

	r.POST("/register", func(c *gin.Context) {
		_ = c.Request.ParseForm()
		c.Set(TargetIDKey, int64(42))
		response.SuccessWithMessage(c, "Usuario registrado", nil)
	})
	r.POST("/eliminar_pago/:id", func(c *gin.Context) {
		response.Error(c, 6002, "No se puede eliminar un pago completado.")
	})
	r.POST("/checkin_reserva/:id", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/reservas")
	})
	r.POST("/sin_registro", func(c *gin.Context) {
		response.Success(c, nil)
	})
	r.POST("/agregar", func(c *gin.Context) {
		var body map[string]interface{}
		_ = c.ShouldBindJSON(&body)
		response.Success(c, nil)
	})
	return r
}

func TestOperationLogger_LogsSuccessfulFormPost(t *testing.T) {
	db := setupOperationLogTestDB(t)
	r := newOperationRouter(db, true)

	form := url.Values{"username": {"ana"}, "password": {"secreto1"}, "confirm_password": {"secreto1"}}
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "test-agent")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	log := waitForOperationLog(t, db, "module = ? AND action = ?", "usuarios", "crear")
	assert.Equal(t, int64(9), log.UserID)
	assert.Equal(t, "recepcion", log.Username)
	require.NotNil(t, log.TargetID)
	assert.Equal(t, int64(42), *log.TargetID)
	assert.Equal(t, "ana", log.Params["username"])
	assert.Equal(t, "***", log.Params["password"])
	assert.Equal(t, "***", log.Params["confirm_password"])
	require.NotNil(t, log.UserAgent)
	assert.Equal(t, "test-agent", *log.UserAgent)
}

func TestOperationLogger_JSONBodyAndRedirect(t *testing.T) {
	db := setupOperationLogTestDB(t)
	r := newOperationRouter(db, true)

	req := httptest.NewRequest(http.MethodPost, "/agregar", strings.NewReader(`{"nombre":"Ana","token":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), req)

	log := waitForOperationLog(t, db, "module = ? AND action = ?", "clientes", "crear")
	assert.Equal(t, "Ana", log.Params["nombre"])
	assert.Equal(t, "***", log.Params["token"])
	assert.Nil(t, log.TargetID)

	req = httptest.NewRequest(http.MethodPost, "/checkin_reserva/15", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)

	log = waitForOperationLog(t, db, "action = ?", "checkin")
	require.NotNil(t, log.TargetID)
	assert.Equal(t, int64(15), *log.TargetID)
	assert.Equal(t, http.StatusFound, log.StatusCode)
}

func TestOperationLogger_SkipsFailuresAndAnonymous(t *testing.T) {
	t.Run("业务失败不记录", func(t *testing.T) {
		db := setupOperationLogTestDB(t)
		r := newOperationRouter(db, true)

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/eliminar_pago/3", nil))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/sin_registro", nil))
		time.Sleep(100 * time.Millisecond)
		assert.Equal(t, int64(0), countOperationLogs(t, db))
	})

	t.Run("未登录不记录", func(t *testing.T) {
		db := setupOperationLogTestDB(t)
		r := newOperationRouter(db, false)

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/checkin_reserva/1", nil))
		time.Sleep(100 * time.Millisecond)
		assert.Equal(t, int64(0), countOperationLogs(t, db))
	})
}

func TestLookup(t *testing.T) {
	cfg, ok := Lookup(http.MethodPost, "/registrar_pago/:reserva_id")
	require.True(t, ok)
	assert.Equal(t, "pagos", cfg.Module)

	_, ok = Lookup(http.MethodGet, "/registrar_pago/:reserva_id")
	assert.False(t, ok)
}

func TestFilterSensitive(t *testing.T) {
	out := filterSensitive(models.JSON{
		"nombre":   "Ana",
		"Password": "x",
		"extra":    map[string]interface{}{"api_secret": "s", "ok": 1},
	})
	assert.Equal(t, "Ana", out["nombre"])
	assert.Equal(t, "***", out["Password"])
	nested := out["extra"].(map[string]interface{})
	assert.Equal(t, "***", nested["api_secret"])
	assert.Equal(t, 1, nested["ok"])
}
