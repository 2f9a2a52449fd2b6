package customer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-management/internal/common/database"
	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/models"
	"github.com/dumeirei/hotel-management/internal/repository"
	customerService "github.com/dumeirei/hotel-management/internal/service/customer"
)

type listResponse struct {
	Code int `json:"code"`
	Data struct {
		List  []models.Customer `json:"list"`
		Total int64             `json:"total"`
	} `json:"data"`
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	r := gin.New()
	NewHandler(customerService.NewCustomerService(repository.NewCustomerRepository(db))).RegisterRoutes(r)
	return r, db
}

func do(r http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func customerForm(nombre, identificacion string) url.Values {
	return url.Values{
		"nombre":         {nombre},
		"identificacion": {identificacion},
		"direccion":      {"Calle 1"},
		"correo":         {strings.ToLower(nombre) + "@hotel.com"},
		"telefono":       {"300 123 4567"},
	}
}

func TestCustomerHandler(t *testing.T) {
	r, db := setupRouter(t)

	t.Run("新建客户", func(t *testing.T) {
		for _, f := range []url.Values{customerForm("Beto", "456"), customerForm("Ana", "123")} {
			w := do(r, http.MethodPost, "/agregar", f)
			require.Equal(t, http.StatusOK, w.Code)
			var resp struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, 0, resp.Code)
			assert.Equal(t, MessageCreated, resp.Message)
		}
	})

	t.Run("证件号重复", func(t *testing.T) {
		w := do(r, http.MethodPost, "/agregar", customerForm("Carla", "123"))
		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, errors.ErrDuplicateIdentification.Code, resp.Code)
	})

	t.Run("邮箱无效", func(t *testing.T) {
		f := customerForm("Carla", "789")
		f.Set("correo", "carla-at-hotel")
		w := do(r, http.MethodPost, "/agregar", f)
		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, errors.ErrInvalidEmail.Code, resp.Code)
	})

	t.Run("列表按姓名排序", func(t *testing.T) {
		w := do(r, http.MethodGet, "/clientes", nil)
		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data.List, 2)
		assert.Equal(t, "Ana", resp.Data.List[0].Nombre)
		assert.Equal(t, "Beto", resp.Data.List[1].Nombre)
	})

	t.Run("按字段筛选", func(t *testing.T) {
		w := do(r, http.MethodPost, "/clientes", url.Values{"termino": {"456"}, "campo": {"identificacion"}})
		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data.List, 1)
		assert.Equal(t, "Beto", resp.Data.List[0].Nombre)
	})

	t.Run("搜索", func(t *testing.T) {
		w := do(r, http.MethodGet, "/buscar?termino=an", nil)
		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data.List, 1)

		w = do(r, http.MethodPost, "/buscar_reserva", url.Values{"termino": {"123"}})
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data.List, 1)
		assert.Equal(t, "Ana", resp.Data.List[0].Nombre)
	})

	t.Run("删除", func(t *testing.T) {
		var ana models.Customer
		require.NoError(t, db.Where("identificacion = ?", "123").First(&ana).Error)

		w := do(r, http.MethodPost, "/eliminar/"+jsonID(ana.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		// 不存在的客户同样成功
		w = do(r, http.MethodPost, "/eliminar/9999", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = do(r, http.MethodPost, "/eliminar/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var n int64
		require.NoError(t, db.Model(&models.Customer{}).Count(&n).Error)
		assert.Equal(t, int64(1), n)
	})
}

func TestCreateForm(t *testing.T) {
	r, _ := setupRouter(t)
	w := do(r, http.MethodGet, "/agregar_cliente", nil)
	var resp struct {
		Data FormInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, customerService.MinNameLength, resp.Data.MinNombre)
	assert.Contains(t, resp.Data.Campos, models.CustomerFieldAll)
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
