package room

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
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
	roomService "github.com/dumeirei/hotel-management/internal/service/room"
	"github.com/dumeirei/hotel-management/pkg/oss"
)

type roomResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Data    RoomView `json:"data"`
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *oss.MockUploader) {
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

	uploader := oss.NewMockUploader()
	svc := roomService.NewRoomService(repository.NewRoomRepository(db), uploader, nil)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)
	return r, db, uploader
}

func multipartRequest(t *testing.T, path string, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile(ImageField, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeRoom(t *testing.T, w *httptest.ResponseRecorder) roomResponse {
	t.Helper()
	var resp roomResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func roomFields(numero string) map[string]string {
	return map[string]string{
		"numero":       numero,
		"tipo":         models.RoomTypeDouble,
		"capacidad":    "2",
		"precio_noche": "250000",
		"amenidades":   "WiFi",
		"descripcion":  "Vista al mar",
	}
}

func TestRoomHandler_CreateWithImage(t *testing.T) {
	r, _, uploader := setupRouter(t)

	w := serve(r, multipartRequest(t, "/agregar_habitacion", roomFields("401"), "Foto Mar.PNG", []byte("png")))
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeRoom(t, w)
	require.Equal(t, 0, resp.Code, resp.Message)
	assert.Equal(t, MessageCreated, resp.Message)
	assert.Equal(t, models.RoomStatusAvailable, resp.Data.Estado)
	require.NotNil(t, resp.Data.Imagen)
	assert.True(t, strings.HasPrefix(*resp.Data.Imagen, roomService.ImageDir+"/"))
	assert.True(t, strings.HasPrefix(resp.Data.ImagenURL, "https://mock-oss.example.com/"))
	assert.Len(t, uploader.Files, 1)

	t.Run("房间号重复", func(t *testing.T) {
		w := serve(r, multipartRequest(t, "/agregar_habitacion", roomFields("401"), "", nil))
		assert.Equal(t, errors.ErrDuplicateRoomNumber.Code, decodeRoom(t, w).Code)
		assert.Len(t, uploader.Files, 1)
	})

	t.Run("不支持的图片类型被忽略", func(t *testing.T) {
		w := serve(r, multipartRequest(t, "/agregar_habitacion", roomFields("402"), "plano.pdf", []byte("pdf")))
		resp := decodeRoom(t, w)
		require.Equal(t, 0, resp.Code)
		assert.Nil(t, resp.Data.Imagen)
		assert.Len(t, uploader.Files, 1)
	})
}

func TestRoomHandler_EditAndDelete(t *testing.T) {
	r, db, uploader := setupRouter(t)

	resp := decodeRoom(t, serve(r, multipartRequest(t, "/agregar_habitacion", roomFields("501"), "a.jpg", []byte("jpg"))))
	require.Equal(t, 0, resp.Code)
	id := resp.Data.ID
	original := *resp.Data.Imagen

	t.Run("编辑表单", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/editar_habitacion/%d", id), nil))
		var form struct {
			Code int      `json:"code"`
			Data EditForm `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))
		assert.Equal(t, "501", form.Data.Habitacion.Numero)
		assert.ElementsMatch(t, models.RoomTypes, form.Data.Opciones.Tipos)

		w = serve(r, httptest.NewRequest(http.MethodGet, "/editar_habitacion/999", nil))
		assert.Equal(t, errors.ErrRoomNotFound.Code, decodeRoom(t, w).Code)
	})

	t.Run("不上传图片时保留原图", func(t *testing.T) {
		fields := roomFields("501")
		fields["precio_noche"] = "300000"
		resp := decodeRoom(t, serve(r, multipartRequest(t, fmt.Sprintf("/editar_habitacion/%d", id), fields, "", nil)))
		require.Equal(t, 0, resp.Code, resp.Message)
		assert.Equal(t, 300000.0, resp.Data.PrecioNoche)
		require.NotNil(t, resp.Data.Imagen)
		assert.Equal(t, original, *resp.Data.Imagen)
	})

	t.Run("设置状态", func(t *testing.T) {
		form := url.Values{"estado": {string(models.RoomStatusCleaning)}}
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/cambiar_estado_habitacion/%d", id), strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		assert.Equal(t, 0, decodeRoom(t, serve(r, req)).Code)

		form.Set("estado", "Rota")
		req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/cambiar_estado_habitacion/%d", id), strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		assert.Equal(t, errors.ErrInvalidRoomStatus.Code, decodeRoom(t, serve(r, req)).Code)
	})

	t.Run("列表筛选", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/habitaciones?estado=Limpieza", nil))
		var list struct {
			Data struct {
				List []RoomView `json:"list"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list.Data.List, 1)
		assert.NotEmpty(t, list.Data.List[0].ImagenURL)
	})

	t.Run("删除房间同时删除图片", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/eliminar_habitacion/%d", id), nil))
		assert.Equal(t, MessageDeleted, decodeRoom(t, w).Message)
		assert.Empty(t, uploader.Files)

		var n int64
		require.NoError(t, db.Model(&models.Room{}).Count(&n).Error)
		assert.Zero(t, n)
	})
}

func TestCreateForm(t *testing.T) {
	r, _, _ := setupRouter(t)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/agregar_habitacion", nil))
	var resp struct {
		Data roomService.FormOptions `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.RoomStatuses, resp.Data.Estados)
}
