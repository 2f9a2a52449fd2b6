package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-management/internal/common/database"
	"github.com/dumeirei/hotel-management/internal/middleware"
	"github.com/dumeirei/hotel-management/internal/models"
	reportService "github.com/dumeirei/hotel-management/internal/service/report"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
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
	_, err = database.SeedRooms(db)
	require.NoError(t, err)

	customer := &models.Customer{Nombre: "Ana", Identificacion: "123"}
	require.NoError(t, db.Create(customer).Error)
	reservation := &models.Reservation{
		ClienteID:    customer.ID,
		Habitacion:   "201",
		FechaEntrada: "2026-06-01",
		FechaSalida:  "2026-06-03",
		NumPersonas:  2,
		PrecioTotal:  500000,
		Estado:       models.ReservationStatusConfirmed,
	}
	require.NoError(t, db.Create(reservation).Error)
	require.NoError(t, db.Create(&models.Payment{
		ReservaID: reservation.ID,
		ClienteID: customer.ID,
		Monto:     500000,
		Fecha:     "2026-05-20",
		Metodo:    models.PaymentMethodPending,
		Estado:    models.PaymentStatusPending,
	}).Error)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, int64(1))
		c.Set(middleware.ContextKeyUsername, "admin")
		c.Next()
	})
	NewHandler(reportService.NewReportService(db)).RegisterRoutes(r)
	return r, db
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code)
	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Code, resp.Message)
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func TestDashboard(t *testing.T) {
	r, _ := setupRouter(t)

	var data reportService.Dashboard
	decode(t, get(r, "/"), &data)
	assert.Equal(t, "admin", data.Username)
	assert.Equal(t, int64(1), data.TotalClientes)
	assert.Equal(t, int64(1), data.ReservasActivas)
	assert.Equal(t, int64(6), data.HabitacionesDisponibles)
}

func TestReports(t *testing.T) {
	r, _ := setupRouter(t)

	var summary reportService.Summary
	decode(t, get(r, "/reportes"), &summary)
	assert.Equal(t, int64(1), summary.TotalReservas)
	assert.Equal(t, int64(6), summary.TotalHabitaciones)
	assert.Zero(t, summary.IngresosTotales)

	var occupancy reportService.Occupancy
	decode(t, get(r, "/reporte_ocupacion"), &occupancy)
	require.Len(t, occupancy.PorTipo, 1)
	assert.Equal(t, models.RoomTypeDouble, occupancy.PorTipo[0].Tipo)

	var financial reportService.Financial
	decode(t, get(r, "/reporte_financiero"), &financial)
	require.Len(t, financial.PagosPendientes, 1)
	assert.Equal(t, "Ana", financial.PagosPendientes[0].Cliente)
}

func TestExportFinancial(t *testing.T) {
	r, _ := setupRouter(t)

	w := get(r, "/reporte_financiero/exportar")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, reportService.XLSXContentType, w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="reporte_financiero_`))
	assert.True(t, strings.HasSuffix(disposition, `.xlsx"`))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportService.SheetPending)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2026-05-20", "Ana", "201", "500000"}, rows[1])
}

func TestOperations(t *testing.T) {
	r, db := setupRouter(t)
	for _, action := range []string{"agregar", "eliminar"} {
		require.NoError(t, db.Create(&models.OperationLog{
			UserID:   1,
			Username: "admin",
			Module:   "clientes",
			Action:   action,
			Method:   http.MethodPost,
			Path:     "/" + action,
			IP:       "127.0.0.1",
		}).Error)
	}

	var list struct {
		List  []models.OperationLog `json:"list"`
		Total int64                 `json:"total"`
	}
	decode(t, get(r, "/operaciones"), &list)
	require.Equal(t, int64(2), list.Total)
	assert.Equal(t, "eliminar", list.List[0].Action)
}
