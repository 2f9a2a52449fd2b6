// Package payment 付款服务单元测试
package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-management/internal/common/database"
	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/common/utils"
	"github.com/dumeirei/hotel-management/internal/models"
)

// setupTestDB 创建测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

// testPaymentService 测试用付款服务
type testPaymentService struct {
	*PaymentService
	db *gorm.DB
}

func setupTestPaymentService(t *testing.T) *testPaymentService {
	db := setupTestDB(t)
	return &testPaymentService{PaymentService: NewPaymentService(db, nil), db: db}
}

// createReservation 创建客户与预订，withPayment 时附带自动付款
func createReservation(t *testing.T, db *gorm.DB, nombre, habitacion string, withPayment bool) *models.Reservation {
	t.Helper()
	customer := &models.Customer{Nombre: nombre, Identificacion: nombre + "-id"}
	require.NoError(t, db.Create(customer).Error)

	r := &models.Reservation{
		ClienteID:    customer.ID,
		Habitacion:   habitacion,
		FechaEntrada: "2026-05-01",
		FechaSalida:  "2026-05-02",
		NumPersonas:  1,
		PrecioTotal:  120000,
		Estado:       models.ReservationStatusConfirmed,
	}
	require.NoError(t, db.Create(r).Error)
	if withPayment {
		p := models.NewAutoPayment(r, "2026-04-01")
		require.NoError(t, db.Create(p).Error)
	}
	return r
}

func TestPaymentService_Upsert(t *testing.T) {
	svc := setupTestPaymentService(t)
	ctx := context.Background()

	t.Run("无付款时新建", func(t *testing.T) {
		r := createReservation(t, svc.db, "Ana", "101", false)
		res, err := svc.Upsert(ctx, r.ID, &UpsertRequest{Monto: "120000", Metodo: "Efectivo", Estado: "Completado"})
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, MessageRegistered, res.Message())
		assert.Equal(t, r.ClienteID, res.Payment.ClienteID)
		assert.Equal(t, utils.Today(), res.Payment.Fecha)
		assert.Equal(t, models.PaymentStatusCompleted, res.Payment.Estado)
	})

	t.Run("已有付款时更新并重置日期", func(t *testing.T) {
		r := createReservation(t, svc.db, "Beto", "102", true)
		res, err := svc.Upsert(ctx, r.ID, &UpsertRequest{
			Monto:      "99000.5",
			Metodo:     "Tarjeta",
			Referencia: "VOUCHER-9",
			Notas:      "Pago parcial",
		})
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, MessageUpdated, res.Message())

		var payments []models.Payment
		require.NoError(t, svc.db.Where("reserva_id = ?", r.ID).Find(&payments).Error)
		require.Len(t, payments, 1)
		assert.Equal(t, 99000.5, payments[0].Monto)
		assert.Equal(t, "Tarjeta", payments[0].Metodo)
		assert.Equal(t, models.PaymentStatusPending, payments[0].Estado)
		assert.Equal(t, "VOUCHER-9", payments[0].Referencia)
		assert.Equal(t, utils.Today(), payments[0].Fecha)
		assert.Equal(t, payments[0].ID, res.Payment.ID)
	})

	t.Run("预订不存在", func(t *testing.T) {
		_, err := svc.Upsert(ctx, 999, &UpsertRequest{Monto: "10", Metodo: "Efectivo"})
		assert.True(t, errors.Is(err, errors.ErrReservationNotFound))

		_, err = svc.Upsert(ctx, 999, &UpsertRequest{})
		assert.True(t, errors.Is(err, errors.ErrReservationNotFound))
	})

	tests := []struct {
		name string
		req  UpsertRequest
		want *errors.AppError
	}{
		{"缺少金额", UpsertRequest{Metodo: "Efectivo"}, ErrAmountMethodRequired},
		{"缺少方式", UpsertRequest{Monto: "100"}, ErrAmountMethodRequired},
		{"金额非数字", UpsertRequest{Monto: "cien", Metodo: "Efectivo"}, ErrAmountNotNumeric},
		{"金额为 NaN", UpsertRequest{Monto: "NaN", Metodo: "Efectivo"}, ErrAmountNotNumeric},
		{"金额为 Inf", UpsertRequest{Monto: "Inf", Metodo: "Efectivo"}, ErrAmountNotNumeric},
		{"金额为 -Infinity", UpsertRequest{Monto: "-Infinity", Metodo: "Efectivo"}, ErrAmountNotNumeric},
		{"金额为零", UpsertRequest{Monto: "0", Metodo: "Efectivo"}, errors.ErrInvalidAmount},
		{"金额为负", UpsertRequest{Monto: "-5", Metodo: "Efectivo"}, errors.ErrInvalidAmount},
		{"状态无效", UpsertRequest{Monto: "5", Metodo: "Efectivo", Estado: "Pagado"}, errors.ErrInvalidPaymentStatus},
	}
	r := createReservation(t, svc.db, "Carla", "201", false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.Upsert(ctx, r.ID, &req)
			require.Error(t, err)
			appErr := errors.GetAppError(err)
			assert.Equal(t, tt.want.Code, appErr.Code)
			assert.Equal(t, tt.want.Message, appErr.Message)
		})
	}

	var n int64
	require.NoError(t, svc.db.Model(&models.Payment{}).Where("reserva_id = ?", r.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPaymentService_SetStatusAndDelete(t *testing.T) {
	svc := setupTestPaymentService(t)
	ctx := context.Background()

	r := createReservation(t, svc.db, "Ana", "101", true)
	form, err := svc.GetFormData(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, form.Pago)
	assert.Equal(t, "Ana", form.Reserva.ClienteNombre)
	id := form.Pago.ID

	t.Run("状态校验", func(t *testing.T) {
		assert.True(t, errors.Is(svc.SetStatus(ctx, id, ""), ErrStatusRequired))
		assert.True(t, errors.Is(svc.SetStatus(ctx, id, "Completada"), errors.ErrInvalidPaymentStatus))
		assert.True(t, errors.Is(svc.SetStatus(ctx, 999, "Cancelado"), errors.ErrPaymentNotFound))
	})

	t.Run("已完成的付款不可删除", func(t *testing.T) {
		require.NoError(t, svc.SetStatus(ctx, id, "Completado"))
		err := svc.Delete(ctx, id)
		assert.True(t, errors.Is(err, errors.ErrCannotDeleteCompleted))

		var p models.Payment
		require.NoError(t, svc.db.First(&p, id).Error)
		assert.Equal(t, models.PaymentStatusCompleted, p.Estado)
	})

	t.Run("取消后可删除", func(t *testing.T) {
		require.NoError(t, svc.SetStatus(ctx, id, "Cancelado"))
		require.NoError(t, svc.Delete(ctx, id))
		assert.True(t, errors.Is(svc.Delete(ctx, id), errors.ErrPaymentNotFound))

		form, err := svc.GetFormData(ctx, r.ID)
		require.NoError(t, err)
		assert.Nil(t, form.Pago)
	})

	_, err = svc.GetFormData(ctx, 999)
	assert.True(t, errors.Is(err, errors.ErrReservationNotFound))
}

func TestPaymentService_List(t *testing.T) {
	svc := setupTestPaymentService(t)
	ctx := context.Background()

	a := createReservation(t, svc.db, "Ana", "101", true)
	b := createReservation(t, svc.db, "Beto", "102", false)
	_, err := svc.Upsert(ctx, b.ID, &UpsertRequest{Monto: "50000", Metodo: "Efectivo", Estado: "Completado"})
	require.NoError(t, err)

	list, err := svc.List(ctx, &ListRequest{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	// 今天登记的付款排在 2026-04-01 之前
	assert.Equal(t, "Beto", list[0].ClienteNombre)
	assert.Equal(t, "102", list[0].Habitacion)
	assert.Equal(t, a.ID, list[1].ReservaID)

	list, err = svc.List(ctx, &ListRequest{Estado: "Completado", Metodo: "Efectivo"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Beto", list[0].ClienteNombre)

	list, err = svc.List(ctx, &ListRequest{Metodo: "Tarjeta"})
	require.NoError(t, err)
	assert.Empty(t, list)
}
