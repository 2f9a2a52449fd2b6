package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/models"
)

func TestPaymentRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	customer := createTestCustomer(t, db, "Ana", "100")
	reservation := createTestReservation(t, db, customer, "101", "2026-03-01")

	payment := models.NewAutoPayment(reservation, "2026-02-20")
	require.NoError(t, repo.Create(ctx, payment))
	assert.NotZero(t, payment.ID)

	found, err := repo.GetByReservationID(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, found.ID)
	assert.Equal(t, "RES-1", found.Referencia)
	assert.Equal(t, models.PaymentMethodPending, found.Metodo)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.GetByReservationID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPaymentRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	customer := createTestCustomer(t, db, "Ana Gómez", "100")
	r1 := createTestReservation(t, db, customer, "101", "2026-03-01")
	r2 := createTestReservation(t, db, customer, "102", "2026-03-05")

	p1 := models.NewAutoPayment(r1, "2026-02-01")
	p2 := models.NewAutoPayment(r2, "2026-02-15")
	p2.Metodo = "Tarjeta"
	p2.Estado = models.PaymentStatusCompleted
	require.NoError(t, db.Create(p1).Error)
	require.NoError(t, db.Create(p2).Error)

	// 关联预订不存在的付款不出现在列表中
	orphan := &models.Payment{ReservaID: 9999, ClienteID: customer.ID, Monto: 1, Fecha: "2026-02-20", Metodo: "Efectivo"}
	require.NoError(t, db.Create(orphan).Error)

	all, err := repo.List(ctx, PaymentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, p2.ID, all[0].ID)
	assert.Equal(t, "Ana Gómez", all[0].ClienteNombre)
	assert.Equal(t, "102", all[0].Habitacion)
	assert.Equal(t, "2026-03-05", all[0].FechaEntrada)

	completed, err := repo.List(ctx, PaymentFilter{Estado: models.PaymentStatusCompleted})
	require.NoError(t, err)
	assert.Len(t, completed, 1)

	byMethod, err := repo.List(ctx, PaymentFilter{Metodo: models.PaymentMethodPending})
	require.NoError(t, err)
	require.Len(t, byMethod, 1)
	assert.Equal(t, p1.ID, byMethod[0].ID)
}

func TestPaymentRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	customer := createTestCustomer(t, db, "Ana", "100")
	reservation := createTestReservation(t, db, customer, "101", "2026-03-01")
	payment := models.NewAutoPayment(reservation, "2026-02-01")
	require.NoError(t, db.Create(payment).Error)

	affected, err := repo.UpdateByReservationID(ctx, reservation.ID, &models.Payment{
		Monto:      100000,
		Metodo:     "Efectivo",
		Estado:     models.PaymentStatusCompleted,
		Referencia: "",
		Notas:      "abono",
		Fecha:      "2026-02-10",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	found, err := repo.GetByID(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, 100000.0, found.Monto)
	assert.Equal(t, "Efectivo", found.Metodo)
	assert.Empty(t, found.Referencia)
	assert.Equal(t, "2026-02-10", found.Fecha)

	require.NoError(t, repo.UpdateStatus(ctx, payment.ID, models.PaymentStatusCancelled))
	require.NoError(t, repo.UpdateAmount(ctx, payment.ID, 5))
	found, err = repo.GetByID(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCancelled, found.Estado)
	assert.Equal(t, 5.0, found.Monto)
}

func TestPaymentRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	customer := createTestCustomer(t, db, "Ana", "100")
	reservation := createTestReservation(t, db, customer, "101", "2026-03-01")
	p1 := models.NewAutoPayment(reservation, "2026-02-01")
	p2 := models.NewAutoPayment(reservation, "2026-02-02")
	require.NoError(t, db.Create(p1).Error)
	require.NoError(t, db.Create(p2).Error)

	require.NoError(t, repo.Delete(ctx, p1.ID))
	deleted, err := repo.DeleteByReservationID(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
