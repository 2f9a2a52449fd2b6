package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-management/internal/common/database"
	"github.com/dumeirei/hotel-management/internal/models"
)

// setupTestDB 创建内存测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// createTestCustomer 创建测试客户
func createTestCustomer(t *testing.T, db *gorm.DB, nombre, identificacion string) *models.Customer {
	customer := &models.Customer{
		Nombre:         nombre,
		Identificacion: identificacion,
		Direccion:      "Calle 10 #20-30",
		Correo:         "cliente@example.com",
		Telefono:       "3001234567",
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

// createTestRoom 创建测试房间
func createTestRoom(t *testing.T, db *gorm.DB, numero string, estado models.RoomStatus) *models.Room {
	room := &models.Room{
		Numero:      numero,
		Tipo:        models.RoomTypeDouble,
		Capacidad:   2,
		PrecioNoche: 120000,
		Estado:      estado,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

// createTestReservation 创建测试预订
func createTestReservation(t *testing.T, db *gorm.DB, customer *models.Customer, habitacion, entrada string) *models.Reservation {
	reservation := &models.Reservation{
		ClienteID:    customer.ID,
		Habitacion:   habitacion,
		FechaEntrada: entrada,
		FechaSalida:  entrada,
		NumPersonas:  2,
		PrecioTotal:  240000,
		Estado:       models.ReservationStatusConfirmed,
	}
	require.NoError(t, db.Create(reservation).Error)
	return reservation
}
