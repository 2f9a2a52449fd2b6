package customer

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-management/internal/common/database"
	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/repository"
)

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

func newService(t *testing.T) *CustomerService {
	t.Helper()
	return NewCustomerService(repository.NewCustomerRepository(setupTestDB(t)))
}

func validRequest(nombre, identificacion string) *CreateRequest {
	return &CreateRequest{
		Nombre:         nombre,
		Identificacion: identificacion,
		Direccion:      "Calle 1 # 2-3",
		Correo:         "a@b.com",
		Telefono:       "3001234567",
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	t.Run("创建成功并清洗输入", func(t *testing.T) {
		req := validRequest(` "Ana" <b>`, "123")
		c, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Positive(t, c.ID)
		assert.Equal(t, "Ana b", c.Nombre)
	})

	t.Run("证件号重复", func(t *testing.T) {
		_, err := svc.Create(ctx, validRequest("Otra Ana", "123"))
		assert.True(t, errors.Is(err, errors.ErrDuplicateIdentification))
	})

	tests := []struct {
		name   string
		mutate func(r *CreateRequest)
		want   *errors.AppError
	}{
		{"姓名过短", func(r *CreateRequest) { r.Nombre = "A" }, ErrNameTooShort},
		{"邮箱无效", func(r *CreateRequest) { r.Correo = "sin-arroba" }, errors.ErrInvalidEmail},
		{"电话无效", func(r *CreateRequest) { r.Telefono = "12-34" }, errors.ErrInvalidPhone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest("Beto", "999")
			tt.mutate(req)
			_, err := svc.Create(ctx, req)
			require.Error(t, err)
			assert.Equal(t, tt.want.Message, errors.GetAppError(err).Message)
		})
	}
}

func TestListAndSearch(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Create(ctx, validRequest("Beto", "200"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validRequest("Ana", "123"))
	require.NoError(t, err)
	carla := validRequest("Carla", "300")
	carla.Correo = "carla@hotel.co"
	carla.Direccion = "Avenida Norte"
	_, err = svc.Create(ctx, carla)
	require.NoError(t, err)

	t.Run("默认按姓名排序", func(t *testing.T) {
		list, err := svc.List(ctx, &ListRequest{})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"Ana", "Beto", "Carla"}, []string{list[0].Nombre, list[1].Nombre, list[2].Nombre})
	})

	t.Run("按字段筛选", func(t *testing.T) {
		list, err := svc.List(ctx, &ListRequest{Termino: "hotel.co", Campo: "correo"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Carla", list[0].Nombre)

		list, err = svc.List(ctx, &ListRequest{Termino: "20", Campo: "identificacion"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Beto", list[0].Nombre)
	})

	t.Run("全部字段包含地址", func(t *testing.T) {
		list, err := svc.List(ctx, &ListRequest{Termino: "norte", Campo: "todos"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Carla", list[0].Nombre)
	})

	t.Run("姓名搜索", func(t *testing.T) {
		list, err := svc.SearchByName(ctx, "ar")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Carla", list[0].Nombre)
	})

	t.Run("预订客户搜索匹配证件号", func(t *testing.T) {
		list, err := svc.SearchForReservation(ctx, "123")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Ana", list[0].Nombre)
	})
}

func TestGetAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	c, err := svc.Create(ctx, validRequest("Ana", "123"))
	require.NoError(t, err)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Nombre)

	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err = svc.Get(ctx, c.ID)
	assert.True(t, errors.Is(err, errors.ErrCustomerNotFound))

	// 不存在的 ID 删除为无操作
	assert.NoError(t, svc.Delete(ctx, 12345))
}

func TestStoreFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "clientes"`).WillReturnError(assert.AnError)

	svc := NewCustomerService(repository.NewCustomerRepository(db))
	_, err = svc.List(context.Background(), &ListRequest{})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	assert.Equal(t, errors.ErrDatabaseError.Code, appErr.Code)
	assert.ErrorIs(t, appErr, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
