package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/models"
)

// ReservationRepository 预订仓储
type ReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository 创建预订仓储
func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// ReservationFilter 预订列表筛选条件
type ReservationFilter struct {
	Term       string
	Estado     models.ReservationStatus
	FechaDesde string
	FechaHasta string
}

// reservationDetailColumns 预订列表查询列
const reservationDetailColumns = "r.*, c.nombre AS cliente_nombre, c.telefono AS cliente_telefono, " +
	"p.estado AS estado_pago, p.monto AS monto_pago, p.metodo AS metodo_pago"

// Create 创建预订
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// GetByID 根据 ID 获取预订
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// detailQuery 预订关联客户与付款的基础查询
func (r *ReservationRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("reservas AS r").
		Select(reservationDetailColumns).
		Joins("JOIN clientes c ON r.cliente_id = c.id").
		Joins("LEFT JOIN pagos p ON r.id = p.reserva_id")
}

// GetDetail 获取预订详情（含客户与付款信息）
func (r *ReservationRepository) GetDetail(ctx context.Context, id int64) (*models.ReservationDetail, error) {
	var details []*models.ReservationDetail
	err := r.detailQuery(ctx).Where("r.id = ?", id).Limit(1).Find(&details).Error
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return details[0], nil
}

// List 获取预订列表，按入住日期升序
func (r *ReservationRepository) List(ctx context.Context, filter ReservationFilter) ([]*models.ReservationDetail, error) {
	var details []*models.ReservationDetail

	query := r.detailQuery(ctx)
	if filter.Term != "" {
		like := likeLower(filter.Term)
		query = query.Where(
			"(LOWER(c.nombre) LIKE ? OR LOWER(c.identificacion) LIKE ? OR LOWER(r.habitacion) LIKE ?)",
			like, like, like,
		)
	}
	if filter.Estado != "" {
		query = query.Where("r.estado = ?", filter.Estado)
	}
	if filter.FechaDesde != "" {
		query = query.Where("r.fecha_entrada >= ?", filter.FechaDesde)
	}
	if filter.FechaHasta != "" {
		query = query.Where("r.fecha_entrada <= ?", filter.FechaHasta)
	}

	if err := query.Order("r.fecha_entrada ASC").Find(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// UpdateStatus 更新预订状态
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, estado models.ReservationStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("estado", estado)
	return result.RowsAffected, result.Error
}

// Delete 删除预订
func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Reservation{}, id).Error
}

// Count 预订总数
func (r *ReservationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).Count(&count).Error
	return count, err
}

// CountByStatuses 指定状态的预订数
func (r *ReservationRepository) CountByStatuses(ctx context.Context, statuses ...models.ReservationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).Where("estado IN ?", statuses).Count(&count).Error
	return count, err
}

// ListWithoutPayment 获取没有关联付款的预订
func (r *ReservationRepository) ListWithoutPayment(ctx context.Context) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM pagos p WHERE p.reserva_id = reservas.id)").
		Order("id ASC").
		Find(&reservations).Error
	return reservations, err
}
