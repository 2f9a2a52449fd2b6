package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/models"
)

// PaymentRepository 付款仓储
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建付款仓储
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// PaymentFilter 付款列表筛选条件
type PaymentFilter struct {
	Estado models.PaymentStatus
	Metodo string
}

// Create 创建付款
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// GetByID 根据 ID 获取付款
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetByReservationID 获取预订的付款
func (r *PaymentRepository) GetByReservationID(ctx context.Context, reservaID int64) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("reserva_id = ?", reservaID).
		Order("id ASC").
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// List 获取付款列表，按日期降序
func (r *PaymentRepository) List(ctx context.Context, filter PaymentFilter) ([]*models.PaymentDetail, error) {
	var details []*models.PaymentDetail

	query := r.db.WithContext(ctx).
		Table("pagos AS p").
		Select("p.*, c.nombre AS cliente_nombre, r.habitacion, r.fecha_entrada, r.fecha_salida").
		Joins("JOIN clientes c ON p.cliente_id = c.id").
		Joins("JOIN reservas r ON p.reserva_id = r.id")
	if filter.Estado != "" {
		query = query.Where("p.estado = ?", filter.Estado)
	}
	if filter.Metodo != "" {
		query = query.Where("p.metodo = ?", filter.Metodo)
	}

	if err := query.Order("p.fecha DESC").Order("p.id DESC").Find(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// UpdateByReservationID 更新预订的付款信息
func (r *PaymentRepository) UpdateByReservationID(ctx context.Context, reservaID int64, payment *models.Payment) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("reserva_id = ?", reservaID).
		Select("monto", "metodo", "estado", "referencia", "notas", "fecha").
		Updates(payment)
	return result.RowsAffected, result.Error
}

// UpdateStatus 更新付款状态
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, estado models.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		Update("estado", estado).Error
}

// UpdateAmount 更新付款金额
func (r *PaymentRepository) UpdateAmount(ctx context.Context, id int64, monto float64) error {
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		Update("monto", monto).Error
}

// Delete 删除付款
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Payment{}, id).Error
}

// DeleteByReservationID 删除预订的全部付款
func (r *PaymentRepository) DeleteByReservationID(ctx context.Context, reservaID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("reserva_id = ?", reservaID).Delete(&models.Payment{})
	return result.RowsAffected, result.Error
}

// Count 付款总数
func (r *PaymentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).Count(&count).Error
	return count, err
}
