package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/models"
)

// CustomerRepository 客户仓储
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// CustomerFilter 客户列表筛选条件
type CustomerFilter struct {
	Term  string
	Field models.CustomerSearchField
}

// Create 创建客户
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetByID 根据 ID 获取客户
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List 获取客户列表，按姓名升序
func (r *CustomerRepository) List(ctx context.Context, filter CustomerFilter) ([]*models.Customer, error) {
	var customers []*models.Customer

	query := r.db.WithContext(ctx).Model(&models.Customer{})
	if filter.Term != "" {
		like := likeLower(filter.Term)
		switch filter.Field {
		case models.CustomerFieldName:
			query = query.Where("LOWER(nombre) LIKE ?", like)
		case models.CustomerFieldIdentification:
			query = query.Where("LOWER(identificacion) LIKE ?", like)
		case models.CustomerFieldEmail:
			query = query.Where("LOWER(correo) LIKE ?", like)
		case models.CustomerFieldPhone:
			query = query.Where("LOWER(telefono) LIKE ?", like)
		default:
			query = query.Where(
				"LOWER(nombre) LIKE ? OR LOWER(identificacion) LIKE ? OR LOWER(correo) LIKE ? OR LOWER(telefono) LIKE ? OR LOWER(direccion) LIKE ?",
				like, like, like, like, like,
			)
		}
	}

	if err := query.Order("nombre ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// SearchByName 按姓名子串搜索
func (r *CustomerRepository) SearchByName(ctx context.Context, term string) ([]*models.Customer, error) {
	var customers []*models.Customer
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre) LIKE ?", likeLower(term)).
		Order("nombre ASC").
		Find(&customers).Error
	return customers, err
}

// SearchByNameOrIdentification 按姓名或证件号子串搜索
func (r *CustomerRepository) SearchByNameOrIdentification(ctx context.Context, term string) ([]*models.Customer, error) {
	var customers []*models.Customer
	like := likeLower(term)
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre) LIKE ? OR LOWER(identificacion) LIKE ?", like, like).
		Order("nombre ASC").
		Find(&customers).Error
	return customers, err
}

// Delete 删除客户，不存在时无操作
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Customer{}, id).Error
}

// Count 客户总数
func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, err
}
