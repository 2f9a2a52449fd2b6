// Package customer 提供客户档案服务
package customer

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/common/database"
	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/common/utils"
	"github.com/dumeirei/hotel-management/internal/models"
	"github.com/dumeirei/hotel-management/internal/repository"
)

// MinNameLength 客户姓名最小长度
const MinNameLength = 2

// ErrNameTooShort 姓名过短
var ErrNameTooShort = errors.ErrInvalidParams.WithMessage("El nombre debe tener al menos 2 caracteres.")

// CustomerService 客户服务
type CustomerService struct {
	repo *repository.CustomerRepository
}

// NewCustomerService 创建客户服务
func NewCustomerService(repo *repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// CreateRequest 新建客户请求
type CreateRequest struct {
	Nombre         string `form:"nombre" json:"nombre"`
	Identificacion string `form:"identificacion" json:"identificacion"`
	Direccion      string `form:"direccion" json:"direccion"`
	Correo         string `form:"correo" json:"correo"`
	Telefono       string `form:"telefono" json:"telefono"`
}

// ListRequest 客户列表筛选
type ListRequest struct {
	Termino string `form:"termino" json:"termino"`
	Campo   string `form:"campo" json:"campo"`
}

// List 按字段筛选客户，campo 为空时视为全部字段
func (s *CustomerService) List(ctx context.Context, req *ListRequest) ([]*models.Customer, error) {
	field := models.CustomerSearchField(req.Campo)
	if field == "" {
		field = models.CustomerFieldAll
	}
	customers, err := s.repo.List(ctx, repository.CustomerFilter{
		Term:  utils.Sanitize(req.Termino),
		Field: field,
	})
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return customers, nil
}

// Create 校验并新建客户，返回新客户
func (s *CustomerService) Create(ctx context.Context, req *CreateRequest) (*models.Customer, error) {
	customer := &models.Customer{
		Nombre:         utils.Sanitize(req.Nombre),
		Identificacion: utils.Sanitize(req.Identificacion),
		Direccion:      utils.Sanitize(req.Direccion),
		Correo:         utils.Sanitize(req.Correo),
		Telefono:       utils.Sanitize(req.Telefono),
	}

	if len([]rune(customer.Nombre)) < MinNameLength {
		return nil, ErrNameTooShort
	}
	if !utils.ValidateEmail(customer.Correo) {
		return nil, errors.ErrInvalidEmail
	}
	if !utils.ValidatePhone(customer.Telefono) {
		return nil, errors.ErrInvalidPhone
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, errors.ErrDuplicateIdentification
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("客户已创建", logger.CustomerID(customer.ID))
	return customer, nil
}

// Get 获取客户
func (s *CustomerService) Get(ctx context.Context, id int64) (*models.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCustomerNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return customer, nil
}

// Delete 删除客户；不存在时无操作，不级联预订
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	logger.Info("客户已删除", logger.CustomerID(id))
	return nil
}

// SearchByName 按姓名子串搜索，空搜索词匹配全部
func (s *CustomerService) SearchByName(ctx context.Context, term string) ([]*models.Customer, error) {
	customers, err := s.repo.SearchByName(ctx, utils.Sanitize(term))
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return customers, nil
}

// SearchForReservation 按姓名或证件号搜索，用于选择预订客户
func (s *CustomerService) SearchForReservation(ctx context.Context, term string) ([]*models.Customer, error) {
	customers, err := s.repo.SearchByNameOrIdentification(ctx, utils.Sanitize(term))
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return customers, nil
}
