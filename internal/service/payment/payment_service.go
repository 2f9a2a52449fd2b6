// Package payment 提供付款台账服务
package payment

import (
	"context"
	stderrors "errors"
	"math"
	"strconv"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/common/metrics"
	"github.com/dumeirei/hotel-management/internal/common/tracing"
	"github.com/dumeirei/hotel-management/internal/common/utils"
	"github.com/dumeirei/hotel-management/internal/models"
	"github.com/dumeirei/hotel-management/internal/repository"
)

// 业务提示
var (
	ErrAmountMethodRequired = errors.ErrMissingFields.WithMessage("Monto y método de pago son obligatorios.")
	ErrAmountNotNumeric     = errors.ErrInvalidAmount.WithMessage("El monto debe ser un número válido.")
	ErrStatusRequired       = errors.ErrInvalidParams.WithMessage("Estado no especificado.")
)

// 成功提示
const (
	MessageRegistered = "Pago registrado exitosamente."
	MessageUpdated    = "Pago actualizado exitosamente."
)

// PaymentService 付款服务
type PaymentService struct {
	db           *gorm.DB
	payments     *repository.PaymentRepository
	reservations *repository.ReservationRepository
	metrics      *metrics.Metrics
}

// NewPaymentService 创建付款服务
func NewPaymentService(db *gorm.DB, m *metrics.Metrics) *PaymentService {
	return &PaymentService{
		db:           db,
		payments:     repository.NewPaymentRepository(db),
		reservations: repository.NewReservationRepository(db),
		metrics:      m,
	}
}

// ListRequest 付款列表筛选
type ListRequest struct {
	Estado string `form:"estado" json:"estado"`
	Metodo string `form:"metodo" json:"metodo"`
}

// UpsertRequest 登记付款请求，金额保留原始文本以区分缺失与非数字
type UpsertRequest struct {
	Monto      string `form:"monto" json:"monto"`
	Metodo     string `form:"metodo" json:"metodo"`
	Estado     string `form:"estado" json:"estado"`
	Referencia string `form:"referencia" json:"referencia"`
	Notas      string `form:"notas" json:"notas"`
}

// FormData 登记付款表单数据
type FormData struct {
	Reserva *models.ReservationDetail `json:"reserva"`
	Pago    *models.Payment           `json:"pago,omitempty"`
	Estados []models.PaymentStatus    `json:"estados"`
}

// UpsertResult 登记结果
type UpsertResult struct {
	Payment *models.Payment `json:"pago"`
	Created bool            `json:"creado"`
}

// Message 返回对应的成功提示
func (r *UpsertResult) Message() string {
	if r.Created {
		return MessageRegistered
	}
	return MessageUpdated
}

// List 按状态与付款方式筛选，按日期降序
func (s *PaymentService) List(ctx context.Context, req *ListRequest) ([]*models.PaymentDetail, error) {
	details, err := s.payments.List(ctx, repository.PaymentFilter{
		Estado: models.PaymentStatus(utils.Sanitize(req.Estado)),
		Metodo: utils.Sanitize(req.Metodo),
	})
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return details, nil
}

// GetFormData 返回预订（含客户）及其当前付款
func (s *PaymentService) GetFormData(ctx context.Context, reservaID int64) (*FormData, error) {
	detail, err := s.reservations.GetDetail(ctx, reservaID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	data := &FormData{Reserva: detail, Estados: models.PaymentStatuses}
	payment, err := s.payments.GetByReservationID(ctx, reservaID)
	switch {
	case err == nil:
		data.Pago = payment
	case !stderrors.Is(err, gorm.ErrRecordNotFound):
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return data, nil
}

// Upsert 登记预订付款：先确认预订存在再校验字段；已有付款则更新并将日期重置为今天，否则新建
func (s *PaymentService) Upsert(ctx context.Context, reservaID int64, req *UpsertRequest) (*UpsertResult, error) {
	ctx, span := tracing.Start(ctx, "payment.Upsert", tracing.WithReservationID(reservaID))
	defer span.End()

	result := &UpsertResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservation, err := repository.NewReservationRepository(tx).GetByID(ctx, reservaID)
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.ErrReservationNotFound
			}
			return err
		}

		payment, err := buildPayment(req)
		if err != nil {
			return err
		}
		result.Payment = payment

		payment.ReservaID = reservaID
		payment.ClienteID = reservation.ClienteID
		payment.Fecha = utils.Today()

		payments := repository.NewPaymentRepository(tx)
		n, err := payments.UpdateByReservationID(ctx, reservaID, payment)
		if err != nil {
			return err
		}
		if n > 0 {
			existing, err := payments.GetByReservationID(ctx, reservaID)
			if err != nil {
				return err
			}
			result.Payment = existing
			return nil
		}

		result.Created = true
		return payments.Create(ctx, payment)
	})
	if err != nil {
		tracing.SetError(ctx, err)
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	s.metrics.RecordPayment(result.Payment.Metodo, string(result.Payment.Estado))
	span.SetAttributes(tracing.WithPaymentID(result.Payment.ID))
	logger.Info("付款已登记",
		logger.PaymentID(result.Payment.ID),
		logger.ReservationID(reservaID),
		logger.Bool("created", result.Created),
	)
	return result, nil
}

// SetStatus 设置付款状态，仅接受 Pendiente/Completado/Cancelado
func (s *PaymentService) SetStatus(ctx context.Context, id int64, estado string) error {
	status := models.PaymentStatus(utils.Sanitize(estado))
	if status == "" {
		return ErrStatusRequired
	}
	if !status.Valid() {
		return errors.ErrInvalidPaymentStatus
	}

	payment, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.payments.UpdateStatus(ctx, id, status); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	s.metrics.RecordPayment(payment.Metodo, string(status))
	logger.Info("付款状态已变更", logger.PaymentID(id), logger.Estado(string(status)))
	return nil
}

// Delete 删除付款，已完成的付款不可删除
func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	payment, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if payment.Estado == models.PaymentStatusCompleted {
		return errors.ErrCannotDeleteCompleted
	}
	if err := s.payments.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	logger.Info("付款已删除", logger.PaymentID(id), logger.ReservationID(payment.ReservaID))
	return nil
}

func (s *PaymentService) get(ctx context.Context, id int64) (*models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrPaymentNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return payment, nil
}

func buildPayment(req *UpsertRequest) (*models.Payment, error) {
	rawAmount := utils.Sanitize(req.Monto)
	metodo := utils.Sanitize(req.Metodo)
	if rawAmount == "" || metodo == "" {
		return nil, ErrAmountMethodRequired
	}

	monto, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil || math.IsNaN(monto) || math.IsInf(monto, 0) {
		return nil, ErrAmountNotNumeric
	}
	if monto <= 0 {
		return nil, errors.ErrInvalidAmount
	}

	estado := models.PaymentStatus(utils.Sanitize(req.Estado))
	if estado == "" {
		estado = models.PaymentStatusPending
	}
	if !estado.Valid() {
		return nil, errors.ErrInvalidPaymentStatus
	}

	return &models.Payment{
		Monto:      monto,
		Metodo:     metodo,
		Estado:     estado,
		Referencia: utils.Sanitize(req.Referencia),
		Notas:      utils.Sanitize(req.Notas),
	}, nil
}
