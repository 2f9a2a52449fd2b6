// Package reservation 预订生命周期：创建、删除、入住、退房与快速预订
package reservation

import (
	"context"
	stderrors "errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/common/metrics"
	"github.com/dumeirei/hotel-management/internal/common/tracing"
	"github.com/dumeirei/hotel-management/internal/common/utils"
	"github.com/dumeirei/hotel-management/internal/models"
	"github.com/dumeirei/hotel-management/internal/repository"
	"github.com/dumeirei/hotel-management/internal/service/room"
)

// 预订来源，用于指标
const (
	SourceStaff = "staff"
	SourceQuick = "quick"
)

// 业务提示
var (
	ErrHabitacionRequired = errors.ErrInvalidParams.WithMessage("La habitación es obligatoria.")
	ErrInvalidDate        = errors.ErrInvalidParams.WithMessage("Las fechas deben tener el formato AAAA-MM-DD.")
	ErrInvalidGuests      = errors.ErrInvalidParams.WithMessage("El número de personas debe ser mayor a 0.")
	ErrInvalidPrice       = errors.ErrInvalidParams.WithMessage("El precio total no puede ser negativo.")
	ErrInvalidStatus      = errors.ErrInvalidParams.WithMessage("Estado de reserva no válido.")
)

// ReservationService 预订生命周期协调
type ReservationService struct {
	db           *gorm.DB
	reservations *repository.ReservationRepository
	customers    *repository.CustomerRepository
	rooms        *repository.RoomRepository
	notifier     room.StatusNotifier
	metrics      *metrics.Metrics
	confirmer    Confirmer
}

// Option 服务选项
type Option func(*ReservationService)

// WithStatusNotifier 房间状态变更通知
func WithStatusNotifier(n room.StatusNotifier) Option {
	return func(s *ReservationService) {
		s.notifier = n
	}
}

// WithMetrics 业务指标
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *ReservationService) {
		s.metrics = m
	}
}

// WithConfirmer 快速预订确认通知
func WithConfirmer(c Confirmer) Option {
	return func(s *ReservationService) {
		s.confirmer = c
	}
}

// NewReservationService 创建预订服务
func NewReservationService(db *gorm.DB, opts ...Option) *ReservationService {
	s := &ReservationService{
		db:           db,
		reservations: repository.NewReservationRepository(db),
		customers:    repository.NewCustomerRepository(db),
		rooms:        repository.NewRoomRepository(db),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = room.NewEventNotifier(s.metrics, nil)
	}
	return s
}

// CreateRequest 员工创建预订请求
type CreateRequest struct {
	Habitacion   string  `form:"habitacion" json:"habitacion"`
	FechaEntrada string  `form:"fecha_entrada" json:"fecha_entrada"`
	FechaSalida  string  `form:"fecha_salida" json:"fecha_salida"`
	NumPersonas  int     `form:"num_personas" json:"num_personas"`
	PrecioTotal  float64 `form:"precio_total" json:"precio_total"`
	Estado       string  `form:"estado" json:"estado"`
	Notas        string  `form:"notas" json:"notas"`
}

// ListRequest 预订列表筛选
type ListRequest struct {
	Termino    string `form:"termino" json:"termino"`
	Estado     string `form:"estado" json:"estado"`
	FechaDesde string `form:"fecha_desde" json:"fecha_desde"`
	FechaHasta string `form:"fecha_hasta" json:"fecha_hasta"`
}

// FormData 创建预订表单数据
type FormData struct {
	Cliente      *models.Customer           `json:"cliente"`
	Habitaciones []*models.Room             `json:"habitaciones"`
	Estados      []models.ReservationStatus `json:"estados"`
}

// List 按搜索词、状态与入住日期范围筛选，按入住日期升序
func (s *ReservationService) List(ctx context.Context, req *ListRequest) ([]*models.ReservationDetail, error) {
	details, err := s.reservations.List(ctx, repository.ReservationFilter{
		Term:       utils.Sanitize(req.Termino),
		Estado:     models.ReservationStatus(utils.Sanitize(req.Estado)),
		FechaDesde: utils.Sanitize(req.FechaDesde),
		FechaHasta: utils.Sanitize(req.FechaHasta),
	})
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return details, nil
}

// Get 获取预订详情
func (s *ReservationService) Get(ctx context.Context, id int64) (*models.ReservationDetail, error) {
	detail, err := s.reservations.GetDetail(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return detail, nil
}

// GetFormData 返回客户及可预订房间
func (s *ReservationService) GetFormData(ctx context.Context, clienteID int64) (*FormData, error) {
	customer, err := s.customers.GetByID(ctx, clienteID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCustomerNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	rooms, err := s.rooms.ListByStatus(ctx, models.RoomStatusAvailable, 0)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return &FormData{
		Cliente:      customer,
		Habitaciones: rooms,
		Estados:      models.ReservationStatuses,
	}, nil
}

// Create 在同一事务中写入预订、待付款记录并将房间置为已预订
func (s *ReservationService) Create(ctx context.Context, clienteID int64, req *CreateRequest) (*models.Reservation, error) {
	ctx, span := tracing.Start(ctx, "reservation.Create",
		tracing.WithCustomerID(clienteID),
		tracing.WithOperation("create"),
	)
	defer span.End()

	reservation, err := buildReservation(clienteID, req)
	if err != nil {
		return nil, err
	}

	if _, err := s.customers.GetByID(ctx, clienteID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCustomerNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if err := s.book(ctx, reservation); err != nil {
		tracing.SetError(ctx, err)
		return nil, err
	}

	s.metrics.RecordReservation("create", SourceStaff)
	span.SetAttributes(tracing.WithReservationID(reservation.ID), tracing.WithRoomNumber(reservation.Habitacion))
	logger.Info("预订已创建",
		logger.ReservationID(reservation.ID),
		logger.CustomerID(clienteID),
		logger.RoomNumber(reservation.Habitacion),
	)
	return reservation, nil
}

// book 写入预订与付款并更新房间状态，任一步失败整体回滚
func (s *ReservationService) book(ctx context.Context, reservation *models.Reservation) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return bookTx(ctx, tx, reservation)
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return appErr
		}
		logger.Error("创建预订失败", logger.RoomNumber(reservation.Habitacion), logger.Err(err))
		return errors.ErrCreateFailed.WithError(err)
	}

	s.metrics.RecordPayment(models.PaymentMethodPending, string(models.PaymentStatusPending))
	s.notifier.RoomStatusChanged(ctx, reservation.Habitacion, models.RoomStatusReserved)
	return nil
}

func bookTx(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	rooms := repository.NewRoomRepository(tx)
	if _, err := rooms.GetByNumero(ctx, reservation.Habitacion); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrRoomNotFound
		}
		return err
	}

	if err := repository.NewReservationRepository(tx).Create(ctx, reservation); err != nil {
		return err
	}
	payment := models.NewAutoPayment(reservation, utils.Today())
	if err := repository.NewPaymentRepository(tx).Create(ctx, payment); err != nil {
		return err
	}
	_, err := rooms.UpdateStatusByNumero(ctx, reservation.Habitacion, models.RoomStatusReserved)
	return err
}

// Delete 在同一事务中删除付款与预订并释放房间
func (s *ReservationService) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.Start(ctx, "reservation.Delete",
		tracing.WithReservationID(id),
		tracing.WithOperation("delete"),
	)
	defer span.End()

	reservation, err := s.getReservation(ctx, id)
	if err != nil {
		return err
	}

	var removed int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := repository.NewPaymentRepository(tx).DeleteByReservationID(ctx, id)
		if err != nil {
			return err
		}
		removed = n
		if err := repository.NewReservationRepository(tx).Delete(ctx, id); err != nil {
			return err
		}
		_, err = repository.NewRoomRepository(tx).UpdateStatusByNumero(ctx, reservation.Habitacion, models.RoomStatusAvailable)
		return err
	})
	if err != nil {
		tracing.SetError(ctx, err)
		return errors.ErrDatabaseError.WithError(err)
	}

	s.metrics.RecordReservation("delete", SourceStaff)
	s.notifier.RoomStatusChanged(ctx, reservation.Habitacion, models.RoomStatusAvailable)
	logger.Info("预订已删除",
		logger.ReservationID(id),
		logger.RoomNumber(reservation.Habitacion),
		logger.Int64("payments", removed),
	)
	return nil
}

// SetStatus 设置预订状态，只校验状态取值，不联动房间
func (s *ReservationService) SetStatus(ctx context.Context, id int64, estado string) error {
	status := models.ReservationStatus(utils.Sanitize(estado))
	if !status.Valid() {
		return ErrInvalidStatus
	}
	n, err := s.reservations.UpdateStatus(ctx, id, status)
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	if n == 0 {
		return errors.ErrReservationNotFound
	}
	logger.Info("预订状态已变更", logger.ReservationID(id), logger.Estado(string(status)))
	return nil
}

// CheckIn 入住：预订与房间均置为 Ocupada
func (s *ReservationService) CheckIn(ctx context.Context, id int64) error {
	return s.transition(ctx, id, "checkin", models.ReservationStatusOccupied, models.RoomStatusOccupied)
}

// CheckOut 退房：预订置为 Completada，房间置为 Limpieza
func (s *ReservationService) CheckOut(ctx context.Context, id int64) error {
	return s.transition(ctx, id, "checkout", models.ReservationStatusCompleted, models.RoomStatusCleaning)
}

func (s *ReservationService) transition(
	ctx context.Context,
	id int64,
	op string,
	reservationStatus models.ReservationStatus,
	roomStatus models.RoomStatus,
) error {
	ctx, span := tracing.Start(ctx, "reservation."+op,
		tracing.WithReservationID(id),
		tracing.WithOperation(op),
	)
	defer span.End()

	reservation, err := s.getReservation(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repository.NewReservationRepository(tx).UpdateStatus(ctx, id, reservationStatus); err != nil {
			return err
		}
		_, err := repository.NewRoomRepository(tx).UpdateStatusByNumero(ctx, reservation.Habitacion, roomStatus)
		return err
	})
	if err != nil {
		tracing.SetError(ctx, err)
		return errors.ErrDatabaseError.WithError(err)
	}

	s.metrics.RecordReservation(op, SourceStaff)
	s.notifier.RoomStatusChanged(ctx, reservation.Habitacion, roomStatus)
	logger.Info("预订状态流转",
		logger.ReservationID(id),
		logger.Action(op),
		logger.RoomNumber(reservation.Habitacion),
	)
	return nil
}

func (s *ReservationService) getReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return reservation, nil
}

func buildReservation(clienteID int64, req *CreateRequest) (*models.Reservation, error) {
	reservation := &models.Reservation{
		ClienteID:    clienteID,
		Habitacion:   utils.Sanitize(req.Habitacion),
		FechaEntrada: utils.Sanitize(req.FechaEntrada),
		FechaSalida:  utils.Sanitize(req.FechaSalida),
		NumPersonas:  req.NumPersonas,
		PrecioTotal:  req.PrecioTotal,
		Estado:       models.ReservationStatus(utils.Sanitize(req.Estado)),
		Notas:        utils.Sanitize(req.Notas),
	}

	if reservation.Habitacion == "" {
		return nil, ErrHabitacionRequired
	}
	if err := validateDates(reservation.FechaEntrada, reservation.FechaSalida); err != nil {
		return nil, err
	}
	if reservation.NumPersonas <= 0 {
		return nil, ErrInvalidGuests
	}
	if reservation.PrecioTotal < 0 {
		return nil, ErrInvalidPrice
	}
	if reservation.Estado == "" {
		reservation.Estado = models.ReservationStatusConfirmed
	}
	if !reservation.Estado.Valid() {
		return nil, ErrInvalidStatus
	}
	return reservation, nil
}

// validateDates 校验日期格式，退房日期不得早于入住日期
func validateDates(entrada, salida string) error {
	in, err := utils.ParseDate(entrada)
	if err != nil {
		return ErrInvalidDate
	}
	out, err := utils.ParseDate(salida)
	if err != nil {
		return ErrInvalidDate
	}
	if out.Before(in) {
		return errors.ErrInvalidDateRange
	}
	return nil
}

func parseGuests(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, ErrInvalidGuests
	}
	return n, nil
}
