package reservation

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/common/qrcode"
	"github.com/dumeirei/hotel-management/internal/common/tracing"
	"github.com/dumeirei/hotel-management/internal/common/utils"
	"github.com/dumeirei/hotel-management/internal/models"
	"github.com/dumeirei/hotel-management/internal/repository"
)

// QuickBookRoomLimit 快速预订页面展示的房间数
const QuickBookRoomLimit = 3

// QuickBookSuccessMessage 快速预订成功提示
const QuickBookSuccessMessage = "¡Reserva rápida realizada con éxito! Pronto nos pondremos en contacto."

// QuickBookRequest 公开快速预订请求
type QuickBookRequest struct {
	Nombre       string `form:"nombre" json:"nombre"`
	Correo       string `form:"correo" json:"correo"`
	Telefono     string `form:"telefono" json:"telefono"`
	Habitacion   string `form:"habitacion" json:"habitacion"`
	FechaEntrada string `form:"fecha_entrada" json:"fecha_entrada"`
	FechaSalida  string `form:"fecha_salida" json:"fecha_salida"`
	NumPersonas  string `form:"num_personas" json:"num_personas"`
	Notas        string `form:"notas" json:"notas"`
}

// QuickBookResult 快速预订确认
type QuickBookResult struct {
	ReservaID  int64  `json:"reserva_id"`
	Referencia string `json:"referencia"`
	Nombre     string `json:"nombre"`
	Habitacion string `json:"habitacion"`
	QRCode     string `json:"qr_code,omitempty"`
}

// QuickBookRooms 快速预订页面可选房间
func (s *ReservationService) QuickBookRooms(ctx context.Context) ([]*models.Room, error) {
	rooms, err := s.rooms.ListByStatus(ctx, models.RoomStatusAvailable, QuickBookRoomLimit)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return rooms, nil
}

// QuickBook 创建访客客户并按标准流程预订，价格为 0、状态为 Pendiente
func (s *ReservationService) QuickBook(ctx context.Context, req *QuickBookRequest) (*QuickBookResult, error) {
	ctx, span := tracing.Start(ctx, "reservation.QuickBook", tracing.WithOperation("quick_book"))
	defer span.End()

	customer := &models.Customer{
		Nombre:         utils.Sanitize(req.Nombre),
		Identificacion: models.VisitorIdentification,
		Direccion:      models.VisitorAddress,
		Correo:         utils.Sanitize(req.Correo),
		Telefono:       utils.Sanitize(req.Telefono),
	}
	reservation := &models.Reservation{
		Habitacion:   utils.Sanitize(req.Habitacion),
		FechaEntrada: utils.Sanitize(req.FechaEntrada),
		FechaSalida:  utils.Sanitize(req.FechaSalida),
		PrecioTotal:  0,
		Estado:       models.ReservationStatusPending,
		Notas:        utils.Sanitize(req.Notas),
	}
	guests := utils.Sanitize(req.NumPersonas)

	if utils.AnyBlank(customer.Nombre, customer.Correo, customer.Telefono,
		reservation.Habitacion, reservation.FechaEntrada, reservation.FechaSalida, guests) {
		return nil, errors.ErrMissingFields
	}
	n, err := parseGuests(guests)
	if err != nil {
		return nil, err
	}
	reservation.NumPersonas = n
	if err := validateDates(reservation.FechaEntrada, reservation.FechaSalida); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewCustomerRepository(tx).Create(ctx, customer); err != nil {
			return err
		}
		reservation.ClienteID = customer.ID
		return bookTx(ctx, tx, reservation)
	})
	if err != nil {
		tracing.SetError(ctx, err)
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		logger.Error("快速预订失败", logger.RoomNumber(reservation.Habitacion), logger.Err(err))
		return nil, errors.ErrCreateFailed.WithError(err)
	}

	s.metrics.RecordReservation("create", SourceQuick)
	s.metrics.RecordPayment(models.PaymentMethodPending, string(models.PaymentStatusPending))
	s.notifier.RoomStatusChanged(ctx, reservation.Habitacion, models.RoomStatusReserved)
	span.SetAttributes(
		tracing.WithReservationID(reservation.ID),
		tracing.WithCustomerID(customer.ID),
		tracing.WithRoomNumber(reservation.Habitacion),
	)

	result := &QuickBookResult{
		ReservaID:  reservation.ID,
		Referencia: reservation.Reference(),
		Nombre:     customer.Nombre,
		Habitacion: reservation.Habitacion,
	}

	confirmation := &Confirmation{
		Referencia:   result.Referencia,
		Nombre:       customer.Nombre,
		Correo:       customer.Correo,
		Telefono:     customer.Telefono,
		Habitacion:   reservation.Habitacion,
		FechaEntrada: reservation.FechaEntrada,
		FechaSalida:  reservation.FechaSalida,
	}
	if code, err := qrcode.NewGenerator().Encode(result.Referencia); err != nil {
		logger.Warn("生成预订二维码失败", logger.ReservationID(reservation.ID), logger.Err(err))
	} else {
		result.QRCode = code.DataURL()
		confirmation.QR = code
	}
	if s.confirmer != nil {
		s.confirmer.Confirm(ctx, confirmation)
	}

	logger.Info("快速预订已创建",
		logger.ReservationID(reservation.ID),
		logger.CustomerID(customer.ID),
		logger.RoomNumber(reservation.Habitacion),
	)
	return result, nil
}
