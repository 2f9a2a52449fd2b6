// Package maintenance 提供预订与付款数据的一致性修复
package maintenance

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/common/metrics"
	"github.com/dumeirei/hotel-management/internal/common/tracing"
	"github.com/dumeirei/hotel-management/internal/common/utils"
	"github.com/dumeirei/hotel-management/internal/models"
	"github.com/dumeirei/hotel-management/internal/repository"
)

// 修复步骤
const (
	StepOrphanPayments  = "orphan_payments"
	StepMissingPayments = "missing_payments"
	StepAmountDrift     = "amount_drift"
	StepRoomStatus      = "room_status"
)

// StatusCount 按状态计数
type StatusCount struct {
	Estado   string `json:"estado"`
	Cantidad int64  `json:"cantidad"`
}

// Verification 修复后的核对结果
type Verification struct {
	TotalReservas   int64          `json:"total_reservas"`
	TotalPagos      int64          `json:"total_pagos"`
	ReservasConPago int64          `json:"reservas_con_pago"`
	PagosPorEstado  []*StatusCount `json:"pagos_por_estado"`
	Consistente     bool           `json:"consistente"`
}

// Report 一次修复的结果
type Report struct {
	PagosEliminados          int64         `json:"pagos_eliminados"`
	PagosCreados             int64         `json:"pagos_creados"`
	MontosCorregidos         int64         `json:"montos_corregidos"`
	HabitacionesActualizadas int64         `json:"habitaciones_actualizadas"`
	Verificacion             *Verification `json:"verificacion"`
}

// RepairService 修复服务
type RepairService struct {
	db      *gorm.DB
	metrics *metrics.Metrics
}

// NewRepairService 创建修复服务
func NewRepairService(db *gorm.DB, m *metrics.Metrics) *RepairService {
	return &RepairService{db: db, metrics: m}
}

type step struct {
	name string
	run  func(context.Context, *gorm.DB) (int64, error)
	dst  func(*Report) *int64
}

var (
	orphanStep  = step{StepOrphanPayments, deleteOrphanPayments, func(r *Report) *int64 { return &r.PagosEliminados }}
	missingStep = step{StepMissingPayments, createMissingPayments, func(r *Report) *int64 { return &r.PagosCreados }}
	amountStep  = step{StepAmountDrift, alignAmounts, func(r *Report) *int64 { return &r.MontosCorregidos }}
	roomStep    = step{StepRoomStatus, reserveConfirmedRooms, func(r *Report) *int64 { return &r.HabitacionesActualizadas }}
)

// Run 在一个事务内执行全部修复步骤并核对结果。
// 会补建缺失付款并把金额改回预订总价，只用于人工触发的一次性修复。
func (s *RepairService) Run(ctx context.Context) (*Report, error) {
	return s.run(ctx, "maintenance.Repair", orphanStep, missingStep, amountStep, roomStep)
}

// Sweep 定时清理：只删除孤立付款并同步已确认预订的房间状态，不改动员工登记的付款
func (s *RepairService) Sweep(ctx context.Context) (*Report, error) {
	return s.run(ctx, "maintenance.Sweep", orphanStep, roomStep)
}

func (s *RepairService) run(ctx context.Context, spanName string, steps ...step) (*Report, error) {
	ctx, span := tracing.Start(ctx, spanName)
	defer span.End()

	report := &Report{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, st := range steps {
			n, err := st.run(ctx, tx)
			if err != nil {
				logger.Error("修复步骤失败", logger.Action(st.name), logger.Err(err))
				return err
			}
			*st.dst(report) = n
		}

		v, err := verify(ctx, tx)
		if err != nil {
			return err
		}
		report.Verificacion = v
		return nil
	})
	if err != nil {
		tracing.SetError(ctx, err)
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	for _, st := range steps {
		s.metrics.RecordRepair(st.name, int(*st.dst(report)))
	}

	v := report.Verificacion
	fields := []zap.Field{
		logger.Module("maintenance"),
		logger.Action(spanName),
		logger.Int64("pagos_eliminados", report.PagosEliminados),
		logger.Int64("pagos_creados", report.PagosCreados),
		logger.Int64("montos_corregidos", report.MontosCorregidos),
		logger.Int64("habitaciones_actualizadas", report.HabitacionesActualizadas),
		logger.Int64("total_reservas", v.TotalReservas),
		logger.Int64("total_pagos", v.TotalPagos),
		logger.Int64("reservas_con_pago", v.ReservasConPago),
	}
	if v.Consistente {
		logger.Info("数据修复完成", fields...)
	} else {
		logger.Warn("数据修复完成，仍存在不一致", fields...)
	}
	return report, nil
}

// deleteOrphanPayments 删除预订已不存在的付款
func deleteOrphanPayments(ctx context.Context, tx *gorm.DB) (int64, error) {
	res := tx.WithContext(ctx).
		Where("reserva_id IS NULL OR reserva_id NOT IN (SELECT id FROM reservas)").
		Delete(&models.Payment{})
	return res.RowsAffected, res.Error
}

// createMissingPayments 为没有付款的预订补建待付款
func createMissingPayments(ctx context.Context, tx *gorm.DB) (int64, error) {
	reservations, err := repository.NewReservationRepository(tx).ListWithoutPayment(ctx)
	if err != nil {
		return 0, err
	}

	payments := repository.NewPaymentRepository(tx)
	today := utils.Today()
	for _, r := range reservations {
		if err := payments.Create(ctx, models.NewAutoPayment(r, today)); err != nil {
			return 0, err
		}
	}
	return int64(len(reservations)), nil
}

// alignAmounts 将付款金额同步为预订总价
func alignAmounts(ctx context.Context, tx *gorm.DB) (int64, error) {
	var drifted []struct {
		PagoID      int64
		PrecioTotal float64
	}
	err := tx.WithContext(ctx).Table("reservas AS r").
		Select("p.id AS pago_id, r.precio_total").
		Joins("JOIN pagos p ON r.id = p.reserva_id").
		Where("r.precio_total <> p.monto").
		Scan(&drifted).Error
	if err != nil {
		return 0, err
	}

	payments := repository.NewPaymentRepository(tx)
	for _, d := range drifted {
		if err := payments.UpdateAmount(ctx, d.PagoID, d.PrecioTotal); err != nil {
			return 0, err
		}
	}
	return int64(len(drifted)), nil
}

// reserveConfirmedRooms 已确认预订的房间仍为可用时改为已预订
func reserveConfirmedRooms(ctx context.Context, tx *gorm.DB) (int64, error) {
	confirmed := tx.Model(&models.Reservation{}).
		Select("habitacion").
		Where("estado = ?", models.ReservationStatusConfirmed)
	res := tx.WithContext(ctx).Model(&models.Room{}).
		Where("estado = ? AND numero IN (?)", models.RoomStatusAvailable, confirmed).
		Update("estado", models.RoomStatusReserved)
	return res.RowsAffected, res.Error
}

func verify(ctx context.Context, tx *gorm.DB) (*Verification, error) {
	v := &Verification{}
	db := tx.WithContext(ctx)

	var err error
	if v.TotalReservas, err = repository.NewReservationRepository(tx).Count(ctx); err != nil {
		return nil, err
	}
	if v.TotalPagos, err = repository.NewPaymentRepository(tx).Count(ctx); err != nil {
		return nil, err
	}
	if err := db.Table("reservas AS r").
		Joins("JOIN pagos p ON r.id = p.reserva_id").
		Count(&v.ReservasConPago).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Payment{}).
		Select("estado, COUNT(*) AS cantidad").
		Group("estado").Order("estado").
		Scan(&v.PagosPorEstado).Error; err != nil {
		return nil, err
	}

	v.Consistente = v.TotalReservas == v.TotalPagos && v.TotalReservas == v.ReservasConPago
	return v, nil
}
