// Package report 提供只读统计报表与导出
package report

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/common/utils"
	"github.com/dumeirei/hotel-management/internal/models"
	"github.com/dumeirei/hotel-management/internal/repository"
)

// 报表参数
const (
	TopCustomersLimit = 5
	OccupancyDays     = 30
	RevenueMonths     = 12
)

// StatusCount 按状态计数
type StatusCount struct {
	Estado   string `json:"estado"`
	Cantidad int64  `json:"cantidad"`
}

// CustomerRank 客户预订排行
type CustomerRank struct {
	Nombre   string `json:"nombre"`
	Reservas int64  `json:"reservas"`
}

// MethodTotal 按付款方式汇总
type MethodTotal struct {
	Metodo   string  `json:"metodo"`
	Cantidad int64   `json:"cantidad"`
	Total    float64 `json:"total"`
}

// Summary 主报表
type Summary struct {
	TotalClientes         int64           `json:"total_clientes"`
	TotalReservas         int64           `json:"total_reservas"`
	TotalHabitaciones     int64           `json:"total_habitaciones"`
	PagosCompletados      int64           `json:"pagos_completados"`
	IngresosTotales       float64         `json:"ingresos_totales"`
	ReservasPorEstado     []*StatusCount  `json:"reservas_por_estado"`
	HabitacionesPorEstado []*StatusCount  `json:"habitaciones_por_estado"`
	TopClientes           []*CustomerRank `json:"top_clientes"`
	IngresosPorMetodo     []*MethodTotal  `json:"ingresos_por_metodo"`
	ReservasMesActual     int64           `json:"reservas_mes_actual"`
	IngresosMesActual     float64         `json:"ingresos_mes_actual"`
}

// DailyOccupancy 每日占用
type DailyOccupancy struct {
	Fecha                string `json:"fecha"`
	HabitacionesOcupadas int64  `json:"habitaciones_ocupadas"`
	TotalHabitaciones    int64  `json:"total_habitaciones"`
}

// TypeOccupancy 按房型占用
type TypeOccupancy struct {
	Tipo           string  `json:"tipo"`
	Reservas       int64   `json:"reservas"`
	PrecioPromedio float64 `json:"precio_promedio"`
}

// Occupancy 占用报表
type Occupancy struct {
	Diaria  []*DailyOccupancy `json:"ocupacion_diaria"`
	PorTipo []*TypeOccupancy  `json:"ocupacion_por_tipo"`
}

// MonthlyRevenue 月度收入
type MonthlyRevenue struct {
	Mes      string  `json:"mes"`
	Ingresos float64 `json:"ingresos"`
}

// PendingPayment 待收款
type PendingPayment struct {
	Monto      float64 `json:"monto"`
	Cliente    string  `json:"cliente"`
	Habitacion string  `json:"habitacion"`
	Fecha      string  `json:"fecha"`
}

// Financial 财务报表
type Financial struct {
	IngresosMensuales []*MonthlyRevenue `json:"ingresos_mensuales"`
	MetodosPago       []*MethodTotal    `json:"metodos_pago"`
	PagosPendientes   []*PendingPayment `json:"pagos_pendientes"`
}

// Dashboard 首页概览
type Dashboard struct {
	Username                string `json:"username"`
	TotalClientes           int64  `json:"total_clientes"`
	ReservasActivas         int64  `json:"reservas_activas"`
	HabitacionesDisponibles int64  `json:"habitaciones_disponibles"`
}

// ReportService 报表服务
type ReportService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewReportService 创建报表服务
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db, now: time.Now}
}

// Dashboard 首页概览
func (s *ReportService) Dashboard(ctx context.Context, username string) (*Dashboard, error) {
	d := &Dashboard{Username: username}

	var err error
	if d.TotalClientes, err = repository.NewCustomerRepository(s.db).Count(ctx); err != nil {
		return nil, s.fail("dashboard", err)
	}
	d.ReservasActivas, err = repository.NewReservationRepository(s.db).
		CountByStatuses(ctx, models.ActiveReservationStatuses...)
	if err != nil {
		return nil, s.fail("dashboard", err)
	}
	d.HabitacionesDisponibles, err = repository.NewRoomRepository(s.db).
		CountByStatus(ctx, models.RoomStatusAvailable)
	if err != nil {
		return nil, s.fail("dashboard", err)
	}
	return d, nil
}

// Summary 主报表：总量、收入、分组统计与本月数据
func (s *ReportService) Summary(ctx context.Context) (*Summary, error) {
	sum := &Summary{}
	db := s.db.WithContext(ctx)
	month := utils.MonthPrefix(s.now()) + "%"

	steps := []func() error{
		func() (err error) {
			sum.TotalClientes, err = repository.NewCustomerRepository(s.db).Count(ctx)
			return err
		},
		func() (err error) {
			sum.TotalReservas, err = repository.NewReservationRepository(s.db).Count(ctx)
			return err
		},
		func() (err error) {
			sum.TotalHabitaciones, err = repository.NewRoomRepository(s.db).Count(ctx)
			return err
		},
		func() error {
			return db.Model(&models.Payment{}).
				Where("estado = ?", models.PaymentStatusCompleted).
				Count(&sum.PagosCompletados).Error
		},
		func() error {
			return db.Model(&models.Payment{}).
				Select("COALESCE(SUM(monto), 0)").
				Where("estado = ?", models.PaymentStatusCompleted).
				Row().Scan(&sum.IngresosTotales)
		},
		func() error {
			return db.Model(&models.Reservation{}).
				Select("estado, COUNT(*) AS cantidad").
				Group("estado").Order("estado").
				Scan(&sum.ReservasPorEstado).Error
		},
		func() error {
			return db.Model(&models.Room{}).
				Select("estado, COUNT(*) AS cantidad").
				Group("estado").Order("estado").
				Scan(&sum.HabitacionesPorEstado).Error
		},
		func() error {
			return db.Table("clientes AS c").
				Select("c.nombre, COUNT(r.id) AS reservas").
				Joins("LEFT JOIN reservas r ON c.id = r.cliente_id").
				Group("c.id, c.nombre").
				Order("reservas DESC").Order("c.nombre ASC").
				Limit(TopCustomersLimit).
				Scan(&sum.TopClientes).Error
		},
		func() error {
			return db.Model(&models.Payment{}).
				Select("metodo, COUNT(*) AS cantidad, SUM(monto) AS total").
				Where("estado = ?", models.PaymentStatusCompleted).
				Group("metodo").Order("total DESC").
				Scan(&sum.IngresosPorMetodo).Error
		},
		func() error {
			return db.Model(&models.Reservation{}).
				Where("fecha_entrada LIKE ?", month).
				Count(&sum.ReservasMesActual).Error
		},
		func() error {
			return db.Model(&models.Payment{}).
				Select("COALESCE(SUM(monto), 0)").
				Where("estado = ? AND fecha LIKE ?", models.PaymentStatusCompleted, month).
				Row().Scan(&sum.IngresosMesActual)
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, s.fail("summary", err)
		}
	}
	return sum, nil
}

// Occupancy 近 30 天入住的已确认/已入住预订的每日占用与按房型统计
func (s *ReportService) Occupancy(ctx context.Context) (*Occupancy, error) {
	occ := &Occupancy{}
	db := s.db.WithContext(ctx)
	since := utils.DaysAgo(s.now(), OccupancyDays)

	var totalRooms int64
	if err := db.Model(&models.Room{}).Count(&totalRooms).Error; err != nil {
		return nil, s.fail("occupancy", err)
	}

	err := db.Model(&models.Reservation{}).
		Select("fecha_entrada AS fecha, COUNT(DISTINCT habitacion) AS habitaciones_ocupadas").
		Where("fecha_entrada >= ? AND estado IN ?", since, models.ActiveReservationStatuses).
		Group("fecha_entrada").
		Order("fecha DESC").
		Scan(&occ.Diaria).Error
	if err != nil {
		return nil, s.fail("occupancy", err)
	}
	for _, d := range occ.Diaria {
		d.TotalHabitaciones = totalRooms
	}

	err = db.Table("habitaciones AS h").
		Select("h.tipo, COUNT(r.id) AS reservas, AVG(r.precio_total) AS precio_promedio").
		Joins("JOIN reservas r ON h.numero = r.habitacion").
		Where("r.estado IN ?", models.ActiveReservationStatuses).
		Group("h.tipo").
		Order("h.tipo").
		Scan(&occ.PorTipo).Error
	if err != nil {
		return nil, s.fail("occupancy", err)
	}
	return occ, nil
}

// Financial 近 12 个月收入、付款方式汇总与待收款列表
func (s *ReportService) Financial(ctx context.Context) (*Financial, error) {
	fin := &Financial{}
	db := s.db.WithContext(ctx)
	since := utils.MonthsAgo(s.now(), RevenueMonths)

	err := db.Model(&models.Payment{}).
		Select("SUBSTR(fecha, 1, 7) AS mes, SUM(monto) AS ingresos").
		Where("estado = ? AND fecha >= ?", models.PaymentStatusCompleted, since).
		Group("SUBSTR(fecha, 1, 7)").
		Order("mes DESC").
		Scan(&fin.IngresosMensuales).Error
	if err != nil {
		return nil, s.fail("financial", err)
	}

	err = db.Model(&models.Payment{}).
		Select("metodo, COUNT(*) AS cantidad, SUM(monto) AS total").
		Where("estado = ?", models.PaymentStatusCompleted).
		Group("metodo").
		Order("total DESC").
		Scan(&fin.MetodosPago).Error
	if err != nil {
		return nil, s.fail("financial", err)
	}

	err = db.Table("pagos AS p").
		Select("p.monto, c.nombre AS cliente, r.habitacion, p.fecha").
		Joins("JOIN clientes c ON p.cliente_id = c.id").
		Joins("JOIN reservas r ON p.reserva_id = r.id").
		Where("p.estado = ?", models.PaymentStatusPending).
		Order("p.fecha DESC").Order("p.id DESC").
		Scan(&fin.PagosPendientes).Error
	if err != nil {
		return nil, s.fail("financial", err)
	}
	return fin, nil
}

func (s *ReportService) fail(report string, err error) error {
	logger.Error("报表查询失败", logger.String("report", report), logger.Err(err))
	return errors.ErrDatabaseError.WithError(err)
}
