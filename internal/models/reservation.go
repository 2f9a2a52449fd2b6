package models

import (
	"fmt"
	"time"
)

// ReservationStatus 预订状态
type ReservationStatus string

// ReservationStatus 取值
const (
	ReservationStatusPending   ReservationStatus = "Pendiente"
	ReservationStatusConfirmed ReservationStatus = "Confirmada"
	ReservationStatusOccupied  ReservationStatus = "Ocupada"
	ReservationStatusCompleted ReservationStatus = "Completada"
	ReservationStatusCancelled ReservationStatus = "Cancelada"
)

// ReservationStatuses 全部预订状态
var ReservationStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusConfirmed,
	ReservationStatusOccupied,
	ReservationStatusCompleted,
	ReservationStatusCancelled,
}

// ActiveReservationStatuses 计入占用的预订状态
var ActiveReservationStatuses = []ReservationStatus{
	ReservationStatusConfirmed,
	ReservationStatusOccupied,
}

// Valid 是否为合法预订状态
func (s ReservationStatus) Valid() bool {
	for _, v := range ReservationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Reservation 预订模型
type Reservation struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ClienteID    int64             `gorm:"column:cliente_id;not null;index" json:"cliente_id"`
	Habitacion   string            `gorm:"column:habitacion;type:varchar(20);not null;index" json:"habitacion"`
	FechaEntrada string            `gorm:"column:fecha_entrada;type:varchar(10);not null;index" json:"fecha_entrada"`
	FechaSalida  string            `gorm:"column:fecha_salida;type:varchar(10);not null" json:"fecha_salida"`
	NumPersonas  int               `gorm:"column:num_personas;not null" json:"num_personas"`
	PrecioTotal  float64           `gorm:"column:precio_total;not null" json:"precio_total"`
	Estado       ReservationStatus `gorm:"column:estado;type:varchar(20);default:'Confirmada';index" json:"estado"`
	Notas        string            `gorm:"column:notas;type:text" json:"notas"`
	CreatedAt    time.Time         `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
}

// TableName 表名
func (Reservation) TableName() string {
	return "reservas"
}

// Reference 预订对应的付款参考号
func (r *Reservation) Reference() string {
	return ReservationReference(r.ID)
}

// ReservationReference 返回 RES-{id}
func ReservationReference(id int64) string {
	return fmt.Sprintf("RES-%d", id)
}

// ReservationDetail 预订列表行（含客户与付款信息）
type ReservationDetail struct {
	Reservation
	ClienteNombre   string   `gorm:"column:cliente_nombre" json:"cliente_nombre"`
	ClienteTelefono string   `gorm:"column:cliente_telefono" json:"cliente_telefono"`
	EstadoPago      *string  `gorm:"column:estado_pago" json:"estado_pago,omitempty"`
	MontoPago       *float64 `gorm:"column:monto_pago" json:"monto_pago,omitempty"`
	MetodoPago      *string  `gorm:"column:metodo_pago" json:"metodo_pago,omitempty"`
}
