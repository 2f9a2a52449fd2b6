package models

import (
	"fmt"
	"time"
)

// PaymentStatus 付款状态
type PaymentStatus string

// PaymentStatus 取值
const (
	PaymentStatusPending   PaymentStatus = "Pendiente"
	PaymentStatusCompleted PaymentStatus = "Completado"
	PaymentStatusCancelled PaymentStatus = "Cancelado"
)

// PaymentStatuses 全部付款状态
var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusCompleted,
	PaymentStatusCancelled,
}

// Valid 是否为合法付款状态
func (s PaymentStatus) Valid() bool {
	for _, v := range PaymentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// PaymentMethodPending 自动生成付款时的占位付款方式
const PaymentMethodPending = "Pendiente"

// Payment 付款模型
type Payment struct {
	ID         int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ReservaID  int64         `gorm:"column:reserva_id;not null;index" json:"reserva_id"`
	ClienteID  int64         `gorm:"column:cliente_id;not null;index" json:"cliente_id"`
	Monto      float64       `gorm:"column:monto;not null" json:"monto"`
	Fecha      string        `gorm:"column:fecha;type:varchar(10);not null;index" json:"fecha"`
	Metodo     string        `gorm:"column:metodo;type:varchar(50);not null" json:"metodo"`
	Estado     PaymentStatus `gorm:"column:estado;type:varchar(20);default:'Pendiente';index" json:"estado"`
	Referencia string        `gorm:"column:referencia;type:varchar(100)" json:"referencia"`
	Notas      string        `gorm:"column:notas;type:text" json:"notas"`
	CreatedAt  time.Time     `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
}

// TableName 表名
func (Payment) TableName() string {
	return "pagos"
}

// NewAutoPayment 为新预订生成待付款记录
func NewAutoPayment(r *Reservation, fecha string) *Payment {
	return &Payment{
		ReservaID:  r.ID,
		ClienteID:  r.ClienteID,
		Monto:      r.PrecioTotal,
		Fecha:      fecha,
		Metodo:     PaymentMethodPending,
		Estado:     PaymentStatusPending,
		Referencia: r.Reference(),
		Notas:      fmt.Sprintf("Pago automático por reserva #%d", r.ID),
	}
}

// PaymentDetail 付款列表行（含客户与预订信息）
type PaymentDetail struct {
	Payment
	ClienteNombre string `gorm:"column:cliente_nombre" json:"cliente_nombre"`
	Habitacion    string `gorm:"column:habitacion" json:"habitacion"`
	FechaEntrada  string `gorm:"column:fecha_entrada" json:"fecha_entrada"`
	FechaSalida   string `gorm:"column:fecha_salida" json:"fecha_salida"`
}
