package models

import (
	"time"
)

// RoomStatus 房间状态
type RoomStatus string

// RoomStatus 取值
const (
	RoomStatusAvailable RoomStatus = "Disponible"
	RoomStatusReserved  RoomStatus = "Reservada"
	RoomStatusOccupied  RoomStatus = "Ocupada"
	RoomStatusCleaning  RoomStatus = "Limpieza"
)

// RoomStatuses 全部房间状态
var RoomStatuses = []RoomStatus{
	RoomStatusAvailable,
	RoomStatusReserved,
	RoomStatusOccupied,
	RoomStatusCleaning,
}

// Valid 是否为合法房间状态
func (s RoomStatus) Valid() bool {
	for _, v := range RoomStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// 房间类型
const (
	RoomTypeSingle = "Individual"
	RoomTypeDouble = "Doble"
	RoomTypeSuite  = "Suite"
)

// RoomTypes 表单可选房间类型
var RoomTypes = []string{RoomTypeSingle, RoomTypeDouble, RoomTypeSuite}

// Room 房间模型
type Room struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Numero      string     `gorm:"column:numero;type:varchar(20);not null;uniqueIndex:idx_habitaciones_numero" json:"numero"`
	Tipo        string     `gorm:"column:tipo;type:varchar(50);not null;index" json:"tipo"`
	Capacidad   int        `gorm:"column:capacidad;not null" json:"capacidad"`
	PrecioNoche float64    `gorm:"column:precio_noche;not null" json:"precio_noche"`
	Estado      RoomStatus `gorm:"column:estado;type:varchar(20);default:'Disponible';index" json:"estado"`
	Amenidades  string     `gorm:"column:amenidades;type:text" json:"amenidades"`
	Descripcion string     `gorm:"column:descripcion;type:text" json:"descripcion"`
	Imagen      *string    `gorm:"column:imagen;type:varchar(255)" json:"imagen,omitempty"`
	CreatedAt   time.Time  `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
}

// TableName 表名
func (Room) TableName() string {
	return "habitaciones"
}

// HasImage 是否有图片
func (r *Room) HasImage() bool {
	return r.Imagen != nil && *r.Imagen != ""
}
