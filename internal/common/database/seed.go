package database

import (
	"fmt"

	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/models"
	"gorm.io/gorm"
)

// DefaultRooms 空库时初始化的房间
func DefaultRooms() []models.Room {
	type spec struct {
		numeros     []string
		tipo        string
		capacidad   int
		precio      float64
		amenidades  string
		descripcion string
	}
	specs := []spec{
		{[]string{"101", "102"}, models.RoomTypeSingle, 1, 120000, "WiFi, TV, A/C", "Habitación individual con vista al jardín"},
		{[]string{"201", "202"}, models.RoomTypeDouble, 2, 250000, "WiFi, TV, A/C, Balcón", "Habitación doble con balcón"},
		{[]string{"301", "302"}, models.RoomTypeSuite, 4, 380000, "WiFi, TV, A/C, Jacuzzi, Balcón", "Suite de lujo con jacuzzi"},
	}

	rooms := make([]models.Room, 0, 6)
	for _, s := range specs {
		for _, n := range s.numeros {
			rooms = append(rooms, models.Room{
				Numero:      n,
				Tipo:        s.tipo,
				Capacidad:   s.capacidad,
				PrecioNoche: s.precio,
				Estado:      models.RoomStatusAvailable,
				Amenidades:  s.amenidades,
				Descripcion: s.descripcion,
			})
		}
	}
	return rooms
}

// SeedRooms 房间表为空时写入默认房间，返回写入数量
func SeedRooms(gdb *gorm.DB) (int, error) {
	var count int64
	if err := gdb.Model(&models.Room{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	rooms := DefaultRooms()
	if err := gdb.Create(&rooms).Error; err != nil {
		return 0, fmt.Errorf("seed rooms: %w", err)
	}

	logger.Info("已初始化默认房间", logger.Int("count", len(rooms)))
	return len(rooms), nil
}
