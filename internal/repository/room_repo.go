package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/models"
)

// RoomRepository 房间仓储
type RoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建房间仓储
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// RoomFilter 房间列表筛选条件
type RoomFilter struct {
	Estado models.RoomStatus
	Tipo   string
}

// roomEditableColumns 编辑房间时更新的列
var roomEditableColumns = []string{"numero", "tipo", "capacidad", "precio_noche", "estado", "amenidades", "descripcion"}

// Create 创建房间
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// GetByID 根据 ID 获取房间
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByNumero 根据房间号获取房间
func (r *RoomRepository) GetByNumero(ctx context.Context, numero string) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).Where("numero = ?", numero).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// List 获取房间列表，按房间号升序
func (r *RoomRepository) List(ctx context.Context, filter RoomFilter) ([]*models.Room, error) {
	var rooms []*models.Room

	query := r.db.WithContext(ctx).Model(&models.Room{})
	if filter.Estado != "" {
		query = query.Where("estado = ?", filter.Estado)
	}
	if filter.Tipo != "" {
		query = query.Where("tipo = ?", filter.Tipo)
	}

	if err := query.Order("numero ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// ListByStatus 按状态获取房间，limit <= 0 不限制数量
func (r *RoomRepository) ListByStatus(ctx context.Context, estado models.RoomStatus, limit int) ([]*models.Room, error) {
	var rooms []*models.Room
	query := r.db.WithContext(ctx).Where("estado = ?", estado).Order("numero ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&rooms).Error
	return rooms, err
}

// Update 更新房间可编辑字段，withImage 为 true 时同时更新图片
func (r *RoomRepository) Update(ctx context.Context, room *models.Room, withImage bool) error {
	columns := roomEditableColumns
	if withImage {
		columns = append(append([]string{}, roomEditableColumns...), "imagen")
	}
	return r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", room.ID).
		Select(columns).
		Updates(room).Error
}

// UpdateStatus 更新房间状态
func (r *RoomRepository) UpdateStatus(ctx context.Context, id int64, estado models.RoomStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", id).
		Update("estado", estado)
	return result.RowsAffected, result.Error
}

// UpdateStatusByNumero 按房间号更新状态
func (r *RoomRepository) UpdateStatusByNumero(ctx context.Context, numero string, estado models.RoomStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("numero = ?", numero).
		Update("estado", estado)
	return result.RowsAffected, result.Error
}

// Delete 删除房间
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Room{}, id).Error
}

// Count 房间总数
func (r *RoomRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).Count(&count).Error
	return count, err
}

// CountByStatus 指定状态的房间数
func (r *RoomRepository) CountByStatus(ctx context.Context, estado models.RoomStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).Where("estado = ?", estado).Count(&count).Error
	return count, err
}
