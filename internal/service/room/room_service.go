// Package room 提供房间库存与房间图片服务
package room

import (
	"context"
	stderrors "errors"
	"io"
	"path"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/common/database"
	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/common/utils"
	"github.com/dumeirei/hotel-management/internal/models"
	"github.com/dumeirei/hotel-management/internal/repository"
	"github.com/dumeirei/hotel-management/pkg/oss"
)

// ImageDir 图片引用前缀，数据库中保存 uploads/{对象名}
const ImageDir = "uploads"

// 业务提示
var (
	ErrNumeroRequired   = errors.ErrInvalidParams.WithMessage("El número de habitación es obligatorio.")
	ErrTipoRequired     = errors.ErrInvalidParams.WithMessage("El tipo de habitación es obligatorio.")
	ErrInvalidCapacidad = errors.ErrInvalidParams.WithMessage("La capacidad debe ser mayor a 0.")
	ErrInvalidPrecio    = errors.ErrInvalidParams.WithMessage("El precio por noche no puede ser negativo.")
	ErrImageUpload      = errors.ErrInternalError.WithMessage("No se pudo guardar la imagen.")
)

// RoomService 房间服务
type RoomService struct {
	repo     *repository.RoomRepository
	uploader oss.Uploader
	notifier StatusNotifier
}

// NewRoomService 创建房间服务
func NewRoomService(repo *repository.RoomRepository, uploader oss.Uploader, notifier StatusNotifier) *RoomService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &RoomService{repo: repo, uploader: uploader, notifier: notifier}
}

// RoomRequest 新建/编辑房间请求
type RoomRequest struct {
	Numero      string  `form:"numero" json:"numero"`
	Tipo        string  `form:"tipo" json:"tipo"`
	Capacidad   int     `form:"capacidad" json:"capacidad"`
	PrecioNoche float64 `form:"precio_noche" json:"precio_noche"`
	Estado      string  `form:"estado" json:"estado"`
	Amenidades  string  `form:"amenidades" json:"amenidades"`
	Descripcion string  `form:"descripcion" json:"descripcion"`
}

// ListRequest 房间列表筛选
type ListRequest struct {
	Estado string `form:"estado" json:"estado"`
	Tipo   string `form:"tipo" json:"tipo"`
}

// ImageFile 上传的图片
type ImageFile struct {
	Filename string
	Reader   io.Reader
}

// FormOptions 房间表单可选项
type FormOptions struct {
	Tipos   []string            `json:"tipos"`
	Estados []models.RoomStatus `json:"estados"`
}

// Options 返回房间表单可选项
func (s *RoomService) Options() *FormOptions {
	return &FormOptions{Tipos: models.RoomTypes, Estados: models.RoomStatuses}
}

// List 按状态与类型筛选房间，按房间号升序
func (s *RoomService) List(ctx context.Context, req *ListRequest) ([]*models.Room, error) {
	rooms, err := s.repo.List(ctx, repository.RoomFilter{
		Estado: models.RoomStatus(utils.Sanitize(req.Estado)),
		Tipo:   utils.Sanitize(req.Tipo),
	})
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return rooms, nil
}

// Get 获取房间
func (s *RoomService) Get(ctx context.Context, id int64) (*models.Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return room, nil
}

// Create 新建房间，非允许类型的图片直接忽略
func (s *RoomService) Create(ctx context.Context, req *RoomRequest, image *ImageFile) (*models.Room, error) {
	room, err := buildRoom(req, models.RoomStatusAvailable)
	if err != nil {
		return nil, err
	}

	key, err := s.storeImage(ctx, room.Numero, image)
	if err != nil {
		return nil, err
	}
	if key != "" {
		room.Imagen = utils.StringPtr(path.Join(ImageDir, key))
	}

	if err := s.repo.Create(ctx, room); err != nil {
		s.removeImage(ctx, key)
		if database.IsDuplicateKey(err) {
			return nil, errors.ErrDuplicateRoomNumber
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("房间已创建", logger.RoomNumber(room.Numero))
	return room, nil
}

// Update 编辑房间，未上传新图片时保留原图片
func (s *RoomService) Update(ctx context.Context, id int64, req *RoomRequest, image *ImageFile) (*models.Room, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	room, err := buildRoom(req, current.Estado)
	if err != nil {
		return nil, err
	}
	room.ID = id
	room.Imagen = current.Imagen
	room.CreatedAt = current.CreatedAt

	key, err := s.storeImage(ctx, room.Numero, image)
	if err != nil {
		return nil, err
	}
	withImage := key != ""
	if withImage {
		room.Imagen = utils.StringPtr(path.Join(ImageDir, key))
	}

	if err := s.repo.Update(ctx, room, withImage); err != nil {
		s.removeImage(ctx, key)
		if database.IsDuplicateKey(err) {
			return nil, errors.ErrDuplicateRoomNumber
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if withImage && current.HasImage() {
		s.removeImage(ctx, path.Base(*current.Imagen))
	}
	if room.Estado != current.Estado {
		s.notifier.RoomStatusChanged(ctx, room.Numero, room.Estado)
	}

	logger.Info("房间已更新", logger.RoomNumber(room.Numero))
	return room, nil
}

// SetStatus 设置房间状态，只校验状态取值，不限制迁移路径
func (s *RoomService) SetStatus(ctx context.Context, id int64, estado string) error {
	status := models.RoomStatus(utils.Sanitize(estado))
	if !status.Valid() {
		return errors.ErrInvalidRoomStatus
	}

	room, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	s.notifier.RoomStatusChanged(ctx, room.Numero, status)
	logger.Info("房间状态已变更", logger.RoomNumber(room.Numero), logger.Estado(string(status)))
	return nil
}

// Delete 删除房间及其图片；不存在时无操作，不检查关联预订
func (s *RoomService) Delete(ctx context.Context, id int64) error {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	if room.HasImage() {
		s.removeImage(ctx, path.Base(*room.Imagen))
	}

	logger.Info("房间已删除", logger.RoomNumber(room.Numero))
	return nil
}

// ImageURL 返回房间图片的访问地址，没有图片时为空
func (s *RoomService) ImageURL(room *models.Room) string {
	if !room.HasImage() || s.uploader == nil {
		return ""
	}
	return s.uploader.GetURL(path.Base(*room.Imagen))
}

// storeImage 保存图片并返回对象名；未上传或类型不允许时返回空
func (s *RoomService) storeImage(ctx context.Context, numero string, image *ImageFile) (string, error) {
	if image == nil || image.Filename == "" || image.Reader == nil || s.uploader == nil {
		return "", nil
	}
	if !oss.IsAllowedImage(image.Filename) {
		logger.Debug("忽略不支持的图片类型", logger.RoomNumber(numero), logger.String("filename", image.Filename))
		return "", nil
	}

	key := oss.ImageName(numero, image.Filename)
	if _, err := s.uploader.Upload(ctx, key, image.Reader); err != nil {
		logger.Error("保存房间图片失败", logger.RoomNumber(numero), logger.Err(err))
		return "", ErrImageUpload.WithError(err)
	}
	return key, nil
}

// removeImage 删除图片，失败只记录日志
func (s *RoomService) removeImage(ctx context.Context, key string) {
	if key == "" || s.uploader == nil {
		return
	}
	if err := s.uploader.Delete(ctx, key); err != nil {
		logger.Warn("删除房间图片失败", logger.String("key", key), logger.Err(err))
	}
}

func buildRoom(req *RoomRequest, fallback models.RoomStatus) (*models.Room, error) {
	room := &models.Room{
		Numero:      utils.Sanitize(req.Numero),
		Tipo:        utils.Sanitize(req.Tipo),
		Capacidad:   req.Capacidad,
		PrecioNoche: req.PrecioNoche,
		Estado:      models.RoomStatus(utils.Sanitize(req.Estado)),
		Amenidades:  utils.Sanitize(req.Amenidades),
		Descripcion: utils.Sanitize(req.Descripcion),
	}

	switch {
	case room.Numero == "":
		return nil, ErrNumeroRequired
	case room.Tipo == "":
		return nil, ErrTipoRequired
	case room.Capacidad <= 0:
		return nil, ErrInvalidCapacidad
	case room.PrecioNoche < 0:
		return nil, ErrInvalidPrecio
	}

	if room.Estado == "" {
		room.Estado = fallback
	}
	if !room.Estado.Valid() {
		return nil, errors.ErrInvalidRoomStatus
	}
	return room, nil
}
