// Package room 提供房间库存相关的 HTTP Handler
package room

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/common/handler"
	"github.com/dumeirei/hotel-management/internal/common/response"
	"github.com/dumeirei/hotel-management/internal/models"
	roomService "github.com/dumeirei/hotel-management/internal/service/room"
)

// ImageField 图片表单字段
const ImageField = "imagen"

// 提示信息
const (
	MessageCreated       = "Habitación agregada exitosamente."
	MessageUpdated       = "Habitación actualizada exitosamente."
	MessageStatusChanged = "Estado de la habitación actualizado."
	MessageDeleted       = "Habitación eliminada exitosamente."
)

// Handler 房间处理器
type Handler struct {
	roomService *roomService.RoomService
}

// NewHandler 创建房间处理器
func NewHandler(roomSvc *roomService.RoomService) *Handler {
	return &Handler{roomService: roomSvc}
}

// RoomView 房间及图片地址
type RoomView struct {
	*models.Room
	ImagenURL string `json:"imagen_url,omitempty"`
}

// EditForm 编辑房间表单数据
type EditForm struct {
	Habitacion *RoomView                `json:"habitacion"`
	Opciones   *roomService.FormOptions `json:"opciones"`
}

// StatusRequest 状态变更请求
type StatusRequest struct {
	Estado string `form:"estado" json:"estado"`
}

func (h *Handler) view(room *models.Room) *RoomView {
	return &RoomView{Room: room, ImagenURL: h.roomService.ImageURL(room)}
}

// List 房间列表
// @Summary 房间列表
// @Tags 房间
// @Produce json
// @Param estado query string false "状态"
// @Param tipo query string false "类型"
// @Success 200 {object} response.Response{data=response.ListData}
// @Router /habitaciones [get]
func (h *Handler) List(c *gin.Context) {
	var req roomService.ListRequest
	if !handler.Bind(c, &req) {
		return
	}
	rooms, err := h.roomService.List(c.Request.Context(), &req)
	if handler.HandleError(c, err) {
		return
	}

	views := make([]*RoomView, 0, len(rooms))
	for _, r := range rooms {
		views = append(views, h.view(r))
	}
	response.SuccessList(c, views, int64(len(views)))
}

// CreateForm 新建房间表单
// @Summary 新建房间表单
// @Tags 房间
// @Produce json
// @Success 200 {object} response.Response{data=roomService.FormOptions}
// @Router /agregar_habitacion [get]
func (h *Handler) CreateForm(c *gin.Context) {
	response.Success(c, h.roomService.Options())
}

// Create 新建房间
// @Summary 新建房间
// @Tags 房间
// @Accept multipart/form-data
// @Produce json
// @Param numero formData string true "房间号"
// @Param tipo formData string true "类型"
// @Param capacidad formData int true "容量"
// @Param precio_noche formData number true "每晚价格"
// @Param imagen formData file false "图片"
// @Success 200 {object} response.Response{data=RoomView}
// @Router /agregar_habitacion [post]
func (h *Handler) Create(c *gin.Context) {
	var req roomService.RoomRequest
	if !handler.Bind(c, &req) {
		return
	}
	image, closeImage, ok := readImage(c)
	if !ok {
		return
	}
	defer closeImage()

	room, err := h.roomService.Create(c.Request.Context(), &req, image)
	if handler.HandleError(c, err) {
		return
	}
	handler.SetTarget(c, room.ID)
	response.SuccessWithMessage(c, MessageCreated, h.view(room))
}

// EditForm 编辑房间表单
// @Summary 编辑房间表单
// @Tags 房间
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {object} response.Response{data=EditForm}
// @Router /editar_habitacion/{id} [get]
func (h *Handler) EditForm(c *gin.Context) {
	id, ok := handler.ParseID(c, "habitación")
	if !ok {
		return
	}
	room, err := h.roomService.Get(c.Request.Context(), id)
	if handler.HandleError(c, err) {
		return
	}
	response.Success(c, &EditForm{Habitacion: h.view(room), Opciones: h.roomService.Options()})
}

// Update 编辑房间
// @Summary 编辑房间
// @Tags 房间
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "房间ID"
// @Param imagen formData file false "新图片，不上传则保留原图"
// @Success 200 {object} response.Response{data=RoomView}
// @Router /editar_habitacion/{id} [post]
func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "habitación")
	if !ok {
		return
	}
	var req roomService.RoomRequest
	if !handler.Bind(c, &req) {
		return
	}
	image, closeImage, ok := readImage(c)
	if !ok {
		return
	}
	defer closeImage()

	room, err := h.roomService.Update(c.Request.Context(), id, &req, image)
	if handler.HandleError(c, err) {
		return
	}
	response.SuccessWithMessage(c, MessageUpdated, h.view(room))
}

// SetStatus 设置房间状态
// @Summary 设置房间状态
// @Tags 房间
// @Produce json
// @Param id path int true "房间ID"
// @Param estado formData string true "状态"
// @Success 200 {object} response.Response
// @Router /cambiar_estado_habitacion/{id} [post]
func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := handler.ParseID(c, "habitación")
	if !ok {
		return
	}
	var req StatusRequest
	if !handler.Bind(c, &req) {
		return
	}
	err := h.roomService.SetStatus(c.Request.Context(), id, req.Estado)
	handler.MustSucceedWithMessage(c, err, MessageStatusChanged, nil)
}

// Delete 删除房间
// @Summary 删除房间
// @Tags 房间
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {object} response.Response
// @Router /eliminar_habitacion/{id} [post]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "habitación")
	if !ok {
		return
	}
	handler.MustSucceedWithMessage(c, h.roomService.Delete(c.Request.Context(), id), MessageDeleted, nil)
}

// readImage 读取可选的图片上传，未上传时返回 nil
func readImage(c *gin.Context) (*roomService.ImageFile, func(), bool) {
	noop := func() {}
	fh, err := c.FormFile(ImageField)
	if err != nil {
		if stderrors.Is(err, http.ErrMissingFile) || stderrors.Is(err, http.ErrNotMultipart) {
			return nil, noop, true
		}
		response.BadRequest(c, errors.ErrInvalidParams.Message)
		return nil, noop, false
	}

	f, err := fh.Open()
	if err != nil {
		handler.HandleError(c, roomService.ErrImageUpload.WithError(err))
		return nil, noop, false
	}
	return &roomService.ImageFile{Filename: fh.Filename, Reader: f}, func() { _ = f.Close() }, true
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/habitaciones", h.List)
	r.GET("/agregar_habitacion", h.CreateForm)
	r.POST("/agregar_habitacion", h.Create)
	r.GET("/editar_habitacion/:id", h.EditForm)
	r.POST("/editar_habitacion/:id", h.Update)
	r.POST("/cambiar_estado_habitacion/:id", h.SetStatus)
	r.POST("/eliminar_habitacion/:id", h.Delete)
}
