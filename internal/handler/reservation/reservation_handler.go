// Package reservation 提供预订与快速预订相关的 HTTP Handler
package reservation

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-management/internal/common/handler"
	"github.com/dumeirei/hotel-management/internal/common/response"
	reservationService "github.com/dumeirei/hotel-management/internal/service/reservation"
)

// 提示信息
const (
	MessageCreated       = "Reserva creada exitosamente."
	MessageDeleted       = "Reserva eliminada exitosamente."
	MessageStatusChanged = "Estado de la reserva actualizado."
	MessageCheckIn       = "Check-in realizado exitosamente."
	MessageCheckOut      = "Check-out realizado exitosamente."
)

// Handler 预订处理器
type Handler struct {
	reservationService *reservationService.ReservationService
}

// NewHandler 创建预订处理器
func NewHandler(reservationSvc *reservationService.ReservationService) *Handler {
	return &Handler{reservationService: reservationSvc}
}

// StatusRequest 状态变更请求
type StatusRequest struct {
	Estado string `form:"estado" json:"estado"`
}

// List 预订列表
// @Summary 预订列表
// @Tags 预订
// @Produce json
// @Param termino query string false "客户姓名或房间号"
// @Param estado query string false "状态"
// @Param fecha_desde query string false "入住日期起 YYYY-MM-DD"
// @Param fecha_hasta query string false "入住日期止 YYYY-MM-DD"
// @Success 200 {object} response.Response{data=response.ListData}
// @Router /reservas [get]
func (h *Handler) List(c *gin.Context) {
	var req reservationService.ListRequest
	if !handler.Bind(c, &req) {
		return
	}
	list, err := h.reservationService.List(c.Request.Context(), &req)
	handler.MustSucceedList(c, err, list, int64(len(list)))
}

// CreateForm 创建预订表单
// @Summary 创建预订表单
// @Tags 预订
// @Produce json
// @Param cliente_id path int true "客户ID"
// @Success 200 {object} response.Response{data=reservationService.FormData}
// @Router /crear_reserva/{cliente_id} [get]
func (h *Handler) CreateForm(c *gin.Context) {
	clienteID, ok := handler.ParseParamID(c, "cliente_id", "cliente")
	if !ok {
		return
	}
	data, err := h.reservationService.GetFormData(c.Request.Context(), clienteID)
	handler.MustSucceed(c, err, data)
}

// Create 创建预订，同时生成待付款并将房间置为已预订
// @Summary 创建预订
// @Tags 预订
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param cliente_id path int true "客户ID"
// @Param request body reservationService.CreateRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /crear_reserva/{cliente_id} [post]
func (h *Handler) Create(c *gin.Context) {
	clienteID, ok := handler.ParseParamID(c, "cliente_id", "cliente")
	if !ok {
		return
	}
	var req reservationService.CreateRequest
	if !handler.Bind(c, &req) {
		return
	}

	reservation, err := h.reservationService.Create(c.Request.Context(), clienteID, &req)
	if handler.HandleError(c, err) {
		return
	}
	handler.SetTarget(c, reservation.ID)
	response.SuccessWithMessage(c, MessageCreated, reservation)
}

// Delete 删除预订及其付款并释放房间
// @Summary 删除预订
// @Tags 预订
// @Produce json
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response
// @Router /eliminar_reserva/{id} [post]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "reserva")
	if !ok {
		return
	}
	handler.MustSucceedWithMessage(c, h.reservationService.Delete(c.Request.Context(), id), MessageDeleted, nil)
}

// SetStatus 设置预订状态
// @Summary 设置预订状态
// @Tags 预订
// @Produce json
// @Param id path int true "预订ID"
// @Param estado formData string true "状态"
// @Success 200 {object} response.Response
// @Router /cambiar_estado_reserva/{id} [post]
func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := handler.ParseID(c, "reserva")
	if !ok {
		return
	}
	var req StatusRequest
	if !handler.Bind(c, &req) {
		return
	}
	err := h.reservationService.SetStatus(c.Request.Context(), id, req.Estado)
	handler.MustSucceedWithMessage(c, err, MessageStatusChanged, nil)
}

// CheckIn 办理入住
// @Summary 办理入住
// @Tags 预订
// @Produce json
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response
// @Router /checkin_reserva/{id} [post]
func (h *Handler) CheckIn(c *gin.Context) {
	id, ok := handler.ParseID(c, "reserva")
	if !ok {
		return
	}
	handler.MustSucceedWithMessage(c, h.reservationService.CheckIn(c.Request.Context(), id), MessageCheckIn, nil)
}

// CheckOut 办理退房
// @Summary 办理退房
// @Tags 预订
// @Produce json
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response
// @Router /checkout_reserva/{id} [post]
func (h *Handler) CheckOut(c *gin.Context) {
	id, ok := handler.ParseID(c, "reserva")
	if !ok {
		return
	}
	handler.MustSucceedWithMessage(c, h.reservationService.CheckOut(c.Request.Context(), id), MessageCheckOut, nil)
}

// QuickBookForm 快速预订页面
// @Summary 快速预订可选房间
// @Tags 快速预订
// @Produce json
// @Success 200 {object} response.Response{data=response.ListData}
// @Router /reserva_rapida [get]
func (h *Handler) QuickBookForm(c *gin.Context) {
	rooms, err := h.reservationService.QuickBookRooms(c.Request.Context())
	handler.MustSucceedList(c, err, rooms, int64(len(rooms)))
}

// QuickBook 公开快速预订
// @Summary 快速预订
// @Tags 快速预订
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body reservationService.QuickBookRequest true "请求参数"
// @Success 200 {object} response.Response{data=reservationService.QuickBookResult}
// @Router /reserva_rapida [post]
func (h *Handler) QuickBook(c *gin.Context) {
	var req reservationService.QuickBookRequest
	if !handler.Bind(c, &req) {
		return
	}
	result, err := h.reservationService.QuickBook(c.Request.Context(), &req)
	handler.MustSucceedWithMessage(c, err, reservationService.QuickBookSuccessMessage, result)
}

// RegisterRoutes 注册需要登录的路由
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/reservas", h.List)
	r.POST("/reservas", h.List)
	r.GET("/crear_reserva/:cliente_id", h.CreateForm)
	r.POST("/crear_reserva/:cliente_id", h.Create)
	r.POST("/eliminar_reserva/:id", h.Delete)
	r.POST("/cambiar_estado_reserva/:id", h.SetStatus)
	r.POST("/checkin_reserva/:id", h.CheckIn)
	r.POST("/checkout_reserva/:id", h.CheckOut)
}

// RegisterPublicRoutes 注册公开路由，POST 需另行挂载限流
func (h *Handler) RegisterPublicRoutes(r gin.IRoutes, limiters ...gin.HandlerFunc) {
	r.GET("/reserva_rapida", h.QuickBookForm)
	r.POST("/reserva_rapida", append(limiters[:len(limiters):len(limiters)], h.QuickBook)...)
}
