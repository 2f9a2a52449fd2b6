// Package payment 提供付款台账相关的 HTTP Handler
package payment

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-management/internal/common/handler"
	"github.com/dumeirei/hotel-management/internal/common/response"
	paymentService "github.com/dumeirei/hotel-management/internal/service/payment"
)

// 提示信息
const (
	MessageStatusChanged = "Estado del pago actualizado."
	MessageDeleted       = "Pago eliminado exitosamente."
)

// Handler 付款处理器
type Handler struct {
	paymentService *paymentService.PaymentService
}

// NewHandler 创建付款处理器
func NewHandler(paymentSvc *paymentService.PaymentService) *Handler {
	return &Handler{paymentService: paymentSvc}
}

// StatusRequest 状态变更请求
type StatusRequest struct {
	Estado string `form:"estado" json:"estado"`
}

// List 付款列表
// @Summary 付款列表
// @Tags 付款
// @Produce json
// @Param estado query string false "状态"
// @Param metodo query string false "付款方式"
// @Success 200 {object} response.Response{data=response.ListData}
// @Router /pagos [get]
func (h *Handler) List(c *gin.Context) {
	var req paymentService.ListRequest
	if !handler.Bind(c, &req) {
		return
	}
	list, err := h.paymentService.List(c.Request.Context(), &req)
	handler.MustSucceedList(c, err, list, int64(len(list)))
}

// UpsertForm 登记付款表单
// @Summary 登记付款表单
// @Tags 付款
// @Produce json
// @Param reserva_id path int true "预订ID"
// @Success 200 {object} response.Response{data=paymentService.FormData}
// @Router /registrar_pago/{reserva_id} [get]
func (h *Handler) UpsertForm(c *gin.Context) {
	reservaID, ok := handler.ParseParamID(c, "reserva_id", "reserva")
	if !ok {
		return
	}
	data, err := h.paymentService.GetFormData(c.Request.Context(), reservaID)
	handler.MustSucceed(c, err, data)
}

// Upsert 登记或更新预订付款
// @Summary 登记付款
// @Tags 付款
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param reserva_id path int true "预订ID"
// @Param request body paymentService.UpsertRequest true "请求参数"
// @Success 200 {object} response.Response{data=paymentService.UpsertResult}
// @Router /registrar_pago/{reserva_id} [post]
func (h *Handler) Upsert(c *gin.Context) {
	reservaID, ok := handler.ParseParamID(c, "reserva_id", "reserva")
	if !ok {
		return
	}
	var req paymentService.UpsertRequest
	if !handler.Bind(c, &req) {
		return
	}

	result, err := h.paymentService.Upsert(c.Request.Context(), reservaID, &req)
	if handler.HandleError(c, err) {
		return
	}
	handler.SetTarget(c, result.Payment.ID)
	response.SuccessWithMessage(c, result.Message(), result)
}

// SetStatus 设置付款状态
// @Summary 设置付款状态
// @Tags 付款
// @Produce json
// @Param id path int true "付款ID"
// @Param estado formData string true "状态 Pendiente/Completado/Cancelado"
// @Success 200 {object} response.Response
// @Router /cambiar_estado_pago/{id} [post]
func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := handler.ParseID(c, "pago")
	if !ok {
		return
	}
	var req StatusRequest
	if !handler.Bind(c, &req) {
		return
	}
	err := h.paymentService.SetStatus(c.Request.Context(), id, req.Estado)
	handler.MustSucceedWithMessage(c, err, MessageStatusChanged, nil)
}

// Delete 删除付款，已完成的付款不可删除
// @Summary 删除付款
// @Tags 付款
// @Produce json
// @Param id path int true "付款ID"
// @Success 200 {object} response.Response
// @Router /eliminar_pago/{id} [post]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "pago")
	if !ok {
		return
	}
	handler.MustSucceedWithMessage(c, h.paymentService.Delete(c.Request.Context(), id), MessageDeleted, nil)
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/pagos", h.List)
	r.GET("/registrar_pago/:reserva_id", h.UpsertForm)
	r.POST("/registrar_pago/:reserva_id", h.Upsert)
	r.POST("/cambiar_estado_pago/:id", h.SetStatus)
	r.POST("/eliminar_pago/:id", h.Delete)
}
