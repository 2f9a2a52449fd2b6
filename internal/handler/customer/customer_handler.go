// Package customer 提供客户档案相关的 HTTP Handler
package customer

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-management/internal/common/handler"
	"github.com/dumeirei/hotel-management/internal/common/response"
	"github.com/dumeirei/hotel-management/internal/models"
	customerService "github.com/dumeirei/hotel-management/internal/service/customer"
)

// 提示信息
const (
	MessageCreated = "Cliente agregado exitosamente."
	MessageDeleted = "Cliente eliminado exitosamente."
)

// Handler 客户处理器
type Handler struct {
	customerService *customerService.CustomerService
}

// NewHandler 创建客户处理器
func NewHandler(customerSvc *customerService.CustomerService) *Handler {
	return &Handler{customerService: customerSvc}
}

// FormInfo 新建客户表单约束
type FormInfo struct {
	MinNombre int                          `json:"min_nombre"`
	Campos    []models.CustomerSearchField `json:"campos"`
}

// List 客户列表
// @Summary 客户列表
// @Tags 客户
// @Produce json
// @Param termino query string false "搜索词"
// @Param campo query string false "筛选字段 nombre/identificacion/correo/telefono/todos"
// @Success 200 {object} response.Response{data=response.ListData}
// @Router /clientes [get]
func (h *Handler) List(c *gin.Context) {
	var req customerService.ListRequest
	if !handler.Bind(c, &req) {
		return
	}
	customers, err := h.customerService.List(c.Request.Context(), &req)
	handler.MustSucceedList(c, err, customers, int64(len(customers)))
}

// CreateForm 新建客户表单
// @Summary 新建客户表单
// @Tags 客户
// @Produce json
// @Success 200 {object} response.Response{data=FormInfo}
// @Router /agregar_cliente [get]
func (h *Handler) CreateForm(c *gin.Context) {
	response.Success(c, FormInfo{
		MinNombre: customerService.MinNameLength,
		Campos: []models.CustomerSearchField{
			models.CustomerFieldAll,
			models.CustomerFieldName,
			models.CustomerFieldIdentification,
			models.CustomerFieldEmail,
			models.CustomerFieldPhone,
		},
	})
}

// Create 新建客户
// @Summary 新建客户
// @Tags 客户
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body customerService.CreateRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Customer}
// @Router /agregar [post]
func (h *Handler) Create(c *gin.Context) {
	var req customerService.CreateRequest
	if !handler.Bind(c, &req) {
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), &req)
	if handler.HandleError(c, err) {
		return
	}
	handler.SetTarget(c, customer.ID)
	response.SuccessWithMessage(c, MessageCreated, customer)
}

// Delete 删除客户
// @Summary 删除客户
// @Tags 客户
// @Produce json
// @Param id path int true "客户ID"
// @Success 200 {object} response.Response
// @Router /eliminar/{id} [post]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "cliente")
	if !ok {
		return
	}
	handler.MustSucceedWithMessage(c, h.customerService.Delete(c.Request.Context(), id), MessageDeleted, nil)
}

// Search 按姓名搜索客户
// @Summary 按姓名搜索客户
// @Tags 客户
// @Produce json
// @Param termino query string false "搜索词"
// @Success 200 {object} response.Response{data=response.ListData}
// @Router /buscar [get]
func (h *Handler) Search(c *gin.Context) {
	customers, err := h.customerService.SearchByName(c.Request.Context(), handler.Term(c))
	handler.MustSucceedList(c, err, customers, int64(len(customers)))
}

// SearchForReservation 按姓名或证件号查找预订客户
// @Summary 查找预订客户
// @Tags 预订
// @Produce json
// @Param termino query string false "搜索词"
// @Success 200 {object} response.Response{data=response.ListData}
// @Router /buscar_reserva [get]
func (h *Handler) SearchForReservation(c *gin.Context) {
	customers, err := h.customerService.SearchForReservation(c.Request.Context(), handler.Term(c))
	handler.MustSucceedList(c, err, customers, int64(len(customers)))
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/clientes", h.List)
	r.POST("/clientes", h.List)
	r.GET("/agregar_cliente", h.CreateForm)
	r.POST("/agregar", h.Create)
	r.POST("/eliminar/:id", h.Delete)
	r.GET("/buscar", h.Search)
	r.POST("/buscar", h.Search)
	r.GET("/buscar_reserva", h.SearchForReservation)
	r.POST("/buscar_reserva", h.SearchForReservation)
}
