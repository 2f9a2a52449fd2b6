// Package report 提供首页概览、统计报表与操作日志相关的 HTTP Handler
package report

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-management/internal/common/handler"
	"github.com/dumeirei/hotel-management/internal/middleware"
	reportService "github.com/dumeirei/hotel-management/internal/service/report"
)

// Handler 报表处理器
type Handler struct {
	reportService *reportService.ReportService
}

// NewHandler 创建报表处理器
func NewHandler(reportSvc *reportService.ReportService) *Handler {
	return &Handler{reportService: reportSvc}
}

// Dashboard 首页概览
// @Summary 首页概览
// @Tags 报表
// @Produce json
// @Success 200 {object} response.Response{data=reportService.Dashboard}
// @Router / [get]
func (h *Handler) Dashboard(c *gin.Context) {
	data, err := h.reportService.Dashboard(c.Request.Context(), middleware.GetUsername(c))
	handler.MustSucceed(c, err, data)
}

// Summary 主报表
// @Summary 主报表
// @Tags 报表
// @Produce json
// @Success 200 {object} response.Response{data=reportService.Summary}
// @Router /reportes [get]
func (h *Handler) Summary(c *gin.Context) {
	data, err := h.reportService.Summary(c.Request.Context())
	handler.MustSucceed(c, err, data)
}

// Occupancy 占用报表
// @Summary 占用报表
// @Tags 报表
// @Produce json
// @Success 200 {object} response.Response{data=reportService.Occupancy}
// @Router /reporte_ocupacion [get]
func (h *Handler) Occupancy(c *gin.Context) {
	data, err := h.reportService.Occupancy(c.Request.Context())
	handler.MustSucceed(c, err, data)
}

// Financial 财务报表
// @Summary 财务报表
// @Tags 报表
// @Produce json
// @Success 200 {object} response.Response{data=reportService.Financial}
// @Router /reporte_financiero [get]
func (h *Handler) Financial(c *gin.Context) {
	data, err := h.reportService.Financial(c.Request.Context())
	handler.MustSucceed(c, err, data)
}

// ExportFinancial 导出财务报表 XLSX
// @Summary 导出财务报表
// @Tags 报表
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /reporte_financiero/exportar [get]
func (h *Handler) ExportFinancial(c *gin.Context) {
	data, filename, err := h.reportService.ExportFinancial(c.Request.Context())
	if handler.HandleError(c, err) {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, reportService.XLSXContentType, data)
}

// Operations 最近的操作日志
// @Summary 操作日志
// @Tags 报表
// @Produce json
// @Success 200 {object} response.Response{data=response.ListData}
// @Router /operaciones [get]
func (h *Handler) Operations(c *gin.Context) {
	logs, err := h.reportService.RecentOperations(c.Request.Context())
	handler.MustSucceedList(c, err, logs, int64(len(logs)))
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Dashboard)
	r.GET("/reportes", h.Summary)
	r.GET("/reporte_ocupacion", h.Occupancy)
	r.GET("/reporte_financiero", h.Financial)
	r.GET("/reporte_financiero/exportar", h.ExportFinancial)
	r.GET("/operaciones", h.Operations)
}
