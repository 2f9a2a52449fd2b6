package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/common/logger"
)

// 导出工作表
const (
	SheetRevenue = "Ingresos"
	SheetMethods = "Metodos"
	SheetPending = "Pendientes"
)

// XLSXContentType 导出文件类型
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportFinancial 将财务报表导出为 XLSX，返回文件内容与文件名
func (s *ReportService) ExportFinancial(ctx context.Context) ([]byte, string, error) {
	fin, err := s.Financial(ctx)
	if err != nil {
		return nil, "", err
	}

	data, err := buildWorkbook(fin)
	if err != nil {
		logger.Error("导出财务报表失败", logger.Err(err))
		return nil, "", errors.ErrExportFailed.WithError(err)
	}

	filename := fmt.Sprintf("reporte_financiero_%s.xlsx", s.now().Format("20060102"))
	return data, filename, nil
}

func buildWorkbook(fin *Financial) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetRevenue); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetMethods, SheetPending} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	revenue := [][]interface{}{{"Mes", "Ingresos"}}
	for _, r := range fin.IngresosMensuales {
		revenue = append(revenue, []interface{}{r.Mes, r.Ingresos})
	}
	methods := [][]interface{}{{"Método", "Cantidad", "Total"}}
	for _, m := range fin.MetodosPago {
		methods = append(methods, []interface{}{m.Metodo, m.Cantidad, m.Total})
	}
	pending := [][]interface{}{{"Fecha", "Cliente", "Habitación", "Monto"}}
	for _, p := range fin.PagosPendientes {
		pending = append(pending, []interface{}{p.Fecha, p.Cliente, p.Habitacion, p.Monto})
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetRevenue, revenue},
		{SheetMethods, methods},
		{SheetPending, pending},
	}
	for _, sh := range sheets {
		if err := writeRows(f, sh.name, sh.rows, header); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	lastCol := string(rune('A' + len(rows[0]) - 1))
	return f.SetColWidth(sheet, "A", lastCol, 18)
}
