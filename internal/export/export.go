// Package export serializes a report's pivot table to a downloadable
// spreadsheet.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/carsa-legal/cobros/internal/ledger"
)

const SheetName = "Detalle de Pagos"

var headers = []string{"PERIODO", "AÑO", "MES", "CHEQUE JUDICIAL", "EFECTIVO/OTROS", ledger.TotalLabel}

// Filename is the download name for a client's report.
func Filename(clientID string) string {
	return fmt.Sprintf("detalle_pagos_%s.xlsx", clientID)
}

// WritePivot builds a one-sheet workbook holding the report's pivot, grand
// total included. Zero cells are written as numeric zero; the dash
// placeholder is a display concern only. The caller owns closing the file.
func WritePivot(rep *ledger.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, err
		}
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, row := range rep.Pivot {
		rowNum := i + 2
		values := []any{
			ledger.TitleCase(row.PeriodLabel),
			yearCell(row.Year),
			row.MonthLabel,
			row.JudicialCheck.InexactFloat64(),
			row.CashOther.InexactFloat64(),
			row.Total.InexactFloat64(),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, err
			}
		}
		if row.GrandTotal {
			start, _ := excelize.CoordinatesToCellName(1, rowNum)
			end, _ := excelize.CoordinatesToCellName(len(headers), rowNum)
			if err := f.SetCellStyle(SheetName, start, end, boldStyle); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func yearCell(year int) any {
	if year == 0 {
		return ""
	}
	return year
}
