// Package audit exports store tables to Excel workbooks for admin review.
package audit

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// TableSource provides the tables to export.
type TableSource interface {
	GetTableNames(ctx context.Context) ([]string, error)
	GetTableData(ctx context.Context, tableName string) (data []map[string]interface{}, columns []string, err error)
}

// ExportXLSX writes one sheet per table to w.
func ExportXLSX(ctx context.Context, src TableSource, w io.Writer) error {
	names, err := src.GetTableNames(ctx)
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, name := range names {
		data, columns, err := src.GetTableData(ctx, name)
		if err != nil {
			return fmt.Errorf("read table %s: %w", name, err)
		}

		sheet := name
		// Excel limits sheet names to 31 chars
		if len(sheet) > 31 {
			sheet = sheet[:31]
		}
		if first {
			f.SetSheetName("Sheet1", sheet)
			first = false
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("create sheet %s: %w", sheet, err)
			}
		}

		if err := writeHeader(f, sheet, columns); err != nil {
			return err
		}
		for i, row := range data {
			values := make([]interface{}, len(columns))
			for j, col := range columns {
				values[j] = row[col]
			}
			if err := writeRow(f, sheet, i+2, values); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

func writeHeader(f *excelize.File, sheet string, columns []string) error {
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil && len(columns) > 0 {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), 1)
		_ = f.SetCellStyle(sheet, startCell, endCell, style)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	for i, val := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return err
		}
	}
	return nil
}
