package infra

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lrplaceres/punto-venta/internal/dto"
)

// InventariosXLSX builds the inventory valuation workbook downloaded from
// the back office. One row per lot, totals row at the bottom.
func InventariosXLSX(items []dto.InventarioListItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inventarios"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Producto", "Negocio", "Cantidad", "Costo", "Precio venta", "Monto", "Fecha"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: %w", err)
		}
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, boldStyle); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}

	for i, item := range items {
		row := i + 2
		cantidad, _ := item.Cantidad.Float64()
		costo, _ := item.Costo.Float64()
		precio, _ := item.PrecioVenta.Float64()
		monto, _ := item.Cantidad.Mul(item.Costo).Float64()
		values := []interface{}{
			item.Nombre,
			item.NombreNegocio,
			cantidad,
			costo,
			precio,
			monto,
			item.Fecha,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx: %w", err)
			}
		}
	}

	// Totals row
	totalRow := len(items) + 2
	cell, _ := excelize.CoordinatesToCellName(1, totalRow)
	if err := f.SetCellValue(sheet, cell, "TOTAL"); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	montoCell, _ := excelize.CoordinatesToCellName(6, totalRow)
	formula := fmt.Sprintf("SUM(F2:F%d)", totalRow-1)
	if err := f.SetCellFormula(sheet, montoCell, formula); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	if err := f.SetRowStyle(sheet, totalRow, totalRow, boldStyle); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
