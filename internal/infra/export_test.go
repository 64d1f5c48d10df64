package infra

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lrplaceres/punto-venta/internal/dto"
)

func TestInventariosXLSX(t *testing.T) {
	items := []dto.InventarioListItem{
		{ID: 1, Nombre: "Cafe", Cantidad: decimal.NewFromInt(100), NombreNegocio: "Bodega Centro", Costo: decimal.NewFromInt(10), Fecha: "2026-03-01", PrecioVenta: decimal.NewFromInt(15)},
		{ID: 2, Nombre: "Azucar", Cantidad: decimal.NewFromInt(20), NombreNegocio: "Bodega Centro", Costo: decimal.NewFromInt(4), Fecha: "2026-03-02", PrecioVenta: decimal.NewFromInt(6)},
	}

	data, err := InventariosXLSX(items)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	nombre, err := f.GetCellValue("Inventarios", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Cafe", nombre)

	// Monto column carries cantidad*costo per lot.
	monto, err := f.GetCellValue("Inventarios", "F2")
	require.NoError(t, err)
	assert.Equal(t, "1000", monto)

	etiqueta, err := f.GetCellValue("Inventarios", "A4")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", etiqueta)
}

func TestFacturaPDF(t *testing.T) {
	factura := &dto.FacturaDetail{
		ID:          7,
		Monto:       decimal.NewFromInt(60),
		NombrePunto: "Centro",
		Fecha:       "2026-03-10T14:30:00",
	}
	lineas := []dto.FacturaLinea{
		{Producto: "Cafe", Cantidad: decimal.NewFromInt(2), Precio: decimal.NewFromInt(25), Monto: decimal.NewFromInt(50), Punto: "Centro", ID: 1},
		{Producto: "Azucar", Cantidad: decimal.NewFromInt(1), Precio: decimal.NewFromInt(10), Monto: decimal.NewFromInt(10), Punto: "Centro", ID: 2},
	}

	data, err := FacturaPDF(factura, lineas)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
