package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DistribucionRequest struct {
	InventarioID uint            `json:"inventario_id" validate:"required"`
	Cantidad     decimal.Decimal `json:"cantidad"      validate:"required"`
	Fecha        string          `json:"fecha"         validate:"required,datetime=2006-01-02"`
	PuntoID      uint            `json:"punto_id"      validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DistribucionResponse struct {
	ID           uint            `json:"id"`
	InventarioID uint            `json:"inventario_id"`
	Cantidad     decimal.Decimal `json:"cantidad"`
	Fecha        string          `json:"fecha"`
	PuntoID      uint            `json:"punto_id"`
}

// DistribucionDetail adds the lot totals the edit screen shows next to the
// assignment being edited.
type DistribucionDetail struct {
	ID                  uint            `json:"id"`
	Cantidad            decimal.Decimal `json:"cantidad"`
	Fecha               string          `json:"fecha"`
	InventarioID        uint            `json:"inventario_id"`
	PuntoID             uint            `json:"punto_id"`
	NegocioID           uint            `json:"negocio_id"`
	CantidadInventario  decimal.Decimal `json:"cantidad_inventario"`
	CantidadDistribuida decimal.Decimal `json:"cantidad_distribuida"`
}

type DistribucionListItem struct {
	ID            uint            `json:"id"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Fecha         string          `json:"fecha"`
	NombrePunto   string          `json:"punto_id"`
	NombreNegocio string          `json:"negocio_id"`
	NombreProducto string         `json:"producto_id"`
	Costo         decimal.Decimal `json:"costo"`
}

// DistribucionVentaItem is a distribution still holding sellable stock:
// existencia = cantidad - cantidad_vendida.
type DistribucionVentaItem struct {
	ID              uint            `json:"id"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	Fecha           string          `json:"fecha"`
	PuntoID         uint            `json:"punto_id"`
	NombreProducto  string          `json:"nombre_producto"`
	PrecioVenta     decimal.Decimal `json:"precio_venta"`
	CantidadVendida decimal.Decimal `json:"cantidad_vendida"`
	NombrePunto     string          `json:"nombre_punto"`
	Um              string          `json:"um"`
	Existencia      decimal.Decimal `json:"existencia"`
}

// DistribucionResumenItem aggregates per product at one sales point.
type DistribucionResumenItem struct {
	ID                  int64           `json:"id"`
	NombreProducto      string          `json:"nombre_producto"`
	CantidadDistribuida decimal.Decimal `json:"cantidad_distribuida"`
	NombrePunto         string          `json:"nombre_punto"`
	Um                  string          `json:"um"`
	PrecioVenta         decimal.Decimal `json:"precio_venta"`
	CantidadVendida     decimal.Decimal `json:"cantidad_vendida"`
	Existencia          decimal.Decimal `json:"existencia"`
}

// DistribucionCuadreItem is the period closeout row: sold quantity and monto
// inside the period, existencia against all-time sales.
type DistribucionCuadreItem struct {
	ID                  int64           `json:"id"`
	NombreProducto      string          `json:"nombre_producto"`
	CantidadDistribuida decimal.Decimal `json:"cantidad_distribuida"`
	NombrePunto         string          `json:"nombre_punto"`
	Um                  string          `json:"um"`
	PrecioVenta         decimal.Decimal `json:"precio_venta"`
	CantidadVendida     decimal.Decimal `json:"cantidad_vendida"`
	Monto               decimal.Decimal `json:"monto"`
	Existencia          decimal.Decimal `json:"existencia"`
}

// DistribucionPeriodoItem groups distributed quantity per product and punto.
type DistribucionPeriodoItem struct {
	ID             int64           `json:"id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	NombrePunto    string          `json:"nombre_punto"`
	NombreNegocio  string          `json:"nombre_negocio"`
	NombreProducto string          `json:"nombre_producto"`
}
