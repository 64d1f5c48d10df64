package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type InventarioRequest struct {
	ProductoID  uint            `json:"producto_id"  validate:"required"`
	Cantidad    decimal.Decimal `json:"cantidad"     validate:"required"`
	Um          string          `json:"um"           validate:"required,max=256"`
	Costo       decimal.Decimal `json:"costo"        validate:"required"`
	PrecioVenta decimal.Decimal `json:"precio_venta" validate:"required"`
	Fecha       string          `json:"fecha"        validate:"required,datetime=2006-01-02"`
	NegocioID   uint            `json:"negocio_id"   validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InventarioResponse struct {
	ID          uint            `json:"id"`
	ProductoID  uint            `json:"producto_id"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Um          string          `json:"um"`
	Costo       decimal.Decimal `json:"costo"`
	Monto       decimal.Decimal `json:"monto"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Fecha       string          `json:"fecha"`
	NegocioID   uint            `json:"negocio_id"`
}

// InventarioListItem is the owner's lot listing row, joined to the product
// and negocio names.
type InventarioListItem struct {
	ID            uint            `json:"id"`
	Nombre        string          `json:"nombre"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	NombreNegocio string          `json:"negocio_id"`
	Costo         decimal.Decimal `json:"costo"`
	Fecha         string          `json:"fecha"`
	PrecioVenta   decimal.Decimal `json:"precio_venta"`
}

// InventarioADistribuirItem reports, per lot, how much remains undistributed.
type InventarioADistribuirItem struct {
	ID            uint            `json:"id"`
	Nombre        string          `json:"nombre"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Fecha         string          `json:"fecha"`
	Costo         decimal.Decimal `json:"costo"`
	Distribuido   decimal.Decimal `json:"distribuido"`
	NegocioID     uint            `json:"negocio_id"`
	Existencia    decimal.Decimal `json:"existencia"`
	NombreNegocio string          `json:"nombre_negocio"`
}

// MontoPorDiaItem is one bucket of a per-day money aggregate. ID is a
// synthetic day label, kept because the frontend grid wants unique keys.
type MontoPorDiaItem struct {
	Monto decimal.Decimal `json:"monto"`
	Fecha string          `json:"fecha"`
	ID    string          `json:"id"`
}
