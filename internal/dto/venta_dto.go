package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type VentaRequest struct {
	DistribucionID  uint            `json:"distribucion_id" validate:"required"`
	Cantidad        decimal.Decimal `json:"cantidad"        validate:"required"`
	Precio          decimal.Decimal `json:"precio"          validate:"required"`
	Fecha           string          `json:"fecha"           validate:"required"`
	PuntoID         uint            `json:"punto_id"        validate:"required"`
	PagoElectronico bool            `json:"pago_electronico"`
	NoOperacion     *string         `json:"no_operacion"    validate:"omitempty,max=256"`
	PagoDiferido    bool            `json:"pago_diferido"`
	Descripcion     *string         `json:"descripcion"     validate:"omitempty,max=256"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaResponse struct {
	ID              uint            `json:"id"`
	DistribucionID  uint            `json:"distribucion_id"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	Precio          decimal.Decimal `json:"precio"`
	Monto           decimal.Decimal `json:"monto"`
	Fecha           string          `json:"fecha"`
	PuntoID         uint            `json:"punto_id"`
	PagoDiferido    bool            `json:"pago_diferido"`
	Descripcion     *string         `json:"descripcion"`
	UsuarioID       uint            `json:"usuario_id"`
}

// VentaDetail joins the product name for the edit screen.
type VentaDetail struct {
	DistribucionID  uint            `json:"distribucion_id"`
	Precio          decimal.Decimal `json:"precio"`
	Fecha           string          `json:"fecha"`
	PuntoID         uint            `json:"punto_id"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	NombreProducto  string          `json:"nombre_producto"`
	PagoDiferido    bool            `json:"pago_diferido"`
	Descripcion     *string         `json:"descripcion"`
	PagoElectronico bool            `json:"pago_electronico"`
	NoOperacion     *string         `json:"no_operacion"`
}

type VentaListItem struct {
	ID              uint            `json:"id"`
	NombreProducto  string          `json:"nombre_producto"`
	NombrePunto     string          `json:"nombre_punto"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	Precio          decimal.Decimal `json:"precio"`
	Monto           decimal.Decimal `json:"monto"`
	Fecha           string          `json:"fecha"`
	Dependiente     string          `json:"dependiente"`
	PagoDiferido    bool            `json:"pago_diferido"`
	Descripcion     *string         `json:"descripcion"`
	PagoElectronico bool            `json:"pago_electronico"`
}

// VentaPeriodoItem is quantity sold per product and punto in a period.
type VentaPeriodoItem struct {
	NombreProducto string          `json:"nombre_producto"`
	NombrePunto    string          `json:"nombre_punto"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	ID             int64           `json:"id"`
}

// VentaUtilidadItem expands the period report with cost and margin columns.
type VentaUtilidadItem struct {
	NombreProducto      string          `json:"nombre_producto"`
	NombrePunto         string          `json:"nombre_punto"`
	Cantidad            decimal.Decimal `json:"cantidad"`
	ID                  int64           `json:"id"`
	PrecioCosto         decimal.Decimal `json:"precio_costo"`
	Monto               decimal.Decimal `json:"monto"`
	Utilidad            decimal.Decimal `json:"utilidad"`
	PrecioInventario    decimal.Decimal `json:"precio_inventario"`
	UtilidadEsperada    decimal.Decimal `json:"utilidad_esperada"`
	DiferenciaUtilidad  decimal.Decimal `json:"diferencia_utilidad"`
}
