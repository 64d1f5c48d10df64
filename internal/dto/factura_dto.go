package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// PedidoLinea is one cart line at checkout. The product and punto names
// travel with the line so the invoice snapshot does not need extra lookups.
type PedidoLinea struct {
	Cantidad       decimal.Decimal `json:"cantidad"        validate:"required"`
	DistribucionID uint            `json:"distribucion_id" validate:"required"`
	ID             uint            `json:"id"`
	Precio         decimal.Decimal `json:"precio"          validate:"required"`
	PuntoID        uint            `json:"punto_id"        validate:"required"`
	NombreProducto string          `json:"nombre_producto" validate:"required"`
	NombrePunto    string          `json:"nombre_punto"    validate:"required"`
}

type DetallesPago struct {
	Fecha           string  `json:"fecha"            validate:"required"`
	PagoElectronico bool    `json:"pago_electronico"`
	NoOperacion     *string `json:"no_operacion"     validate:"omitempty,max=256"`
	PuntoID         uint    `json:"punto_id"         validate:"required"`
}

type CrearFacturaRequest struct {
	Carrito      []PedidoLinea   `json:"carrito"       validate:"required,min=1,dive"`
	DetallesPago DetallesPago    `json:"detalles_pago" validate:"required"`
	TotalPedido  decimal.Decimal `json:"total_pedido"  validate:"required"`
}

// ─── Snapshot ────────────────────────────────────────────────────────────────

// FacturaLinea is one element of the JSON snapshot persisted in
// factura.ventas. Key names and order are part of the stored format.
type FacturaLinea struct {
	Producto string          `json:"producto"`
	Cantidad decimal.Decimal `json:"cantidad"`
	Precio   decimal.Decimal `json:"precio"`
	Monto    decimal.Decimal `json:"monto"`
	Punto    string          `json:"punto"`
	ID       uint            `json:"id"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FacturaResponse struct {
	ID              uint            `json:"id"`
	Monto           decimal.Decimal `json:"monto"`
	Ventas          string          `json:"ventas"`
	Fecha           string          `json:"fecha"`
	PagoElectronico bool            `json:"pago_electronico"`
	NoOperacion     *string         `json:"no_operacion"`
	PuntoID         uint            `json:"punto_id"`
}

// FacturaDetail swaps the punto id for its name and carries the raw snapshot.
type FacturaDetail struct {
	ID              uint            `json:"id"`
	Monto           decimal.Decimal `json:"monto"`
	PagoElectronico bool            `json:"pago_electronico"`
	NoOperacion     *string         `json:"no_operacion"`
	NombrePunto     string          `json:"nombre_punto"`
	Ventas          string          `json:"ventas"`
	Fecha           string          `json:"fecha"`
}

type FacturaListItem struct {
	ID              uint            `json:"id"`
	Monto           decimal.Decimal `json:"monto"`
	PagoElectronico bool            `json:"pago_electronico"`
	NoOperacion     *string         `json:"no_operacion"`
	NombrePunto     string          `json:"nombre_punto"`
	Fecha           string          `json:"fecha"`
}
