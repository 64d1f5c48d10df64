package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventario is a purchase lot. Monto is always Cantidad*Costo, derived
// server side and never taken from the client.
type Inventario struct {
	ID          uint            `gorm:"primaryKey"`
	ProductoID  uint            `gorm:"not null;index"`
	Cantidad    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UM          string          `gorm:"column:um;type:varchar(256);not null"`
	Costo       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fecha       time.Time       `gorm:"type:date;not null"`
	NegocioID   uint            `gorm:"not null;index"`
	FechaCreado time.Time       `gorm:"autoCreateTime"`

	Producto       *Producto      `gorm:"foreignKey:ProductoID"`
	Negocio        *Negocio       `gorm:"foreignKey:NegocioID"`
	Distribuciones []Distribucion `gorm:"foreignKey:InventarioID;constraint:OnDelete:CASCADE"`
}

func (Inventario) TableName() string { return "inventario" }

// CalculaMonto recomputes the lot amount from quantity and unit cost.
func (i *Inventario) CalculaMonto() {
	i.Monto = i.Cantidad.Mul(i.Costo)
}
