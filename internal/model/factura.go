package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Factura groups the ventas of a checkout. Ventas holds a JSON snapshot
// of the cart lines taken at creation time; deleting the factura walks
// that snapshot to remove the underlying ventas.
type Factura struct {
	ID              uint            `gorm:"primaryKey"`
	Monto           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Ventas          string          `gorm:"type:text;not null"`
	Fecha           time.Time       `gorm:"not null"`
	PagoElectronico bool            `gorm:"not null"`
	NoOperacion     *string         `gorm:"type:varchar(256)"`
	PuntoID         uint            `gorm:"not null;index"`
	FechaCreado     time.Time       `gorm:"autoCreateTime"`

	Punto *Punto `gorm:"foreignKey:PuntoID"`
}

func (Factura) TableName() string { return "factura" }
