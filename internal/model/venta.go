package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venta records a sale against a distribution. Monto is Cantidad*Precio.
// Fecha arrives in the business's local time and is stored shifted back
// five hours, matching the timezone the deployments run in.
type Venta struct {
	ID              uint            `gorm:"primaryKey"`
	DistribucionID  uint            `gorm:"not null;index"`
	Cantidad        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Precio          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Monto           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fecha           time.Time       `gorm:"not null"`
	PagoElectronico bool            `gorm:"not null"`
	NoOperacion     *string         `gorm:"type:varchar(256)"`
	PagoDiferido    bool            `gorm:"not null"`
	Descripcion     *string         `gorm:"type:varchar(256)"`
	PuntoID         uint            `gorm:"not null;index"`
	UsuarioID       uint            `gorm:"not null;index"`
	FechaCreado     time.Time       `gorm:"autoCreateTime"`

	Distribucion *Distribucion `gorm:"foreignKey:DistribucionID"`
	Punto        *Punto        `gorm:"foreignKey:PuntoID"`
	Usuario      *Usuario      `gorm:"foreignKey:UsuarioID"`
}

func (Venta) TableName() string { return "venta" }

// CalculaMonto recomputes the sale amount from quantity and price.
func (v *Venta) CalculaMonto() {
	v.Monto = v.Cantidad.Mul(v.Precio)
}
