package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Distribucion assigns part of an inventory lot to a sales point. Stock
// at a point is the distributed quantity minus what its ventas consumed.
type Distribucion struct {
	ID           uint            `gorm:"primaryKey"`
	InventarioID uint            `gorm:"not null;index"`
	Cantidad     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fecha        time.Time       `gorm:"type:date;not null"`
	PuntoID      uint            `gorm:"not null;index"`
	FechaCreado  time.Time       `gorm:"autoCreateTime"`

	Inventario *Inventario `gorm:"foreignKey:InventarioID"`
	Punto      *Punto      `gorm:"foreignKey:PuntoID"`
	Ventas     []Venta     `gorm:"foreignKey:DistribucionID;constraint:OnDelete:CASCADE"`
}

func (Distribucion) TableName() string { return "distribucion" }
