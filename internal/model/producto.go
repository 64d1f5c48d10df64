package model

import "time"

// Producto is a catalog entry. Its nombre is unique within the negocio,
// never globally.
type Producto struct {
	ID          uint   `gorm:"primaryKey"`
	Nombre      string `gorm:"type:varchar(256);not null;uniqueIndex:uq_producto_negocio,priority:1"`
	NegocioID   uint   `gorm:"not null;uniqueIndex:uq_producto_negocio,priority:2"`
	FechaCreado time.Time `gorm:"autoCreateTime"`

	Negocio     *Negocio     `gorm:"foreignKey:NegocioID"`
	Inventarios []Inventario `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
}

func (Producto) TableName() string { return "producto" }
