package model

import "time"

// Punto is a physical sales location belonging to exactly one negocio.
type Punto struct {
	ID          uint   `gorm:"primaryKey"`
	Nombre      string `gorm:"type:varchar(256);not null"`
	Direccion   string `gorm:"type:varchar(256)"`
	NegocioID   uint   `gorm:"not null;index"`
	FechaCreado time.Time `gorm:"autoCreateTime"`

	Negocio        *Negocio       `gorm:"foreignKey:NegocioID"`
	Distribuciones []Distribucion `gorm:"foreignKey:PuntoID;constraint:OnDelete:CASCADE"`
	Ventas         []Venta        `gorm:"foreignKey:PuntoID;constraint:OnDelete:CASCADE"`
	Dependientes   []Usuario      `gorm:"foreignKey:PuntoID"`
}

func (Punto) TableName() string { return "punto" }
