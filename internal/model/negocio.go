package model

import "time"

// Negocio is a tenant: the root of ownership and authorization scoping.
// Mutating operations on its subtree require FechaLicencia >= today.
type Negocio struct {
	ID          uint   `gorm:"primaryKey"`
	Nombre      string `gorm:"type:varchar(256);not null"`
	Direccion   string `gorm:"type:varchar(256)"`
	Informacion string `gorm:"type:varchar(256)"`
	// FechaLicencia is the license expiry date (inclusive).
	FechaLicencia time.Time `gorm:"type:date;not null"`
	Activo        bool      `gorm:"not null;default:true"`
	PropietarioID uint      `gorm:"not null;index"`
	FechaCreado   time.Time `gorm:"autoCreateTime"`

	Propietario *Usuario `gorm:"foreignKey:PropietarioID"`
	// Deleting a negocio removes its whole subtree.
	Puntos      []Punto      `gorm:"foreignKey:NegocioID;constraint:OnDelete:CASCADE"`
	Productos   []Producto   `gorm:"foreignKey:NegocioID;constraint:OnDelete:CASCADE"`
	Inventarios []Inventario `gorm:"foreignKey:NegocioID;constraint:OnDelete:CASCADE"`
}

func (Negocio) TableName() string { return "negocio" }

// LicenciaVigente reports whether the license is valid on the given day.
func (n *Negocio) LicenciaVigente(hoy time.Time) bool {
	y, m, d := hoy.Date()
	dia := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return !n.FechaLicencia.Before(dia)
}
