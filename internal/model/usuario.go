package model

import "time"

// Usuario stores system users with role-based access.
// Rol: "superadmin" | "propietario" | "dependiente"
type Usuario struct {
	ID      uint   `gorm:"primaryKey"`
	Usuario string `gorm:"type:varchar(256);uniqueIndex;not null"`
	Nombre  string `gorm:"type:varchar(256);not null"`
	Email   *string
	Rol     Rol  `gorm:"type:varchar(20);not null"`
	Activo  bool `gorm:"not null;default:true"`
	// Password holds the bcrypt hash, never the plaintext.
	Password string `gorm:"type:varchar(256);not null"`
	// PuntoID ties a dependiente to their assigned sales location; nil for
	// superadmin and propietario.
	PuntoID     *uint
	FechaCreado time.Time `gorm:"autoCreateTime"`

	Punto    *Punto    `gorm:"foreignKey:PuntoID"`
	Negocios []Negocio `gorm:"foreignKey:PropietarioID"`
}

// TableName matches the original singular schema.
func (Usuario) TableName() string { return "user" }
