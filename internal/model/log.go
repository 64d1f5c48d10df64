package model

import "time"

// Acciones registradas en la bitácora.
const (
	AccionCreate = "CREATE"
	AccionUpdate = "UPDATE"
	AccionDelete = "DELETE"
)

// Log is an append-only audit row. It stores the username as plain text
// on purpose so entries survive user deletion.
type Log struct {
	ID          uint      `gorm:"primaryKey"`
	Usuario     string    `gorm:"type:varchar(256);not null"`
	Accion      string    `gorm:"type:varchar(256);not null"`
	Tabla       string    `gorm:"type:varchar(256);not null"`
	Descripcion string    `gorm:"type:varchar(256);not null"`
	FechaCreado time.Time `gorm:"autoCreateTime"`
}

func (Log) TableName() string { return "log" }
