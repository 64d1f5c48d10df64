package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ProductoRequest struct {
	Nombre    string `json:"nombre"     validate:"required,min=1,max=256"`
	NegocioID uint   `json:"negocio_id" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID        uint   `json:"id"`
	Nombre    string `json:"nombre"`
	NegocioID uint   `json:"negocio_id"`
}

type ProductoListItem struct {
	ID            uint   `json:"id"`
	Nombre        string `json:"nombre"`
	NegocioID     uint   `json:"negocio_id"`
	NombreNegocio string `json:"negocio_nombre"`
}
