package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PuntoRequest struct {
	Nombre    string `json:"nombre"     validate:"required,min=1,max=256"`
	Direccion string `json:"direccion"  validate:"max=256"`
	NegocioID uint   `json:"negocio_id" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PuntoResponse struct {
	ID        uint   `json:"id"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	NegocioID uint   `json:"negocio_id"`
}

// PuntoListItem carries the negocio name in place of its id, which is what
// the listing screen renders.
type PuntoListItem struct {
	ID            uint   `json:"id"`
	Nombre        string `json:"nombre"`
	Direccion     string `json:"direccion"`
	NombreNegocio string `json:"negocio_id"`
}
