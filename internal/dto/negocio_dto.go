package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type NegocioRequest struct {
	Nombre        string `json:"nombre"         validate:"required,min=1,max=256"`
	Direccion     string `json:"direccion"      validate:"max=256"`
	Informacion   string `json:"informacion"    validate:"max=256"`
	FechaLicencia string `json:"fecha_licencia" validate:"required,datetime=2006-01-02"`
	Activo        bool   `json:"activo"`
	PropietarioID uint   `json:"propietario_id" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type NegocioResponse struct {
	ID            uint   `json:"id"`
	Nombre        string `json:"nombre"`
	Direccion     string `json:"direccion"`
	Informacion   string `json:"informacion"`
	FechaLicencia string `json:"fecha_licencia"`
	Activo        bool   `json:"activo"`
	PropietarioID uint   `json:"propietario_id"`
}
