package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearDependienteRequest struct {
	Usuario  string  `json:"usuario"  validate:"required,min=1,max=150"`
	Nombre   string  `json:"nombre"   validate:"required,min=2,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Activo   bool    `json:"activo"`
	PuntoID  uint    `json:"punto_id" validate:"required"`
}

type ActualizarDependienteRequest struct {
	Nombre  string  `json:"nombre"   validate:"required,min=2,max=100"`
	Email   *string `json:"email"    validate:"omitempty,email"`
	Activo  bool    `json:"activo"`
	PuntoID uint    `json:"punto_id" validate:"required"`
}

type CambiarPasswordDependienteRequest struct {
	ContrasennaNueva       string `json:"contrasenna_nueva"        validate:"required,min=8"`
	RepiteContrasennaNueva string `json:"repite_contrasenna_nueva" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// DependienteListItem joins the clerk with the name of its sales point.
type DependienteListItem struct {
	ID          uint    `json:"id"`
	Usuario     string  `json:"usuario"`
	Email       *string `json:"email"`
	Activo      bool    `json:"activo"`
	Nombre      string  `json:"nombre"`
	NombrePunto string  `json:"punto_id"`
}
