package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=1"`
	Password string `json:"password" form:"password" validate:"required,min=4"`
}

type CrearUsuarioRequest struct {
	Usuario  string  `json:"usuario"  validate:"required,min=1,max=150"`
	Nombre   string  `json:"nombre"   validate:"required,min=2,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Rol      string  `json:"rol"      validate:"required,oneof=superadmin propietario dependiente"`
	Activo   bool    `json:"activo"`
	PuntoID  *uint   `json:"punto_id"`
}

type ActualizarUsuarioRequest struct {
	Nombre  string  `json:"nombre"   validate:"omitempty,min=2,max=100"`
	Email   *string `json:"email"    validate:"omitempty,email"`
	Rol     string  `json:"rol"      validate:"omitempty,oneof=superadmin propietario dependiente"`
	Activo  bool    `json:"activo"`
	PuntoID *uint   `json:"punto_id"`
}

type CambiarPasswordRequest struct {
	ContrasennaActual        string `json:"contrasenna_actual"         validate:"required"`
	ContrasennaNueva         string `json:"contrasenna_nueva"          validate:"required,min=8"`
	RepiteContrasennaNueva   string `json:"repite_contrasenna_nueva"   validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID      uint    `json:"id"`
	Usuario string  `json:"usuario"`
	Nombre  string  `json:"nombre"`
	Email   *string `json:"email"`
	Rol     string  `json:"rol"`
	Activo  bool    `json:"activo"`
	PuntoID *uint   `json:"punto_id"`
}

// TokenResponse mirrors the login payload the frontend consumes.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Usuario     string `json:"usuario"`
	Rol         string `json:"rol"`
	Name        string `json:"name"`
}
