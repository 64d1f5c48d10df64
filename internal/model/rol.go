package model

// Rol is the closed set of user roles. Authorization for every route is
// declared once in the router table (middleware.RequireRol) instead of being
// re-derived per call site.
type Rol string

const (
	RolSuperadmin  Rol = "superadmin"
	RolPropietario Rol = "propietario"
	RolDependiente Rol = "dependiente"
)

// Valida reports whether r is one of the known roles.
func (r Rol) Valida() bool {
	switch r {
	case RolSuperadmin, RolPropietario, RolDependiente:
		return true
	}
	return false
}

func (r Rol) String() string { return string(r) }
