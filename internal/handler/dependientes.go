package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/middleware"
	"github.com/lrplaceres/punto-venta/internal/service"
)

// DependientesHandler exposes the clerk management endpoints available
// to a propietario.
type DependientesHandler struct{ svc service.DependienteService }

func NewDependientesHandler(svc service.DependienteService) *DependientesHandler {
	return &DependientesHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear dependiente
// @Description  Registra un dependiente asignado a un punto del propietario. Requiere licencia vigente.
// @Tags         dependientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearDependienteRequest true "Datos del dependiente"
// @Success      201 {object} dto.UsuarioResponse
// @Failure      403 {object} apierror.APIError
// @Failure      412 {object} apierror.APIError
// @Router       /dependiente [post]
func (h *DependientesHandler) Crear(c *gin.Context) {
	var req dto.CrearDependienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), middleware.GetUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DependientesHandler) Obtener(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), middleware.GetUser(c).ID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DependientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), middleware.GetUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DependientesHandler) Actualizar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarDependienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), middleware.GetUser(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DependientesHandler) Bloquear(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Bloquear(c.Request.Context(), middleware.GetUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DependientesHandler) Desbloquear(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Desbloquear(c.Request.Context(), middleware.GetUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CambiarPassword permite al propietario restablecer la contraseña de un
// dependiente suyo.
func (h *DependientesHandler) CambiarPassword(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarPasswordDependienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarPassword(c.Request.Context(), middleware.GetUser(c), id, req); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
