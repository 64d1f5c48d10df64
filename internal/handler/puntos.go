package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/middleware"
	"github.com/lrplaceres/punto-venta/internal/service"
)

type PuntosHandler struct{ svc service.PuntoService }

func NewPuntosHandler(svc service.PuntoService) *PuntosHandler {
	return &PuntosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear punto de venta
// @Tags         puntos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.PuntoRequest true "Datos del punto"
// @Success      201 {object} dto.PuntoResponse
// @Failure      403 {object} apierror.APIError
// @Router       /punto [post]
func (h *PuntosHandler) Crear(c *gin.Context) {
	var req dto.PuntoRequest
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

func (h *PuntosHandler) Obtener(c *gin.Context) {
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

func (h *PuntosHandler) ListarPropios(c *gin.Context) {
	resp, err := h.svc.ListarPropios(c.Request.Context(), middleware.GetUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorNegocio devuelve los puntos de un negocio del propietario.
func (h *PuntosHandler) ListarPorNegocio(c *gin.Context) {
	negocioID, ok := idParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorNegocio(c.Request.Context(), middleware.GetUser(c).ID, negocioID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PuntosHandler) Actualizar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.PuntoRequest
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

func (h *PuntosHandler) Eliminar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), middleware.GetUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PuntosHandler) Contador(c *gin.Context) {
	inicio, ok := fechaParam(c, "fecha_inicio")
	if !ok {
		return
	}
	fin, ok := fechaParam(c, "fecha_fin")
	if !ok {
		return
	}
	total, nuevos, err := h.svc.Contador(c.Request.Context(), inicio, fin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cantidad_puntos": total, "nuevos_puntos": nuevos})
}
