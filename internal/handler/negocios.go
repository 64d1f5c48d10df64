package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/middleware"
	"github.com/lrplaceres/punto-venta/internal/service"
)

type NegociosHandler struct{ svc service.NegocioService }

func NewNegociosHandler(svc service.NegocioService) *NegociosHandler {
	return &NegociosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear negocio
// @Tags         negocios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.NegocioRequest true "Datos del negocio"
// @Success      201 {object} dto.NegocioResponse
// @Router       /negocio [post]
func (h *NegociosHandler) Crear(c *gin.Context) {
	var req dto.NegocioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), middleware.GetUser(c).Usuario, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *NegociosHandler) Obtener(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarTodos devuelve todos los negocios; uso exclusivo del superadmin.
func (h *NegociosHandler) ListarTodos(c *gin.Context) {
	resp, err := h.svc.ListarTodos(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPropios devuelve los negocios del propietario autenticado.
func (h *NegociosHandler) ListarPropios(c *gin.Context) {
	resp, err := h.svc.ListarPropios(c.Request.Context(), middleware.GetUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NegociosHandler) Actualizar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.NegocioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), middleware.GetUser(c).Usuario, id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NegociosHandler) Eliminar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), middleware.GetUser(c).Usuario, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NegociosHandler) Contador(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"cantidad_negocios": total, "nuevos_negocios": nuevos})
}
