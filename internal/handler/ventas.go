package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/middleware"
	"github.com/lrplaceres/punto-venta/internal/service"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler {
	return &VentasHandler{svc: svc}
}

// Crear godoc
// @Summary      Registrar venta
// @Description  Verifica la disponibilidad de la distribución dentro de la misma transacción; sin existencia → 412.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.VentaRequest true "Detalle de la venta"
// @Success      201 {object} dto.VentaResponse
// @Failure      403 {object} apierror.APIError
// @Failure      412 {object} apierror.APIError
// @Router       /venta [post]
func (h *VentasHandler) Crear(c *gin.Context) {
	var req dto.VentaRequest
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

func (h *VentasHandler) Obtener(c *gin.Context) {
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

func (h *VentasHandler) Actualizar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.VentaRequest
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

func (h *VentasHandler) Eliminar(c *gin.Context) {
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

func (h *VentasHandler) ListarPropias(c *gin.Context) {
	resp, err := h.svc.ListarPropios(c.Request.Context(), middleware.GetUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPunto lista las ventas del punto del dependiente autenticado.
func (h *VentasHandler) ListarPunto(c *gin.Context) {
	user := middleware.GetUser(c)
	if user.PuntoID == nil {
		c.JSON(http.StatusForbidden, apierror.New("No está autorizado a realizar esta acción"))
		return
	}
	resp, err := h.svc.ListarPunto(c.Request.Context(), *user.PuntoID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) Periodo(c *gin.Context) {
	inicio, ok := fechaParam(c, "fecha_inicio")
	if !ok {
		return
	}
	fin, ok := fechaParam(c, "fecha_fin")
	if !ok {
		return
	}
	resp, err := h.svc.Periodo(c.Request.Context(), middleware.GetUser(c).ID, inicio, fin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BrutasPeriodo devuelve la suma de montos vendidos agrupada por día.
func (h *VentasHandler) BrutasPeriodo(c *gin.Context) {
	inicio, ok := fechaParam(c, "fecha_inicio")
	if !ok {
		return
	}
	fin, ok := fechaParam(c, "fecha_fin")
	if !ok {
		return
	}
	resp, err := h.svc.BrutasPeriodo(c.Request.Context(), middleware.GetUser(c).ID, inicio, fin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UtilidadesPeriodo godoc
// @Summary      Utilidades del período
// @Description  Por producto y punto: cantidad, costo, monto, utilidad real, esperada y diferencia.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        fecha_inicio path string true "Fecha YYYY-MM-DD"
// @Param        fecha_fin    path string true "Fecha YYYY-MM-DD"
// @Success      200 {array} dto.VentaUtilidadItem
// @Failure      412 {object} apierror.APIError
// @Router       /ventas-utilidades-periodo/{fecha_inicio}/{fecha_fin} [get]
func (h *VentasHandler) UtilidadesPeriodo(c *gin.Context) {
	inicio, ok := fechaParam(c, "fecha_inicio")
	if !ok {
		return
	}
	fin, ok := fechaParam(c, "fecha_fin")
	if !ok {
		return
	}
	resp, err := h.svc.UtilidadesPeriodo(c.Request.Context(), middleware.GetUser(c).ID, inicio, fin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) Contador(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"cantidad_ventas": total, "nuevas_ventas": nuevos})
}
