package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/middleware"
	"github.com/lrplaceres/punto-venta/internal/service"
)

// DistribucionesHandler exposes distribution CRUD plus the stock views
// used by the sale screens and the period closeouts.
type DistribucionesHandler struct{ svc service.DistribucionService }

func NewDistribucionesHandler(svc service.DistribucionService) *DistribucionesHandler {
	return &DistribucionesHandler{svc: svc}
}

// Crear godoc
// @Summary      Distribuir inventario a un punto
// @Description  Rechaza con 412 cuando la cantidad excede la existencia del lote.
// @Tags         distribuciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.DistribucionRequest true "Datos de la distribución"
// @Success      201 {object} dto.DistribucionResponse
// @Failure      403 {object} apierror.APIError
// @Failure      412 {object} apierror.APIError
// @Router       /distribucion [post]
func (h *DistribucionesHandler) Crear(c *gin.Context) {
	var req dto.DistribucionRequest
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

func (h *DistribucionesHandler) Obtener(c *gin.Context) {
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

func (h *DistribucionesHandler) Actualizar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.DistribucionRequest
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

func (h *DistribucionesHandler) Eliminar(c *gin.Context) {
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

func (h *DistribucionesHandler) ListarPropios(c *gin.Context) {
	resp, err := h.svc.ListarPropios(c.Request.Context(), middleware.GetUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DisponiblesVenta lista, para el propietario, las distribuciones con
// existencia positiva.
func (h *DistribucionesHandler) DisponiblesVenta(c *gin.Context) {
	resp, err := h.svc.DisponiblesVenta(c.Request.Context(), middleware.GetUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DisponiblesVentaPunto es la variante del dependiente, acotada a su punto.
func (h *DistribucionesHandler) DisponiblesVentaPunto(c *gin.Context) {
	user := middleware.GetUser(c)
	if user.PuntoID == nil {
		c.JSON(http.StatusForbidden, apierror.New("No está autorizado a realizar esta acción"))
		return
	}
	resp, err := h.svc.DisponiblesVentaPunto(c.Request.Context(), *user.PuntoID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExistenciaPunto resume existencias por producto para el punto del
// dependiente autenticado.
func (h *DistribucionesHandler) ExistenciaPunto(c *gin.Context) {
	user := middleware.GetUser(c)
	if user.PuntoID == nil {
		c.JSON(http.StatusForbidden, apierror.New("No está autorizado a realizar esta acción"))
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), *user.PuntoID, nil)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary      Resumen distribuido/vendido/existencia por producto
// @Tags         distribuciones
// @Produce      json
// @Security     BearerAuth
// @Param        punto path int true "ID del punto"
// @Success      200 {array} dto.DistribucionResumenItem
// @Router       /distribuciones-venta-resumen/{punto} [get]
func (h *DistribucionesHandler) Resumen(c *gin.Context) {
	puntoID, ok := idParam(c, "punto")
	if !ok {
		return
	}
	propietarioID := middleware.GetUser(c).ID
	resp, err := h.svc.Resumen(c.Request.Context(), puntoID, &propietarioID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cuadre godoc
// @Summary      Cuadre del período por punto
// @Tags         distribuciones
// @Produce      json
// @Security     BearerAuth
// @Param        fecha_inicio path string true "Fecha YYYY-MM-DD"
// @Param        fecha_fin    path string true "Fecha YYYY-MM-DD"
// @Param        punto        path int    true "ID del punto"
// @Success      200 {array} dto.DistribucionCuadreItem
// @Failure      412 {object} apierror.APIError
// @Router       /distribuciones-venta-cuadre/{fecha_inicio}/{fecha_fin}/{punto} [get]
func (h *DistribucionesHandler) Cuadre(c *gin.Context) {
	inicio, ok := fechaParam(c, "fecha_inicio")
	if !ok {
		return
	}
	fin, ok := fechaParam(c, "fecha_fin")
	if !ok {
		return
	}
	puntoID, ok := idParam(c, "punto")
	if !ok {
		return
	}
	propietarioID := middleware.GetUser(c).ID
	resp, err := h.svc.Cuadre(c.Request.Context(), puntoID, &propietarioID, inicio, fin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CuadreDependiente es el cuadre del período acotado al punto del
// dependiente autenticado.
func (h *DistribucionesHandler) CuadreDependiente(c *gin.Context) {
	user := middleware.GetUser(c)
	if user.PuntoID == nil {
		c.JSON(http.StatusForbidden, apierror.New("No está autorizado a realizar esta acción"))
		return
	}
	inicio, ok := fechaParam(c, "fecha_inicio")
	if !ok {
		return
	}
	fin, ok := fechaParam(c, "fecha_fin")
	if !ok {
		return
	}
	resp, err := h.svc.Cuadre(c.Request.Context(), *user.PuntoID, nil, inicio, fin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DistribucionesHandler) Periodo(c *gin.Context) {
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

func (h *DistribucionesHandler) Contador(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"cantidad_distribuciones": total, "nuevas_distribuciones": nuevos})
}
