package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/infra"
	"github.com/lrplaceres/punto-venta/internal/middleware"
	"github.com/lrplaceres/punto-venta/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type InventariosHandler struct{ svc service.InventarioService }

func NewInventariosHandler(svc service.InventarioService) *InventariosHandler {
	return &InventariosHandler{svc: svc}
}

// Crear godoc
// @Summary      Registrar lote de inventario
// @Description  El monto se deriva como cantidad * costo.
// @Tags         inventarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.InventarioRequest true "Datos del lote"
// @Success      201 {object} dto.InventarioResponse
// @Failure      403 {object} apierror.APIError
// @Router       /inventario [post]
func (h *InventariosHandler) Crear(c *gin.Context) {
	var req dto.InventarioRequest
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

func (h *InventariosHandler) Obtener(c *gin.Context) {
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

func (h *InventariosHandler) ListarPropios(c *gin.Context) {
	resp, err := h.svc.ListarPropios(c.Request.Context(), middleware.GetUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ADistribuir lista los lotes con existencia pendiente de distribuir.
func (h *InventariosHandler) ADistribuir(c *gin.Context) {
	resp, err := h.svc.ADistribuir(c.Request.Context(), middleware.GetUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CostosBrutos godoc
// @Summary      Costos brutos por día
// @Tags         inventarios
// @Produce      json
// @Security     BearerAuth
// @Param        fecha_inicio path string true "Fecha YYYY-MM-DD"
// @Param        fecha_fin    path string true "Fecha YYYY-MM-DD"
// @Success      200 {array} dto.MontoPorDiaItem
// @Failure      412 {object} apierror.APIError
// @Router       /inventarios-costos-brutos/{fecha_inicio}/{fecha_fin} [get]
func (h *InventariosHandler) CostosBrutos(c *gin.Context) {
	inicio, ok := fechaParam(c, "fecha_inicio")
	if !ok {
		return
	}
	fin, ok := fechaParam(c, "fecha_fin")
	if !ok {
		return
	}
	resp, err := h.svc.CostosBrutos(c.Request.Context(), middleware.GetUser(c).ID, inicio, fin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Exportar descarga el listado de lotes como libro xlsx.
func (h *InventariosHandler) Exportar(c *gin.Context) {
	items, err := h.svc.ListarPropios(c.Request.Context(), middleware.GetUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	buf, err := infra.InventariosXLSX(items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="inventarios.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf)
}

func (h *InventariosHandler) Actualizar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.InventarioRequest
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

func (h *InventariosHandler) Eliminar(c *gin.Context) {
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

func (h *InventariosHandler) Contador(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"cantidad_inventarios": total, "nuevos_inventarios": nuevos})
}
