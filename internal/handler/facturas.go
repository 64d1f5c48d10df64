package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/infra"
	"github.com/lrplaceres/punto-venta/internal/middleware"
	"github.com/lrplaceres/punto-venta/internal/service"
)

type FacturasHandler struct{ svc service.FacturaService }

func NewFacturasHandler(svc service.FacturaService) *FacturasHandler {
	return &FacturasHandler{svc: svc}
}

// Crear godoc
// @Summary      Facturar carrito
// @Description  Crea una venta por cada línea del carrito y persiste la factura con el snapshot de las líneas.
// @Tags         facturas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearFacturaRequest true "Carrito y detalles de pago"
// @Success      201 {object} dto.FacturaResponse
// @Failure      412 {object} apierror.APIError
// @Router       /factura [post]
func (h *FacturasHandler) Crear(c *gin.Context) {
	var req dto.CrearFacturaRequest
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

func (h *FacturasHandler) Obtener(c *gin.Context) {
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

func (h *FacturasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), middleware.GetUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDF renderiza el comprobante de la factura a partir del snapshot.
func (h *FacturasHandler) PDF(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.svc.Obtener(c.Request.Context(), middleware.GetUser(c).ID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	var lineas []dto.FacturaLinea
	if err := json.Unmarshal([]byte(detail.Ventas), &lineas); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	buf, err := infra.FacturaPDF(detail, lineas)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="factura-%d.pdf"`, detail.ID))
	c.Data(http.StatusOK, "application/pdf", buf)
}

func (h *FacturasHandler) Eliminar(c *gin.Context) {
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
