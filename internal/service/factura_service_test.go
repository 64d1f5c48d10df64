package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/model"
)

func buildFacturaSvc() (FacturaService, *stubFacturaRepo, *stubVentaRepo) {
	facturaRepo := newStubFacturaRepo()
	ventaRepo := newStubVentaRepo()
	svc := NewFacturaService(facturaRepo, ventaRepo, nil)
	return svc, facturaRepo, ventaRepo
}

func facturaReq() dto.CrearFacturaRequest {
	return dto.CrearFacturaRequest{
		Carrito: []dto.PedidoLinea{
			{Cantidad: decimal.NewFromInt(2), DistribucionID: 1, Precio: decimal.NewFromInt(25), PuntoID: 3, NombreProducto: "Cafe", NombrePunto: "Centro"},
			{Cantidad: decimal.NewFromInt(1), DistribucionID: 2, Precio: decimal.NewFromInt(10), PuntoID: 3, NombreProducto: "Azucar", NombrePunto: "Centro"},
		},
		DetallesPago: dto.DetallesPago{
			Fecha:   "2026-03-10T14:30:00",
			PuntoID: 3,
		},
		TotalPedido: decimal.NewFromInt(60),
	}
}

func TestCrearFactura_UnaVentaPorLinea(t *testing.T) {
	svc, facturaRepo, ventaRepo := buildFacturaSvc()
	vendedor := dependienteUser(3)

	resp, err := svc.Crear(context.Background(), vendedor, facturaReq())
	require.NoError(t, err)
	assert.Equal(t, "60", resp.Monto.String())
	assert.Len(t, ventaRepo.ventas, 2)
	assert.Len(t, facturaRepo.facturas, 1)

	for _, v := range ventaRepo.ventas {
		assert.Equal(t, vendedor.ID, v.UsuarioID)
		assert.False(t, v.PagoDiferido)
		// Checkout stores the payment timestamp as sent, without the
		// five-hour shift the single-sale path applies.
		assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC), v.Fecha)
	}
}

func TestCrearFactura_FormatoDelSnapshot(t *testing.T) {
	svc, facturaRepo, _ := buildFacturaSvc()

	resp, err := svc.Crear(context.Background(), dependienteUser(3), facturaReq())
	require.NoError(t, err)

	factura := facturaRepo.facturas[resp.ID]
	var lineas []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(factura.Ventas), &lineas))
	require.Len(t, lineas, 2)
	for _, key := range []string{"producto", "cantidad", "precio", "monto", "punto", "id"} {
		assert.Contains(t, lineas[0], key)
	}

	var snapshot []dto.FacturaLinea
	require.NoError(t, json.Unmarshal([]byte(factura.Ventas), &snapshot))
	assert.Equal(t, "Cafe", snapshot[0].Producto)
	assert.Equal(t, "50", snapshot[0].Monto.String())
	assert.Equal(t, "Centro", snapshot[0].Punto)
	assert.NotZero(t, snapshot[0].ID)
}

func TestCrearFactura_FechaInvalida(t *testing.T) {
	svc, facturaRepo, ventaRepo := buildFacturaSvc()

	req := facturaReq()
	req.DetallesPago.Fecha = "10/03/2026"
	_, err := svc.Crear(context.Background(), dependienteUser(3), req)
	assert.ErrorContains(t, err, "Fecha inválida")
	assert.Empty(t, ventaRepo.ventas)
	assert.Empty(t, facturaRepo.facturas)
}

func TestEliminarFactura_BorraLasVentasDelSnapshot(t *testing.T) {
	svc, facturaRepo, ventaRepo := buildFacturaSvc()
	vendedor := dependienteUser(3)

	resp, err := svc.Crear(context.Background(), vendedor, facturaReq())
	require.NoError(t, err)

	// A sale outside the invoice must survive the delete.
	suelta := &model.Venta{DistribucionID: 1, Cantidad: decimal.NewFromInt(1), Precio: decimal.NewFromInt(5), PuntoID: 3, UsuarioID: vendedor.ID}
	suelta.CalculaMonto()
	require.NoError(t, ventaRepo.CreateTx(nil, suelta))

	require.NoError(t, svc.Eliminar(context.Background(), vendedor, resp.ID))
	assert.Empty(t, facturaRepo.facturas)
	require.Len(t, ventaRepo.ventas, 1)
	_, err = ventaRepo.FindByID(context.Background(), suelta.ID)
	assert.NoError(t, err)
}

func TestEliminarFactura_DependienteDeOtroPunto(t *testing.T) {
	svc, facturaRepo, _ := buildFacturaSvc()

	resp, err := svc.Crear(context.Background(), dependienteUser(3), facturaReq())
	require.NoError(t, err)

	err = svc.Eliminar(context.Background(), dependienteUser(9), resp.ID)
	assert.ErrorContains(t, err, "no encontrada")
	assert.Equal(t, http.StatusNotFound, apierror.Status(err))
	assert.Len(t, facturaRepo.facturas, 1)
}

func TestEliminarFactura_SuperadminRechazado(t *testing.T) {
	svc, _, _ := buildFacturaSvc()

	admin := &model.Usuario{ID: 9, Usuario: "root", Rol: model.RolSuperadmin}
	err := svc.Eliminar(context.Background(), admin, 1)
	assert.Equal(t, http.StatusForbidden, apierror.Status(err))
}

func TestObtenerFactura_NoEncontrada(t *testing.T) {
	svc, _, _ := buildFacturaSvc()

	_, err := svc.Obtener(context.Background(), 1, 42)
	assert.ErrorContains(t, err, "Factura con id 42 no encontrada")
}
