package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/model"
	"github.com/lrplaceres/punto-venta/internal/repository"
)

type distribucionFixture struct {
	svc            DistribucionService
	repo           *stubDistribucionRepo
	inventarioRepo *stubInventarioRepo
	ventaRepo      *stubVentaRepo
	negocioRepo    *stubNegocioRepo
	punto          *model.Punto
	inventario     *model.Inventario
	propietario    *model.Usuario
}

// buildDistribucionFixture seeds one licensed negocio with a punto and a
// 100-unit lot owned by user 1.
func buildDistribucionFixture(t *testing.T) *distribucionFixture {
	t.Helper()
	negocioRepo := newStubNegocioRepo()
	puntoRepo := newStubPuntoRepo(negocioRepo)
	inventarioRepo := newStubInventarioRepo()
	distribucionRepo := newStubDistribucionRepo()
	ventaRepo := newStubVentaRepo()
	distribucionRepo.ventas = ventaRepo
	inventarioRepo.distribuciones = distribucionRepo

	negocio := &model.Negocio{
		Nombre:        "Bodega Centro",
		PropietarioID: 1,
		FechaLicencia: time.Now().AddDate(1, 0, 0),
	}
	require.NoError(t, negocioRepo.Create(context.Background(), negocio))

	punto := &model.Punto{Nombre: "Centro", NegocioID: negocio.ID}
	require.NoError(t, puntoRepo.Create(context.Background(), punto))

	inventario := &model.Inventario{
		ProductoID:  1,
		Cantidad:    decimal.NewFromInt(100),
		UM:          "unidad",
		Costo:       decimal.NewFromInt(10),
		PrecioVenta: decimal.NewFromInt(15),
		Fecha:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		NegocioID:   negocio.ID,
	}
	inventario.CalculaMonto()
	require.NoError(t, inventarioRepo.Create(context.Background(), inventario))

	svc := NewDistribucionService(distribucionRepo, inventarioRepo, puntoRepo, negocioRepo, ventaRepo, nil)
	return &distribucionFixture{
		svc:            svc,
		repo:           distribucionRepo,
		inventarioRepo: inventarioRepo,
		ventaRepo:      ventaRepo,
		negocioRepo:    negocioRepo,
		punto:          punto,
		inventario:     inventario,
		propietario:    &model.Usuario{ID: 1, Usuario: "dueno", Rol: model.RolPropietario},
	}
}

func distribucionReq(f *distribucionFixture, cantidad int64) dto.DistribucionRequest {
	return dto.DistribucionRequest{
		InventarioID: f.inventario.ID,
		Cantidad:     decimal.NewFromInt(cantidad),
		Fecha:        "2026-03-05",
		PuntoID:      f.punto.ID,
	}
}

func TestCrearDistribucion_DentroDelLote(t *testing.T) {
	f := buildDistribucionFixture(t)

	resp, err := f.svc.Crear(context.Background(), f.propietario, distribucionReq(f, 60))
	require.NoError(t, err)
	assert.Equal(t, "60", resp.Cantidad.String())
	assert.Equal(t, "2026-03-05", resp.Fecha)
}

func TestCrearDistribucion_ExcedeElLote(t *testing.T) {
	f := buildDistribucionFixture(t)

	_, err := f.svc.Crear(context.Background(), f.propietario, distribucionReq(f, 60))
	require.NoError(t, err)

	// 60 already assigned, only 40 left.
	_, err = f.svc.Crear(context.Background(), f.propietario, distribucionReq(f, 41))
	assert.ErrorContains(t, err, "La cantidad excede la existencia del inventario")
	assert.Equal(t, http.StatusPreconditionFailed, apierror.Status(err))
	assert.Len(t, f.repo.distribuciones, 1)
}

func TestCrearDistribucion_LicenciaVencida(t *testing.T) {
	f := buildDistribucionFixture(t)
	f.negocioRepo.negocios[f.punto.NegocioID].FechaLicencia = time.Now().AddDate(0, 0, -1)

	_, err := f.svc.Crear(context.Background(), f.propietario, distribucionReq(f, 10))
	assert.Equal(t, http.StatusForbidden, apierror.Status(err))
}

func TestCrearDistribucion_PuntoAjeno(t *testing.T) {
	f := buildDistribucionFixture(t)

	otro := &model.Usuario{ID: 2, Usuario: "ajeno", Rol: model.RolPropietario}
	_, err := f.svc.Crear(context.Background(), otro, distribucionReq(f, 10))
	assert.ErrorContains(t, err, "No está autorizado")
}

func TestActualizarDistribucion_DescuentaLaFilaEditada(t *testing.T) {
	f := buildDistribucionFixture(t)

	resp, err := f.svc.Crear(context.Background(), f.propietario, distribucionReq(f, 60))
	require.NoError(t, err)

	// Growing the same row to the full lot is fine: its previous 60 no
	// longer counts against the remaining quantity.
	updated, err := f.svc.Actualizar(context.Background(), f.propietario, resp.ID, distribucionReq(f, 100))
	require.NoError(t, err)
	assert.Equal(t, "100", updated.Cantidad.String())

	_, err = f.svc.Actualizar(context.Background(), f.propietario, resp.ID, distribucionReq(f, 101))
	assert.ErrorContains(t, err, "La cantidad excede la existencia del inventario")
}

func TestActualizarDistribucion_CambioDeLote(t *testing.T) {
	f := buildDistribucionFixture(t)
	chico := &model.Inventario{
		ProductoID:  2,
		Cantidad:    decimal.NewFromInt(10),
		UM:          "unidad",
		Costo:       decimal.NewFromInt(4),
		PrecioVenta: decimal.NewFromInt(8),
		Fecha:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		NegocioID:   f.punto.NegocioID,
	}
	chico.CalculaMonto()
	require.NoError(t, f.inventarioRepo.Create(context.Background(), chico))

	resp, err := f.svc.Crear(context.Background(), f.propietario, distribucionReq(f, 50))
	require.NoError(t, err)

	// The 50 assigned on the big lot frees nothing on the small one:
	// moving the row there is capped by the destination lot alone.
	req := distribucionReq(f, 55)
	req.InventarioID = chico.ID
	_, err = f.svc.Actualizar(context.Background(), f.propietario, resp.ID, req)
	assert.ErrorContains(t, err, "La cantidad excede la existencia del inventario")
	assert.Equal(t, http.StatusPreconditionFailed, apierror.Status(err))

	req.Cantidad = decimal.NewFromInt(10)
	moved, err := f.svc.Actualizar(context.Background(), f.propietario, resp.ID, req)
	require.NoError(t, err)
	assert.Equal(t, chico.ID, moved.InventarioID)
	assert.Equal(t, "10", moved.Cantidad.String())
}

func TestEliminarDistribucion_NoEncontrada(t *testing.T) {
	f := buildDistribucionFixture(t)

	err := f.svc.Eliminar(context.Background(), f.propietario, 99)
	assert.ErrorContains(t, err, "Distribución con id 99 no encontrada")
	assert.Equal(t, http.StatusNotFound, apierror.Status(err))
}

func TestResumen_OmiteProductosAgotados(t *testing.T) {
	f := buildDistribucionFixture(t)
	f.repo.resumen = []repository.DistribucionResumenRow{
		{NombreProducto: "Cafe", CantidadDistribuida: decimal.NewFromInt(50), NombrePunto: "Centro", Um: "unidad", PrecioVenta: decimal.NewFromInt(15)},
		{NombreProducto: "Azucar", CantidadDistribuida: decimal.NewFromInt(20), NombrePunto: "Centro", Um: "kg", PrecioVenta: decimal.NewFromInt(8)},
	}
	f.ventaRepo.porProductoTotal = []repository.VentaPorProductoRow{
		{NombreProducto: "Cafe", Cantidad: decimal.NewFromInt(30), Monto: decimal.NewFromInt(450)},
		{NombreProducto: "Azucar", Cantidad: decimal.NewFromInt(20), Monto: decimal.NewFromInt(160)},
	}

	items, err := f.svc.Resumen(context.Background(), f.punto.ID, &f.propietario.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cafe", items[0].NombreProducto)
	assert.Equal(t, "30", items[0].CantidadVendida.String())
	assert.Equal(t, "20", items[0].Existencia.String())
}

func TestCuadre_IncluyeAgotadosConMovimiento(t *testing.T) {
	f := buildDistribucionFixture(t)
	f.repo.resumen = []repository.DistribucionResumenRow{
		{NombreProducto: "Cafe", CantidadDistribuida: decimal.NewFromInt(50), NombrePunto: "Centro", Um: "unidad", PrecioVenta: decimal.NewFromInt(15)},
		{NombreProducto: "Azucar", CantidadDistribuida: decimal.NewFromInt(20), NombrePunto: "Centro", Um: "kg", PrecioVenta: decimal.NewFromInt(8)},
	}
	// Azucar sold out, but all of it moved inside the period, so the
	// closeout still lists it.
	f.ventaRepo.porProductoPeriodo = []repository.VentaPorProductoRow{
		{NombreProducto: "Azucar", Cantidad: decimal.NewFromInt(20), Monto: decimal.NewFromInt(160)},
	}
	f.ventaRepo.porProductoTotal = []repository.VentaPorProductoRow{
		{NombreProducto: "Azucar", Cantidad: decimal.NewFromInt(20), Monto: decimal.NewFromInt(160)},
	}

	inicio := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	fin := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	items, err := f.svc.Cuadre(context.Background(), f.punto.ID, &f.propietario.ID, inicio, fin)
	require.NoError(t, err)
	require.Len(t, items, 2)

	var azucar dto.DistribucionCuadreItem
	for _, it := range items {
		if it.NombreProducto == "Azucar" {
			azucar = it
		}
	}
	assert.Equal(t, "20", azucar.CantidadVendida.String())
	assert.Equal(t, "160", azucar.Monto.String())
	assert.Equal(t, "0", azucar.Existencia.String())
}

func TestCuadre_RangoInvertido(t *testing.T) {
	f := buildDistribucionFixture(t)
	inicio := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	fin := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.Cuadre(context.Background(), f.punto.ID, &f.propietario.ID, inicio, fin)
	assert.ErrorContains(t, err, "La fecha fin debe ser mayor que la fecha inicio")
}
