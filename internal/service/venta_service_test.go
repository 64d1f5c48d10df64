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

func buildVentaSvc() (VentaService, *stubVentaRepo, *stubDistribucionRepo) {
	ventaRepo := newStubVentaRepo()
	distribucionRepo := newStubDistribucionRepo()
	distribucionRepo.ventas = ventaRepo
	svc := NewVentaService(ventaRepo, distribucionRepo, nil)
	return svc, ventaRepo, distribucionRepo
}

func seedDistribucion(repo *stubDistribucionRepo, puntoID uint, cantidad int64) *model.Distribucion {
	d := &model.Distribucion{
		InventarioID: 1,
		Cantidad:     decimal.NewFromInt(cantidad),
		Fecha:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PuntoID:      puntoID,
	}
	_ = repo.CreateTx(nil, d)
	return d
}

func propietarioUser() *model.Usuario {
	return &model.Usuario{ID: 1, Usuario: "dueno", Rol: model.RolPropietario}
}

func dependienteUser(puntoID uint) *model.Usuario {
	return &model.Usuario{ID: 7, Usuario: "clerk", Rol: model.RolDependiente, PuntoID: &puntoID}
}

func ventaReq(distribucionID, puntoID uint, cantidad, precio int64) dto.VentaRequest {
	return dto.VentaRequest{
		DistribucionID: distribucionID,
		Cantidad:       decimal.NewFromInt(cantidad),
		Precio:         decimal.NewFromInt(precio),
		Fecha:          "2026-03-10T14:30:00",
		PuntoID:        puntoID,
	}
}

func TestCrearVenta_VendeTodaLaExistencia(t *testing.T) {
	svc, ventaRepo, distribucionRepo := buildVentaSvc()
	d := seedDistribucion(distribucionRepo, 3, 40)

	resp, err := svc.Crear(context.Background(), propietarioUser(), ventaReq(d.ID, 3, 40, 25))
	require.NoError(t, err)
	assert.Equal(t, "1000", resp.Monto.String())

	stored, err := ventaRepo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "40", stored.Cantidad.String())

	// The distribution is now fully consumed.
	_, err = svc.Crear(context.Background(), propietarioUser(), ventaReq(d.ID, 3, 1, 25))
	assert.ErrorContains(t, err, "El producto no está disponible")
	assert.Equal(t, http.StatusPreconditionFailed, apierror.Status(err))
	assert.Len(t, ventaRepo.ventas, 1)
}

func TestCrearVenta_CantidadMayorQueDisponible(t *testing.T) {
	svc, ventaRepo, distribucionRepo := buildVentaSvc()
	d := seedDistribucion(distribucionRepo, 3, 10)

	_, err := svc.Crear(context.Background(), propietarioUser(), ventaReq(d.ID, 3, 11, 25))
	assert.ErrorContains(t, err, "El producto no está disponible")
	assert.Empty(t, ventaRepo.ventas)
}

func TestCrearVenta_DesfaseHorario(t *testing.T) {
	svc, ventaRepo, distribucionRepo := buildVentaSvc()
	d := seedDistribucion(distribucionRepo, 3, 10)

	resp, err := svc.Crear(context.Background(), propietarioUser(), ventaReq(d.ID, 3, 2, 25))
	require.NoError(t, err)

	stored, _ := ventaRepo.FindByID(context.Background(), resp.ID)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC), stored.Fecha)
}

func TestCrearVenta_FechaInvalida(t *testing.T) {
	svc, _, distribucionRepo := buildVentaSvc()
	d := seedDistribucion(distribucionRepo, 3, 10)

	req := ventaReq(d.ID, 3, 2, 25)
	req.Fecha = "10/03/2026"
	_, err := svc.Crear(context.Background(), propietarioUser(), req)
	assert.ErrorContains(t, err, "Fecha inválida")
}

func TestCrearVenta_PropietarioSinPermiso(t *testing.T) {
	svc, ventaRepo, distribucionRepo := buildVentaSvc()
	d := seedDistribucion(distribucionRepo, 3, 10)
	ventaRepo.autorizaProp = false

	_, err := svc.Crear(context.Background(), propietarioUser(), ventaReq(d.ID, 3, 2, 25))
	assert.ErrorContains(t, err, "No está autorizado")
	assert.Equal(t, http.StatusForbidden, apierror.Status(err))
}

func TestCrearVenta_DependientePuntoAjeno(t *testing.T) {
	svc, _, distribucionRepo := buildVentaSvc()
	d := seedDistribucion(distribucionRepo, 6, 10)

	_, err := svc.Crear(context.Background(), dependienteUser(5), ventaReq(d.ID, 6, 2, 25))
	assert.Equal(t, http.StatusForbidden, apierror.Status(err))
}

func TestCrearVenta_SuperadminRechazado(t *testing.T) {
	svc, _, distribucionRepo := buildVentaSvc()
	d := seedDistribucion(distribucionRepo, 3, 10)

	admin := &model.Usuario{ID: 9, Usuario: "root", Rol: model.RolSuperadmin}
	_, err := svc.Crear(context.Background(), admin, ventaReq(d.ID, 3, 2, 25))
	assert.Equal(t, http.StatusForbidden, apierror.Status(err))
}

func TestActualizarVenta_SinControlDeDisponibilidad(t *testing.T) {
	svc, ventaRepo, distribucionRepo := buildVentaSvc()
	d := seedDistribucion(distribucionRepo, 3, 10)

	resp, err := svc.Crear(context.Background(), propietarioUser(), ventaReq(d.ID, 3, 5, 25))
	require.NoError(t, err)

	// The edit path trusts the caller even beyond remaining stock.
	updated, err := svc.Actualizar(context.Background(), propietarioUser(), resp.ID, ventaReq(d.ID, 3, 50, 30))
	require.NoError(t, err)
	assert.Equal(t, "1500", updated.Monto.String())

	stored, _ := ventaRepo.FindByID(context.Background(), resp.ID)
	assert.Equal(t, "50", stored.Cantidad.String())
}

func TestEliminarVenta_DependienteDeOtroUsuario(t *testing.T) {
	svc, ventaRepo, distribucionRepo := buildVentaSvc()
	d := seedDistribucion(distribucionRepo, 5, 10)

	resp, err := svc.Crear(context.Background(), dependienteUser(5), ventaReq(d.ID, 5, 2, 25))
	require.NoError(t, err)

	otro := &model.Usuario{ID: 8, Usuario: "otro", Rol: model.RolDependiente, PuntoID: uintPtr(5)}
	err = svc.Eliminar(context.Background(), otro, resp.ID)
	assert.Equal(t, http.StatusNotFound, apierror.Status(err))
	assert.Len(t, ventaRepo.ventas, 1)
}

func TestEliminarVenta_Propietario(t *testing.T) {
	svc, ventaRepo, distribucionRepo := buildVentaSvc()
	d := seedDistribucion(distribucionRepo, 3, 10)

	resp, err := svc.Crear(context.Background(), propietarioUser(), ventaReq(d.ID, 3, 2, 25))
	require.NoError(t, err)

	require.NoError(t, svc.Eliminar(context.Background(), propietarioUser(), resp.ID))
	assert.Empty(t, ventaRepo.ventas)
}

func TestVentasPeriodo_RangoInvertido(t *testing.T) {
	svc, _, _ := buildVentaSvc()
	inicio := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	fin := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Periodo(context.Background(), 1, inicio, fin)
	assert.ErrorContains(t, err, "La fecha fin debe ser mayor que la fecha inicio")

	_, err = svc.BrutasPeriodo(context.Background(), 1, inicio, fin)
	assert.Equal(t, http.StatusPreconditionFailed, apierror.Status(err))

	_, err = svc.UtilidadesPeriodo(context.Background(), 1, inicio, fin)
	assert.Equal(t, http.StatusPreconditionFailed, apierror.Status(err))
}

func TestUtilidadesPeriodo_Derivaciones(t *testing.T) {
	svc, ventaRepo, _ := buildVentaSvc()
	ventaRepo.utilidades = []repository.VentaUtilidadRow{{
		NombreProducto: "Cafe",
		NombrePunto:    "Centro",
		Cantidad:       decimal.NewFromInt(10),
		Costo:          decimal.NewFromInt(5),
		Monto:          decimal.NewFromInt(80),
		PrecioVenta:    decimal.NewFromInt(9),
	}}

	items, err := svc.UtilidadesPeriodo(context.Background(), 1,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, int64(1), it.ID)
	assert.Equal(t, "50", it.PrecioCosto.String())
	assert.Equal(t, "30", it.Utilidad.String())
	assert.Equal(t, "40", it.UtilidadEsperada.String())
	assert.Equal(t, "-10", it.DiferenciaUtilidad.String())
}

func TestListarVentas_MontoDerivado(t *testing.T) {
	svc, ventaRepo, _ := buildVentaSvc()
	ventaRepo.listRows = []repository.VentaListRow{{
		ID:             4,
		NombreProducto: "Cafe",
		NombrePunto:    "Centro",
		Cantidad:       decimal.NewFromInt(3),
		Precio:         decimal.NewFromFloat(25.50),
		Fecha:          time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		Dependiente:    "clerk",
	}}

	items, err := svc.ListarPropios(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "76.5", items[0].Monto.String())
	assert.Equal(t, "2026-03-10T09:30:00", items[0].Fecha)
}

func uintPtr(v uint) *uint { return &v }
