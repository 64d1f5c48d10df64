package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/model"
)

func TestCrearNegocio(t *testing.T) {
	repo := newStubNegocioRepo()
	svc := NewNegocioService(repo, nil)

	resp, err := svc.Crear(context.Background(), "admin", dto.NegocioRequest{
		Nombre:        "Bodega Centro",
		Direccion:     "Calle 1",
		FechaLicencia: "2027-01-31",
		Activo:        true,
		PropietarioID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "2027-01-31", resp.FechaLicencia)
	assert.Equal(t, uint(1), resp.PropietarioID)
}

func TestCrearNegocio_LicenciaInvalida(t *testing.T) {
	repo := newStubNegocioRepo()
	svc := NewNegocioService(repo, nil)

	_, err := svc.Crear(context.Background(), "admin", dto.NegocioRequest{
		Nombre:        "Bodega Centro",
		FechaLicencia: "31/01/2027",
		PropietarioID: 1,
	})
	assert.ErrorContains(t, err, "Fecha de licencia inválida")
	assert.Empty(t, repo.negocios)
}

func TestListarNegociosPropios_FiltraPorPropietario(t *testing.T) {
	repo := newStubNegocioRepo()
	svc := NewNegocioService(repo, nil)

	require.NoError(t, repo.Create(context.Background(), &model.Negocio{Nombre: "Mia", PropietarioID: 1, FechaLicencia: futureLicencia()}))
	require.NoError(t, repo.Create(context.Background(), &model.Negocio{Nombre: "Ajena", PropietarioID: 2, FechaLicencia: futureLicencia()}))

	propios, err := svc.ListarPropios(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, propios, 1)
	assert.Equal(t, "Mia", propios[0].Nombre)
}

func TestEliminarNegocio_NoEncontrado(t *testing.T) {
	repo := newStubNegocioRepo()
	svc := NewNegocioService(repo, nil)

	err := svc.Eliminar(context.Background(), "admin", 42)
	assert.ErrorContains(t, err, "Negocio con id 42 no encontrado")
	assert.Equal(t, http.StatusNotFound, apierror.Status(err))
}

func TestCrearPunto_NegocioAjeno(t *testing.T) {
	negocioRepo := newStubNegocioRepo()
	puntoRepo := newStubPuntoRepo(negocioRepo)
	svc := NewPuntoService(puntoRepo, negocioRepo, nil)

	require.NoError(t, negocioRepo.Create(context.Background(), &model.Negocio{Nombre: "Bodega", PropietarioID: 1, FechaLicencia: futureLicencia()}))

	otro := &model.Usuario{ID: 2, Usuario: "ajeno", Rol: model.RolPropietario}
	_, err := svc.Crear(context.Background(), otro, dto.PuntoRequest{Nombre: "Centro", NegocioID: 1})
	assert.Equal(t, http.StatusForbidden, apierror.Status(err))
	assert.Empty(t, puntoRepo.puntos)
}

func TestObtenerPunto_Propio(t *testing.T) {
	negocioRepo := newStubNegocioRepo()
	puntoRepo := newStubPuntoRepo(negocioRepo)
	svc := NewPuntoService(puntoRepo, negocioRepo, nil)

	require.NoError(t, negocioRepo.Create(context.Background(), &model.Negocio{Nombre: "Bodega", PropietarioID: 1, FechaLicencia: futureLicencia()}))
	dueno := &model.Usuario{ID: 1, Usuario: "dueno", Rol: model.RolPropietario}

	resp, err := svc.Crear(context.Background(), dueno, dto.PuntoRequest{Nombre: "Centro", NegocioID: 1})
	require.NoError(t, err)

	got, err := svc.Obtener(context.Background(), dueno.ID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Centro", got.Nombre)

	_, err = svc.Obtener(context.Background(), 2, resp.ID)
	assert.Equal(t, http.StatusForbidden, apierror.Status(err))
}
