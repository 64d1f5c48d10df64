package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/model"
)

func buildProductoSvc(t *testing.T) (ProductoService, *stubProductoRepo, *stubNegocioRepo) {
	t.Helper()
	negocioRepo := newStubNegocioRepo()
	productoRepo := newStubProductoRepo()

	for _, n := range []*model.Negocio{
		{Nombre: "Bodega Centro", PropietarioID: 1, FechaLicencia: time.Now().AddDate(1, 0, 0)},
		{Nombre: "Bodega Playa", PropietarioID: 1, FechaLicencia: time.Now().AddDate(1, 0, 0)},
	} {
		require.NoError(t, negocioRepo.Create(context.Background(), n))
	}
	return NewProductoService(productoRepo, negocioRepo, nil), productoRepo, negocioRepo
}

func TestCrearProducto_NombreDuplicadoEnElNegocio(t *testing.T) {
	svc, _, _ := buildProductoSvc(t)
	dueno := &model.Usuario{ID: 1, Usuario: "dueno", Rol: model.RolPropietario}

	_, err := svc.Crear(context.Background(), dueno, dto.ProductoRequest{Nombre: "Cafe", NegocioID: 1})
	require.NoError(t, err)

	_, err = svc.Crear(context.Background(), dueno, dto.ProductoRequest{Nombre: "Cafe", NegocioID: 1})
	assert.ErrorContains(t, err, "El producto Cafe ya existe")
	assert.Equal(t, http.StatusPreconditionFailed, apierror.Status(err))
}

func TestCrearProducto_MismoNombreEnOtroNegocio(t *testing.T) {
	svc, repo, _ := buildProductoSvc(t)
	dueno := &model.Usuario{ID: 1, Usuario: "dueno", Rol: model.RolPropietario}

	_, err := svc.Crear(context.Background(), dueno, dto.ProductoRequest{Nombre: "Cafe", NegocioID: 1})
	require.NoError(t, err)

	// Uniqueness is per negocio, not global.
	_, err = svc.Crear(context.Background(), dueno, dto.ProductoRequest{Nombre: "Cafe", NegocioID: 2})
	require.NoError(t, err)
	assert.Len(t, repo.productos, 2)
}

func TestCrearProducto_NegocioAjeno(t *testing.T) {
	svc, _, _ := buildProductoSvc(t)
	otro := &model.Usuario{ID: 2, Usuario: "ajeno", Rol: model.RolPropietario}

	_, err := svc.Crear(context.Background(), otro, dto.ProductoRequest{Nombre: "Cafe", NegocioID: 1})
	assert.Equal(t, http.StatusForbidden, apierror.Status(err))
}

func TestActualizarProducto_PermiteConservarElNombre(t *testing.T) {
	svc, _, _ := buildProductoSvc(t)
	dueno := &model.Usuario{ID: 1, Usuario: "dueno", Rol: model.RolPropietario}

	resp, err := svc.Crear(context.Background(), dueno, dto.ProductoRequest{Nombre: "Cafe", NegocioID: 1})
	require.NoError(t, err)

	// Saving without renaming must not trip the duplicate check.
	_, err = svc.Actualizar(context.Background(), dueno, resp.ID, dto.ProductoRequest{Nombre: "Cafe", NegocioID: 1})
	assert.NoError(t, err)
}

func TestActualizarProducto_RenombreADuplicado(t *testing.T) {
	svc, _, _ := buildProductoSvc(t)
	dueno := &model.Usuario{ID: 1, Usuario: "dueno", Rol: model.RolPropietario}

	_, err := svc.Crear(context.Background(), dueno, dto.ProductoRequest{Nombre: "Cafe", NegocioID: 1})
	require.NoError(t, err)
	resp, err := svc.Crear(context.Background(), dueno, dto.ProductoRequest{Nombre: "Azucar", NegocioID: 1})
	require.NoError(t, err)

	_, err = svc.Actualizar(context.Background(), dueno, resp.ID, dto.ProductoRequest{Nombre: "Cafe", NegocioID: 1})
	assert.ErrorContains(t, err, "El producto Cafe ya existe")
}

func TestEliminarProducto_NoEncontrado(t *testing.T) {
	svc, _, _ := buildProductoSvc(t)
	dueno := &model.Usuario{ID: 1, Usuario: "dueno", Rol: model.RolPropietario}

	err := svc.Eliminar(context.Background(), dueno, 42)
	assert.ErrorContains(t, err, "Producto con id 42 no encontrado")
}
