package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/model"
	"github.com/lrplaceres/punto-venta/internal/repository"
	"github.com/lrplaceres/punto-venta/internal/worker"
)

// NegocioService manages tenants. Mutations belong to the superadmin;
// owners only read their own.
type NegocioService interface {
	Crear(ctx context.Context, actor string, req dto.NegocioRequest) (*dto.NegocioResponse, error)
	Obtener(ctx context.Context, id uint) (*dto.NegocioResponse, error)
	ListarTodos(ctx context.Context) ([]dto.NegocioResponse, error)
	ListarPropios(ctx context.Context, propietarioID uint) ([]dto.NegocioResponse, error)
	Actualizar(ctx context.Context, actor string, id uint, req dto.NegocioRequest) (*dto.NegocioResponse, error)
	Eliminar(ctx context.Context, actor string, id uint) error
	Contador(ctx context.Context, inicio, fin time.Time) (total, nuevos int64, err error)
}

type negocioService struct {
	repo       repository.NegocioRepository
	dispatcher *worker.Dispatcher
}

func NewNegocioService(repo repository.NegocioRepository, dispatcher *worker.Dispatcher) NegocioService {
	return &negocioService{repo: repo, dispatcher: dispatcher}
}

func (s *negocioService) Crear(ctx context.Context, actor string, req dto.NegocioRequest) (*dto.NegocioResponse, error) {
	licencia, err := parseFecha(req.FechaLicencia)
	if err != nil {
		return nil, apierror.Precondition("Fecha de licencia inválida")
	}
	n := &model.Negocio{
		Nombre:        req.Nombre,
		Direccion:     req.Direccion,
		Informacion:   req.Informacion,
		FechaLicencia: licencia,
		Activo:        req.Activo,
		PropietarioID: req.PropietarioID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, actor, model.AccionCreate, "Negocio", n.ID)
	return negocioToResponse(n), nil
}

func (s *negocioService) Obtener(ctx context.Context, id uint) (*dto.NegocioResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Negocio con id %d no encontrado", id))
	}
	return negocioToResponse(n), nil
}

func (s *negocioService) ListarTodos(ctx context.Context) ([]dto.NegocioResponse, error) {
	negocios, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return negociosToResponses(negocios), nil
}

func (s *negocioService) ListarPropios(ctx context.Context, propietarioID uint) ([]dto.NegocioResponse, error) {
	negocios, err := s.repo.ListByPropietario(ctx, propietarioID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return negociosToResponses(negocios), nil
}

func (s *negocioService) Actualizar(ctx context.Context, actor string, id uint, req dto.NegocioRequest) (*dto.NegocioResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Negocio con id %d no encontrado", id))
	}
	licencia, err := parseFecha(req.FechaLicencia)
	if err != nil {
		return nil, apierror.Precondition("Fecha de licencia inválida")
	}
	n.Nombre = req.Nombre
	n.Direccion = req.Direccion
	n.Informacion = req.Informacion
	n.FechaLicencia = licencia
	n.Activo = req.Activo
	n.PropietarioID = req.PropietarioID
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, actor, model.AccionUpdate, "Negocio", n.ID)
	return negocioToResponse(n), nil
}

// Eliminar removes the negocio and, through the FK cascades, its whole
// subtree of puntos, productos, inventarios, distribuciones and ventas.
func (s *negocioService) Eliminar(ctx context.Context, actor string, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound(fmt.Sprintf("Negocio con id %d no encontrado", id))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, actor, model.AccionDelete, "Negocio", id)
	return nil
}

func (s *negocioService) Contador(ctx context.Context, inicio, fin time.Time) (int64, int64, error) {
	total, nuevos, err := s.repo.Contador(ctx, inicio, fin)
	if err != nil {
		return 0, 0, apierror.Internal(err)
	}
	return total, nuevos, nil
}

func negocioToResponse(n *model.Negocio) *dto.NegocioResponse {
	return &dto.NegocioResponse{
		ID:            n.ID,
		Nombre:        n.Nombre,
		Direccion:     n.Direccion,
		Informacion:   n.Informacion,
		FechaLicencia: formatFecha(n.FechaLicencia),
		Activo:        n.Activo,
		PropietarioID: n.PropietarioID,
	}
}

func negociosToResponses(negocios []model.Negocio) []dto.NegocioResponse {
	resp := make([]dto.NegocioResponse, len(negocios))
	for i := range negocios {
		resp[i] = *negocioToResponse(&negocios[i])
	}
	return resp
}
