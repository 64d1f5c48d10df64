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

// PuntoService manages sales points, always scoped to negocios the caller
// owns.
type PuntoService interface {
	Crear(ctx context.Context, propietario *model.Usuario, req dto.PuntoRequest) (*dto.PuntoResponse, error)
	Obtener(ctx context.Context, propietarioID, id uint) (*dto.PuntoResponse, error)
	ListarPropios(ctx context.Context, propietarioID uint) ([]dto.PuntoListItem, error)
	ListarPorNegocio(ctx context.Context, propietarioID, negocioID uint) ([]dto.PuntoResponse, error)
	Actualizar(ctx context.Context, propietario *model.Usuario, id uint, req dto.PuntoRequest) (*dto.PuntoResponse, error)
	Eliminar(ctx context.Context, propietario *model.Usuario, id uint) error
	Contador(ctx context.Context, inicio, fin time.Time) (total, nuevos int64, err error)
}

type puntoService struct {
	repo        repository.PuntoRepository
	negocioRepo repository.NegocioRepository
	dispatcher  *worker.Dispatcher
}

func NewPuntoService(repo repository.PuntoRepository, negocioRepo repository.NegocioRepository, dispatcher *worker.Dispatcher) PuntoService {
	return &puntoService{repo: repo, negocioRepo: negocioRepo, dispatcher: dispatcher}
}

func (s *puntoService) Crear(ctx context.Context, propietario *model.Usuario, req dto.PuntoRequest) (*dto.PuntoResponse, error) {
	if err := s.autorizaNegocio(ctx, req.NegocioID, propietario.ID); err != nil {
		return nil, err
	}
	p := &model.Punto{
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		NegocioID: req.NegocioID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionCreate, "Punto", p.ID)
	return puntoToResponse(p), nil
}

func (s *puntoService) Obtener(ctx context.Context, propietarioID, id uint) (*dto.PuntoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Punto con id %d no encontrado", id))
	}
	if err := s.autorizaNegocio(ctx, p.NegocioID, propietarioID); err != nil {
		return nil, err
	}
	return puntoToResponse(p), nil
}

func (s *puntoService) ListarPropios(ctx context.Context, propietarioID uint) ([]dto.PuntoListItem, error) {
	rows, err := s.repo.ListByPropietario(ctx, propietarioID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	items := make([]dto.PuntoListItem, len(rows))
	for i, r := range rows {
		items[i] = dto.PuntoListItem{
			ID:            r.ID,
			Nombre:        r.Nombre,
			Direccion:     r.Direccion,
			NombreNegocio: r.NombreNegocio,
		}
	}
	return items, nil
}

func (s *puntoService) ListarPorNegocio(ctx context.Context, propietarioID, negocioID uint) ([]dto.PuntoResponse, error) {
	if err := s.autorizaNegocio(ctx, negocioID, propietarioID); err != nil {
		return nil, err
	}
	puntos, err := s.repo.ListByNegocio(ctx, negocioID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := make([]dto.PuntoResponse, len(puntos))
	for i := range puntos {
		resp[i] = *puntoToResponse(&puntos[i])
	}
	return resp, nil
}

func (s *puntoService) Actualizar(ctx context.Context, propietario *model.Usuario, id uint, req dto.PuntoRequest) (*dto.PuntoResponse, error) {
	if err := s.autorizaNegocio(ctx, req.NegocioID, propietario.ID); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Punto con id %d no encontrado", id))
	}
	p.Nombre = req.Nombre
	p.Direccion = req.Direccion
	p.NegocioID = req.NegocioID
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionUpdate, "Punto", p.ID)
	return puntoToResponse(p), nil
}

// Eliminar cascades to the punto's distribuciones and their ventas.
func (s *puntoService) Eliminar(ctx context.Context, propietario *model.Usuario, id uint) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound(fmt.Sprintf("Punto con id %d no encontrado", id))
	}
	if err := s.autorizaNegocio(ctx, p.NegocioID, propietario.ID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionDelete, "Punto", id)
	return nil
}

func (s *puntoService) Contador(ctx context.Context, inicio, fin time.Time) (int64, int64, error) {
	total, nuevos, err := s.repo.Contador(ctx, inicio, fin)
	if err != nil {
		return 0, 0, apierror.Internal(err)
	}
	return total, nuevos, nil
}

func (s *puntoService) autorizaNegocio(ctx context.Context, negocioID, propietarioID uint) error {
	ok, err := s.negocioRepo.EsPropietario(ctx, negocioID, propietarioID, false)
	if err != nil {
		return apierror.Internal(err)
	}
	if !ok {
		return apierror.Forbidden(errNoAutorizado)
	}
	return nil
}

func puntoToResponse(p *model.Punto) *dto.PuntoResponse {
	return &dto.PuntoResponse{
		ID:        p.ID,
		Nombre:    p.Nombre,
		Direccion: p.Direccion,
		NegocioID: p.NegocioID,
	}
}
