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

// ProductoService manages catalog entries. El nombre is unique per
// negocio; the same name in another negocio is a different product.
type ProductoService interface {
	Crear(ctx context.Context, propietario *model.Usuario, req dto.ProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, propietarioID, id uint) (*dto.ProductoResponse, error)
	ListarPropios(ctx context.Context, propietarioID uint) ([]dto.ProductoListItem, error)
	ListarPorNegocio(ctx context.Context, propietarioID, negocioID uint) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, propietario *model.Usuario, id uint, req dto.ProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, propietario *model.Usuario, id uint) error
	Contador(ctx context.Context, inicio, fin time.Time) (total, nuevos int64, err error)
}

type productoService struct {
	repo        repository.ProductoRepository
	negocioRepo repository.NegocioRepository
	dispatcher  *worker.Dispatcher
}

func NewProductoService(repo repository.ProductoRepository, negocioRepo repository.NegocioRepository, dispatcher *worker.Dispatcher) ProductoService {
	return &productoService{repo: repo, negocioRepo: negocioRepo, dispatcher: dispatcher}
}

func (s *productoService) Crear(ctx context.Context, propietario *model.Usuario, req dto.ProductoRequest) (*dto.ProductoResponse, error) {
	if err := s.autorizaNegocio(ctx, req.NegocioID, propietario.ID); err != nil {
		return nil, err
	}
	existe, err := s.repo.ExisteNombre(ctx, req.NegocioID, req.Nombre)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	if existe {
		return nil, apierror.Precondition(fmt.Sprintf("El producto %s ya existe", req.Nombre))
	}
	p := &model.Producto{
		Nombre:    req.Nombre,
		NegocioID: req.NegocioID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionCreate, "Producto", p.ID)
	return productoToResponse(p), nil
}

func (s *productoService) Obtener(ctx context.Context, propietarioID, id uint) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Producto con id %d no encontrado", id))
	}
	if err := s.autorizaNegocio(ctx, p.NegocioID, propietarioID); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) ListarPropios(ctx context.Context, propietarioID uint) ([]dto.ProductoListItem, error) {
	rows, err := s.repo.ListByPropietario(ctx, propietarioID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	items := make([]dto.ProductoListItem, len(rows))
	for i, r := range rows {
		items[i] = dto.ProductoListItem{
			ID:            r.ID,
			Nombre:        r.Nombre,
			NegocioID:     r.NegocioID,
			NombreNegocio: r.NombreNegocio,
		}
	}
	return items, nil
}

func (s *productoService) ListarPorNegocio(ctx context.Context, propietarioID, negocioID uint) ([]dto.ProductoResponse, error) {
	if err := s.autorizaNegocio(ctx, negocioID, propietarioID); err != nil {
		return nil, err
	}
	productos, err := s.repo.ListByNegocio(ctx, negocioID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = *productoToResponse(&productos[i])
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, propietario *model.Usuario, id uint, req dto.ProductoRequest) (*dto.ProductoResponse, error) {
	if err := s.autorizaNegocio(ctx, req.NegocioID, propietario.ID); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Producto con id %d no encontrado", id))
	}
	if p.Nombre != req.Nombre {
		existe, err := s.repo.ExisteNombre(ctx, req.NegocioID, req.Nombre)
		if err != nil {
			return nil, apierror.Internal(err)
		}
		if existe {
			return nil, apierror.Precondition(fmt.Sprintf("El producto %s ya existe", req.Nombre))
		}
	}
	p.Nombre = req.Nombre
	p.NegocioID = req.NegocioID
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionUpdate, "Producto", p.ID)
	return productoToResponse(p), nil
}

// Eliminar cascades to the product's inventarios and everything below.
func (s *productoService) Eliminar(ctx context.Context, propietario *model.Usuario, id uint) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound(fmt.Sprintf("Producto con id %d no encontrado", id))
	}
	if err := s.autorizaNegocio(ctx, p.NegocioID, propietario.ID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionDelete, "Producto", id)
	return nil
}

func (s *productoService) Contador(ctx context.Context, inicio, fin time.Time) (int64, int64, error) {
	total, nuevos, err := s.repo.Contador(ctx, inicio, fin)
	if err != nil {
		return 0, 0, apierror.Internal(err)
	}
	return total, nuevos, nil
}

func (s *productoService) autorizaNegocio(ctx context.Context, negocioID, propietarioID uint) error {
	ok, err := s.negocioRepo.EsPropietario(ctx, negocioID, propietarioID, false)
	if err != nil {
		return apierror.Internal(err)
	}
	if !ok {
		return apierror.Forbidden(errNoAutorizado)
	}
	return nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:        p.ID,
		Nombre:    p.Nombre,
		NegocioID: p.NegocioID,
	}
}
