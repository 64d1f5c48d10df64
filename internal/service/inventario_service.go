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

// InventarioService manages purchase lots. Monto is derived server side
// on every write, never taken from the request.
type InventarioService interface {
	Crear(ctx context.Context, propietario *model.Usuario, req dto.InventarioRequest) (*dto.InventarioResponse, error)
	Obtener(ctx context.Context, propietarioID, id uint) (*dto.InventarioResponse, error)
	ListarPropios(ctx context.Context, propietarioID uint) ([]dto.InventarioListItem, error)
	ADistribuir(ctx context.Context, propietarioID uint) ([]dto.InventarioADistribuirItem, error)
	CostosBrutos(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]dto.MontoPorDiaItem, error)
	Actualizar(ctx context.Context, propietario *model.Usuario, id uint, req dto.InventarioRequest) (*dto.InventarioResponse, error)
	Eliminar(ctx context.Context, propietario *model.Usuario, id uint) error
	Contador(ctx context.Context, inicio, fin time.Time) (total, nuevos int64, err error)
}

type inventarioService struct {
	repo         repository.InventarioRepository
	negocioRepo  repository.NegocioRepository
	productoRepo repository.ProductoRepository
	dispatcher   *worker.Dispatcher
}

func NewInventarioService(
	repo repository.InventarioRepository,
	negocioRepo repository.NegocioRepository,
	productoRepo repository.ProductoRepository,
	dispatcher *worker.Dispatcher,
) InventarioService {
	return &inventarioService{
		repo:         repo,
		negocioRepo:  negocioRepo,
		productoRepo: productoRepo,
		dispatcher:   dispatcher,
	}
}

func (s *inventarioService) Crear(ctx context.Context, propietario *model.Usuario, req dto.InventarioRequest) (*dto.InventarioResponse, error) {
	if err := s.autoriza(ctx, req.NegocioID, req.ProductoID, propietario.ID); err != nil {
		return nil, err
	}
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, apierror.Precondition("Fecha inválida")
	}
	inv := &model.Inventario{
		ProductoID:  req.ProductoID,
		Cantidad:    req.Cantidad,
		UM:          req.Um,
		Costo:       req.Costo,
		PrecioVenta: req.PrecioVenta,
		Fecha:       fecha,
		NegocioID:   req.NegocioID,
	}
	inv.CalculaMonto()
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionCreate, "Inventario", inv.ID)
	return inventarioToResponse(inv), nil
}

func (s *inventarioService) Obtener(ctx context.Context, propietarioID, id uint) (*dto.InventarioResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Inventario con id %d no encontrado", id))
	}
	ok, err := s.negocioRepo.EsPropietario(ctx, inv.NegocioID, propietarioID, false)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	if !ok {
		return nil, apierror.Forbidden(errNoAutorizado)
	}
	return inventarioToResponse(inv), nil
}

func (s *inventarioService) ListarPropios(ctx context.Context, propietarioID uint) ([]dto.InventarioListItem, error) {
	rows, err := s.repo.ListByPropietario(ctx, propietarioID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	items := make([]dto.InventarioListItem, len(rows))
	for i, r := range rows {
		items[i] = dto.InventarioListItem{
			ID:            r.ID,
			Nombre:        r.Nombre,
			Cantidad:      r.Cantidad,
			NombreNegocio: r.NombreNegocio,
			Costo:         r.Costo,
			Fecha:         formatFecha(r.Fecha),
			PrecioVenta:   r.PrecioVenta,
		}
	}
	return items, nil
}

// ADistribuir lists lots still holding stock that has not been assigned
// to a sales point. Fully distributed lots are dropped.
func (s *inventarioService) ADistribuir(ctx context.Context, propietarioID uint) ([]dto.InventarioADistribuirItem, error) {
	rows, err := s.repo.ADistribuir(ctx, propietarioID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	items := make([]dto.InventarioADistribuirItem, 0, len(rows))
	for _, r := range rows {
		existencia := r.Cantidad.Sub(r.Distribuido)
		if existencia.IsZero() {
			continue
		}
		items = append(items, dto.InventarioADistribuirItem{
			ID:            r.ID,
			Nombre:        r.Nombre,
			Cantidad:      r.Cantidad,
			Fecha:         formatFecha(r.Fecha),
			Costo:         r.Costo,
			Distribuido:   r.Distribuido,
			NegocioID:     r.NegocioID,
			Existencia:    existencia,
			NombreNegocio: r.NombreNegocio,
		})
	}
	return items, nil
}

func (s *inventarioService) CostosBrutos(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]dto.MontoPorDiaItem, error) {
	if inicio.After(fin) {
		return nil, apierror.Precondition("La fecha fin debe ser mayor que la fecha inicio")
	}
	rows, err := s.repo.CostosBrutos(ctx, propietarioID, inicio, fin)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return montosPorDia(rows), nil
}

func (s *inventarioService) Actualizar(ctx context.Context, propietario *model.Usuario, id uint, req dto.InventarioRequest) (*dto.InventarioResponse, error) {
	if err := s.autoriza(ctx, req.NegocioID, req.ProductoID, propietario.ID); err != nil {
		return nil, err
	}
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Inventario con id %d no encontrado", id))
	}
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, apierror.Precondition("Fecha inválida")
	}
	inv.ProductoID = req.ProductoID
	inv.Cantidad = req.Cantidad
	inv.UM = req.Um
	inv.Costo = req.Costo
	inv.PrecioVenta = req.PrecioVenta
	inv.Fecha = fecha
	inv.NegocioID = req.NegocioID
	inv.CalculaMonto()
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionUpdate, "Inventario", inv.ID)
	return inventarioToResponse(inv), nil
}

// Eliminar cascades to the lot's distribuciones and their ventas.
func (s *inventarioService) Eliminar(ctx context.Context, propietario *model.Usuario, id uint) error {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound(fmt.Sprintf("Inventario con id %d no encontrado", id))
	}
	ok, err := s.negocioRepo.EsPropietario(ctx, inv.NegocioID, propietario.ID, false)
	if err != nil {
		return apierror.Internal(err)
	}
	if !ok {
		return apierror.Forbidden(errNoAutorizado)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionDelete, "Inventario", id)
	return nil
}

func (s *inventarioService) Contador(ctx context.Context, inicio, fin time.Time) (int64, int64, error) {
	total, nuevos, err := s.repo.Contador(ctx, inicio, fin)
	if err != nil {
		return 0, 0, apierror.Internal(err)
	}
	return total, nuevos, nil
}

// autoriza requires the caller to own the negocio and the producto to
// belong to that same negocio.
func (s *inventarioService) autoriza(ctx context.Context, negocioID, productoID, propietarioID uint) error {
	ok, err := s.negocioRepo.EsPropietario(ctx, negocioID, propietarioID, false)
	if err != nil {
		return apierror.Internal(err)
	}
	if !ok {
		return apierror.Forbidden(errNoAutorizado)
	}
	ok, err = s.productoRepo.PerteneceANegocio(ctx, productoID, negocioID)
	if err != nil {
		return apierror.Internal(err)
	}
	if !ok {
		return apierror.Forbidden(errNoAutorizado)
	}
	return nil
}

func inventarioToResponse(i *model.Inventario) *dto.InventarioResponse {
	return &dto.InventarioResponse{
		ID:          i.ID,
		ProductoID:  i.ProductoID,
		Cantidad:    i.Cantidad,
		Um:          i.UM,
		Costo:       i.Costo,
		Monto:       i.Monto,
		PrecioVenta: i.PrecioVenta,
		Fecha:       formatFecha(i.Fecha),
		NegocioID:   i.NegocioID,
	}
}

// montosPorDia renders day buckets the way the frontend grid expects:
// unpadded date label and a synthetic unique id.
func montosPorDia(rows []repository.MontoPorDiaRow) []dto.MontoPorDiaItem {
	items := make([]dto.MontoPorDiaItem, len(rows))
	for i, r := range rows {
		fecha := fmt.Sprintf("%d-%d-%d", r.Anno, r.Mes, r.Dia)
		items[i] = dto.MontoPorDiaItem{
			Monto: r.Monto,
			Fecha: fecha,
			ID:    "id" + fecha,
		}
	}
	return items
}
