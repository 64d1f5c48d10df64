package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/model"
	"github.com/lrplaceres/punto-venta/internal/repository"
	"github.com/lrplaceres/punto-venta/internal/worker"
)

// DistribucionService assigns lot stock to sales points. Creating or
// editing an assignment never lets the lot go negative: the remaining
// lot quantity is re-checked inside the same transaction that writes
// the row.
type DistribucionService interface {
	Crear(ctx context.Context, propietario *model.Usuario, req dto.DistribucionRequest) (*dto.DistribucionResponse, error)
	Obtener(ctx context.Context, propietarioID, id uint) (*dto.DistribucionDetail, error)
	Actualizar(ctx context.Context, propietario *model.Usuario, id uint, req dto.DistribucionRequest) (*dto.DistribucionResponse, error)
	Eliminar(ctx context.Context, propietario *model.Usuario, id uint) error
	ListarPropios(ctx context.Context, propietarioID uint) ([]dto.DistribucionListItem, error)

	// Stock views for the sale screens.
	DisponiblesVenta(ctx context.Context, propietarioID uint) ([]dto.DistribucionVentaItem, error)
	DisponiblesVentaPunto(ctx context.Context, puntoID uint) ([]dto.DistribucionVentaItem, error)

	// Per-product summaries and closeouts.
	Resumen(ctx context.Context, puntoID uint, propietarioID *uint) ([]dto.DistribucionResumenItem, error)
	Cuadre(ctx context.Context, puntoID uint, propietarioID *uint, inicio, fin time.Time) ([]dto.DistribucionCuadreItem, error)
	Periodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]dto.DistribucionPeriodoItem, error)
	Contador(ctx context.Context, inicio, fin time.Time) (total, nuevos int64, err error)
}

type distribucionService struct {
	repo           repository.DistribucionRepository
	inventarioRepo repository.InventarioRepository
	puntoRepo      repository.PuntoRepository
	negocioRepo    repository.NegocioRepository
	ventaRepo      repository.VentaRepository
	dispatcher     *worker.Dispatcher
}

func NewDistribucionService(
	repo repository.DistribucionRepository,
	inventarioRepo repository.InventarioRepository,
	puntoRepo repository.PuntoRepository,
	negocioRepo repository.NegocioRepository,
	ventaRepo repository.VentaRepository,
	dispatcher *worker.Dispatcher,
) DistribucionService {
	return &distribucionService{
		repo:           repo,
		inventarioRepo: inventarioRepo,
		puntoRepo:      puntoRepo,
		negocioRepo:    negocioRepo,
		ventaRepo:      ventaRepo,
		dispatcher:     dispatcher,
	}
}

func (s *distribucionService) Crear(ctx context.Context, propietario *model.Usuario, req dto.DistribucionRequest) (*dto.DistribucionResponse, error) {
	inv, err := s.autoriza(ctx, propietario.ID, req.PuntoID, req.InventarioID)
	if err != nil {
		return nil, err
	}
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, apierror.Precondition("Fecha inválida")
	}

	d := model.Distribucion{
		InventarioID: req.InventarioID,
		Cantidad:     req.Cantidad,
		Fecha:        fecha,
		PuntoID:      req.PuntoID,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		distribuido, err := s.inventarioRepo.DistribuidoTx(tx, req.InventarioID)
		if err != nil {
			return apierror.Internal(err)
		}
		if distribuido.Add(req.Cantidad).GreaterThan(inv.Cantidad) {
			return apierror.Precondition("La cantidad excede la existencia del inventario")
		}
		return s.repo.CreateTx(tx, &d)
	})
	if txErr != nil {
		return nil, txErr
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionCreate, "Distribucion", d.ID)
	return distribucionToResponse(&d), nil
}

func (s *distribucionService) Obtener(ctx context.Context, propietarioID, id uint) (*dto.DistribucionDetail, error) {
	row, err := s.repo.Detail(ctx, id)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Distribución con id %d no encontrada", id))
	}
	ok, err := s.negocioRepo.EsPropietario(ctx, row.NegocioID, propietarioID, false)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	if !ok {
		return nil, apierror.Forbidden(errNoAutorizado)
	}
	return &dto.DistribucionDetail{
		ID:                  row.ID,
		Cantidad:            row.Cantidad,
		Fecha:               formatFecha(row.Fecha),
		InventarioID:        row.InventarioID,
		PuntoID:             row.PuntoID,
		NegocioID:           row.NegocioID,
		CantidadInventario:  row.CantidadInventario,
		CantidadDistribuida: row.CantidadDistribuida,
	}, nil
}

func (s *distribucionService) Actualizar(ctx context.Context, propietario *model.Usuario, id uint, req dto.DistribucionRequest) (*dto.DistribucionResponse, error) {
	inv, err := s.autoriza(ctx, propietario.ID, req.PuntoID, req.InventarioID)
	if err != nil {
		return nil, err
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Distribución con id %d no encontrada", id))
	}
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, apierror.Precondition("Fecha inválida")
	}

	anterior := d.Cantidad
	mismoLote := d.InventarioID == req.InventarioID
	d.InventarioID = req.InventarioID
	d.Cantidad = req.Cantidad
	d.Fecha = fecha
	d.PuntoID = req.PuntoID
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		distribuido, err := s.inventarioRepo.DistribuidoTx(tx, req.InventarioID)
		if err != nil {
			return apierror.Internal(err)
		}
		// The edited row only counts inside distribuido while it stays
		// on the same lot; after a lot change it sits on the old one.
		if mismoLote {
			distribuido = distribuido.Sub(anterior)
		}
		if distribuido.Add(req.Cantidad).GreaterThan(inv.Cantidad) {
			return apierror.Precondition("La cantidad excede la existencia del inventario")
		}
		return s.repo.UpdateTx(tx, d)
	})
	if txErr != nil {
		return nil, txErr
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionUpdate, "Distribucion", d.ID)
	return distribucionToResponse(d), nil
}

// Eliminar cascades to the distribution's ventas.
func (s *distribucionService) Eliminar(ctx context.Context, propietario *model.Usuario, id uint) error {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound(fmt.Sprintf("Distribución con id %d no encontrada", id))
	}
	ok, err := s.puntoRepo.PerteneceAPropietario(ctx, d.PuntoID, propietario.ID, true)
	if err != nil {
		return apierror.Internal(err)
	}
	if !ok {
		return apierror.Forbidden(errNoAutorizado)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionDelete, "Distribucion", id)
	return nil
}

func (s *distribucionService) ListarPropios(ctx context.Context, propietarioID uint) ([]dto.DistribucionListItem, error) {
	rows, err := s.repo.ListByPropietario(ctx, propietarioID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	items := make([]dto.DistribucionListItem, len(rows))
	for i, r := range rows {
		items[i] = dto.DistribucionListItem{
			ID:             r.ID,
			Cantidad:       r.Cantidad,
			Fecha:          formatFecha(r.Fecha),
			NombrePunto:    r.NombrePunto,
			NombreNegocio:  r.NombreNegocio,
			NombreProducto: r.NombreProducto,
			Costo:          r.Costo,
		}
	}
	return items, nil
}

func (s *distribucionService) DisponiblesVenta(ctx context.Context, propietarioID uint) ([]dto.DistribucionVentaItem, error) {
	rows, err := s.repo.DisponiblesVenta(ctx, propietarioID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return disponiblesToItems(rows), nil
}

func (s *distribucionService) DisponiblesVentaPunto(ctx context.Context, puntoID uint) ([]dto.DistribucionVentaItem, error) {
	rows, err := s.repo.DisponiblesVentaPunto(ctx, puntoID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return disponiblesToItems(rows), nil
}

// Resumen reports, per product at the punto, distributed against sold
// quantities. Products with nothing left in stock are dropped.
func (s *distribucionService) Resumen(ctx context.Context, puntoID uint, propietarioID *uint) ([]dto.DistribucionResumenItem, error) {
	distribuciones, err := s.repo.Resumen(ctx, puntoID, propietarioID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	vendidas, err := s.ventasPorProducto(ctx, puntoID, propietarioID, nil, nil)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DistribucionResumenItem, 0, len(distribuciones))
	for i, d := range distribuciones {
		vendida := vendidas[d.NombreProducto].Cantidad
		existencia := d.CantidadDistribuida.Sub(vendida)
		if existencia.Sign() <= 0 {
			continue
		}
		items = append(items, dto.DistribucionResumenItem{
			ID:                  int64(i + 1),
			NombreProducto:      d.NombreProducto,
			CantidadDistribuida: d.CantidadDistribuida,
			NombrePunto:         d.NombrePunto,
			Um:                  d.Um,
			PrecioVenta:         d.PrecioVenta,
			CantidadVendida:     vendida,
			Existencia:          existencia,
		})
	}
	return items, nil
}

// Cuadre is the period closeout: sold quantity and monto inside the
// period, existencia against all-time sales. A product shows up while it
// still has stock or moved during the period.
func (s *distribucionService) Cuadre(ctx context.Context, puntoID uint, propietarioID *uint, inicio, fin time.Time) ([]dto.DistribucionCuadreItem, error) {
	if inicio.After(fin) {
		return nil, apierror.Precondition("La fecha fin debe ser mayor que la fecha inicio")
	}
	distribuciones, err := s.repo.Resumen(ctx, puntoID, propietarioID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	periodo, err := s.ventasPorProducto(ctx, puntoID, propietarioID, &inicio, &fin)
	if err != nil {
		return nil, err
	}
	totales, err := s.ventasPorProducto(ctx, puntoID, propietarioID, nil, nil)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DistribucionCuadreItem, 0, len(distribuciones))
	for i, d := range distribuciones {
		enPeriodo := periodo[d.NombreProducto]
		existencia := d.CantidadDistribuida.Sub(totales[d.NombreProducto].Cantidad)
		if existencia.Sign() <= 0 && enPeriodo.Cantidad.Sign() <= 0 {
			continue
		}
		items = append(items, dto.DistribucionCuadreItem{
			ID:                  int64(i + 1),
			NombreProducto:      d.NombreProducto,
			CantidadDistribuida: d.CantidadDistribuida,
			NombrePunto:         d.NombrePunto,
			Um:                  d.Um,
			PrecioVenta:         d.PrecioVenta,
			CantidadVendida:     enPeriodo.Cantidad,
			Monto:               enPeriodo.Monto,
			Existencia:          existencia,
		})
	}
	return items, nil
}

func (s *distribucionService) Periodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]dto.DistribucionPeriodoItem, error) {
	if inicio.After(fin) {
		return nil, apierror.Precondition("La fecha fin debe ser mayor que la fecha inicio")
	}
	rows, err := s.repo.Periodo(ctx, propietarioID, inicio, fin)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	items := make([]dto.DistribucionPeriodoItem, len(rows))
	for i, r := range rows {
		items[i] = dto.DistribucionPeriodoItem{
			ID:             int64(i + 1),
			Cantidad:       r.Cantidad,
			NombrePunto:    r.NombrePunto,
			NombreNegocio:  r.NombreNegocio,
			NombreProducto: r.NombreProducto,
		}
	}
	return items, nil
}

func (s *distribucionService) Contador(ctx context.Context, inicio, fin time.Time) (int64, int64, error) {
	total, nuevos, err := s.repo.Contador(ctx, inicio, fin)
	if err != nil {
		return 0, 0, apierror.Internal(err)
	}
	return total, nuevos, nil
}

// autoriza requires the caller to own, with a current license, both the
// negocio reached through the punto and the one holding the lot.
func (s *distribucionService) autoriza(ctx context.Context, propietarioID, puntoID, inventarioID uint) (*model.Inventario, error) {
	ok, err := s.puntoRepo.PerteneceAPropietario(ctx, puntoID, propietarioID, true)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	if !ok {
		return nil, apierror.Forbidden(errNoAutorizado)
	}
	inv, err := s.inventarioRepo.FindByID(ctx, inventarioID)
	if err != nil {
		return nil, apierror.Forbidden(errNoAutorizado)
	}
	ok, err = s.negocioRepo.EsPropietario(ctx, inv.NegocioID, propietarioID, true)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	if !ok {
		return nil, apierror.Forbidden(errNoAutorizado)
	}
	return inv, nil
}

func (s *distribucionService) ventasPorProducto(ctx context.Context, puntoID uint, propietarioID *uint, inicio, fin *time.Time) (map[string]repository.VentaPorProductoRow, error) {
	rows, err := s.ventaRepo.VentasPorProducto(ctx, puntoID, propietarioID, inicio, fin)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	porProducto := make(map[string]repository.VentaPorProductoRow, len(rows))
	for _, r := range rows {
		porProducto[r.NombreProducto] = r
	}
	return porProducto, nil
}

func disponiblesToItems(rows []repository.DistribucionVentaRow) []dto.DistribucionVentaItem {
	items := make([]dto.DistribucionVentaItem, 0, len(rows))
	for _, r := range rows {
		existencia := r.Cantidad.Sub(r.CantidadVendida)
		if existencia.Sign() <= 0 {
			continue
		}
		items = append(items, dto.DistribucionVentaItem{
			ID:              r.ID,
			Cantidad:        r.Cantidad,
			Fecha:           formatFecha(r.Fecha),
			PuntoID:         r.PuntoID,
			NombreProducto:  r.NombreProducto,
			PrecioVenta:     r.PrecioVenta,
			CantidadVendida: r.CantidadVendida,
			NombrePunto:     r.NombrePunto,
			Um:              r.Um,
			Existencia:      existencia,
		})
	}
	return items
}

func distribucionToResponse(d *model.Distribucion) *dto.DistribucionResponse {
	return &dto.DistribucionResponse{
		ID:           d.ID,
		InventarioID: d.InventarioID,
		Cantidad:     d.Cantidad,
		Fecha:        formatFecha(d.Fecha),
		PuntoID:      d.PuntoID,
	}
}
