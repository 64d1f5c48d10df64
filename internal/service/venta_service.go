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

// desfaseHorario is subtracted from every sale timestamp before storing.
// The deployments run five hours behind the clients' wall clock.
const desfaseHorario = -5 * time.Hour

// VentaService records sales against distributed stock. The availability
// check and the insert run inside one transaction with the distribution
// row locked, so two concurrent sales cannot oversell the same stock.
type VentaService interface {
	Crear(ctx context.Context, usuario *model.Usuario, req dto.VentaRequest) (*dto.VentaResponse, error)
	Obtener(ctx context.Context, propietarioID, id uint) (*dto.VentaDetail, error)
	Actualizar(ctx context.Context, usuario *model.Usuario, id uint, req dto.VentaRequest) (*dto.VentaResponse, error)
	Eliminar(ctx context.Context, usuario *model.Usuario, id uint) error
	ListarPropios(ctx context.Context, propietarioID uint) ([]dto.VentaListItem, error)
	ListarPunto(ctx context.Context, puntoID uint) ([]dto.VentaListItem, error)

	Periodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]dto.VentaPeriodoItem, error)
	BrutasPeriodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]dto.MontoPorDiaItem, error)
	UtilidadesPeriodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]dto.VentaUtilidadItem, error)
	Contador(ctx context.Context, inicio, fin time.Time) (total, nuevos int64, err error)
}

type ventaService struct {
	repo             repository.VentaRepository
	distribucionRepo repository.DistribucionRepository
	dispatcher       *worker.Dispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	distribucionRepo repository.DistribucionRepository,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{repo: repo, distribucionRepo: distribucionRepo, dispatcher: dispatcher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *ventaService) Crear(ctx context.Context, usuario *model.Usuario, req dto.VentaRequest) (*dto.VentaResponse, error) {
	if err := s.autoriza(ctx, usuario, req.DistribucionID, req.PuntoID); err != nil {
		return nil, err
	}
	fecha, err := parseFechaHora(req.Fecha)
	if err != nil {
		return nil, apierror.Precondition("Fecha inválida")
	}

	v := model.Venta{
		DistribucionID:  req.DistribucionID,
		Cantidad:        req.Cantidad,
		Precio:          req.Precio,
		Fecha:           fecha.Add(desfaseHorario),
		PagoElectronico: req.PagoElectronico,
		NoOperacion:     req.NoOperacion,
		PagoDiferido:    req.PagoDiferido,
		Descripcion:     req.Descripcion,
		PuntoID:         req.PuntoID,
		UsuarioID:       usuario.ID,
	}
	v.CalculaMonto()

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		disponible, err := s.distribucionRepo.DisponibleTx(tx, req.DistribucionID)
		if err != nil {
			return apierror.Internal(err)
		}
		if disponible.Sign() <= 0 || disponible.LessThan(req.Cantidad) {
			return apierror.Precondition("El producto no está disponible")
		}
		return s.repo.CreateTx(tx, &v)
	})
	if txErr != nil {
		return nil, txErr
	}
	auditar(ctx, s.dispatcher, usuario.Usuario, model.AccionCreate, "Venta", v.ID)
	return ventaToResponse(&v), nil
}

func (s *ventaService) Obtener(ctx context.Context, propietarioID, id uint) (*dto.VentaDetail, error) {
	row, err := s.repo.Detail(ctx, id, propietarioID)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Venta con id %d no encontrada", id))
	}
	return &dto.VentaDetail{
		DistribucionID:  row.DistribucionID,
		Precio:          row.Precio,
		Fecha:           formatFechaHora(row.Fecha),
		PuntoID:         row.PuntoID,
		Cantidad:        row.Cantidad,
		NombreProducto:  row.NombreProducto,
		PagoDiferido:    row.PagoDiferido,
		Descripcion:     row.Descripcion,
		PagoElectronico: row.PagoElectronico,
		NoOperacion:     row.NoOperacion,
	}, nil
}

// Actualizar re-runs the create authorization but, as the original
// system does, skips the availability gate.
func (s *ventaService) Actualizar(ctx context.Context, usuario *model.Usuario, id uint, req dto.VentaRequest) (*dto.VentaResponse, error) {
	if err := s.autoriza(ctx, usuario, req.DistribucionID, req.PuntoID); err != nil {
		return nil, err
	}
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Venta con id %d no encontrada", id))
	}
	fecha, err := parseFechaHora(req.Fecha)
	if err != nil {
		return nil, apierror.Precondition("Fecha inválida")
	}
	v.DistribucionID = req.DistribucionID
	v.Cantidad = req.Cantidad
	v.Precio = req.Precio
	v.Fecha = fecha.Add(desfaseHorario)
	v.PagoElectronico = req.PagoElectronico
	v.NoOperacion = req.NoOperacion
	v.PagoDiferido = req.PagoDiferido
	v.Descripcion = req.Descripcion
	v.PuntoID = req.PuntoID
	v.CalculaMonto()
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, usuario.Usuario, model.AccionUpdate, "Venta", v.ID)
	return ventaToResponse(v), nil
}

func (s *ventaService) Eliminar(ctx context.Context, usuario *model.Usuario, id uint) error {
	var (
		v   *model.Venta
		err error
	)
	switch usuario.Rol {
	case model.RolPropietario:
		v, err = s.repo.FindScopedPropietario(ctx, id, usuario.ID)
	case model.RolDependiente:
		if usuario.PuntoID == nil {
			return apierror.Forbidden(errNoAutorizado)
		}
		v, err = s.repo.FindScopedDependiente(ctx, id, *usuario.PuntoID, usuario.ID)
	default:
		return apierror.Forbidden(errNoAutorizado)
	}
	if err != nil {
		return apierror.NotFound(fmt.Sprintf("Venta con id %d no encontrado", id))
	}
	if err := s.repo.Delete(ctx, v.ID); err != nil {
		return apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, usuario.Usuario, model.AccionDelete, "Venta", v.ID)
	return nil
}

func (s *ventaService) ListarPropios(ctx context.Context, propietarioID uint) ([]dto.VentaListItem, error) {
	rows, err := s.repo.ListByPropietario(ctx, propietarioID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return ventasToListItems(rows), nil
}

func (s *ventaService) ListarPunto(ctx context.Context, puntoID uint) ([]dto.VentaListItem, error) {
	rows, err := s.repo.ListByPunto(ctx, puntoID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return ventasToListItems(rows), nil
}

func (s *ventaService) Periodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]dto.VentaPeriodoItem, error) {
	if inicio.After(fin) {
		return nil, apierror.Precondition("La fecha fin debe ser mayor que la fecha inicio")
	}
	rows, err := s.repo.Periodo(ctx, propietarioID, inicio, fin)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	items := make([]dto.VentaPeriodoItem, len(rows))
	for i, r := range rows {
		items[i] = dto.VentaPeriodoItem{
			NombreProducto: r.NombreProducto,
			NombrePunto:    r.NombrePunto,
			Cantidad:       r.Cantidad,
			ID:             int64(i + 1),
		}
	}
	return items, nil
}

func (s *ventaService) BrutasPeriodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]dto.MontoPorDiaItem, error) {
	if inicio.After(fin) {
		return nil, apierror.Precondition("La fecha fin debe ser mayor que la fecha inicio")
	}
	rows, err := s.repo.BrutasPeriodo(ctx, propietarioID, inicio, fin)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return montosPorDia(rows), nil
}

// UtilidadesPeriodo derives the margin columns from the sold aggregates:
// utilidad = monto - costo*cantidad, utilidad_esperada =
// (precio_venta - costo)*cantidad.
func (s *ventaService) UtilidadesPeriodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]dto.VentaUtilidadItem, error) {
	if inicio.After(fin) {
		return nil, apierror.Precondition("La fecha fin debe ser mayor que la fecha inicio")
	}
	rows, err := s.repo.UtilidadesPeriodo(ctx, propietarioID, inicio, fin)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	items := make([]dto.VentaUtilidadItem, len(rows))
	for i, r := range rows {
		costoTotal := r.Costo.Mul(r.Cantidad)
		utilidad := r.Monto.Sub(costoTotal)
		esperada := r.PrecioVenta.Sub(r.Costo).Mul(r.Cantidad)
		items[i] = dto.VentaUtilidadItem{
			NombreProducto:     r.NombreProducto,
			NombrePunto:        r.NombrePunto,
			Cantidad:           r.Cantidad,
			ID:                 int64(i + 1),
			PrecioCosto:        costoTotal,
			Monto:              r.Monto,
			Utilidad:           utilidad,
			PrecioInventario:   r.PrecioVenta,
			UtilidadEsperada:   esperada,
			DiferenciaUtilidad: utilidad.Sub(esperada),
		}
	}
	return items, nil
}

func (s *ventaService) Contador(ctx context.Context, inicio, fin time.Time) (int64, int64, error) {
	total, nuevos, err := s.repo.Contador(ctx, inicio, fin)
	if err != nil {
		return 0, 0, apierror.Internal(err)
	}
	return total, nuevos, nil
}

// autoriza resolves the role-specific ownership path. The propietario
// must reach the distribution and the punto through a licensed negocio
// they own; the dependiente can only sell at their assigned punto.
func (s *ventaService) autoriza(ctx context.Context, usuario *model.Usuario, distribucionID, puntoID uint) error {
	switch usuario.Rol {
	case model.RolPropietario:
		ok, err := s.repo.AutorizaPropietario(ctx, distribucionID, puntoID, usuario.ID)
		if err != nil {
			return apierror.Internal(err)
		}
		if !ok {
			return apierror.Forbidden(errNoAutorizado)
		}
	case model.RolDependiente:
		if usuario.PuntoID == nil || *usuario.PuntoID != puntoID {
			return apierror.Forbidden(errNoAutorizado)
		}
		ok, err := s.repo.AutorizaDependiente(ctx, distribucionID, puntoID)
		if err != nil {
			return apierror.Internal(err)
		}
		if !ok {
			return apierror.Forbidden(errNoAutorizado)
		}
	default:
		return apierror.Forbidden(errNoAutorizado)
	}
	return nil
}

func ventasToListItems(rows []repository.VentaListRow) []dto.VentaListItem {
	items := make([]dto.VentaListItem, len(rows))
	for i, r := range rows {
		items[i] = dto.VentaListItem{
			ID:              r.ID,
			NombreProducto:  r.NombreProducto,
			NombrePunto:     r.NombrePunto,
			Cantidad:        r.Cantidad,
			Precio:          r.Precio,
			Monto:           r.Cantidad.Mul(r.Precio),
			Fecha:           formatFechaHora(r.Fecha),
			Dependiente:     r.Dependiente,
			PagoDiferido:    r.PagoDiferido,
			Descripcion:     r.Descripcion,
			PagoElectronico: r.PagoElectronico,
		}
	}
	return items
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	return &dto.VentaResponse{
		ID:             v.ID,
		DistribucionID: v.DistribucionID,
		Cantidad:       v.Cantidad,
		Precio:         v.Precio,
		Monto:          v.Monto,
		Fecha:          formatFechaHora(v.Fecha),
		PuntoID:        v.PuntoID,
		PagoDiferido:   v.PagoDiferido,
		Descripcion:    v.Descripcion,
		UsuarioID:      v.UsuarioID,
	}
}
