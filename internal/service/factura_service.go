package service

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/model"
	"github.com/lrplaceres/punto-venta/internal/repository"
	"github.com/lrplaceres/punto-venta/internal/worker"
)

// FacturaService handles checkout: one venta per cart line plus an
// invoice holding a JSON snapshot of the lines. The snapshot is the only
// link between the factura and its ventas, so deleting walks it manually.
type FacturaService interface {
	Crear(ctx context.Context, usuario *model.Usuario, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error)
	Obtener(ctx context.Context, propietarioID, id uint) (*dto.FacturaDetail, error)
	Listar(ctx context.Context, propietarioID uint) ([]dto.FacturaListItem, error)
	Eliminar(ctx context.Context, usuario *model.Usuario, id uint) error
}

type facturaService struct {
	repo       repository.FacturaRepository
	ventaRepo  repository.VentaRepository
	dispatcher *worker.Dispatcher
}

func NewFacturaService(repo repository.FacturaRepository, ventaRepo repository.VentaRepository, dispatcher *worker.Dispatcher) FacturaService {
	return &facturaService{repo: repo, ventaRepo: ventaRepo, dispatcher: dispatcher}
}

func (s *facturaService) Crear(ctx context.Context, usuario *model.Usuario, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error) {
	fecha, err := parseFechaHora(req.DetallesPago.Fecha)
	if err != nil {
		return nil, apierror.Precondition("Fecha inválida")
	}

	var factura model.Factura
	var ventaIDs []uint
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		lineas := make([]dto.FacturaLinea, 0, len(req.Carrito))
		for _, linea := range req.Carrito {
			v := model.Venta{
				DistribucionID:  linea.DistribucionID,
				Cantidad:        linea.Cantidad,
				Precio:          linea.Precio,
				Fecha:           fecha,
				PagoElectronico: req.DetallesPago.PagoElectronico,
				NoOperacion:     req.DetallesPago.NoOperacion,
				PagoDiferido:    false,
				PuntoID:         linea.PuntoID,
				UsuarioID:       usuario.ID,
			}
			v.CalculaMonto()
			if err := s.ventaRepo.CreateTx(tx, &v); err != nil {
				return err
			}
			ventaIDs = append(ventaIDs, v.ID)
			lineas = append(lineas, dto.FacturaLinea{
				Producto: linea.NombreProducto,
				Cantidad: linea.Cantidad,
				Precio:   linea.Precio,
				Monto:    v.Monto,
				Punto:    linea.NombrePunto,
				ID:       v.ID,
			})
		}

		snapshot, err := json.Marshal(lineas)
		if err != nil {
			return err
		}
		factura = model.Factura{
			Monto:           req.TotalPedido,
			Ventas:          string(snapshot),
			Fecha:           fecha,
			PagoElectronico: req.DetallesPago.PagoElectronico,
			NoOperacion:     req.DetallesPago.NoOperacion,
			PuntoID:         req.DetallesPago.PuntoID,
		}
		return s.repo.CreateTx(tx, &factura)
	})
	if txErr != nil {
		return nil, apierror.Internal(txErr)
	}

	for _, id := range ventaIDs {
		auditar(ctx, s.dispatcher, usuario.Usuario, model.AccionCreate, "Venta", id)
	}
	return &dto.FacturaResponse{
		ID:              factura.ID,
		Monto:           factura.Monto,
		Ventas:          factura.Ventas,
		Fecha:           formatFechaHora(factura.Fecha),
		PagoElectronico: factura.PagoElectronico,
		NoOperacion:     factura.NoOperacion,
		PuntoID:         factura.PuntoID,
	}, nil
}

func (s *facturaService) Obtener(ctx context.Context, propietarioID, id uint) (*dto.FacturaDetail, error) {
	row, err := s.repo.Detail(ctx, id, propietarioID)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Factura con id %d no encontrada", id))
	}
	return &dto.FacturaDetail{
		ID:              row.ID,
		Monto:           row.Monto,
		PagoElectronico: row.PagoElectronico,
		NoOperacion:     row.NoOperacion,
		NombrePunto:     row.NombrePunto,
		Ventas:          row.Ventas,
		Fecha:           formatFechaHora(row.Fecha),
	}, nil
}

func (s *facturaService) Listar(ctx context.Context, propietarioID uint) ([]dto.FacturaListItem, error) {
	rows, err := s.repo.ListByPropietario(ctx, propietarioID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	items := make([]dto.FacturaListItem, len(rows))
	for i, r := range rows {
		items[i] = dto.FacturaListItem{
			ID:              r.ID,
			Monto:           r.Monto,
			PagoElectronico: r.PagoElectronico,
			NoOperacion:     r.NoOperacion,
			NombrePunto:     r.NombrePunto,
			Fecha:           formatFechaHora(r.Fecha),
		}
	}
	return items, nil
}

// Eliminar removes the ventas the snapshot references and then the
// factura itself, all inside one transaction.
func (s *facturaService) Eliminar(ctx context.Context, usuario *model.Usuario, id uint) error {
	var (
		factura *model.Factura
		err     error
	)
	switch usuario.Rol {
	case model.RolPropietario:
		factura, err = s.repo.FindScopedPropietario(ctx, id, usuario.ID)
	case model.RolDependiente:
		if usuario.PuntoID == nil {
			return apierror.Forbidden(errNoAutorizado)
		}
		factura, err = s.repo.FindScopedDependiente(ctx, id, *usuario.PuntoID)
	default:
		return apierror.Forbidden(errNoAutorizado)
	}
	if err != nil {
		return apierror.NotFound(fmt.Sprintf("Factura con id %d no encontrada", id))
	}

	var lineas []dto.FacturaLinea
	if err := json.Unmarshal([]byte(factura.Ventas), &lineas); err != nil {
		return apierror.Internal(err)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, linea := range lineas {
			if err := s.ventaRepo.DeleteTx(tx, linea.ID); err != nil {
				return err
			}
		}
		return s.repo.DeleteTx(tx, factura.ID)
	})
	if txErr != nil {
		return apierror.Internal(txErr)
	}
	auditar(ctx, s.dispatcher, usuario.Usuario, model.AccionDelete, "Factura", factura.ID)
	return nil
}
