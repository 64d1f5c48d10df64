package repository

import (
	"context"
	"time"

	"github.com/lrplaceres/punto-venta/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaDetailRow joins the sale with the product name for the edit screen.
type VentaDetailRow struct {
	DistribucionID  uint
	Precio          decimal.Decimal
	Fecha           time.Time
	PuntoID         uint
	Cantidad        decimal.Decimal
	NombreProducto  string
	PagoDiferido    bool
	Descripcion     *string
	PagoElectronico bool
	NoOperacion     *string
}

// VentaListRow is one row of the sales listings.
type VentaListRow struct {
	ID              uint
	NombreProducto  string
	NombrePunto     string
	Cantidad        decimal.Decimal
	Precio          decimal.Decimal
	Fecha           time.Time
	Dependiente     string
	PagoDiferido    bool
	Descripcion     *string
	PagoElectronico bool
}

// VentaPorProductoRow aggregates sold quantity and monto per product at a
// sales point. Used by the period report, the stock summary and the cuadre.
type VentaPorProductoRow struct {
	NombreProducto string
	NombrePunto    string
	Cantidad       decimal.Decimal
	Monto          decimal.Decimal
}

// VentaUtilidadRow carries the aggregates the margin report derives from.
type VentaUtilidadRow struct {
	NombreProducto string
	NombrePunto    string
	Cantidad       decimal.Decimal
	Costo          decimal.Decimal
	Monto          decimal.Decimal
	PrecioVenta    decimal.Decimal
}

// VentaRepository is the data access contract for sales.
type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uint) (*model.Venta, error)
	Detail(ctx context.Context, id, propietarioID uint) (*VentaDetailRow, error)
	Update(ctx context.Context, v *model.Venta) error
	Delete(ctx context.Context, id uint) error
	DeleteTx(tx *gorm.DB, id uint) error

	// Scoped fetches used by delete: both require a current license.
	FindScopedPropietario(ctx context.Context, id, propietarioID uint) (*model.Venta, error)
	FindScopedDependiente(ctx context.Context, id, puntoID, usuarioID uint) (*model.Venta, error)

	ListByPropietario(ctx context.Context, propietarioID uint) ([]VentaListRow, error)
	ListByPunto(ctx context.Context, puntoID uint) ([]VentaListRow, error)

	VentasPorProducto(ctx context.Context, puntoID uint, propietarioID *uint, inicio, fin *time.Time) ([]VentaPorProductoRow, error)
	Periodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]VentaPorProductoRow, error)
	BrutasPeriodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]MontoPorDiaRow, error)
	UtilidadesPeriodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]VentaUtilidadRow, error)
	Contador(ctx context.Context, inicio, fin time.Time) (total, nuevos int64, err error)

	// Ownership predicates for the create/update paths.
	AutorizaPropietario(ctx context.Context, distribucionID, puntoID, usuarioID uint) (bool, error)
	AutorizaDependiente(ctx context.Context, distribucionID, puntoID uint) (bool, error)

	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uint) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) Detail(ctx context.Context, id, propietarioID uint) (*VentaDetailRow, error) {
	var row VentaDetailRow
	err := r.db.WithContext(ctx).Table("venta v").
		Select(`v.distribucion_id, v.precio, v.fecha, v.punto_id, v.cantidad,
			pr.nombre AS nombre_producto, v.pago_diferido, v.descripcion,
			v.pago_electronico, v.no_operacion`).
		Joins("JOIN distribucion d ON d.id = v.distribucion_id").
		Joins("JOIN inventario i ON i.id = d.inventario_id").
		Joins("JOIN producto pr ON pr.id = i.producto_id").
		Joins("JOIN negocio n ON n.id = i.negocio_id").
		Where("v.id = ? AND n.propietario_id = ?", id, propietarioID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ventaRepo) Update(ctx context.Context, v *model.Venta) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *ventaRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Venta{}, id).Error
}

func (r *ventaRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Venta{}, id).Error
}

func (r *ventaRepo) FindScopedPropietario(ctx context.Context, id, propietarioID uint) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Table("venta v").Select("v.*").
		Joins("JOIN distribucion d ON d.id = v.distribucion_id").
		Joins("JOIN inventario i ON i.id = d.inventario_id").
		Joins("JOIN negocio n ON n.id = i.negocio_id").
		Where("v.id = ? AND n.propietario_id = ? AND n.fecha_licencia >= CURRENT_DATE", id, propietarioID).
		Take(&v).Error
	return &v, err
}

func (r *ventaRepo) FindScopedDependiente(ctx context.Context, id, puntoID, usuarioID uint) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Table("venta v").Select("v.*").
		Joins("JOIN distribucion d ON d.id = v.distribucion_id").
		Joins("JOIN punto p ON p.id = d.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Where(`v.id = ? AND p.id = ? AND v.usuario_id = ?
			AND n.fecha_licencia >= CURRENT_DATE`, id, puntoID, usuarioID).
		Take(&v).Error
	return &v, err
}

func (r *ventaRepo) ListByPropietario(ctx context.Context, propietarioID uint) ([]VentaListRow, error) {
	return r.list(ctx, "n.propietario_id = ?", propietarioID)
}

func (r *ventaRepo) ListByPunto(ctx context.Context, puntoID uint) ([]VentaListRow, error) {
	return r.list(ctx, "p.id = ?", puntoID)
}

func (r *ventaRepo) list(ctx context.Context, cond string, arg uint) ([]VentaListRow, error) {
	var rows []VentaListRow
	err := r.db.WithContext(ctx).Table("venta v").
		Select(`v.id, pr.nombre AS nombre_producto, p.nombre AS nombre_punto,
			v.cantidad, v.precio, v.fecha, u.nombre AS dependiente,
			v.pago_diferido, v.descripcion, v.pago_electronico`).
		Joins("JOIN distribucion d ON d.id = v.distribucion_id").
		Joins("JOIN inventario i ON i.id = d.inventario_id").
		Joins("JOIN producto pr ON pr.id = i.producto_id").
		Joins("JOIN punto p ON p.id = v.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Joins(`JOIN "user" u ON u.id = v.usuario_id`).
		Where(cond, arg).
		Order("v.fecha DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ventaRepo) VentasPorProducto(ctx context.Context, puntoID uint, propietarioID *uint, inicio, fin *time.Time) ([]VentaPorProductoRow, error) {
	var rows []VentaPorProductoRow
	q := r.db.WithContext(ctx).Table("venta v").
		Select(`pr.nombre AS nombre_producto, p.nombre AS nombre_punto,
			SUM(v.cantidad) AS cantidad, SUM(v.monto) AS monto`).
		Joins("JOIN distribucion d ON d.id = v.distribucion_id").
		Joins("JOIN inventario i ON i.id = d.inventario_id").
		Joins("JOIN producto pr ON pr.id = i.producto_id").
		Joins("JOIN punto p ON p.id = v.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Where("p.id = ?", puntoID)
	if propietarioID != nil {
		q = q.Where("n.propietario_id = ?", *propietarioID)
	}
	if inicio != nil && fin != nil {
		q = q.Where("v.fecha::date BETWEEN ? AND ?", *inicio, *fin)
	}
	err := q.Group("pr.nombre, p.nombre").
		Order("SUM(v.cantidad) DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ventaRepo) Periodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]VentaPorProductoRow, error) {
	var rows []VentaPorProductoRow
	err := r.db.WithContext(ctx).Table("venta v").
		Select(`pr.nombre AS nombre_producto, p.nombre AS nombre_punto,
			SUM(v.cantidad) AS cantidad, SUM(v.monto) AS monto`).
		Joins("JOIN distribucion d ON d.id = v.distribucion_id").
		Joins("JOIN inventario i ON i.id = d.inventario_id").
		Joins("JOIN producto pr ON pr.id = i.producto_id").
		Joins("JOIN punto p ON p.id = v.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Where("n.propietario_id = ? AND v.fecha::date BETWEEN ? AND ?", propietarioID, inicio, fin).
		Group("pr.nombre, p.nombre").
		Order("SUM(v.cantidad) DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ventaRepo) BrutasPeriodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]MontoPorDiaRow, error) {
	var rows []MontoPorDiaRow
	err := r.db.WithContext(ctx).Table("venta v").
		Select(`SUM(v.monto) AS monto,
			EXTRACT(YEAR FROM v.fecha)::int AS anno,
			EXTRACT(MONTH FROM v.fecha)::int AS mes,
			EXTRACT(DAY FROM v.fecha)::int AS dia`).
		Joins("JOIN distribucion d ON d.id = v.distribucion_id").
		Joins("JOIN inventario i ON i.id = d.inventario_id").
		Joins("JOIN negocio n ON n.id = i.negocio_id").
		Where("n.propietario_id = ? AND v.fecha::date BETWEEN ? AND ?", propietarioID, inicio, fin).
		Group("anno, mes, dia").
		Order("anno, mes, dia").
		Scan(&rows).Error
	return rows, err
}

func (r *ventaRepo) UtilidadesPeriodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]VentaUtilidadRow, error) {
	var rows []VentaUtilidadRow
	err := r.db.WithContext(ctx).Table("venta v").
		Select(`pr.nombre AS nombre_producto, p.nombre AS nombre_punto,
			SUM(v.cantidad) AS cantidad, i.costo, SUM(v.monto) AS monto,
			i.precio_venta`).
		Joins("JOIN distribucion d ON d.id = v.distribucion_id").
		Joins("JOIN inventario i ON i.id = d.inventario_id").
		Joins("JOIN producto pr ON pr.id = i.producto_id").
		Joins("JOIN punto p ON p.id = v.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Where("n.propietario_id = ? AND v.fecha::date BETWEEN ? AND ?", propietarioID, inicio, fin).
		Group("pr.nombre, p.nombre, i.costo, i.precio_venta").
		Order("SUM(v.cantidad) DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ventaRepo) Contador(ctx context.Context, inicio, fin time.Time) (int64, int64, error) {
	var total, nuevos int64
	if err := r.db.WithContext(ctx).Model(&model.Venta{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("fecha_creado::date BETWEEN ? AND ?", inicio, fin).Count(&nuevos).Error
	return total, nuevos, err
}

func (r *ventaRepo) AutorizaPropietario(ctx context.Context, distribucionID, puntoID, usuarioID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("distribucion d").
		Joins("JOIN inventario i ON i.id = d.inventario_id").
		Joins("JOIN negocio neg ON neg.id = i.negocio_id").
		Joins("JOIN punto p ON p.negocio_id = neg.id").
		Where(`neg.propietario_id = ? AND d.id = ? AND p.id = ?
			AND neg.fecha_licencia >= CURRENT_DATE`, usuarioID, distribucionID, puntoID).
		Count(&n).Error
	return n > 0, err
}

func (r *ventaRepo) AutorizaDependiente(ctx context.Context, distribucionID, puntoID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("punto p").
		Joins("JOIN negocio neg ON neg.id = p.negocio_id").
		Joins("JOIN inventario i ON i.negocio_id = neg.id").
		Joins("JOIN distribucion d ON d.inventario_id = i.id").
		Where("p.id = ? AND d.id = ?", puntoID, distribucionID).
		Count(&n).Error
	return n > 0, err
}

func (r *ventaRepo) DB() *gorm.DB { return r.db }
