package repository

import (
	"context"
	"time"

	"github.com/lrplaceres/punto-venta/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DistribucionDetailRow is the edit-screen row with the lot totals attached.
type DistribucionDetailRow struct {
	ID                  uint
	Cantidad            decimal.Decimal
	Fecha               time.Time
	InventarioID        uint
	PuntoID             uint
	NegocioID           uint
	CantidadInventario  decimal.Decimal
	CantidadDistribuida decimal.Decimal
}

// DistribucionRow is a listing row with the related names resolved.
type DistribucionRow struct {
	ID             uint
	Cantidad       decimal.Decimal
	Fecha          time.Time
	NombrePunto    string
	NombreNegocio  string
	NombreProducto string
	Costo          decimal.Decimal
}

// DistribucionVentaRow is a per-distribution stock row: the distributed
// quantity next to what its ventas already consumed.
type DistribucionVentaRow struct {
	ID              uint
	Cantidad        decimal.Decimal
	Fecha           time.Time
	PuntoID         uint
	NombreProducto  string
	PrecioVenta     decimal.Decimal
	CantidadVendida decimal.Decimal
	NombrePunto     string
	Um              string
}

// DistribucionResumenRow aggregates distributed quantity per product at one
// sales point.
type DistribucionResumenRow struct {
	NombreProducto      string
	CantidadDistribuida decimal.Decimal
	NombrePunto         string
	Um                  string
	PrecioVenta         decimal.Decimal
}

// DistribucionPeriodoRow groups distributed quantity per product and punto
// inside a date range.
type DistribucionPeriodoRow struct {
	Cantidad       decimal.Decimal
	NombrePunto    string
	NombreNegocio  string
	NombreProducto string
}

// DistribucionRepository is the data access contract for stock assignments.
type DistribucionRepository interface {
	CreateTx(tx *gorm.DB, d *model.Distribucion) error
	FindByID(ctx context.Context, id uint) (*model.Distribucion, error)
	Detail(ctx context.Context, id uint) (*DistribucionDetailRow, error)
	Update(ctx context.Context, d *model.Distribucion) error
	UpdateTx(tx *gorm.DB, d *model.Distribucion) error
	Delete(ctx context.Context, id uint) error
	ListByPropietario(ctx context.Context, propietarioID uint) ([]DistribucionRow, error)
	DisponiblesVenta(ctx context.Context, propietarioID uint) ([]DistribucionVentaRow, error)
	DisponiblesVentaPunto(ctx context.Context, puntoID uint) ([]DistribucionVentaRow, error)
	Resumen(ctx context.Context, puntoID uint, propietarioID *uint) ([]DistribucionResumenRow, error)
	Periodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]DistribucionPeriodoRow, error)
	Contador(ctx context.Context, inicio, fin time.Time) (total, nuevos int64, err error)

	// DisponibleTx locks the distribution row FOR UPDATE and returns its
	// remaining sellable quantity: cantidad - sum(ventas). Concurrent sales
	// against the same distribution serialize on the lock.
	DisponibleTx(tx *gorm.DB, distribucionID uint) (decimal.Decimal, error)

	DB() *gorm.DB
}

type distribucionRepo struct{ db *gorm.DB }

func NewDistribucionRepository(db *gorm.DB) DistribucionRepository {
	return &distribucionRepo{db: db}
}

func (r *distribucionRepo) CreateTx(tx *gorm.DB, d *model.Distribucion) error {
	return tx.Create(d).Error
}

func (r *distribucionRepo) FindByID(ctx context.Context, id uint) (*model.Distribucion, error) {
	var d model.Distribucion
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *distribucionRepo) Detail(ctx context.Context, id uint) (*DistribucionDetailRow, error) {
	var row DistribucionDetailRow
	err := r.db.WithContext(ctx).Table("distribucion d").
		Select(`d.id, d.cantidad, d.fecha, d.inventario_id, d.punto_id,
			i.negocio_id, i.cantidad AS cantidad_inventario,
			(SELECT COALESCE(SUM(d2.cantidad), 0) FROM distribucion d2
			 WHERE d2.inventario_id = d.inventario_id) AS cantidad_distribuida`).
		Joins("JOIN inventario i ON i.id = d.inventario_id").
		Where("d.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *distribucionRepo) Update(ctx context.Context, d *model.Distribucion) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *distribucionRepo) UpdateTx(tx *gorm.DB, d *model.Distribucion) error {
	return tx.Save(d).Error
}

func (r *distribucionRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Distribucion{}, id).Error
}

func (r *distribucionRepo) ListByPropietario(ctx context.Context, propietarioID uint) ([]DistribucionRow, error) {
	var rows []DistribucionRow
	err := r.db.WithContext(ctx).Table("distribucion d").
		Select(`d.id, d.cantidad, d.fecha, p.nombre AS nombre_punto,
			n.nombre AS nombre_negocio, pr.nombre AS nombre_producto, i.costo`).
		Joins("JOIN punto p ON p.id = d.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Joins("JOIN inventario i ON i.id = d.inventario_id").
		Joins("JOIN producto pr ON pr.id = i.producto_id").
		Where("n.propietario_id = ?", propietarioID).
		Order("d.fecha DESC, pr.nombre ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *distribucionRepo) DisponiblesVenta(ctx context.Context, propietarioID uint) ([]DistribucionVentaRow, error) {
	return r.disponibles(ctx, "n.propietario_id = ?", propietarioID,
		"i.negocio_id, d.punto_id, pr.nombre")
}

func (r *distribucionRepo) DisponiblesVentaPunto(ctx context.Context, puntoID uint) ([]DistribucionVentaRow, error) {
	return r.disponibles(ctx, "p.id = ?", puntoID, "pr.nombre")
}

func (r *distribucionRepo) disponibles(ctx context.Context, cond string, arg uint, order string) ([]DistribucionVentaRow, error) {
	var rows []DistribucionVentaRow
	err := r.db.WithContext(ctx).Table("distribucion d").
		Select(`d.id, d.cantidad, d.fecha, p.id AS punto_id,
			pr.nombre AS nombre_producto, i.precio_venta,
			SUM(COALESCE(v.cantidad, 0)) AS cantidad_vendida,
			p.nombre AS nombre_punto, i.um`).
		Joins("JOIN punto p ON p.id = d.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Joins("JOIN inventario i ON i.id = d.inventario_id").
		Joins("JOIN producto pr ON pr.id = i.producto_id").
		Joins("LEFT JOIN venta v ON v.distribucion_id = d.id").
		Where(cond, arg).
		Group("d.id, p.id, pr.nombre, i.negocio_id, i.precio_venta, i.um").
		Order(order).
		Scan(&rows).Error
	return rows, err
}

func (r *distribucionRepo) Resumen(ctx context.Context, puntoID uint, propietarioID *uint) ([]DistribucionResumenRow, error) {
	var rows []DistribucionResumenRow
	q := r.db.WithContext(ctx).Table("distribucion d").
		Select(`pr.nombre AS nombre_producto, SUM(d.cantidad) AS cantidad_distribuida,
			p.nombre AS nombre_punto, i.um, i.precio_venta`).
		Joins("JOIN punto p ON p.id = d.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Joins("JOIN inventario i ON i.id = d.inventario_id").
		Joins("JOIN producto pr ON pr.id = i.producto_id").
		Where("p.id = ?", puntoID)
	if propietarioID != nil {
		q = q.Where("n.propietario_id = ?", *propietarioID)
	}
	err := q.Group("pr.nombre, p.nombre, i.um, i.precio_venta").
		Order("p.nombre, pr.nombre").
		Scan(&rows).Error
	return rows, err
}

func (r *distribucionRepo) Periodo(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]DistribucionPeriodoRow, error) {
	var rows []DistribucionPeriodoRow
	err := r.db.WithContext(ctx).Table("distribucion d").
		Select(`SUM(d.cantidad) AS cantidad, p.nombre AS nombre_punto,
			n.nombre AS nombre_negocio, pr.nombre AS nombre_producto`).
		Joins("JOIN punto p ON p.id = d.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Joins("JOIN inventario i ON i.id = d.inventario_id").
		Joins("JOIN producto pr ON pr.id = i.producto_id").
		Where("n.propietario_id = ? AND d.fecha BETWEEN ? AND ?", propietarioID, inicio, fin).
		Group("d.punto_id, pr.nombre, n.nombre, p.nombre").
		Order("SUM(d.cantidad) DESC, pr.nombre").
		Scan(&rows).Error
	return rows, err
}

func (r *distribucionRepo) Contador(ctx context.Context, inicio, fin time.Time) (int64, int64, error) {
	var total, nuevos int64
	if err := r.db.WithContext(ctx).Model(&model.Distribucion{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.WithContext(ctx).Model(&model.Distribucion{}).
		Where("fecha_creado::date BETWEEN ? AND ?", inicio, fin).Count(&nuevos).Error
	return total, nuevos, err
}

func (r *distribucionRepo) DisponibleTx(tx *gorm.DB, distribucionID uint) (decimal.Decimal, error) {
	var d model.Distribucion
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&d, distribucionID).Error; err != nil {
		return decimal.Zero, err
	}

	var vendido decimal.Decimal
	if err := tx.Table("venta").
		Select("COALESCE(SUM(cantidad), 0)").
		Where("distribucion_id = ?", distribucionID).
		Scan(&vendido).Error; err != nil {
		return decimal.Zero, err
	}
	return d.Cantidad.Sub(vendido), nil
}

func (r *distribucionRepo) DB() *gorm.DB { return r.db }
