package repository

import (
	"context"
	"time"

	"github.com/lrplaceres/punto-venta/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventarioRow is an owner listing row with product and negocio names.
type InventarioRow struct {
	ID            uint
	Nombre        string
	Cantidad      decimal.Decimal
	NombreNegocio string
	Costo         decimal.Decimal
	Fecha         time.Time
	PrecioVenta   decimal.Decimal
}

// InventarioADistribuirRow carries the lot quantity together with how much of
// it has already been assigned to sales points.
type InventarioADistribuirRow struct {
	ID            uint
	Nombre        string
	Cantidad      decimal.Decimal
	Fecha         time.Time
	Costo         decimal.Decimal
	Distribuido   decimal.Decimal
	NegocioID     uint
	NombreNegocio string
}

// MontoPorDiaRow is one day bucket of a money aggregate.
type MontoPorDiaRow struct {
	Monto decimal.Decimal
	Anno  int
	Mes   int
	Dia   int
}

// InventarioRepository is the data access contract for purchase lots.
type InventarioRepository interface {
	Create(ctx context.Context, i *model.Inventario) error
	FindByID(ctx context.Context, id uint) (*model.Inventario, error)
	Update(ctx context.Context, i *model.Inventario) error
	Delete(ctx context.Context, id uint) error
	ListByPropietario(ctx context.Context, propietarioID uint) ([]InventarioRow, error)
	ADistribuir(ctx context.Context, propietarioID uint) ([]InventarioADistribuirRow, error)
	CostosBrutos(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]MontoPorDiaRow, error)
	Contador(ctx context.Context, inicio, fin time.Time) (total, nuevos int64, err error)

	// DistribuidoTx sums the quantity already assigned from the lot. Runs on
	// the caller's transaction so the create path can lock consistently.
	DistribuidoTx(tx *gorm.DB, inventarioID uint) (decimal.Decimal, error)

	DB() *gorm.DB
}

type inventarioRepo struct{ db *gorm.DB }

func NewInventarioRepository(db *gorm.DB) InventarioRepository { return &inventarioRepo{db: db} }

func (r *inventarioRepo) Create(ctx context.Context, i *model.Inventario) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *inventarioRepo) FindByID(ctx context.Context, id uint) (*model.Inventario, error) {
	var i model.Inventario
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *inventarioRepo) Update(ctx context.Context, i *model.Inventario) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *inventarioRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Inventario{}, id).Error
}

func (r *inventarioRepo) ListByPropietario(ctx context.Context, propietarioID uint) ([]InventarioRow, error) {
	var rows []InventarioRow
	err := r.db.WithContext(ctx).Table("inventario i").
		Select(`i.id, pr.nombre, i.cantidad, n.nombre AS nombre_negocio,
			i.costo, i.fecha, i.precio_venta`).
		Joins("JOIN negocio n ON n.id = i.negocio_id").
		Joins("JOIN producto pr ON pr.id = i.producto_id").
		Where("n.propietario_id = ?", propietarioID).
		Scan(&rows).Error
	return rows, err
}

func (r *inventarioRepo) ADistribuir(ctx context.Context, propietarioID uint) ([]InventarioADistribuirRow, error) {
	var rows []InventarioADistribuirRow
	err := r.db.WithContext(ctx).Table("inventario i").
		Select(`i.id, pr.nombre, i.cantidad, i.fecha, i.costo,
			SUM(COALESCE(d.cantidad, 0)) AS distribuido,
			i.negocio_id, n.nombre AS nombre_negocio`).
		Joins("JOIN producto pr ON pr.id = i.producto_id").
		Joins("JOIN negocio n ON n.id = i.negocio_id").
		Joins("LEFT JOIN distribucion d ON d.inventario_id = i.id").
		Where("n.propietario_id = ?", propietarioID).
		Group("i.id, pr.nombre, n.nombre").
		Order("pr.nombre ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *inventarioRepo) CostosBrutos(ctx context.Context, propietarioID uint, inicio, fin time.Time) ([]MontoPorDiaRow, error) {
	var rows []MontoPorDiaRow
	err := r.db.WithContext(ctx).Table("inventario i").
		Select(`SUM(i.monto) AS monto,
			EXTRACT(YEAR FROM i.fecha)::int AS anno,
			EXTRACT(MONTH FROM i.fecha)::int AS mes,
			EXTRACT(DAY FROM i.fecha)::int AS dia`).
		Joins("JOIN negocio n ON n.id = i.negocio_id").
		Where("n.propietario_id = ? AND i.fecha BETWEEN ? AND ?", propietarioID, inicio, fin).
		Group("anno, mes, dia").
		Order("anno, mes, dia").
		Scan(&rows).Error
	return rows, err
}

func (r *inventarioRepo) Contador(ctx context.Context, inicio, fin time.Time) (int64, int64, error) {
	var total, nuevos int64
	if err := r.db.WithContext(ctx).Model(&model.Inventario{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.WithContext(ctx).Model(&model.Inventario{}).
		Where("fecha_creado::date BETWEEN ? AND ?", inicio, fin).Count(&nuevos).Error
	return total, nuevos, err
}

func (r *inventarioRepo) DistribuidoTx(tx *gorm.DB, inventarioID uint) (decimal.Decimal, error) {
	var distribuido decimal.Decimal
	err := tx.Table("distribucion").
		Select("COALESCE(SUM(cantidad), 0)").
		Where("inventario_id = ?", inventarioID).
		Scan(&distribuido).Error
	return distribuido, err
}

func (r *inventarioRepo) DB() *gorm.DB { return r.db }
