package repository

import (
	"context"
	"time"

	"github.com/lrplaceres/punto-venta/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FacturaDetailRow swaps the punto id for its name and keeps the raw
// snapshot text.
type FacturaDetailRow struct {
	ID              uint
	Monto           decimal.Decimal
	PagoElectronico bool
	NoOperacion     *string
	NombrePunto     string
	Ventas          string
	Fecha           time.Time
}

// FacturaRow is a listing row, snapshot omitted.
type FacturaRow struct {
	ID              uint
	Monto           decimal.Decimal
	PagoElectronico bool
	NoOperacion     *string
	NombrePunto     string
	Fecha           time.Time
}

// FacturaRepository is the data access contract for invoices.
type FacturaRepository interface {
	CreateTx(tx *gorm.DB, f *model.Factura) error
	Detail(ctx context.Context, id, propietarioID uint) (*FacturaDetailRow, error)
	ListByPropietario(ctx context.Context, propietarioID uint) ([]FacturaRow, error)

	// Scoped fetches used by delete, both requiring a current license.
	FindScopedPropietario(ctx context.Context, id, propietarioID uint) (*model.Factura, error)
	FindScopedDependiente(ctx context.Context, id, puntoID uint) (*model.Factura, error)

	DeleteTx(tx *gorm.DB, id uint) error

	DB() *gorm.DB
}

type facturaRepo struct{ db *gorm.DB }

func NewFacturaRepository(db *gorm.DB) FacturaRepository { return &facturaRepo{db: db} }

func (r *facturaRepo) CreateTx(tx *gorm.DB, f *model.Factura) error {
	return tx.Create(f).Error
}

func (r *facturaRepo) Detail(ctx context.Context, id, propietarioID uint) (*FacturaDetailRow, error) {
	var row FacturaDetailRow
	err := r.db.WithContext(ctx).Table("factura f").
		Select(`f.id, f.monto, f.pago_electronico, f.no_operacion,
			p.nombre AS nombre_punto, f.ventas, f.fecha`).
		Joins("JOIN punto p ON p.id = f.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Where("n.propietario_id = ? AND f.id = ?", propietarioID, id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *facturaRepo) ListByPropietario(ctx context.Context, propietarioID uint) ([]FacturaRow, error) {
	var rows []FacturaRow
	err := r.db.WithContext(ctx).Table("factura f").
		Select(`f.id, f.monto, f.pago_electronico, f.no_operacion,
			p.nombre AS nombre_punto, f.fecha`).
		Joins("JOIN punto p ON p.id = f.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Where("n.propietario_id = ?", propietarioID).
		Order("f.fecha DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *facturaRepo) FindScopedPropietario(ctx context.Context, id, propietarioID uint) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).Table("factura f").Select("f.*").
		Joins("JOIN punto p ON p.id = f.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Where(`f.id = ? AND n.propietario_id = ?
			AND n.fecha_licencia >= CURRENT_DATE`, id, propietarioID).
		Take(&f).Error
	return &f, err
}

func (r *facturaRepo) FindScopedDependiente(ctx context.Context, id, puntoID uint) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).Table("factura f").Select("f.*").
		Joins("JOIN punto p ON p.id = f.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Where(`f.id = ? AND p.id = ?
			AND n.fecha_licencia >= CURRENT_DATE`, id, puntoID).
		Take(&f).Error
	return &f, err
}

func (r *facturaRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Factura{}, id).Error
}

func (r *facturaRepo) DB() *gorm.DB { return r.db }
