package repository

import (
	"context"
	"time"

	"github.com/lrplaceres/punto-venta/internal/model"

	"gorm.io/gorm"
)

// ProductoRow is a listing row with the negocio resolved by id and name.
type ProductoRow struct {
	ID            uint
	Nombre        string
	NegocioID     uint
	NombreNegocio string
}

// ProductoRepository is the data access contract for catalog entries.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uint) (*model.Producto, error)
	ListByPropietario(ctx context.Context, propietarioID uint) ([]ProductoRow, error)
	ListByNegocio(ctx context.Context, negocioID uint) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uint) error
	Contador(ctx context.Context, inicio, fin time.Time) (total, nuevos int64, err error)

	// ExisteNombre checks the per-negocio name uniqueness rule.
	ExisteNombre(ctx context.Context, negocioID uint, nombre string) (bool, error)

	// PerteneceANegocio reports whether the product lives in the negocio.
	PerteneceANegocio(ctx context.Context, productoID, negocioID uint) (bool, error)

	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) ListByPropietario(ctx context.Context, propietarioID uint) ([]ProductoRow, error) {
	var rows []ProductoRow
	err := r.db.WithContext(ctx).Table("producto p").
		Select("p.id, p.nombre, n.id AS negocio_id, n.nombre AS nombre_negocio").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Where("n.propietario_id = ?", propietarioID).
		Order("p.nombre ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *productoRepo) ListByNegocio(ctx context.Context, negocioID uint) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Where("negocio_id = ?", negocioID).
		Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Producto{}, id).Error
}

func (r *productoRepo) Contador(ctx context.Context, inicio, fin time.Time) (int64, int64, error) {
	var total, nuevos int64
	if err := r.db.WithContext(ctx).Model(&model.Producto{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("fecha_creado::date BETWEEN ? AND ?", inicio, fin).Count(&nuevos).Error
	return total, nuevos, err
}

func (r *productoRepo) ExisteNombre(ctx context.Context, negocioID uint, nombre string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("negocio_id = ? AND nombre = ?", negocioID, nombre).Count(&n).Error
	return n > 0, err
}

func (r *productoRepo) PerteneceANegocio(ctx context.Context, productoID, negocioID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ? AND negocio_id = ?", productoID, negocioID).Count(&n).Error
	return n > 0, err
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
