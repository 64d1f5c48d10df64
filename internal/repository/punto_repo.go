package repository

import (
	"context"
	"time"

	"github.com/lrplaceres/punto-venta/internal/model"

	"gorm.io/gorm"
)

// PuntoRow is a listing row with the negocio name resolved.
type PuntoRow struct {
	ID            uint
	Nombre        string
	Direccion     string
	NombreNegocio string
}

// PuntoRepository is the data access contract for sales points.
type PuntoRepository interface {
	Create(ctx context.Context, p *model.Punto) error
	FindByID(ctx context.Context, id uint) (*model.Punto, error)
	ListByPropietario(ctx context.Context, propietarioID uint) ([]PuntoRow, error)
	ListByNegocio(ctx context.Context, negocioID uint) ([]model.Punto, error)
	Update(ctx context.Context, p *model.Punto) error
	Delete(ctx context.Context, id uint) error
	Contador(ctx context.Context, inicio, fin time.Time) (total, nuevos int64, err error)

	// PerteneceAPropietario follows punto -> negocio and checks ownership,
	// optionally requiring a current license.
	PerteneceAPropietario(ctx context.Context, puntoID, usuarioID uint, conLicencia bool) (bool, error)

	DB() *gorm.DB
}

type puntoRepo struct{ db *gorm.DB }

func NewPuntoRepository(db *gorm.DB) PuntoRepository { return &puntoRepo{db: db} }

func (r *puntoRepo) Create(ctx context.Context, p *model.Punto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *puntoRepo) FindByID(ctx context.Context, id uint) (*model.Punto, error) {
	var p model.Punto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *puntoRepo) ListByPropietario(ctx context.Context, propietarioID uint) ([]PuntoRow, error) {
	var rows []PuntoRow
	err := r.db.WithContext(ctx).Table("punto p").
		Select("p.id, p.nombre, p.direccion, n.nombre AS nombre_negocio").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Where("n.propietario_id = ?", propietarioID).
		Order("p.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *puntoRepo) ListByNegocio(ctx context.Context, negocioID uint) ([]model.Punto, error) {
	var puntos []model.Punto
	err := r.db.WithContext(ctx).Where("negocio_id = ?", negocioID).Find(&puntos).Error
	return puntos, err
}

func (r *puntoRepo) Update(ctx context.Context, p *model.Punto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *puntoRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Punto{}, id).Error
}

func (r *puntoRepo) Contador(ctx context.Context, inicio, fin time.Time) (int64, int64, error) {
	var total, nuevos int64
	if err := r.db.WithContext(ctx).Model(&model.Punto{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.WithContext(ctx).Model(&model.Punto{}).
		Where("fecha_creado::date BETWEEN ? AND ?", inicio, fin).Count(&nuevos).Error
	return total, nuevos, err
}

func (r *puntoRepo) PerteneceAPropietario(ctx context.Context, puntoID, usuarioID uint, conLicencia bool) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Table("punto p").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Where("p.id = ? AND n.propietario_id = ?", puntoID, usuarioID)
	if conLicencia {
		q = q.Where("n.fecha_licencia >= CURRENT_DATE")
	}
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *puntoRepo) DB() *gorm.DB { return r.db }
