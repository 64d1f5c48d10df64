package repository

import (
	"context"
	"time"

	"github.com/lrplaceres/punto-venta/internal/model"

	"gorm.io/gorm"
)

// LicenciaPorVencerRow drives the expiry reminder mail.
type LicenciaPorVencerRow struct {
	NegocioID     uint
	Nombre        string
	FechaLicencia time.Time
	Propietario   string
	Email         *string
}

// NegocioRepository is the data access contract for tenants.
type NegocioRepository interface {
	Create(ctx context.Context, n *model.Negocio) error
	FindByID(ctx context.Context, id uint) (*model.Negocio, error)
	ListAll(ctx context.Context) ([]model.Negocio, error)
	ListByPropietario(ctx context.Context, propietarioID uint) ([]model.Negocio, error)
	Update(ctx context.Context, n *model.Negocio) error
	Delete(ctx context.Context, id uint) error
	Contador(ctx context.Context, inicio, fin time.Time) (total, nuevos int64, err error)

	// EsPropietario reports whether the user owns the negocio. With
	// conLicencia set the license must also be current.
	EsPropietario(ctx context.Context, negocioID, usuarioID uint, conLicencia bool) (bool, error)

	// LicenciasPorVencer lists negocios whose license expires on or before
	// the given date, joined to the owner's contact data.
	LicenciasPorVencer(ctx context.Context, hasta time.Time) ([]LicenciaPorVencerRow, error)

	DB() *gorm.DB
}

type negocioRepo struct{ db *gorm.DB }

func NewNegocioRepository(db *gorm.DB) NegocioRepository { return &negocioRepo{db: db} }

func (r *negocioRepo) Create(ctx context.Context, n *model.Negocio) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *negocioRepo) FindByID(ctx context.Context, id uint) (*model.Negocio, error) {
	var n model.Negocio
	err := r.db.WithContext(ctx).First(&n, id).Error
	return &n, err
}

func (r *negocioRepo) ListAll(ctx context.Context) ([]model.Negocio, error) {
	var negocios []model.Negocio
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&negocios).Error
	return negocios, err
}

func (r *negocioRepo) ListByPropietario(ctx context.Context, propietarioID uint) ([]model.Negocio, error) {
	var negocios []model.Negocio
	err := r.db.WithContext(ctx).
		Where("propietario_id = ?", propietarioID).
		Order("nombre ASC").Find(&negocios).Error
	return negocios, err
}

func (r *negocioRepo) Update(ctx context.Context, n *model.Negocio) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *negocioRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Negocio{}, id).Error
}

func (r *negocioRepo) Contador(ctx context.Context, inicio, fin time.Time) (int64, int64, error) {
	var total, nuevos int64
	if err := r.db.WithContext(ctx).Model(&model.Negocio{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.WithContext(ctx).Model(&model.Negocio{}).
		Where("fecha_creado::date BETWEEN ? AND ?", inicio, fin).Count(&nuevos).Error
	return total, nuevos, err
}

func (r *negocioRepo) EsPropietario(ctx context.Context, negocioID, usuarioID uint, conLicencia bool) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&model.Negocio{}).
		Where("id = ? AND propietario_id = ?", negocioID, usuarioID)
	if conLicencia {
		q = q.Where("fecha_licencia >= CURRENT_DATE")
	}
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *negocioRepo) LicenciasPorVencer(ctx context.Context, hasta time.Time) ([]LicenciaPorVencerRow, error) {
	var rows []LicenciaPorVencerRow
	err := r.db.WithContext(ctx).Table("negocio n").
		Select("n.id AS negocio_id, n.nombre, n.fecha_licencia, u.usuario AS propietario, u.email").
		Joins(`JOIN "user" u ON u.id = n.propietario_id`).
		Where("n.activo AND n.fecha_licencia BETWEEN CURRENT_DATE AND ?", hasta).
		Order("n.fecha_licencia ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *negocioRepo) DB() *gorm.DB { return r.db }
