package repository

import (
	"context"
	"time"

	"github.com/lrplaceres/punto-venta/internal/model"

	"gorm.io/gorm"
)

// DependienteRow is a clerk listing row joined to its sales point name.
type DependienteRow struct {
	ID          uint
	Usuario     string
	Email       *string
	Activo      bool
	Nombre      string
	NombrePunto string
}

// UsuarioRepository defines the data access contract for users, both the
// superadmin-managed accounts and the owner-managed clerks.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uint) (*model.Usuario, error)
	FindByUsuario(ctx context.Context, usuario string) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error
	Delete(ctx context.Context, id uint) error
	ExisteUsuario(ctx context.Context, usuario string) (bool, error)
	Contador(ctx context.Context, inicio, fin time.Time) (total, nuevos int64, err error)

	// Clerk queries, scoped to the owner's negocios via punto -> negocio.
	ListDependientes(ctx context.Context, propietarioID uint) ([]DependienteRow, error)
	FindDependiente(ctx context.Context, id, propietarioID uint, conLicencia bool) (*model.Usuario, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) FindByUsuario(ctx context.Context, usuario string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("usuario = ?", usuario).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).Order("usuario ASC").Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Usuario{}, id).Error
}

func (r *usuarioRepo) ExisteUsuario(ctx context.Context, usuario string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("usuario = ?", usuario).Count(&n).Error
	return n > 0, err
}

func (r *usuarioRepo) Contador(ctx context.Context, inicio, fin time.Time) (int64, int64, error) {
	var total, nuevos int64
	if err := r.db.WithContext(ctx).Model(&model.Usuario{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("fecha_creado::date BETWEEN ? AND ?", inicio, fin).Count(&nuevos).Error
	return total, nuevos, err
}

func (r *usuarioRepo) ListDependientes(ctx context.Context, propietarioID uint) ([]DependienteRow, error) {
	var rows []DependienteRow
	err := r.db.WithContext(ctx).Table(`"user" u`).
		Select("u.id, u.usuario, u.email, u.activo, u.nombre, p.nombre AS nombre_punto").
		Joins("JOIN punto p ON p.id = u.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Where("u.rol = ? AND n.propietario_id = ?", model.RolDependiente, propietarioID).
		Scan(&rows).Error
	return rows, err
}

func (r *usuarioRepo) FindDependiente(ctx context.Context, id, propietarioID uint, conLicencia bool) (*model.Usuario, error) {
	var u model.Usuario
	q := r.db.WithContext(ctx).Table(`"user" u`).Select("u.*").
		Joins("JOIN punto p ON p.id = u.punto_id").
		Joins("JOIN negocio n ON n.id = p.negocio_id").
		Where("u.id = ? AND n.propietario_id = ?", id, propietarioID)
	if conLicencia {
		q = q.Where("n.fecha_licencia >= CURRENT_DATE")
	}
	err := q.Take(&u).Error
	return &u, err
}

func (r *usuarioRepo) DB() *gorm.DB { return r.db }
