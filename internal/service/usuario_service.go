package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/model"
	"github.com/lrplaceres/punto-venta/internal/repository"
	"github.com/lrplaceres/punto-venta/internal/worker"
)

// UsuarioService covers the superadmin account management plus the self
// password change every role can call.
type UsuarioService interface {
	Crear(ctx context.Context, actor string, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	Obtener(ctx context.Context, id uint) (*dto.UsuarioResponse, error)
	Listar(ctx context.Context) ([]dto.UsuarioResponse, error)
	Actualizar(ctx context.Context, actor string, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	Eliminar(ctx context.Context, actor string, id uint) error
	Contador(ctx context.Context, inicio, fin time.Time) (total, nuevos int64, err error)
	CambiarPassword(ctx context.Context, usuarioID uint, req dto.CambiarPasswordRequest) error
}

type usuarioService struct {
	repo       repository.UsuarioRepository
	dispatcher *worker.Dispatcher
}

func NewUsuarioService(repo repository.UsuarioRepository, dispatcher *worker.Dispatcher) UsuarioService {
	return &usuarioService{repo: repo, dispatcher: dispatcher}
}

func (s *usuarioService) Crear(ctx context.Context, actor string, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	rol := model.Rol(req.Rol)
	if !rol.Valida() {
		return nil, apierror.Precondition("Rol inválido")
	}
	existe, err := s.repo.ExisteUsuario(ctx, req.Usuario)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	if existe {
		return nil, apierror.Precondition("Usuario no disponible. Intente con otro.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	user := &model.Usuario{
		Usuario:  req.Usuario,
		Nombre:   req.Nombre,
		Email:    req.Email,
		Rol:      rol,
		Activo:   req.Activo,
		Password: string(hash),
		PuntoID:  req.PuntoID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, actor, model.AccionCreate, "User", user.ID)
	return usuarioToResponse(user), nil
}

func (s *usuarioService) Obtener(ctx context.Context, id uint) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("El usuario %d no ha sido encontrado", id))
	}
	return usuarioToResponse(user), nil
}

func (s *usuarioService) Listar(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = *usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *usuarioService) Actualizar(ctx context.Context, actor string, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("El usuario %d no ha sido encontrado", id))
	}
	if req.Nombre != "" {
		user.Nombre = req.Nombre
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Rol != "" {
		rol := model.Rol(req.Rol)
		if !rol.Valida() {
			return nil, apierror.Precondition("Rol inválido")
		}
		user.Rol = rol
	}
	user.Activo = req.Activo
	if req.PuntoID != nil {
		user.PuntoID = req.PuntoID
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, actor, model.AccionUpdate, "User", user.ID)
	return usuarioToResponse(user), nil
}

func (s *usuarioService) Eliminar(ctx context.Context, actor string, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound(fmt.Sprintf("El usuario %d no ha sido encontrado", id))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, actor, model.AccionDelete, "User", id)
	return nil
}

func (s *usuarioService) Contador(ctx context.Context, inicio, fin time.Time) (int64, int64, error) {
	total, nuevos, err := s.repo.Contador(ctx, inicio, fin)
	if err != nil {
		return 0, 0, apierror.Internal(err)
	}
	return total, nuevos, nil
}

func (s *usuarioService) CambiarPassword(ctx context.Context, usuarioID uint, req dto.CambiarPasswordRequest) error {
	user, err := s.repo.FindByID(ctx, usuarioID)
	if err != nil {
		return apierror.NotFound(fmt.Sprintf("El usuario %d no ha sido encontrado", usuarioID))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.ContrasennaActual)); err != nil {
		return apierror.Precondition("La contraseña actual no es correcta")
	}
	if req.ContrasennaNueva != req.RepiteContrasennaNueva {
		return apierror.Precondition("Las contraseñas no coinciden")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.ContrasennaNueva), 12)
	if err != nil {
		return apierror.Internal(err)
	}
	user.Password = string(hash)
	if err := s.repo.Update(ctx, user); err != nil {
		return apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, user.Usuario, model.AccionUpdate, "User", user.ID)
	return nil
}
