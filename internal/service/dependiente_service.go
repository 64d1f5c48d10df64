package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/model"
	"github.com/lrplaceres/punto-venta/internal/repository"
	"github.com/lrplaceres/punto-venta/internal/worker"
)

const errNoAutorizado = "No está autorizado a realizar esta acción"

// DependienteService manages the clerks an owner assigns to their sales
// points. Every mutation requires the punto's negocio to belong to the
// caller with a current license.
type DependienteService interface {
	Crear(ctx context.Context, propietario *model.Usuario, req dto.CrearDependienteRequest) (*dto.UsuarioResponse, error)
	Obtener(ctx context.Context, propietarioID, id uint) (*dto.UsuarioResponse, error)
	Listar(ctx context.Context, propietarioID uint) ([]dto.DependienteListItem, error)
	Actualizar(ctx context.Context, propietario *model.Usuario, id uint, req dto.ActualizarDependienteRequest) (*dto.UsuarioResponse, error)
	Bloquear(ctx context.Context, propietario *model.Usuario, id uint) error
	Desbloquear(ctx context.Context, propietario *model.Usuario, id uint) error
	CambiarPassword(ctx context.Context, propietario *model.Usuario, id uint, req dto.CambiarPasswordDependienteRequest) error
}

type dependienteService struct {
	repo       repository.UsuarioRepository
	puntoRepo  repository.PuntoRepository
	dispatcher *worker.Dispatcher
}

func NewDependienteService(repo repository.UsuarioRepository, puntoRepo repository.PuntoRepository, dispatcher *worker.Dispatcher) DependienteService {
	return &dependienteService{repo: repo, puntoRepo: puntoRepo, dispatcher: dispatcher}
}

func (s *dependienteService) Crear(ctx context.Context, propietario *model.Usuario, req dto.CrearDependienteRequest) (*dto.UsuarioResponse, error) {
	if err := s.autorizaPunto(ctx, req.PuntoID, propietario.ID); err != nil {
		return nil, err
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
	puntoID := req.PuntoID
	user := &model.Usuario{
		Usuario:  req.Usuario,
		Nombre:   req.Nombre,
		Email:    req.Email,
		Rol:      model.RolDependiente,
		Activo:   req.Activo,
		Password: string(hash),
		PuntoID:  &puntoID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionCreate, "User", user.ID)
	return usuarioToResponse(user), nil
}

func (s *dependienteService) Obtener(ctx context.Context, propietarioID, id uint) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindDependiente(ctx, id, propietarioID, false)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("El usuario %d no ha sido encontrado", id))
	}
	return usuarioToResponse(user), nil
}

func (s *dependienteService) Listar(ctx context.Context, propietarioID uint) ([]dto.DependienteListItem, error) {
	rows, err := s.repo.ListDependientes(ctx, propietarioID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	items := make([]dto.DependienteListItem, len(rows))
	for i, r := range rows {
		items[i] = dto.DependienteListItem{
			ID:          r.ID,
			Usuario:     r.Usuario,
			Email:       r.Email,
			Activo:      r.Activo,
			Nombre:      r.Nombre,
			NombrePunto: r.NombrePunto,
		}
	}
	return items, nil
}

func (s *dependienteService) Actualizar(ctx context.Context, propietario *model.Usuario, id uint, req dto.ActualizarDependienteRequest) (*dto.UsuarioResponse, error) {
	if err := s.autorizaPunto(ctx, req.PuntoID, propietario.ID); err != nil {
		return nil, err
	}
	user, err := s.repo.FindDependiente(ctx, id, propietario.ID, true)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("El usuario %d no ha sido encontrado", id))
	}
	puntoID := req.PuntoID
	user.Nombre = req.Nombre
	user.Email = req.Email
	user.Activo = req.Activo
	user.PuntoID = &puntoID
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionUpdate, "User", user.ID)
	return usuarioToResponse(user), nil
}

func (s *dependienteService) Bloquear(ctx context.Context, propietario *model.Usuario, id uint) error {
	return s.cambiarActivo(ctx, propietario, id, false)
}

func (s *dependienteService) Desbloquear(ctx context.Context, propietario *model.Usuario, id uint) error {
	return s.cambiarActivo(ctx, propietario, id, true)
}

func (s *dependienteService) cambiarActivo(ctx context.Context, propietario *model.Usuario, id uint, activo bool) error {
	user, err := s.repo.FindDependiente(ctx, id, propietario.ID, true)
	if err != nil {
		return apierror.NotFound(fmt.Sprintf("El usuario %d no ha sido encontrado", id))
	}
	user.Activo = activo
	if err := s.repo.Update(ctx, user); err != nil {
		return apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionUpdate, "User", user.ID)
	return nil
}

func (s *dependienteService) CambiarPassword(ctx context.Context, propietario *model.Usuario, id uint, req dto.CambiarPasswordDependienteRequest) error {
	if req.ContrasennaNueva != req.RepiteContrasennaNueva {
		return apierror.Precondition("Las contraseñas no coinciden")
	}
	user, err := s.repo.FindDependiente(ctx, id, propietario.ID, true)
	if err != nil {
		return apierror.NotFound(fmt.Sprintf("El usuario %d no ha sido encontrado", id))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.ContrasennaNueva), 12)
	if err != nil {
		return apierror.Internal(err)
	}
	user.Password = string(hash)
	if err := s.repo.Update(ctx, user); err != nil {
		return apierror.Internal(err)
	}
	auditar(ctx, s.dispatcher, propietario.Usuario, model.AccionUpdate, "User", user.ID)
	return nil
}

// autorizaPunto checks that the punto hangs off a licensed negocio owned
// by the caller. Missing rows count as not authorized.
func (s *dependienteService) autorizaPunto(ctx context.Context, puntoID, propietarioID uint) error {
	ok, err := s.puntoRepo.PerteneceAPropietario(ctx, puntoID, propietarioID, true)
	if err != nil {
		return apierror.Internal(err)
	}
	if !ok {
		return apierror.Forbidden(errNoAutorizado)
	}
	return nil
}
