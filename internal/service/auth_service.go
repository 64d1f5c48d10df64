package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/config"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/model"
	"github.com/lrplaceres/punto-venta/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	CurrentUser(ctx context.Context, usuarioID uint) (*dto.UsuarioResponse, error)
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.FindByUsuario(ctx, req.Username)
	if err != nil {
		return nil, apierror.Unauthenticated("Usuario o contraseña incorrecto")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apierror.Unauthenticated("Usuario o contraseña incorrecto")
	}
	if !user.Activo {
		return nil, apierror.Unauthenticated("Usuario o contraseña incorrecto")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Usuario:     user.Usuario,
		Rol:         user.Rol.String(),
		Name:        user.Nombre,
	}, nil
}

func (s *authService) CurrentUser(ctx context.Context, usuarioID uint) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, apierror.Unauthenticated("Usuario o contraseña incorrecto")
	}
	return usuarioToResponse(user), nil
}

func (s *authService) generateToken(user *model.Usuario) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Usuario,
		"exp": now.Add(time.Duration(s.cfg.JWTExpirationMinutes) * time.Minute).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:      u.ID,
		Usuario: u.Usuario,
		Nombre:  u.Nombre,
		Email:   u.Email,
		Rol:     u.Rol.String(),
		Activo:  u.Activo,
		PuntoID: u.PuntoID,
	}
}
