package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/dto"
	"github.com/lrplaceres/punto-venta/internal/middleware"
	"github.com/lrplaceres/punto-venta/internal/service"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary      Autenticar usuario
// @Description  Valida usuario y contraseña y devuelve un token de acceso JWT.
// @Tags         auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body body dto.LoginRequest true "Credenciales"
// @Success      200 {object} dto.TokenResponse
// @Failure      401 {object} apierror.APIError
// @Router       /token [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	// The login form posts x-www-form-urlencoded; API clients send JSON.
	if strings.HasPrefix(c.ContentType(), "application/json") {
		if !bindAndValidate(c, &req) {
			return
		}
	} else {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Formulario invalido"))
			return
		}
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.UsuarioResponse
// @Router       /users/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetUser(c)
	resp, err := h.svc.CurrentUser(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
