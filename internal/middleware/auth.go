package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lrplaceres/punto-venta/internal/apierror"
	"github.com/lrplaceres/punto-venta/internal/model"
	"github.com/lrplaceres/punto-venta/internal/repository"
)

const (
	// UserKey holds the authenticated *model.Usuario in the Gin context.
	UserKey = "current_user"
)

// JWTAuth validates the Bearer token on every protected route. The token
// only carries the username (sub), so the user record is re-fetched on
// each request; a deactivated account loses access immediately.
func JWTAuth(secret string, usuarios repository.UsuarioRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("No se ha podido validar las credenciales"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("No se ha podido validar las credenciales"))
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("No se ha podido validar las credenciales"))
			return
		}

		user, err := usuarios.FindByUsuario(c.Request.Context(), sub)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("No se ha podido validar las credenciales"))
			return
		}
		if !user.Activo {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Usuario inactivo"))
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// RequireRol rejects requests whose role is not in the allowed list.
func RequireRol(roles ...model.Rol) gin.HandlerFunc {
	allowed := make(map[model.Rol]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user, ok := c.MustGet(UserKey).(*model.Usuario)
		if !ok || !allowed[user.Rol] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("No está autorizado a realizar esta acción"))
			return
		}
		c.Next()
	}
}

// GetUser retrieves the authenticated user from the Gin context.
func GetUser(c *gin.Context) *model.Usuario {
	user, _ := c.MustGet(UserKey).(*model.Usuario)
	return user
}
