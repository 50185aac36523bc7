package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/telemedika/teleconsult-api/internal/handler"
	"github.com/telemedika/teleconsult-api/internal/model"
	authService "github.com/telemedika/teleconsult-api/internal/service/auth"
	"github.com/telemedika/teleconsult-api/pkg/auth"
)

const (
	contextActor  = "actor"
	contextClaims = "claims"
)

type AuthMiddleware struct {
	authSvc *authService.Service
}

func NewAuthMiddleware(authSvc *authService.Service) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Authenticate verifies the bearer token and threads the actor identity into
// the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.authSvc.ValidateAccess(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(contextClaims, claims)
		c.Set(contextActor, model.Actor{
			UserID:    claims.UserID,
			Username:  claims.Username,
			IsPatient: claims.IsPatient,
			IsDoctor:  claims.IsDoctor,
		})
		c.Next()
	}
}

// RequirePatient gates patient-only views.
func (m *AuthMiddleware) RequirePatient() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetActor(c).IsPatient {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("patient account required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireDoctor gates doctor-only views.
func (m *AuthMiddleware) RequireDoctor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetActor(c).IsDoctor {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("doctor account required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetActor returns the authenticated identity, or the zero Actor on
// unauthenticated routes.
func GetActor(c *gin.Context) model.Actor {
	if v, ok := c.Get(contextActor); ok {
		if actor, ok := v.(model.Actor); ok {
			return actor
		}
	}
	return model.Actor{}
}

// GetClaims returns the validated token claims, or nil.
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(contextClaims); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
