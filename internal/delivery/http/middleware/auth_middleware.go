package middleware

import (
	"strings"

	deliverycontext "homestay/internal/delivery/context"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Identify attaches the caller's identity when a valid bearer token is present.
// Anonymous requests pass through untouched; enforcement is left to Authenticate.
func (m *AuthMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return next(c)
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return next(c)
		}

		deliverycontext.SetIdentity(c, &deliverycontext.Identity{
			UserID:   claims.UserID(),
			UserName: claims.UserName,
			Roles:    claims.Roles,
		})

		return next(c)
	}
}

// Authenticate rejects requests that carry no valid access token.
// It must be used AFTER the Identify middleware.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliverycontext.GetIdentity(c) == nil {
			return domainerrors.ErrUnauthorized.WrapMessage("missing or invalid access token")
		}

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := deliverycontext.GetIdentity(c)
			if identity == nil || !identity.HasRole(requiredRole) {
				return domainerrors.ErrUnauthorized.WrapMessage("require '" + requiredRole + "' role")
			}

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", false
	}

	return tokenString, true
}
