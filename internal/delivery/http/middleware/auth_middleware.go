package middleware

import (
	"strings"

	deliverycontext "minishop/internal/delivery/context"
	"minishop/internal/delivery/http/response"
	"minishop/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the JWT access token.
// Only session tokens pass; a verification token presented here is rejected.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return m.reject(c, "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return m.reject(c, "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString, service.TokenPurposeAccess)
		if err != nil {
			return m.reject(c, "Invalid or expired token")
		}

		// Set user info on the context for handlers to use
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)

		request := c.Request()
		c.SetRequest(request.WithContext(deliverycontext.WithRequestID(request.Context(), deliverycontext.GetRequestID(c))))

		return next(c)
	}
}

func (m *AuthMiddleware) reject(c echo.Context, message string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="minishop"`)

	return response.Unauthorized(c, "TOKEN_INVALID", message)
}
