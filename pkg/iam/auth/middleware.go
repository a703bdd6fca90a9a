package auth

import (
	"strings"

	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware authenticates requests with a bearer JWT or the
// access_token cookie.
type AuthMiddleware struct {
	tokenService TokenService
}

func NewAuthMiddleware(tokenService TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// Authenticate rejects requests without a valid token and stores the
// AuthContext in c.Locals("auth").
func (am *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return ErrUnauthorized()
		}

		claims, err := am.tokenService.ValidateAccessToken(token)
		if err != nil {
			return err
		}

		userID := claims.UserID
		c.Locals("auth", &kernel.AuthContext{
			UserID: &userID,
			Email:  claims.Email,
			Name:   claims.Name,
			Role:   claims.Role,
			Scopes: claims.Scopes,
		})
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return parts[1]
		}
	}
	return c.Cookies("access_token")
}

// RequireScope - Requires a specific scope
func (am *AuthMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		if !ok {
			return ErrUnauthorized()
		}
		if !authContext.HasScope(scope) {
			return ErrForbidden().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}

// RequireAnyScope - Requires at least one of the scopes
func (am *AuthMiddleware) RequireAnyScope(scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		if !ok {
			return ErrUnauthorized()
		}
		if !authContext.HasAnyScope(scopes...) {
			return ErrForbidden().WithDetail("required_scopes", scopes)
		}
		return c.Next()
	}
}

// RequireAdmin - Requires the global or admin wildcard
func (am *AuthMiddleware) RequireAdmin() fiber.Handler {
	return am.RequireAnyScope("*", "admin:*")
}

// GetAuthContext helper to extract auth context from Fiber
func GetAuthContext(c *fiber.Ctx) (*kernel.AuthContext, bool) {
	authContext, ok := c.Locals("auth").(*kernel.AuthContext)
	return authContext, ok && authContext != nil && authContext.IsValid()
}
