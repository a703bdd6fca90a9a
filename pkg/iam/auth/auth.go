package auth

import (
	"net/http"
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
)

// TokenClaims son los datos del usuario autenticado extraídos del token.
type TokenClaims struct {
	UserID    kernel.UserID
	Email     string
	Name      string
	Role      string
	Scopes    []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService emite y valida tokens de acceso.
type TokenService interface {
	GenerateAccessToken(claims TokenClaims) (string, time.Time, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeUnauthorized          = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Authentication required")
	CodeForbidden             = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeTokenGenerationFailed = ErrRegistry.Register("TOKEN_GENERATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to generate token")
	CodeTokenValidationFailed = ErrRegistry.Register("TOKEN_INVALID", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
)

func ErrUnauthorized() *errx.Error {
	return ErrRegistry.New(CodeUnauthorized)
}

func ErrForbidden() *errx.Error {
	return ErrRegistry.New(CodeForbidden)
}

func ErrTokenGenerationFailed() *errx.Error {
	return ErrRegistry.New(CodeTokenGenerationFailed)
}

func ErrTokenValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeTokenValidationFailed)
}
