package authinfra

import (
	"errors"
	"net/http"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted for staff accounts.
const MinPasswordLength = 8

var passwordErrors = errx.NewRegistry("PASSWORD")

var (
	CodePasswordTooShort = passwordErrors.Register("TOO_SHORT", errx.TypeValidation, http.StatusBadRequest, "Password must have at least 8 characters")
	CodePasswordTooLong  = passwordErrors.Register("TOO_LONG", errx.TypeValidation, http.StatusBadRequest, "Password must have at most 72 bytes")
)

// BcryptPasswordService implementación del servicio de contraseñas usando bcrypt
type BcryptPasswordService struct {
	cost int
}

// NewBcryptPasswordService crea una nueva instancia del servicio de contraseñas
func NewBcryptPasswordService(cost int) *BcryptPasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordService{
		cost: cost,
	}
}

// HashPassword hashea una contraseña
func (s *BcryptPasswordService) HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", passwordErrors.New(CodePasswordTooShort)
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", passwordErrors.New(CodePasswordTooLong)
		}
		return "", errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}
	return string(hashedBytes), nil
}

// VerifyPassword verifica una contraseña contra su hash
func (s *BcryptPasswordService) VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
