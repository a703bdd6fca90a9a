package user

import (
	"context"

	"github.com/Abraxas-365/hrms/pkg/kernel"
)

// UserRepository define el contrato para la persistencia de usuarios
type UserRepository interface {
	FindByID(ctx context.Context, id kernel.UserID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	// Save inserta o actualiza por ID.
	Save(ctx context.Context, u User) error
	Delete(ctx context.Context, id kernel.UserID) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// PasswordService define el contrato para el manejo de contraseñas
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) bool
}
