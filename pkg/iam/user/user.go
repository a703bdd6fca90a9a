package user

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/lib/pq"
)

// ============================================================================
// User Entity
// ============================================================================

// UserStatus define los posibles estados de un usuario
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// Role es el rol del personal dentro del proceso de selección.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleHR          Role = "hr"
	RoleInterviewer Role = "interviewer"
)

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleHR, RoleInterviewer:
		return r, nil
	}
	return "", ErrInvalidRole().WithDetail("role", s)
}

// User es un miembro del personal. Los entrevistadores son usuarios.
type User struct {
	ID           kernel.UserID  `db:"id" bson:"_id" json:"id"`
	Email        string         `db:"email" bson:"email" json:"email"`
	Name         string         `db:"name" bson:"name" json:"name"`
	PasswordHash string         `db:"password_hash" bson:"password_hash" json:"-"`
	Role         Role           `db:"role" bson:"role" json:"role"`
	Department   string         `db:"department" bson:"department" json:"department"`
	Status       UserStatus     `db:"status" bson:"status" json:"status"`
	Scopes       pq.StringArray `db:"scopes" bson:"scopes" json:"scopes"`
	LastLoginAt  *time.Time     `db:"last_login_at" bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `db:"created_at" bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" bson:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive verifica si el usuario está activo
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// CanLogin verifica si el usuario puede iniciar sesión
func (u *User) CanLogin() bool {
	return u.IsActive() && u.PasswordHash != ""
}

// Deactivate desactiva al usuario sin borrarlo
func (u *User) Deactivate() {
	u.Status = UserStatusInactive
	u.UpdatedAt = time.Now()
}

// UpdateLastLogin actualiza la fecha del último login
func (u *User) UpdateLastLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// HasScope verifica si el usuario tiene un scope específico
func (u *User) HasScope(scope string) bool {
	return kernel.ScopeMatches(u.Scopes, scope)
}

// IsAdmin verifica si el usuario tiene permisos de administrador
func (u *User) IsAdmin() bool {
	return u.HasScope("*") || u.HasScope("admin:*")
}

// SetScopes establece los scopes del usuario
func (u *User) SetScopes(scopes []string) {
	u.Scopes = slices.Clone(scopes)
	u.UpdatedAt = time.Now()
}

// ============================================================================
// DTOs
// ============================================================================

// UserDetailsDTO contiene información básica de un usuario para otros módulos
type UserDetailsDTO struct {
	ID         kernel.UserID `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Role       Role          `json:"role"`
	Department string        `json:"department"`
	IsActive   bool          `json:"is_active"`
	Scopes     []string      `json:"scopes"`
}

// ToDTO convierte la entidad User a UserDetailsDTO
func (u *User) ToDTO() UserDetailsDTO {
	return UserDetailsDTO{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
		IsActive:   u.IsActive(),
		Scopes:     u.Scopes,
	}
}

// CreateUserRequest representa la petición para crear un usuario
type CreateUserRequest struct {
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	Password   string   `json:"password"`
	Role       string   `json:"role"`
	Department string   `json:"department,omitempty"`
	Scopes     []string `json:"scopes,omitempty"`
}

// UpdateUserRequest representa la petición para actualizar un usuario
type UpdateUserRequest struct {
	Name       *string     `json:"name,omitempty"`
	Role       *string     `json:"role,omitempty"`
	Department *string     `json:"department,omitempty"`
	Status     *UserStatus `json:"status,omitempty"`
	Password   *string     `json:"password,omitempty"`
	Scopes     []string    `json:"scopes,omitempty"`
}

// UserListResponseDTO para listas de usuarios
type UserListResponseDTO struct {
	Users []UserDetailsDTO `json:"users"`
	Total int              `json:"total"`
}

// ============================================================================
// Error Registry - Errores específicos de User
// ============================================================================

var ErrRegistry = errx.NewRegistry("USER")

// Códigos de error
var (
	CodeUserNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Usuario no encontrado")
	CodeUserAlreadyExists  = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "El usuario ya existe")
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthorization, http.StatusUnauthorized, "Credenciales inválidas")
	CodeUserInactive       = ErrRegistry.Register("INACTIVE", errx.TypeBusiness, http.StatusForbidden, "Usuario inactivo")
	CodeInvalidRole        = ErrRegistry.Register("INVALID_ROLE", errx.TypeValidation, http.StatusBadRequest, "Rol inválido")
	CodeInvalidScopes      = ErrRegistry.Register("INVALID_SCOPES", errx.TypeValidation, http.StatusBadRequest, "Scopes inválidos")
	CodeInvalidUser        = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Datos de usuario inválidos")
	CodeUserInUse          = ErrRegistry.Register("IN_USE", errx.TypeConflict, http.StatusConflict, "El usuario está asignado a rondas de entrevista")
)

func ErrUserNotFound() *errx.Error {
	return ErrRegistry.New(CodeUserNotFound)
}

func ErrUserAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeUserAlreadyExists)
}

func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}

func ErrUserInactive() *errx.Error {
	return ErrRegistry.New(CodeUserInactive)
}

func ErrInvalidRole() *errx.Error {
	return ErrRegistry.New(CodeInvalidRole)
}

func ErrInvalidScopes() *errx.Error {
	return ErrRegistry.New(CodeInvalidScopes)
}

func ErrInvalidUser() *errx.Error {
	return ErrRegistry.New(CodeInvalidUser)
}

func ErrUserInUse() *errx.Error {
	return ErrRegistry.New(CodeUserInUse)
}
