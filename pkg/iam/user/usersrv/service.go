package usersrv

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/Abraxas-365/hrms/pkg/config"
	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/iam/scopes"
	"github.com/Abraxas-365/hrms/pkg/iam/user"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/logx"
	"github.com/google/uuid"
)

// AssignmentChecker reports whether a user is still assigned as interviewer.
type AssignmentChecker interface {
	HasAssignments(ctx context.Context, id kernel.UserID) (bool, error)
}

// UserService proporciona operaciones de negocio para usuarios
type UserService struct {
	userRepo    user.UserRepository
	passwordSvc user.PasswordService
	assignments AssignmentChecker
}

// NewUserService crea una nueva instancia del servicio de usuarios
func NewUserService(
	userRepo user.UserRepository,
	passwordSvc user.PasswordService,
	assignments AssignmentChecker,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		assignments: assignments,
	}
}

// CreateUser crea un nuevo usuario
func (s *UserService) CreateUser(ctx context.Context, req user.CreateUserRequest) (*user.User, error) {
	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, user.ErrInvalidUser().WithDetail("email", req.Email)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, user.ErrInvalidUser().WithDetail("name", "required")
	}
	role, err := user.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check email existence", errx.TypeInternal)
	}
	if exists {
		return nil, user.ErrUserAlreadyExists().WithDetail("email", email)
	}

	// Sin scopes explícitos se usan los del rol
	granted := req.Scopes
	if len(granted) == 0 {
		granted = scopes.ForRole(string(role))
	}
	if err := validateScopes(granted); err != nil {
		return nil, err
	}

	var hash string
	if req.Password != "" {
		hash, err = s.passwordSvc.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	newUser := &user.User{
		ID:           kernel.NewUserID(uuid.NewString()),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         role,
		Department:   req.Department,
		Status:       user.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	newUser.SetScopes(granted)

	if err := s.userRepo.Save(ctx, *newUser); err != nil {
		return nil, errx.Wrap(err, "failed to save user", errx.TypeInternal)
	}
	return newUser, nil
}

// GetUserByID obtiene un usuario por ID
func (s *UserService) GetUserByID(ctx context.Context, userID kernel.UserID) (*user.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *UserService) ListUsers(ctx context.Context) (*user.UserListResponseDTO, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list users", errx.TypeInternal)
	}

	dtos := make([]user.UserDetailsDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, u.ToDTO())
	}
	return &user.UserListResponseDTO{Users: dtos, Total: len(dtos)}, nil
}

// UpdateUser actualiza un usuario
func (s *UserService) UpdateUser(ctx context.Context, userID kernel.UserID, req user.UpdateUserRequest) (*user.User, error) {
	userEntity, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, user.ErrInvalidUser().WithDetail("name", "required")
		}
		userEntity.Name = strings.TrimSpace(*req.Name)
	}
	if req.Department != nil {
		userEntity.Department = *req.Department
	}
	if req.Role != nil {
		role, err := user.ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		userEntity.Role = role
	}
	if req.Status != nil {
		switch *req.Status {
		case user.UserStatusActive, user.UserStatusInactive:
			userEntity.Status = *req.Status
		default:
			return nil, user.ErrInvalidUser().WithDetail("status", string(*req.Status))
		}
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := s.passwordSvc.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		userEntity.PasswordHash = hash
	}
	if len(req.Scopes) > 0 {
		if err := validateScopes(req.Scopes); err != nil {
			return nil, err
		}
		userEntity.SetScopes(req.Scopes)
	}

	userEntity.UpdatedAt = time.Now()

	if err := s.userRepo.Save(ctx, *userEntity); err != nil {
		return nil, errx.Wrap(err, "failed to update user", errx.TypeInternal)
	}
	return userEntity, nil
}

// DeleteUser elimina un usuario. Un entrevistador con rondas asignadas no se
// puede eliminar.
func (s *UserService) DeleteUser(ctx context.Context, userID kernel.UserID) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}

	if s.assignments != nil {
		assigned, err := s.assignments.HasAssignments(ctx, userID)
		if err != nil {
			return errx.Wrap(err, "failed to check interviewer assignments", errx.TypeInternal)
		}
		if assigned {
			return user.ErrUserInUse().WithDetail("user_id", userID.String())
		}
	}

	return s.userRepo.Delete(ctx, userID)
}

// Authenticate checks email and password and records the login.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errx.IsCode(err, user.CodeUserNotFound) {
			return nil, user.ErrInvalidCredentials()
		}
		return nil, err
	}
	if !u.IsActive() {
		return nil, user.ErrUserInactive()
	}
	if !u.CanLogin() || !s.passwordSvc.VerifyPassword(u.PasswordHash, password) {
		return nil, user.ErrInvalidCredentials()
	}

	u.UpdateLastLogin()
	if err := s.userRepo.Save(ctx, *u); err != nil {
		logx.Warnf("failed to record last login for %s: %v", u.ID, err)
	}
	return u, nil
}

// EnsureBootstrapAdmin creates the configured admin when the store has no
// users. It does nothing when no admin email is configured.
func (s *UserService) EnsureBootstrapAdmin(ctx context.Context, cfg config.BootstrapConfig) error {
	if cfg.AdminEmail == "" {
		return nil
	}
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if cfg.AdminPassword == "" {
		return user.ErrInvalidUser().WithDetail("password", "BOOTSTRAP_ADMIN_PASSWORD is required")
	}
	admin, err := s.CreateUser(ctx, user.CreateUserRequest{
		Email:    cfg.AdminEmail,
		Name:     cfg.AdminName,
		Password: cfg.AdminPassword,
		Role:     string(user.RoleAdmin),
	})
	if err != nil {
		return err
	}
	logx.Infof("✅ Bootstrap admin created (%s)", admin.Email)
	return nil
}

func validateScopes(granted []string) error {
	if invalid := scopes.InvalidScopes(granted); len(invalid) > 0 {
		return user.ErrInvalidScopes().WithDetail("invalid_scopes", invalid)
	}
	return nil
}
