package userinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/iam/user"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const userColumns = `
	id, email, name, password_hash, role, department, status, scopes,
	last_login_at, created_at, updated_at`

// PostgresUserRepository implementación de PostgreSQL para UserRepository
type PostgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository crea una nueva instancia del repositorio de usuarios
func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// FindByID busca un usuario por ID
func (r *PostgresUserRepository) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u user.User
	if err := r.db.GetContext(ctx, &u, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound().WithDetail("user_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find user by id", errx.TypeInternal).
			WithDetail("user_id", id.String())
	}
	return &u, nil
}

// FindByEmail busca un usuario por email
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	var u user.User
	if err := r.db.GetContext(ctx, &u, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound().WithDetail("email", email)
		}
		return nil, errx.Wrap(err, "failed to find user by email", errx.TypeInternal).
			WithDetail("email", email)
	}
	return &u, nil
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY name ASC`

	var users []user.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, errx.Wrap(err, "failed to list users", errx.TypeInternal)
	}

	// Convertir a slice de punteros
	result := make([]*user.User, len(users))
	for i := range users {
		result[i] = &users[i]
	}
	return result, nil
}

// Save guarda o actualiza un usuario
func (r *PostgresUserRepository) Save(ctx context.Context, u user.User) error {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, u.ID.String()); err != nil {
		return errx.Wrap(err, "failed to check user existence", errx.TypeInternal)
	}
	if exists {
		return r.update(ctx, u)
	}
	return r.create(ctx, u)
}

func (r *PostgresUserRepository) create(ctx context.Context, u user.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (
			:id, :email, :name, :password_hash, :role, :department, :status, :scopes,
			:last_login_at, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, u); err != nil {
		if isUniqueViolation(err) {
			return user.ErrUserAlreadyExists().WithDetail("email", u.Email)
		}
		return errx.Wrap(err, "failed to create user", errx.TypeInternal).
			WithDetail("user_id", u.ID.String())
	}
	return nil
}

func (r *PostgresUserRepository) update(ctx context.Context, u user.User) error {
	query := `
		UPDATE users SET
			email = :email,
			name = :name,
			password_hash = :password_hash,
			role = :role,
			department = :department,
			status = :status,
			scopes = :scopes,
			last_login_at = :last_login_at,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, u)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrUserAlreadyExists().WithDetail("email", u.Email)
		}
		return errx.Wrap(err, "failed to update user", errx.TypeInternal).
			WithDetail("user_id", u.ID.String())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rowsAffected == 0 {
		return user.ErrUserNotFound().WithDetail("user_id", u.ID.String())
	}
	return nil
}

// Delete elimina un usuario
func (r *PostgresUserRepository) Delete(ctx context.Context, id kernel.UserID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id.String())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return user.ErrUserInUse().WithDetail("user_id", id.String())
		}
		return errx.Wrap(err, "failed to delete user", errx.TypeInternal).
			WithDetail("user_id", id.String())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rowsAffected == 0 {
		return user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	return nil
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`, email)
	if err != nil {
		return false, errx.Wrap(err, "failed to check user existence by email", errx.TypeInternal).
			WithDetail("email", email)
	}
	return exists, nil
}

func (r *PostgresUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, errx.Wrap(err, "failed to count users", errx.TypeInternal)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
