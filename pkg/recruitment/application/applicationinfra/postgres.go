package applicationinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/hrms/pkg/dbx"
	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const applicationColumns = `
	id, name, email, phone, job_id, status, applied_at, resume_path,
	created_at, updated_at`

// PostgresApplicationRepository joins the scheduling transaction when the
// application status advances with a new session.
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) FindByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	var a application.Application
	if err := sqlx.GetContext(ctx, dbx.Ext(ctx, r.db), &a, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find application by id", errx.TypeInternal).
			WithDetail("application_id", id.String())
	}
	return &a, nil
}

func (r *PostgresApplicationRepository) List(ctx context.Context, filter application.ListFilter) ([]*application.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR job_id = $2)
		ORDER BY applied_at DESC`

	var rows []application.Application
	if err := sqlx.SelectContext(ctx, dbx.Ext(ctx, r.db), &rows, query, string(filter.Status), filter.JobID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	result := make([]*application.Application, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES (
			:id, :name, :email, :phone, :job_id, :status, :applied_at, :resume_path,
			:created_at, :updated_at
		)`

	if _, err := sqlx.NamedExecContext(ctx, dbx.Ext(ctx, r.db), query, a); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return application.ErrApplicationAlreadyExists().WithDetail("email", a.Email)
		}
		return errx.Wrap(err, "failed to create application", errx.TypeInternal).
			WithDetail("application_id", a.ID.String())
	}
	return nil
}

func (r *PostgresApplicationRepository) Update(ctx context.Context, a *application.Application) error {
	query := `
		UPDATE applications SET
			name = :name,
			email = :email,
			phone = :phone,
			status = :status,
			resume_path = :resume_path,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := sqlx.NamedExecContext(ctx, dbx.Ext(ctx, r.db), query, a)
	if err != nil {
		return errx.Wrap(err, "failed to update application", errx.TypeInternal).
			WithDetail("application_id", a.ID.String())
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return application.ErrApplicationNotFound().WithDetail("application_id", a.ID.String())
	}
	return nil
}
