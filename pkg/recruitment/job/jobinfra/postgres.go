package jobinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const jobColumns = `
	id, title, department, location, employment_type, salary_min, salary_max,
	currency, status, description, created_at, updated_at`

type PostgresJobRepository struct {
	db *sqlx.DB
}

func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	var j job.Job
	err := r.db.GetContext(ctx, &j, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find job by id", errx.TypeInternal).
			WithDetail("job_id", id.String())
	}
	return &j, nil
}

func (r *PostgresJobRepository) List(ctx context.Context, status job.Status) ([]*job.Job, error) {
	query := `SELECT ` + jobColumns + `
		FROM jobs
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC`

	var rows []job.Job
	if err := r.db.SelectContext(ctx, &rows, query, string(status)); err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}
	result := make([]*job.Job, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, j *job.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES (
			:id, :title, :department, :location, :employment_type, :salary_min, :salary_max,
			:currency, :status, :description, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, j); err != nil {
		return errx.Wrap(err, "failed to create job", errx.TypeInternal).
			WithDetail("job_id", j.ID.String())
	}
	return nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, j *job.Job) error {
	query := `
		UPDATE jobs SET
			title = :title,
			department = :department,
			location = :location,
			employment_type = :employment_type,
			salary_min = :salary_min,
			salary_max = :salary_max,
			currency = :currency,
			status = :status,
			description = :description,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, j)
	if err != nil {
		return errx.Wrap(err, "failed to update job", errx.TypeInternal).
			WithDetail("job_id", j.ID.String())
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", j.ID.String())
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id.String())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return job.ErrJobInUse().WithDetail("job_id", id.String())
		}
		return errx.Wrap(err, "failed to delete job", errx.TypeInternal).
			WithDetail("job_id", id.String())
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return nil
}
