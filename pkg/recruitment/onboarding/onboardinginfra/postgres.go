package onboardinginfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Abraxas-365/hrms/pkg/dbx"
	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const onboardingColumns = `id, application_id, interview_session_ids, created_at, updated_at`

// onboardingRow is the table shape; the id list travels as a text[].
type onboardingRow struct {
	ID                  kernel.OnboardingID  `db:"id"`
	ApplicationID       kernel.ApplicationID `db:"application_id"`
	InterviewSessionIDs pq.StringArray       `db:"interview_session_ids"`
	CreatedAt           time.Time            `db:"created_at"`
	UpdatedAt           time.Time            `db:"updated_at"`
}

func toRow(o *onboarding.Onboarding) onboardingRow {
	ids := pq.StringArray{}
	ids = append(ids, o.InterviewSessionIDs...)
	return onboardingRow{
		ID:                  o.ID,
		ApplicationID:       o.ApplicationID,
		InterviewSessionIDs: ids,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func (row onboardingRow) toEntity() *onboarding.Onboarding {
	ids := []string{}
	ids = append(ids, row.InterviewSessionIDs...)
	return &onboarding.Onboarding{
		ID:                  row.ID,
		ApplicationID:       row.ApplicationID,
		InterviewSessionIDs: ids,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}

// PostgresOnboardingRepository keeps the session list in a text[] column and
// edits it in place so concurrent appends do not overwrite each other.
type PostgresOnboardingRepository struct {
	db *sqlx.DB
}

func NewPostgresOnboardingRepository(db *sqlx.DB) *PostgresOnboardingRepository {
	return &PostgresOnboardingRepository{db: db}
}

func (r *PostgresOnboardingRepository) FindByApplication(ctx context.Context, applicationID kernel.ApplicationID) (*onboarding.Onboarding, error) {
	query := `SELECT ` + onboardingColumns + ` FROM onboardings WHERE application_id = $1`

	var row onboardingRow
	if err := sqlx.GetContext(ctx, dbx.Ext(ctx, r.db), &row, query, applicationID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, onboarding.ErrOnboardingNotFound().WithDetail("application_id", applicationID.String())
		}
		return nil, errx.Wrap(err, "failed to find onboarding", errx.TypeInternal).
			WithDetail("application_id", applicationID.String())
	}
	return row.toEntity(), nil
}

func (r *PostgresOnboardingRepository) List(ctx context.Context) ([]*onboarding.Onboarding, error) {
	var rows []onboardingRow
	query := `SELECT ` + onboardingColumns + ` FROM onboardings ORDER BY created_at ASC`
	if err := sqlx.SelectContext(ctx, dbx.Ext(ctx, r.db), &rows, query); err != nil {
		return nil, errx.Wrap(err, "failed to list onboardings", errx.TypeInternal)
	}
	result := make([]*onboarding.Onboarding, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *PostgresOnboardingRepository) Create(ctx context.Context, o *onboarding.Onboarding) error {
	query := `
		INSERT INTO onboardings (` + onboardingColumns + `)
		VALUES (:id, :application_id, :interview_session_ids, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, dbx.Ext(ctx, r.db), query, toRow(o)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return onboarding.ErrAlreadyExists().WithDetail("application_id", o.ApplicationID.String())
		}
		return errx.Wrap(err, "failed to create onboarding", errx.TypeInternal).
			WithDetail("application_id", o.ApplicationID.String())
	}
	return nil
}

func (r *PostgresOnboardingRepository) AppendSession(ctx context.Context, applicationID kernel.ApplicationID, id kernel.SessionID) error {
	query := `
		UPDATE onboardings SET
			interview_session_ids = array_append(interview_session_ids, $2),
			updated_at = now()
		WHERE application_id = $1
		  AND NOT ($2 = ANY(interview_session_ids))`

	result, err := dbx.Ext(ctx, r.db).ExecContext(ctx, query, applicationID.String(), id.String())
	if err != nil {
		return errx.Wrap(err, "failed to append session to onboarding", errx.TypeInternal).
			WithDetail("application_id", applicationID.String())
	}
	if n, _ := result.RowsAffected(); n == 0 {
		// ya presente o sin registro
		_, err := r.FindByApplication(ctx, applicationID)
		return err
	}
	return nil
}

func (r *PostgresOnboardingRepository) RemoveSession(ctx context.Context, applicationID kernel.ApplicationID, id kernel.SessionID) error {
	query := `
		UPDATE onboardings SET
			interview_session_ids = array_remove(interview_session_ids, $2),
			updated_at = now()
		WHERE application_id = $1`

	result, err := dbx.Ext(ctx, r.db).ExecContext(ctx, query, applicationID.String(), id.String())
	if err != nil {
		return errx.Wrap(err, "failed to remove session from onboarding", errx.TypeInternal).
			WithDetail("application_id", applicationID.String())
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return onboarding.ErrOnboardingNotFound().WithDetail("application_id", applicationID.String())
	}
	return nil
}
