package letterinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/letter"
	"github.com/jmoiron/sqlx"
)

const letterColumns = `
	id, application_id, kind, file_path, subject, sent, sent_at, created_by,
	created_at, updated_at`

type PostgresLetterRepository struct {
	db *sqlx.DB
}

func NewPostgresLetterRepository(db *sqlx.DB) *PostgresLetterRepository {
	return &PostgresLetterRepository{db: db}
}

func (r *PostgresLetterRepository) FindByID(ctx context.Context, id kernel.LetterID) (*letter.Letter, error) {
	var l letter.Letter
	err := r.db.GetContext(ctx, &l, `SELECT `+letterColumns+` FROM letters WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, letter.ErrLetterNotFound().WithDetail("letter_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find letter", errx.TypeInternal)
	}
	return &l, nil
}

func (r *PostgresLetterRepository) FindByApplication(ctx context.Context, applicationID kernel.ApplicationID) ([]*letter.Letter, error) {
	query := `SELECT ` + letterColumns + `
		FROM letters
		WHERE application_id = $1
		ORDER BY created_at DESC`

	var rows []letter.Letter
	if err := r.db.SelectContext(ctx, &rows, query, applicationID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to list letters", errx.TypeInternal)
	}
	result := make([]*letter.Letter, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (r *PostgresLetterRepository) Create(ctx context.Context, l *letter.Letter) error {
	query := `
		INSERT INTO letters (` + letterColumns + `)
		VALUES (
			:id, :application_id, :kind, :file_path, :subject, :sent, :sent_at, :created_by,
			:created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, l); err != nil {
		return errx.Wrap(err, "failed to create letter", errx.TypeInternal).
			WithDetail("letter_id", l.ID.String())
	}
	return nil
}

func (r *PostgresLetterRepository) Update(ctx context.Context, l *letter.Letter) error {
	query := `
		UPDATE letters SET
			file_path = :file_path,
			subject = :subject,
			sent = :sent,
			sent_at = :sent_at,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, l)
	if err != nil {
		return errx.Wrap(err, "failed to update letter", errx.TypeInternal)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return letter.ErrLetterNotFound().WithDetail("letter_id", l.ID.String())
	}
	return nil
}
