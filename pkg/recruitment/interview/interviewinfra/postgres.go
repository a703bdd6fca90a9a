package interviewinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/hrms/pkg/dbx"
	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	pgForeignKeyViolation = "23503"
	pgExclusionViolation  = "23P01"
)

const sessionColumns = `
	id, application_id, round_id, interviewer_id, start_time, end_time,
	status, outcome, meeting_link, notes, feedback, recording_link,
	created_at, updated_at`

// PostgresSessionRepository implementación de PostgreSQL para SessionRepository.
// The interview_sessions table carries two EXCLUDE constraints that reject
// overlapping ranges per interviewer and per application.
type PostgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) FindByID(ctx context.Context, id kernel.SessionID) (*interview.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM interview_sessions WHERE id = $1`

	var s interview.Session
	if err := sqlx.GetContext(ctx, dbx.Ext(ctx, r.db), &s, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interview.ErrSessionNotFound().WithDetail("session_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find session by id", errx.TypeInternal).
			WithDetail("session_id", id.String())
	}
	return &s, nil
}

func (r *PostgresSessionRepository) FindConflict(ctx context.Context, interviewerID kernel.UserID, applicationID kernel.ApplicationID, tr interview.TimeRange, exclude kernel.SessionID) (*interview.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM interview_sessions
		WHERE (interviewer_id = $1 OR application_id = $2)
		  AND start_time < $4
		  AND $3 < end_time
		  AND id <> $5
		ORDER BY start_time ASC
		LIMIT 1
		FOR UPDATE`

	var s interview.Session
	err := sqlx.GetContext(ctx, dbx.Ext(ctx, r.db), &s, query,
		interviewerID.String(), applicationID.String(), tr.Start, tr.End, exclude.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errx.Wrap(err, "failed to check session conflicts", errx.TypeInternal).
			WithDetail("interviewer_id", interviewerID.String()).
			WithDetail("application_id", applicationID.String())
	}
	return &s, nil
}

func (r *PostgresSessionRepository) FindByApplication(ctx context.Context, applicationID kernel.ApplicationID) ([]*interview.Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM interview_sessions
		WHERE application_id = $1
		ORDER BY start_time ASC`

	return r.selectSessions(ctx, "failed to list sessions by application", query, applicationID.String())
}

func (r *PostgresSessionRepository) FindByInterviewer(ctx context.Context, interviewerID kernel.UserID, w interview.Window) ([]*interview.Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM interview_sessions
		WHERE interviewer_id = $1
		  AND ($2::timestamptz IS NULL OR start_time <= $2)
		  AND ($3::timestamptz IS NULL OR end_time > $3)
		ORDER BY start_time ASC`

	return r.selectSessions(ctx, "failed to list sessions by interviewer", query, interviewerID.String(), w.To, w.From)
}

func (r *PostgresSessionRepository) ListAll(ctx context.Context) ([]*interview.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM interview_sessions ORDER BY start_time ASC`
	return r.selectSessions(ctx, "failed to list sessions", query)
}

func (r *PostgresSessionRepository) CountByRound(ctx context.Context, roundID kernel.RoundID) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, dbx.Ext(ctx, r.db), &count,
		`SELECT COUNT(*) FROM interview_sessions WHERE round_id = $1`, roundID.String())
	if err != nil {
		return 0, errx.Wrap(err, "failed to count sessions by round", errx.TypeInternal).
			WithDetail("round_id", roundID.String())
	}
	return count, nil
}

func (r *PostgresSessionRepository) Create(ctx context.Context, s *interview.Session) error {
	query := `
		INSERT INTO interview_sessions (` + sessionColumns + `)
		VALUES (
			:id, :application_id, :round_id, :interviewer_id, :start_time, :end_time,
			:status, :outcome, :meeting_link, :notes, :feedback, :recording_link,
			:created_at, :updated_at
		)`

	if _, err := sqlx.NamedExecContext(ctx, dbx.Ext(ctx, r.db), query, s); err != nil {
		return mapSessionWriteError(err, "failed to create session", s.ID)
	}
	return nil
}

func (r *PostgresSessionRepository) Update(ctx context.Context, s *interview.Session) error {
	query := `
		UPDATE interview_sessions SET
			start_time = :start_time,
			end_time = :end_time,
			status = :status,
			outcome = :outcome,
			meeting_link = :meeting_link,
			notes = :notes,
			feedback = :feedback,
			recording_link = :recording_link,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := sqlx.NamedExecContext(ctx, dbx.Ext(ctx, r.db), query, s)
	if err != nil {
		return mapSessionWriteError(err, "failed to update session", s.ID)
	}
	return requireRow(result, interview.ErrSessionNotFound().WithDetail("session_id", s.ID.String()))
}

func (r *PostgresSessionRepository) Delete(ctx context.Context, id kernel.SessionID) error {
	result, err := dbx.Ext(ctx, r.db).ExecContext(ctx, `DELETE FROM interview_sessions WHERE id = $1`, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete session", errx.TypeInternal).
			WithDetail("session_id", id.String())
	}
	return requireRow(result, interview.ErrSessionNotFound().WithDetail("session_id", id.String()))
}

func (r *PostgresSessionRepository) selectSessions(ctx context.Context, msg, query string, args ...any) ([]*interview.Session, error) {
	var rows []interview.Session
	if err := sqlx.SelectContext(ctx, dbx.Ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, errx.Wrap(err, msg, errx.TypeInternal)
	}
	result := make([]*interview.Session, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// mapSessionWriteError turns an exclusion violation into a scheduling
// conflict. The constraint does not tell which row it hit.
func mapSessionWriteError(err error, msg string, id kernel.SessionID) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgExclusionViolation:
			return interview.ErrSchedulingConflict("").WithDetail("constraint", pqErr.Constraint)
		case pgForeignKeyViolation:
			return interview.ErrInvalidRequest().WithDetail("constraint", pqErr.Constraint)
		}
	}
	return errx.Wrap(err, msg, errx.TypeInternal).WithDetail("session_id", id.String())
}

func requireRow(result sql.Result, notFound *errx.Error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

// ============================================================================
// Rounds
// ============================================================================

const roundColumns = `id, name, round_number, interviewer_id, description, created_at, updated_at`

// PostgresRoundRepository implementación de PostgreSQL para RoundRepository
type PostgresRoundRepository struct {
	db *sqlx.DB
}

func NewPostgresRoundRepository(db *sqlx.DB) *PostgresRoundRepository {
	return &PostgresRoundRepository{db: db}
}

func (r *PostgresRoundRepository) FindByID(ctx context.Context, id kernel.RoundID) (*interview.Round, error) {
	query := `SELECT ` + roundColumns + ` FROM interview_rounds WHERE id = $1`

	var round interview.Round
	if err := sqlx.GetContext(ctx, dbx.Ext(ctx, r.db), &round, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interview.ErrRoundNotFound().WithDetail("round_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find round by id", errx.TypeInternal).
			WithDetail("round_id", id.String())
	}
	return &round, nil
}

func (r *PostgresRoundRepository) FindByInterviewer(ctx context.Context, interviewerID kernel.UserID) ([]*interview.Round, error) {
	query := `SELECT ` + roundColumns + `
		FROM interview_rounds
		WHERE interviewer_id = $1
		ORDER BY round_number ASC, name ASC`
	return r.selectRounds(ctx, query, interviewerID.String())
}

func (r *PostgresRoundRepository) List(ctx context.Context) ([]*interview.Round, error) {
	query := `SELECT ` + roundColumns + ` FROM interview_rounds ORDER BY round_number ASC, name ASC`
	return r.selectRounds(ctx, query)
}

func (r *PostgresRoundRepository) Create(ctx context.Context, round *interview.Round) error {
	query := `
		INSERT INTO interview_rounds (` + roundColumns + `)
		VALUES (:id, :name, :round_number, :interviewer_id, :description, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, dbx.Ext(ctx, r.db), query, round); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return interview.ErrInvalidRequest().WithDetail("interviewer", round.InterviewerID.String())
		}
		return errx.Wrap(err, "failed to create round", errx.TypeInternal).
			WithDetail("round_id", round.ID.String())
	}
	return nil
}

func (r *PostgresRoundRepository) Update(ctx context.Context, round *interview.Round) error {
	query := `
		UPDATE interview_rounds SET
			name = :name,
			round_number = :round_number,
			interviewer_id = :interviewer_id,
			description = :description,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := sqlx.NamedExecContext(ctx, dbx.Ext(ctx, r.db), query, round)
	if err != nil {
		return errx.Wrap(err, "failed to update round", errx.TypeInternal).
			WithDetail("round_id", round.ID.String())
	}
	return requireRow(result, interview.ErrRoundNotFound().WithDetail("round_id", round.ID.String()))
}

func (r *PostgresRoundRepository) Delete(ctx context.Context, id kernel.RoundID) error {
	result, err := dbx.Ext(ctx, r.db).ExecContext(ctx, `DELETE FROM interview_rounds WHERE id = $1`, id.String())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return interview.ErrRoundInUse().WithDetail("round_id", id.String())
		}
		return errx.Wrap(err, "failed to delete round", errx.TypeInternal).
			WithDetail("round_id", id.String())
	}
	return requireRow(result, interview.ErrRoundNotFound().WithDetail("round_id", id.String()))
}

func (r *PostgresRoundRepository) selectRounds(ctx context.Context, query string, args ...any) ([]*interview.Round, error) {
	var rows []interview.Round
	if err := sqlx.SelectContext(ctx, dbx.Ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, errx.Wrap(err, "failed to list rounds", errx.TypeInternal)
	}
	result := make([]*interview.Round, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
