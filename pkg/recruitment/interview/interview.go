package interview

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hrms/pkg/kernel"
)

// ============================================================================
// Status & Outcome
// ============================================================================

// SessionStatus es el estado operativo de una sesión de entrevista.
type SessionStatus string

const (
	StatusScheduled   SessionStatus = "scheduled"
	StatusInProgress  SessionStatus = "in_progress"
	StatusCompleted   SessionStatus = "completed"
	StatusCancelled   SessionStatus = "cancelled"
	StatusRescheduled SessionStatus = "rescheduled"
)

var validStatuses = map[SessionStatus]bool{
	StatusScheduled:   true,
	StatusInProgress:  true,
	StatusCompleted:   true,
	StatusCancelled:   true,
	StatusRescheduled: true,
}

// ParseSessionStatus acepta el valor sin distinguir mayúsculas.
func ParseSessionStatus(s string) (SessionStatus, error) {
	st := SessionStatus(strings.ToLower(strings.TrimSpace(s)))
	if !validStatuses[st] {
		return "", ErrInvalidStatus().WithDetail("status", s)
	}
	return st, nil
}

func (s SessionStatus) String() string { return string(s) }

// Outcome es el resultado de la entrevista.
type Outcome string

const (
	OutcomePending  Outcome = "pending"
	OutcomeSelected Outcome = "selected"
	OutcomeRejected Outcome = "rejected"
	OutcomeHold     Outcome = "hold"
)

var validOutcomes = map[Outcome]bool{
	OutcomePending:  true,
	OutcomeSelected: true,
	OutcomeRejected: true,
	OutcomeHold:     true,
}

func ParseOutcome(s string) (Outcome, error) {
	o := Outcome(strings.ToLower(strings.TrimSpace(s)))
	if !validOutcomes[o] {
		return "", ErrInvalidOutcome().WithDetail("outcome", s)
	}
	return o, nil
}

func (o Outcome) String() string { return string(o) }

// ============================================================================
// Interview Round
// ============================================================================

// Round es una etapa del proceso con un único entrevistador asignado.
type Round struct {
	ID            kernel.RoundID `db:"id" bson:"_id" json:"id"`
	Name          string         `db:"name" bson:"name" json:"name"`
	RoundNumber   int            `db:"round_number" bson:"round_number" json:"roundNumber"`
	InterviewerID kernel.UserID  `db:"interviewer_id" bson:"interviewer_id" json:"interviewer"`
	Description   string         `db:"description" bson:"description" json:"description"`
	CreatedAt     time.Time      `db:"created_at" bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time      `db:"updated_at" bson:"updated_at" json:"updatedAt"`
}

// ============================================================================
// Interview Session
// ============================================================================

// Session es una reunión entre un entrevistador y un candidato.
type Session struct {
	ID            kernel.SessionID     `db:"id" bson:"_id" json:"id"`
	ApplicationID kernel.ApplicationID `db:"application_id" bson:"application_id" json:"applicationId"`
	RoundID       kernel.RoundID       `db:"round_id" bson:"round_id" json:"interviewRoundId"`
	InterviewerID kernel.UserID        `db:"interviewer_id" bson:"interviewer_id" json:"interviewerId"`
	StartTime     time.Time            `db:"start_time" bson:"start_time" json:"startTime"`
	EndTime       time.Time            `db:"end_time" bson:"end_time" json:"endTime"`
	Status        SessionStatus        `db:"status" bson:"status" json:"status"`
	Outcome       Outcome              `db:"outcome" bson:"outcome" json:"outcome"`
	MeetingLink   string               `db:"meeting_link" bson:"meeting_link" json:"meetingLink"`
	Notes         string               `db:"notes" bson:"notes" json:"notes"`
	Feedback      string               `db:"feedback" bson:"feedback" json:"feedback"`
	RecordingLink string               `db:"recording_link" bson:"recording_link" json:"recordingLink"`
	CreatedAt     time.Time            `db:"created_at" bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time            `db:"updated_at" bson:"updated_at" json:"updatedAt"`
}

// NewSession builds a scheduled session with a pending outcome.
func NewSession(appID kernel.ApplicationID, round *Round, tr TimeRange) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:            kernel.NewSessionID(kernel.NewID()),
		ApplicationID: appID,
		RoundID:       round.ID,
		InterviewerID: round.InterviewerID,
		StartTime:     tr.Start,
		EndTime:       tr.End,
		Status:        StatusScheduled,
		Outcome:       OutcomePending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ============================================================================
// Domain Methods
// ============================================================================

func (s *Session) Range() TimeRange {
	return TimeRange{Start: s.StartTime, End: s.EndTime}
}

// ConflictsWith is true when other shares the interviewer or the candidate
// and the intervals overlap. A session never conflicts with itself.
func (s *Session) ConflictsWith(other *Session) bool {
	if other == nil || other.ID == s.ID {
		return false
	}
	if other.InterviewerID != s.InterviewerID && other.ApplicationID != s.ApplicationID {
		return false
	}
	return s.Range().Overlaps(other.Range())
}

// ChangeStatus aplica un nuevo estado. Completar exige un resultado distinto
// de pending.
func (s *Session) ChangeStatus(next SessionStatus) error {
	if next == StatusCompleted && s.Outcome == OutcomePending {
		return ErrInvalidTransition().
			WithDetail("status", string(next)).
			WithDetail("outcome", string(s.Outcome)).
			WithDetail("reason", "a completed session requires a non-pending outcome")
	}
	s.Status = next
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// ChangeOutcome aplica un nuevo resultado. Una sesión completada no puede
// volver a pending.
func (s *Session) ChangeOutcome(next Outcome) error {
	if next == OutcomePending && s.Status == StatusCompleted {
		return ErrInvalidTransition().
			WithDetail("status", string(s.Status)).
			WithDetail("outcome", string(next)).
			WithDetail("reason", "a completed session cannot return to pending")
	}
	s.Outcome = next
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Reschedule moves the session to a new range.
func (s *Session) Reschedule(tr TimeRange) {
	s.StartTime = tr.Start
	s.EndTime = tr.End
	s.UpdatedAt = time.Now().UTC()
}

// IsCancelled verifica si la sesión fue cancelada
func (s *Session) IsCancelled() bool {
	return s.Status == StatusCancelled
}

// LockKeys are the scheduling lock keys guarding this session's slot.
func (s *Session) LockKeys() []string {
	return []string{InterviewerLockKey(s.InterviewerID), ApplicationLockKey(s.ApplicationID)}
}

func InterviewerLockKey(id kernel.UserID) string {
	return "interviewer:" + id.String()
}

func ApplicationLockKey(id kernel.ApplicationID) string {
	return "application:" + id.String()
}

func RoundLockKey(id kernel.RoundID) string {
	return "round:" + id.String()
}

func SessionLockKey(id kernel.SessionID) string {
	return "session:" + id.String()
}
