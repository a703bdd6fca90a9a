package interview

import (
	"time"

	"github.com/Abraxas-365/hrms/pkg/kernel"
)

// ============================================================================
// Service DTOs
// ============================================================================

// ScheduleSessionRequest es la petición para agendar una sesión.
type ScheduleSessionRequest struct {
	ApplicationID kernel.ApplicationID `json:"applicationId"`
	RoundID       kernel.RoundID       `json:"interviewRoundId"`
	StartTime     time.Time            `json:"startTime"`
	EndTime       time.Time            `json:"endTime"`
	MeetingLink   *string              `json:"meetingLink,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
}

// UpdateSessionRequest is a partial update; nil fields are left untouched.
type UpdateSessionRequest struct {
	StartTime     *time.Time `json:"startTime,omitempty"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	MeetingLink   *string    `json:"meetingLink,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Feedback      *string    `json:"feedback,omitempty"`
	RecordingLink *string    `json:"recordingLink,omitempty"`
}

// ChangesRange reports whether either bound is being modified.
func (r UpdateSessionRequest) ChangesRange() bool {
	return r.StartTime != nil || r.EndTime != nil
}

// UpdateStatusRequest accepts status, outcome or both. Outcome is applied
// first.
type UpdateStatusRequest struct {
	Status  *string `json:"status,omitempty"`
	Outcome *string `json:"outcome,omitempty"`
}

type UpdateOutcomeRequest struct {
	Outcome string `json:"outcome"`
}

type CreateRoundRequest struct {
	Name          string        `json:"name"`
	RoundNumber   int           `json:"roundNumber"`
	InterviewerID kernel.UserID `json:"interviewer"`
	Description   string        `json:"description"`
}

type UpdateRoundRequest struct {
	Name          *string        `json:"name,omitempty"`
	RoundNumber   *int           `json:"roundNumber,omitempty"`
	InterviewerID *kernel.UserID `json:"interviewer,omitempty"`
	Description   *string        `json:"description,omitempty"`
}

// SessionListResponse para listas de sesiones
type SessionListResponse struct {
	Sessions []*Session `json:"sessions"`
	Total    int        `json:"total"`
}

func NewSessionList(sessions []*Session) SessionListResponse {
	if sessions == nil {
		sessions = []*Session{}
	}
	return SessionListResponse{Sessions: sessions, Total: len(sessions)}
}
