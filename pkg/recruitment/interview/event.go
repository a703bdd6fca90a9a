package interview

import (
	"time"

	"github.com/Abraxas-365/hrms/pkg/kernel"
)

type EventType string

const (
	EventSessionScheduled EventType = "interview.session.scheduled"
	EventSessionUpdated   EventType = "interview.session.updated"
	EventSessionDeleted   EventType = "interview.session.deleted"
)

// Event describes a committed change to a session.
type Event struct {
	Type          EventType            `json:"type"`
	SessionID     kernel.SessionID     `json:"sessionId"`
	ApplicationID kernel.ApplicationID `json:"applicationId"`
	InterviewerID kernel.UserID        `json:"interviewerId"`
	Status        SessionStatus        `json:"status,omitempty"`
	Outcome       Outcome              `json:"outcome,omitempty"`
	StartTime     time.Time            `json:"startTime"`
	EndTime       time.Time            `json:"endTime"`
	OccurredAt    time.Time            `json:"occurredAt"`
}

func NewEvent(t EventType, s *Session) Event {
	return Event{
		Type:          t,
		SessionID:     s.ID,
		ApplicationID: s.ApplicationID,
		InterviewerID: s.InterviewerID,
		Status:        s.Status,
		Outcome:       s.Outcome,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		OccurredAt:    time.Now().UTC(),
	}
}
