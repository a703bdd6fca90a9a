package interview

import (
	"context"

	"github.com/Abraxas-365/hrms/pkg/kernel"
)

// SessionRepository persiste sesiones de entrevista.
type SessionRepository interface {
	// FindByID returns ErrSessionNotFound when missing.
	FindByID(ctx context.Context, id kernel.SessionID) (*Session, error)
	// FindConflict returns the earliest session sharing the interviewer or
	// the application whose range overlaps tr, ignoring exclude. It returns
	// nil, nil when the slot is free.
	FindConflict(ctx context.Context, interviewerID kernel.UserID, applicationID kernel.ApplicationID, tr TimeRange, exclude kernel.SessionID) (*Session, error)
	FindByApplication(ctx context.Context, applicationID kernel.ApplicationID) ([]*Session, error)
	FindByInterviewer(ctx context.Context, interviewerID kernel.UserID, w Window) ([]*Session, error)
	ListAll(ctx context.Context) ([]*Session, error)
	CountByRound(ctx context.Context, roundID kernel.RoundID) (int, error)
	Create(ctx context.Context, s *Session) error
	Update(ctx context.Context, s *Session) error
	// Delete returns ErrSessionNotFound when nothing was removed.
	Delete(ctx context.Context, id kernel.SessionID) error
}

// RoundRepository persiste rondas de entrevista.
type RoundRepository interface {
	FindByID(ctx context.Context, id kernel.RoundID) (*Round, error)
	FindByInterviewer(ctx context.Context, interviewerID kernel.UserID) ([]*Round, error)
	List(ctx context.Context) ([]*Round, error)
	Create(ctx context.Context, r *Round) error
	Update(ctx context.Context, r *Round) error
	Delete(ctx context.Context, id kernel.RoundID) error
}

// Locker serializes scheduling changes touching the same keys. The returned
// release function is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, keys ...string) (release func(), err error)
}

// EventPublisher emits domain events. Failures are logged by callers and never
// undo the change that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
