package onboarding

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
)

// Onboarding agrupa las sesiones de entrevista de una postulación. Solo
// guarda referencias; nunca se elimina aunque la lista quede vacía.
type Onboarding struct {
	ID                  kernel.OnboardingID  `db:"id" bson:"_id" json:"id"`
	ApplicationID       kernel.ApplicationID `db:"application_id" bson:"application_id" json:"applicationId"`
	InterviewSessionIDs []string             `db:"interview_session_ids" bson:"interview_session_ids" json:"interviewSessions"`
	CreatedAt           time.Time            `db:"created_at" bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time            `db:"updated_at" bson:"updated_at" json:"updatedAt"`
}

func New(appID kernel.ApplicationID) *Onboarding {
	now := time.Now().UTC()
	return &Onboarding{
		ID:                  kernel.NewOnboardingID(kernel.NewID()),
		ApplicationID:       appID,
		InterviewSessionIDs: []string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// Contains reports whether the session id is in the list.
func (o *Onboarding) Contains(id kernel.SessionID) bool {
	return slices.Contains(o.InterviewSessionIDs, id.String())
}

// Attach appends the id unless already present. Returns true when the list
// changed.
func (o *Onboarding) Attach(id kernel.SessionID) bool {
	if o.Contains(id) {
		return false
	}
	o.InterviewSessionIDs = append(o.InterviewSessionIDs, id.String())
	o.UpdatedAt = time.Now().UTC()
	return true
}

// Detach removes every occurrence of id. Returns true when the list changed.
func (o *Onboarding) Detach(id kernel.SessionID) bool {
	before := len(o.InterviewSessionIDs)
	o.InterviewSessionIDs = slices.DeleteFunc(o.InterviewSessionIDs, func(s string) bool {
		return s == id.String()
	})
	if len(o.InterviewSessionIDs) == before {
		return false
	}
	o.UpdatedAt = time.Now().UTC()
	return true
}

func (o *Onboarding) SessionIDs() []kernel.SessionID {
	out := make([]kernel.SessionID, len(o.InterviewSessionIDs))
	for i, s := range o.InterviewSessionIDs {
		out[i] = kernel.NewSessionID(s)
	}
	return out
}

// ============================================================================
// Repository
// ============================================================================

type Repository interface {
	// FindByApplication returns ErrOnboardingNotFound when missing.
	FindByApplication(ctx context.Context, applicationID kernel.ApplicationID) (*Onboarding, error)
	List(ctx context.Context) ([]*Onboarding, error)
	Create(ctx context.Context, o *Onboarding) error
	// AppendSession adds id to the application's list if it is not there.
	AppendSession(ctx context.Context, applicationID kernel.ApplicationID, id kernel.SessionID) error
	// RemoveSession pulls id from the application's list.
	RemoveSession(ctx context.Context, applicationID kernel.ApplicationID, id kernel.SessionID) error
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("ONBOARDING")

var (
	CodeOnboardingNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Onboarding not found")
	CodeAlreadyExists      = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Onboarding already exists for this application")
)

func ErrOnboardingNotFound() *errx.Error {
	return ErrRegistry.New(CodeOnboardingNotFound)
}

func ErrAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeAlreadyExists)
}
