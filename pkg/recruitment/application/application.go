package application

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
)

// ============================================================================
// Application Entity
// ============================================================================

// Status es la etapa del candidato en el proceso de selección.
type Status string

const (
	StatusApplied        Status = "applied"
	StatusPhoneScreen    Status = "phone_screen"
	StatusInterviewRound Status = "interview_round"
	StatusSelected       Status = "selected"
	StatusOfferSent      Status = "offer_sent"
	StatusOnboarding     Status = "onboarding"
	StatusRejected       Status = "rejected"
	StatusNotInterested  Status = "not_interested"
	StatusOnHold         Status = "on_hold"
)

var validStatuses = map[Status]bool{
	StatusApplied:        true,
	StatusPhoneScreen:    true,
	StatusInterviewRound: true,
	StatusSelected:       true,
	StatusOfferSent:      true,
	StatusOnboarding:     true,
	StatusRejected:       true,
	StatusNotInterested:  true,
	StatusOnHold:         true,
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !validStatuses[st] {
		return "", ErrInvalidStatus().WithDetail("status", s)
	}
	return st, nil
}

// Application es la postulación de un candidato a un puesto. No se borra;
// su ciclo de vida se expresa con Status.
type Application struct {
	ID         kernel.ApplicationID `db:"id" bson:"_id" json:"id"`
	Name       string               `db:"name" bson:"name" json:"name"`
	Email      string               `db:"email" bson:"email" json:"email"`
	Phone      string               `db:"phone" bson:"phone" json:"phone"`
	JobID      kernel.JobID         `db:"job_id" bson:"job_id" json:"jobId"`
	Status     Status               `db:"status" bson:"status" json:"status"`
	AppliedAt  time.Time            `db:"applied_at" bson:"applied_at" json:"appliedAt"`
	ResumePath string               `db:"resume_path" bson:"resume_path" json:"resumePath"`
	CreatedAt  time.Time            `db:"created_at" bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time            `db:"updated_at" bson:"updated_at" json:"updatedAt"`
}

// AdvanceToInterview moves an early-stage application to interview_round.
// Returns true when the status changed.
func (a *Application) AdvanceToInterview() bool {
	if a.Status != StatusApplied && a.Status != StatusPhoneScreen {
		return false
	}
	a.Status = StatusInterviewRound
	a.UpdatedAt = time.Now().UTC()
	return true
}

func (a *Application) HasResume() bool {
	return a.ResumePath != ""
}

// ============================================================================
// DTOs
// ============================================================================

type CreateApplicationRequest struct {
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	JobID     kernel.JobID `json:"jobId"`
	AppliedAt *time.Time   `json:"appliedAt,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListFilter filtra postulaciones; campos vacíos no filtran.
type ListFilter struct {
	Status Status
	JobID  kernel.JobID
}

// ============================================================================
// Repository
// ============================================================================

type Repository interface {
	FindByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)
	List(ctx context.Context, filter ListFilter) ([]*Application, error)
	// Create returns ErrApplicationAlreadyExists on a duplicate email.
	Create(ctx context.Context, a *Application) error
	Update(ctx context.Context, a *Application) error
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("APPLICATION")

var (
	CodeApplicationNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeApplicationAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "An application with this email already exists")
	CodeInvalidStatus            = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Unknown application status")
	CodeInvalidApplication       = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Invalid application data")
	CodeResumeNotFound           = ErrRegistry.Register("RESUME_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not uploaded")
)

func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrApplicationAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeApplicationAlreadyExists)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidApplication() *errx.Error {
	return ErrRegistry.New(CodeInvalidApplication)
}

func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}
