package job

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
)

// ============================================================================
// Job Entity
// ============================================================================

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if st != StatusOpen && st != StatusClosed {
		return "", ErrInvalidJob().WithDetail("status", s)
	}
	return st, nil
}

// Job es un puesto publicado al que se postula.
type Job struct {
	ID             kernel.JobID `db:"id" bson:"_id" json:"id"`
	Title          string       `db:"title" bson:"title" json:"title"`
	Department     string       `db:"department" bson:"department" json:"department"`
	Location       string       `db:"location" bson:"location" json:"location"`
	EmploymentType string       `db:"employment_type" bson:"employment_type" json:"employmentType"`
	SalaryMin      int64        `db:"salary_min" bson:"salary_min" json:"salaryMin"`
	SalaryMax      int64        `db:"salary_max" bson:"salary_max" json:"salaryMax"`
	Currency       string       `db:"currency" bson:"currency" json:"currency"`
	Status         Status       `db:"status" bson:"status" json:"status"`
	Description    string       `db:"description" bson:"description" json:"description"`
	CreatedAt      time.Time    `db:"created_at" bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time    `db:"updated_at" bson:"updated_at" json:"updatedAt"`
}

func (j *Job) IsOpen() bool {
	return j.Status == StatusOpen
}

// Validate checks the fields every stored job must satisfy.
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return ErrInvalidJob().WithDetail("field", "title")
	}
	if j.SalaryMin < 0 || j.SalaryMax < 0 {
		return ErrInvalidJob().WithDetail("field", "salary")
	}
	if j.SalaryMax > 0 && j.SalaryMin > j.SalaryMax {
		return ErrInvalidJob().WithDetail("reason", "salaryMin must not exceed salaryMax")
	}
	return nil
}

// ============================================================================
// DTOs
// ============================================================================

type CreateJobRequest struct {
	Title          string `json:"title"`
	Department     string `json:"department"`
	Location       string `json:"location"`
	EmploymentType string `json:"employmentType"`
	SalaryMin      int64  `json:"salaryMin"`
	SalaryMax      int64  `json:"salaryMax"`
	Currency       string `json:"currency"`
	Description    string `json:"description"`
}

type UpdateJobRequest struct {
	Title          *string `json:"title,omitempty"`
	Department     *string `json:"department,omitempty"`
	Location       *string `json:"location,omitempty"`
	EmploymentType *string `json:"employmentType,omitempty"`
	SalaryMin      *int64  `json:"salaryMin,omitempty"`
	SalaryMax      *int64  `json:"salaryMax,omitempty"`
	Currency       *string `json:"currency,omitempty"`
	Status         *string `json:"status,omitempty"`
	Description    *string `json:"description,omitempty"`
}

// ============================================================================
// Repository
// ============================================================================

type Repository interface {
	FindByID(ctx context.Context, id kernel.JobID) (*Job, error)
	// List returns every job, or only those with status when it is set.
	List(ctx context.Context, status Status) ([]*Job, error)
	Create(ctx context.Context, j *Job) error
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, id kernel.JobID) error
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("JOB")

var (
	CodeJobNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeInvalidJob  = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Invalid job data")
	CodeJobInUse    = ErrRegistry.Register("IN_USE", errx.TypeConflict, http.StatusConflict, "Job has applications")
	CodeJobClosed   = ErrRegistry.Register("CLOSED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Job is closed to new applications")
)

func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrInvalidJob() *errx.Error {
	return ErrRegistry.New(CodeInvalidJob)
}

func ErrJobInUse() *errx.Error {
	return ErrRegistry.New(CodeJobInUse)
}

func ErrJobClosed() *errx.Error {
	return ErrRegistry.New(CodeJobClosed)
}
