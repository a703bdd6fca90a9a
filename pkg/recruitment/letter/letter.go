package letter

import (
	"context"
	"net/http"
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
)

type Kind string

const KindOffer Kind = "offer"

// Letter es un documento generado para un candidato.
type Letter struct {
	ID            kernel.LetterID      `db:"id" bson:"_id" json:"id"`
	ApplicationID kernel.ApplicationID `db:"application_id" bson:"application_id" json:"applicationId"`
	Kind          Kind                 `db:"kind" bson:"kind" json:"kind"`
	FilePath      string               `db:"file_path" bson:"file_path" json:"filePath"`
	Subject       string               `db:"subject" bson:"subject" json:"subject"`
	Sent          bool                 `db:"sent" bson:"sent" json:"sent"`
	SentAt        *time.Time           `db:"sent_at" bson:"sent_at,omitempty" json:"sentAt,omitempty"`
	CreatedBy     kernel.UserID        `db:"created_by" bson:"created_by" json:"createdBy"`
	CreatedAt     time.Time            `db:"created_at" bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time            `db:"updated_at" bson:"updated_at" json:"updatedAt"`
}

func (l *Letter) MarkSent() {
	now := time.Now().UTC()
	l.Sent = true
	l.SentAt = &now
	l.UpdatedAt = now
}

// OfferLetterRequest datos variables de la carta oferta
type OfferLetterRequest struct {
	ApplicationID kernel.ApplicationID `json:"applicationId"`
	Salary        int64                `json:"salary"`
	Currency      string               `json:"currency"`
	StartDate     time.Time            `json:"startDate"`
	Position      string               `json:"position,omitempty"`
	Notes         string               `json:"notes,omitempty"`
}

// OfferLetterResponse reports the stored letter and whether the email went out.
type OfferLetterResponse struct {
	Letter     *Letter `json:"letter"`
	EmailSent  bool    `json:"emailSent"`
	EmailError string  `json:"emailError,omitempty"`
}

type Repository interface {
	FindByID(ctx context.Context, id kernel.LetterID) (*Letter, error)
	FindByApplication(ctx context.Context, applicationID kernel.ApplicationID) ([]*Letter, error)
	Create(ctx context.Context, l *Letter) error
	Update(ctx context.Context, l *Letter) error
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("LETTER")

var (
	CodeLetterNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Letter not found")
	CodeInvalidLetter  = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Invalid letter request")
	CodeRenderFailed   = ErrRegistry.Register("RENDER_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Letter could not be rendered")
)

func ErrLetterNotFound() *errx.Error {
	return ErrRegistry.New(CodeLetterNotFound)
}

func ErrInvalidLetter() *errx.Error {
	return ErrRegistry.New(CodeInvalidLetter)
}

func ErrRenderFailed(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeRenderFailed, err)
}
