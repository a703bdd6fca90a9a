package lettersrv

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"io"
	"path"
	"strings"
	"time"

	"github.com/Abraxas-365/hrms/pkg/fsx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/logx"
	"github.com/Abraxas-365/hrms/pkg/notifx"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job"
	"github.com/Abraxas-365/hrms/pkg/recruitment/letter"
)

//go:embed offer.html
var offerHTML string

var offerTemplate = template.Must(template.New("offer").Parse(offerHTML))

// Notifier is the part of the dispatcher the service needs.
type Notifier interface {
	DispatchTemplate(ctx context.Context, name string, to []string, data any, attachments ...notifx.Attachment) notifx.Result
}

// LetterService genera, guarda y envía cartas a candidatos
type LetterService struct {
	repo     letter.Repository
	appRepo  application.Repository
	jobRepo  job.Repository
	fs       fsx.FileSystem
	notifier Notifier
	company  string
}

func NewLetterService(
	repo letter.Repository,
	appRepo application.Repository,
	jobRepo job.Repository,
	fs fsx.FileSystem,
	notifier Notifier,
	company string,
) *LetterService {
	return &LetterService{
		repo:     repo,
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		fs:       fs,
		notifier: notifier,
		company:  company,
	}
}

type offerData struct {
	Company       string
	CandidateName string
	Position      string
	Department    string
	Location      string
	Salary        int64
	Currency      string
	StartDate     time.Time
	Notes         string
	IssuedAt      time.Time
}

// SendOffer renders the offer letter, stores it and emails it to the
// candidate. The email is best-effort; the letter and the application's
// offer_sent status are kept even when delivery fails.
func (s *LetterService) SendOffer(ctx context.Context, createdBy kernel.UserID, req letter.OfferLetterRequest) (*letter.OfferLetterResponse, error) {
	if req.Salary <= 0 {
		return nil, letter.ErrInvalidLetter().WithDetail("field", "salary")
	}
	if req.StartDate.IsZero() {
		return nil, letter.ErrInvalidLetter().WithDetail("field", "startDate")
	}

	app, err := s.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobRepo.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}

	data := offerData{
		Company:       s.company,
		CandidateName: app.Name,
		Position:      j.Title,
		Department:    j.Department,
		Location:      j.Location,
		Salary:        req.Salary,
		Currency:      strings.ToUpper(req.Currency),
		StartDate:     req.StartDate,
		Notes:         req.Notes,
		IssuedAt:      time.Now().UTC(),
	}
	if req.Position != "" {
		data.Position = req.Position
	}
	if data.Currency == "" {
		data.Currency = j.Currency
	}

	var buf bytes.Buffer
	if err := offerTemplate.Execute(&buf, data); err != nil {
		return nil, letter.ErrRenderFailed(err)
	}

	now := time.Now().UTC()
	l := &letter.Letter{
		ID:            kernel.NewLetterID(kernel.NewID()),
		ApplicationID: app.ID,
		Kind:          letter.KindOffer,
		Subject:       "Offer letter: " + data.Position,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	l.FilePath = fsx.Join("letters", app.ID.String(), "offer-"+l.ID.String()+".html")

	if err := s.fs.WriteFile(ctx, l.FilePath, buf.Bytes()); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	app.Status = application.StatusOfferSent
	app.UpdatedAt = now
	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	resp := &letter.OfferLetterResponse{Letter: l}
	res := s.notifier.DispatchTemplate(ctx, notifx.TemplateOfferLetter, []string{app.Email},
		map[string]any{"CandidateName": app.Name, "JobTitle": data.Position},
		notifx.Attachment{Filename: "offer-letter.html", ContentType: "text/html", Data: buf.Bytes()},
	)
	if !res.Success {
		logx.WithFields(logx.Fields{"letter_id": l.ID, "application_id": app.ID}).
			Warnf("offer letter email failed: %s", res.Error)
		resp.EmailError = res.Error
		return resp, nil
	}

	l.MarkSent()
	if err := s.repo.Update(ctx, l); err != nil {
		logx.WithField("letter_id", l.ID).Errorf("failed to mark letter as sent: %v", err)
	}
	resp.EmailSent = true
	return resp, nil
}

func (s *LetterService) ListByApplication(ctx context.Context, applicationID kernel.ApplicationID) ([]*letter.Letter, error) {
	if _, err := s.appRepo.FindByID(ctx, applicationID); err != nil {
		return nil, err
	}
	return s.repo.FindByApplication(ctx, applicationID)
}

// Open returns the stored letter file.
func (s *LetterService) Open(ctx context.Context, id kernel.LetterID) (string, io.ReadCloser, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", nil, err
	}
	rc, err := s.fs.ReadFileStream(ctx, l.FilePath)
	if err != nil {
		return "", nil, err
	}
	return path.Base(l.FilePath), rc, nil
}
