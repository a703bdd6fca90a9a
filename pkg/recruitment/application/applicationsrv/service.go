package applicationsrv

import (
	"context"
	"io"
	"net/mail"
	"path"
	"strings"
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/fsx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/logx"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job"
)

const maxResumeSize = 10 << 20

var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ApplicationService gestiona las postulaciones y sus CVs
type ApplicationService struct {
	repo    application.Repository
	jobRepo job.Repository
	fs      fsx.FileSystem
}

func NewApplicationService(repo application.Repository, jobRepo job.Repository, fs fsx.FileSystem) *ApplicationService {
	return &ApplicationService{repo: repo, jobRepo: jobRepo, fs: fs}
}

// CreateApplication registra un candidato para un puesto abierto
func (s *ApplicationService) CreateApplication(ctx context.Context, req application.CreateApplicationRequest) (*application.Application, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, application.ErrInvalidApplication().WithDetail("field", "name")
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return nil, application.ErrInvalidApplication().WithDetail("field", "email")
	}

	j, err := s.jobRepo.FindByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if !j.IsOpen() {
		return nil, job.ErrJobClosed().WithDetail("job_id", j.ID.String())
	}

	now := time.Now().UTC()
	appliedAt := now
	if req.AppliedAt != nil {
		appliedAt = req.AppliedAt.UTC()
	}

	a := &application.Application{
		ID:        kernel.NewApplicationID(kernel.NewID()),
		Name:      name,
		Email:     strings.ToLower(addr.Address),
		Phone:     strings.TrimSpace(req.Phone),
		JobID:     j.ID,
		Status:    application.StatusApplied,
		AppliedAt: appliedAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	logx.WithFields(logx.Fields{"application_id": a.ID, "job_id": a.JobID}).Info("Application received")
	return a, nil
}

func (s *ApplicationService) GetApplication(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	return s.repo.FindByID(ctx, id)
}

// ListApplications filtra por estado y puesto; vacíos no filtran
func (s *ApplicationService) ListApplications(ctx context.Context, status string, jobID kernel.JobID) ([]*application.Application, error) {
	filter := application.ListFilter{JobID: jobID}
	if status != "" {
		st, err := application.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = st
	}
	return s.repo.List(ctx, filter)
}

// UpdateStatus mueve al candidato a otra etapa. Sin grafo de transiciones.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id kernel.ApplicationID, status string) (*application.Application, error) {
	st, err := application.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == st {
		return a, nil
	}

	prev := a.Status
	a.Status = st
	a.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	logx.WithFields(logx.Fields{"application_id": a.ID, "from": prev, "to": st}).Info("Application status changed")
	return a, nil
}

// UploadResume guarda el CV y reemplaza el anterior
func (s *ApplicationService) UploadResume(ctx context.Context, id kernel.ApplicationID, filename string, size int64, r io.Reader) (*application.Application, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(path.Ext(filename))
	if !resumeExtensions[ext] {
		return nil, application.ErrInvalidApplication().
			WithDetail("field", "resume").
			WithDetail("reason", "allowed types: pdf, doc, docx")
	}
	if size > maxResumeSize {
		return nil, application.ErrInvalidApplication().
			WithDetail("field", "resume").
			WithDetail("reason", "file exceeds 10MB")
	}

	name := fsx.Join("resumes", a.ID.String(), "resume"+ext)
	if err := s.fs.WriteFileStream(ctx, name, io.LimitReader(r, maxResumeSize)); err != nil {
		return nil, errx.Wrap(err, "failed to store resume", errx.TypeInternal).
			WithDetail("application_id", a.ID.String())
	}

	old := a.ResumePath
	a.ResumePath = name
	a.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	if old != "" && old != name {
		if err := s.fs.DeleteFile(ctx, old); err != nil {
			logx.WithField("path", old).Warnf("failed to delete previous resume: %v", err)
		}
	}
	return a, nil
}

// OpenResume returns the stored resume and its file name.
func (s *ApplicationService) OpenResume(ctx context.Context, id kernel.ApplicationID) (string, io.ReadCloser, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if !a.HasResume() {
		return "", nil, application.ErrResumeNotFound().WithDetail("application_id", id.String())
	}
	rc, err := s.fs.ReadFileStream(ctx, a.ResumePath)
	if err != nil {
		if errx.IsCode(err, fsx.CodeFileNotFound) {
			return "", nil, application.ErrResumeNotFound().WithDetail("application_id", id.String())
		}
		return "", nil, err
	}
	return path.Base(a.ResumePath), rc, nil
}
