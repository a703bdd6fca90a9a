package jobsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/logx"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job"
)

// JobService gestiona los puestos publicados
type JobService struct {
	repo    job.Repository
	appRepo application.Repository
}

func NewJobService(repo job.Repository, appRepo application.Repository) *JobService {
	return &JobService{repo: repo, appRepo: appRepo}
}

// CreateJob crea un puesto abierto
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest) (*job.Job, error) {
	now := time.Now().UTC()
	j := &job.Job{
		ID:             kernel.NewJobID(kernel.NewID()),
		Title:          strings.TrimSpace(req.Title),
		Department:     req.Department,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Currency:       strings.ToUpper(req.Currency),
		Status:         job.StatusOpen,
		Description:    req.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return nil, err
	}

	logx.WithField("job_id", j.ID).Infof("Job created: %s", j.Title)
	return j, nil
}

func (s *JobService) GetJob(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *JobService) ListJobs(ctx context.Context, status string) ([]*job.Job, error) {
	var st job.Status
	if status != "" {
		parsed, err := job.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}
	return s.repo.List(ctx, st)
}

// UpdateJob aplica un parche parcial
func (s *JobService) UpdateJob(ctx context.Context, id kernel.JobID, req job.UpdateJobRequest) (*job.Job, error) {
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		j.Title = strings.TrimSpace(*req.Title)
	}
	if req.Department != nil {
		j.Department = *req.Department
	}
	if req.Location != nil {
		j.Location = *req.Location
	}
	if req.EmploymentType != nil {
		j.EmploymentType = *req.EmploymentType
	}
	if req.SalaryMin != nil {
		j.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		j.SalaryMax = *req.SalaryMax
	}
	if req.Currency != nil {
		j.Currency = strings.ToUpper(*req.Currency)
	}
	if req.Description != nil {
		j.Description = *req.Description
	}
	if req.Status != nil {
		st, err := job.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		j.Status = st
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}

	j.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// DeleteJob borra un puesto sin postulaciones
func (s *JobService) DeleteJob(ctx context.Context, id kernel.JobID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	apps, err := s.appRepo.List(ctx, application.ListFilter{JobID: id})
	if err != nil {
		return err
	}
	if len(apps) > 0 {
		return job.ErrJobInUse().
			WithDetail("job_id", id.String()).
			WithDetail("applications", len(apps))
	}
	return s.repo.Delete(ctx, id)
}
