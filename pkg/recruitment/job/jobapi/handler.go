package jobapi

import (
	"github.com/Abraxas-365/hrms/pkg/httpx"
	"github.com/Abraxas-365/hrms/pkg/iam/auth"
	"github.com/Abraxas-365/hrms/pkg/iam/scopes"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job/jobsrv"
	"github.com/gofiber/fiber/v2"
)

type JobHandlers struct {
	service *jobsrv.JobService
}

func NewJobHandlers(service *jobsrv.JobService) *JobHandlers {
	return &JobHandlers{service: service}
}

func (h *JobHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.AuthMiddleware) {
	jobs := router.Group("/jobs", authMiddleware.Authenticate())

	jobs.Post("/", authMiddleware.RequireScope(scopes.ScopeJobsWrite), h.CreateJob)
	jobs.Get("/", authMiddleware.RequireScope(scopes.ScopeJobsRead), h.ListJobs)
	jobs.Get("/:id", authMiddleware.RequireScope(scopes.ScopeJobsRead), h.GetJob)
	jobs.Put("/:id", authMiddleware.RequireScope(scopes.ScopeJobsWrite), h.UpdateJob)
	jobs.Delete("/:id", authMiddleware.RequireScope(scopes.ScopeJobsDelete), h.DeleteJob)
}

func (h *JobHandlers) CreateJob(c *fiber.Ctx) error {
	var req job.CreateJobRequest
	if err := httpx.ParseBody(c, &req); err != nil {
		return err
	}
	j, err := h.service.CreateJob(c.Context(), req)
	if err != nil {
		return err
	}
	return httpx.Created(c, j)
}

func (h *JobHandlers) ListJobs(c *fiber.Ctx) error {
	jobs, err := h.service.ListJobs(c.Context(), c.Query("status"))
	if err != nil {
		return err
	}
	return httpx.OK(c, jobs)
}

func (h *JobHandlers) GetJob(c *fiber.Ctx) error {
	j, err := h.service.GetJob(c.Context(), kernel.NewJobID(c.Params("id")))
	if err != nil {
		return err
	}
	return httpx.OK(c, j)
}

func (h *JobHandlers) UpdateJob(c *fiber.Ctx) error {
	var req job.UpdateJobRequest
	if err := httpx.ParseBody(c, &req); err != nil {
		return err
	}
	j, err := h.service.UpdateJob(c.Context(), kernel.NewJobID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return httpx.OK(c, j)
}

func (h *JobHandlers) DeleteJob(c *fiber.Ctx) error {
	if err := h.service.DeleteJob(c.Context(), kernel.NewJobID(c.Params("id"))); err != nil {
		return err
	}
	return httpx.Message(c, "Job deleted successfully")
}
