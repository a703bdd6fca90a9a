package applicationapi

import (
	"github.com/Abraxas-365/hrms/pkg/httpx"
	"github.com/Abraxas-365/hrms/pkg/iam/auth"
	"github.com/Abraxas-365/hrms/pkg/iam/scopes"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application/applicationsrv"
	"github.com/gofiber/fiber/v2"
)

type ApplicationHandlers struct {
	service *applicationsrv.ApplicationService
}

func NewApplicationHandlers(service *applicationsrv.ApplicationService) *ApplicationHandlers {
	return &ApplicationHandlers{service: service}
}

func (h *ApplicationHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.AuthMiddleware) {
	apps := router.Group("/applications", authMiddleware.Authenticate())

	apps.Post("/", authMiddleware.RequireScope(scopes.ScopeApplicationsWrite), h.CreateApplication)
	apps.Get("/", authMiddleware.RequireScope(scopes.ScopeApplicationsRead), h.ListApplications)
	apps.Get("/:id", authMiddleware.RequireScope(scopes.ScopeApplicationsRead), h.GetApplication)
	apps.Patch("/:id/status", authMiddleware.RequireScope(scopes.ScopeApplicationsReview), h.UpdateStatus)
	apps.Post("/:id/resume", authMiddleware.RequireScope(scopes.ScopeResumesWrite), h.UploadResume)
	apps.Get("/:id/resume", authMiddleware.RequireScope(scopes.ScopeResumesRead), h.DownloadResume)
}

func (h *ApplicationHandlers) CreateApplication(c *fiber.Ctx) error {
	var req application.CreateApplicationRequest
	if err := httpx.ParseBody(c, &req); err != nil {
		return err
	}
	a, err := h.service.CreateApplication(c.Context(), req)
	if err != nil {
		return err
	}
	return httpx.Created(c, a)
}

func (h *ApplicationHandlers) ListApplications(c *fiber.Ctx) error {
	apps, err := h.service.ListApplications(c.Context(), c.Query("status"), kernel.NewJobID(c.Query("jobId")))
	if err != nil {
		return err
	}
	return httpx.OK(c, apps)
}

func (h *ApplicationHandlers) GetApplication(c *fiber.Ctx) error {
	a, err := h.service.GetApplication(c.Context(), kernel.NewApplicationID(c.Params("id")))
	if err != nil {
		return err
	}
	return httpx.OK(c, a)
}

func (h *ApplicationHandlers) UpdateStatus(c *fiber.Ctx) error {
	var req application.UpdateStatusRequest
	if err := httpx.ParseBody(c, &req); err != nil {
		return err
	}
	a, err := h.service.UpdateStatus(c.Context(), kernel.NewApplicationID(c.Params("id")), req.Status)
	if err != nil {
		return err
	}
	return httpx.OK(c, a)
}

func (h *ApplicationHandlers) UploadResume(c *fiber.Ctx) error {
	fh, err := c.FormFile("resume")
	if err != nil {
		return application.ErrInvalidApplication().
			WithDetail("field", "resume").
			WithDetail("reason", "multipart field 'resume' is required")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	a, err := h.service.UploadResume(c.Context(), kernel.NewApplicationID(c.Params("id")), fh.Filename, fh.Size, f)
	if err != nil {
		return err
	}
	return httpx.OK(c, a)
}

func (h *ApplicationHandlers) DownloadResume(c *fiber.Ctx) error {
	name, rc, err := h.service.OpenResume(c.Context(), kernel.NewApplicationID(c.Params("id")))
	if err != nil {
		return err
	}
	c.Attachment(name)
	return c.SendStream(rc)
}
