package onboardingapi

import (
	"github.com/Abraxas-365/hrms/pkg/httpx"
	"github.com/Abraxas-365/hrms/pkg/iam/auth"
	"github.com/Abraxas-365/hrms/pkg/iam/scopes"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding/onboardingsrv"
	"github.com/gofiber/fiber/v2"
)

type OnboardingHandlers struct {
	service    *onboardingsrv.OnboardingService
	reconciler *onboardingsrv.Reconciler
}

func NewOnboardingHandlers(service *onboardingsrv.OnboardingService, reconciler *onboardingsrv.Reconciler) *OnboardingHandlers {
	return &OnboardingHandlers{service: service, reconciler: reconciler}
}

func (h *OnboardingHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.AuthMiddleware) {
	onb := router.Group("/onboarding", authMiddleware.Authenticate())

	onb.Get("/application/:id", authMiddleware.RequireScope(scopes.ScopeOnboardingRead), h.GetByApplication)
	onb.Post("/reconcile", authMiddleware.RequireAdmin(), h.Reconcile)
}

func (h *OnboardingHandlers) GetByApplication(c *fiber.Ctx) error {
	o, err := h.service.GetByApplication(c.Context(), kernel.NewApplicationID(c.Params("id")))
	if err != nil {
		return err
	}
	return httpx.OK(c, o)
}

// Reconcile runs one repair pass on demand.
func (h *OnboardingHandlers) Reconcile(c *fiber.Ctx) error {
	rep, err := h.reconciler.Run(c.Context())
	if err != nil {
		return err
	}
	return httpx.OK(c, fiber.Map{
		"sessions": rep.Sessions,
		"attached": rep.Attached,
		"pulled":   rep.Pulled,
		"failed":   rep.Failed,
	})
}
