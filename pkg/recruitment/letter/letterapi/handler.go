package letterapi

import (
	"github.com/Abraxas-365/hrms/pkg/httpx"
	"github.com/Abraxas-365/hrms/pkg/iam/auth"
	"github.com/Abraxas-365/hrms/pkg/iam/scopes"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/letter"
	"github.com/Abraxas-365/hrms/pkg/recruitment/letter/lettersrv"
	"github.com/gofiber/fiber/v2"
)

type LetterHandlers struct {
	service *lettersrv.LetterService
}

func NewLetterHandlers(service *lettersrv.LetterService) *LetterHandlers {
	return &LetterHandlers{service: service}
}

func (h *LetterHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.AuthMiddleware) {
	letters := router.Group("/letters", authMiddleware.Authenticate())

	letters.Post("/offer", authMiddleware.RequireScope(scopes.ScopeOffersSend), h.SendOffer)
	letters.Get("/application/:id", authMiddleware.RequireScope(scopes.ScopeOffersRead), h.ListByApplication)
	letters.Get("/:id/download", authMiddleware.RequireScope(scopes.ScopeOffersRead), h.Download)
}

func (h *LetterHandlers) SendOffer(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req letter.OfferLetterRequest
	if err := httpx.ParseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.service.SendOffer(c.Context(), *authContext.UserID, req)
	if err != nil {
		return err
	}
	return httpx.Created(c, resp)
}

func (h *LetterHandlers) ListByApplication(c *fiber.Ctx) error {
	letters, err := h.service.ListByApplication(c.Context(), kernel.NewApplicationID(c.Params("id")))
	if err != nil {
		return err
	}
	return httpx.OK(c, letters)
}

func (h *LetterHandlers) Download(c *fiber.Ctx) error {
	name, rc, err := h.service.Open(c.Context(), kernel.NewLetterID(c.Params("id")))
	if err != nil {
		return err
	}
	c.Attachment(name)
	return c.SendStream(rc)
}
