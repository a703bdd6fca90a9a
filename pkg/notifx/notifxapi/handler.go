package notifxapi

import (
	"github.com/Abraxas-365/hrms/pkg/httpx"
	"github.com/Abraxas-365/hrms/pkg/iam/auth"
	"github.com/Abraxas-365/hrms/pkg/iam/scopes"
	"github.com/Abraxas-365/hrms/pkg/notifx"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandlers struct {
	dispatcher *notifx.Dispatcher
}

func NewNotificationHandlers(dispatcher *notifx.Dispatcher) *NotificationHandlers {
	return &NotificationHandlers{dispatcher: dispatcher}
}

func (h *NotificationHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.AuthMiddleware) {
	n := router.Group("/notifications", authMiddleware.Authenticate())

	n.Get("/settings", authMiddleware.RequireScope(scopes.ScopeNotificationsConfig), h.GetSettings)
	n.Post("/settings/refresh", authMiddleware.RequireScope(scopes.ScopeNotificationsConfig), h.RefreshSettings)
}

// GetSettings devuelve la configuración activa sin la contraseña SMTP.
func (h *NotificationHandlers) GetSettings(c *fiber.Ctx) error {
	return httpx.OK(c, settingsView(h.dispatcher))
}

func (h *NotificationHandlers) RefreshSettings(c *fiber.Ctx) error {
	if err := h.dispatcher.Refresh(c.Context()); err != nil {
		return err
	}
	return httpx.OK(c, settingsView(h.dispatcher))
}

func settingsView(d *notifx.Dispatcher) fiber.Map {
	s := d.Settings()
	return fiber.Map{
		"provider":    s.Provider,
		"fromAddress": s.FromAddress,
		"fromName":    s.FromName,
		"smtpHost":    s.SMTPHost,
		"smtpPort":    s.SMTPPort,
		"smtpUser":    s.SMTPUsername,
		"timeout":     s.SMTPTimeout.String(),
		"templates":   s.TemplatesFile,
		"company":     s.CompanyName,
	}
}
