package interviewapi

import (
	"github.com/Abraxas-365/hrms/pkg/httpx"
	"github.com/Abraxas-365/hrms/pkg/iam/auth"
	"github.com/Abraxas-365/hrms/pkg/iam/scopes"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview/interviewsrv"
	"github.com/gofiber/fiber/v2"
)

type InterviewHandlers struct {
	service *interviewsrv.InterviewService
}

func NewInterviewHandlers(service *interviewsrv.InterviewService) *InterviewHandlers {
	return &InterviewHandlers{service: service}
}

// RegisterRoutes registers the session and round routes.
func (h *InterviewHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.AuthMiddleware) {
	sessions := router.Group("/interviewSessions", authMiddleware.Authenticate())

	sessions.Post("/", authMiddleware.RequireScope(scopes.ScopeInterviewsSchedule), h.ScheduleSession)
	sessions.Get("/application/:id", authMiddleware.RequireScope(scopes.ScopeInterviewsRead), h.ListByApplication)
	sessions.Get("/interviewer/:id", authMiddleware.RequireScope(scopes.ScopeInterviewsRead), h.ListByInterviewer)
	sessions.Get("/:id", authMiddleware.RequireScope(scopes.ScopeInterviewsRead), h.GetSession)
	sessions.Patch("/:id", authMiddleware.RequireAnyScope(scopes.ScopeInterviewsSchedule, scopes.ScopeInterviewsConduct), h.UpdateSession)
	sessions.Patch("/:id/status", authMiddleware.RequireScope(scopes.ScopeInterviewsConduct), h.UpdateStatus)
	sessions.Patch("/:id/outcome", authMiddleware.RequireScope(scopes.ScopeInterviewsConduct), h.UpdateOutcome)
	sessions.Delete("/:id", authMiddleware.RequireScope(scopes.ScopeInterviewsDelete), h.DeleteSession)

	rounds := router.Group("/interviewRounds", authMiddleware.Authenticate())

	rounds.Post("/", authMiddleware.RequireScope(scopes.ScopeRoundsWrite), h.CreateRound)
	rounds.Get("/", authMiddleware.RequireScope(scopes.ScopeRoundsRead), h.ListRounds)
	rounds.Get("/interviewer/:id", authMiddleware.RequireScope(scopes.ScopeRoundsRead), h.ListRoundsByInterviewer)
	rounds.Get("/:id", authMiddleware.RequireScope(scopes.ScopeRoundsRead), h.GetRound)
	rounds.Put("/:id", authMiddleware.RequireScope(scopes.ScopeRoundsWrite), h.UpdateRound)
	rounds.Delete("/:id", authMiddleware.RequireScope(scopes.ScopeRoundsWrite), h.DeleteRound)
}

// ============================================================================
// Sessions
// ============================================================================

func (h *InterviewHandlers) ScheduleSession(c *fiber.Ctx) error {
	var req interview.ScheduleSessionRequest
	if err := httpx.ParseBody(c, &req); err != nil {
		return err
	}
	s, err := h.service.ScheduleSession(c.Context(), req)
	if err != nil {
		return err
	}
	return httpx.Created(c, s)
}

func (h *InterviewHandlers) GetSession(c *fiber.Ctx) error {
	s, err := h.service.GetSession(c.Context(), kernel.NewSessionID(c.Params("id")))
	if err != nil {
		return err
	}
	return httpx.OK(c, s)
}

func (h *InterviewHandlers) UpdateSession(c *fiber.Ctx) error {
	var req interview.UpdateSessionRequest
	if err := httpx.ParseBody(c, &req); err != nil {
		return err
	}
	s, err := h.service.UpdateSession(c.Context(), kernel.NewSessionID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return httpx.OK(c, s)
}

// UpdateStatus accepts status, outcome or both; outcome is applied first.
func (h *InterviewHandlers) UpdateStatus(c *fiber.Ctx) error {
	var req interview.UpdateStatusRequest
	if err := httpx.ParseBody(c, &req); err != nil {
		return err
	}
	s, err := h.service.ChangeStatus(c.Context(), kernel.NewSessionID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return httpx.OK(c, s)
}

func (h *InterviewHandlers) UpdateOutcome(c *fiber.Ctx) error {
	var req interview.UpdateOutcomeRequest
	if err := httpx.ParseBody(c, &req); err != nil {
		return err
	}
	s, err := h.service.UpdateOutcome(c.Context(), kernel.NewSessionID(c.Params("id")), req.Outcome)
	if err != nil {
		return err
	}
	return httpx.OK(c, s)
}

func (h *InterviewHandlers) DeleteSession(c *fiber.Ctx) error {
	if err := h.service.DeleteSession(c.Context(), kernel.NewSessionID(c.Params("id"))); err != nil {
		return err
	}
	return httpx.Message(c, "Interview session deleted successfully")
}

func (h *InterviewHandlers) ListByApplication(c *fiber.Ctx) error {
	sessions, err := h.service.ListByApplication(c.Context(), kernel.NewApplicationID(c.Params("id")))
	if err != nil {
		return err
	}
	return httpx.OK(c, sessions)
}

func (h *InterviewHandlers) ListByInterviewer(c *fiber.Ctx) error {
	from, err := httpx.QueryTime(c, "from")
	if err != nil {
		return err
	}
	to, err := httpx.QueryTime(c, "to")
	if err != nil {
		return err
	}
	sessions, err := h.service.ListByInterviewer(c.Context(), kernel.NewUserID(c.Params("id")), from, to)
	if err != nil {
		return err
	}
	return httpx.OK(c, sessions)
}

// ============================================================================
// Rounds
// ============================================================================

func (h *InterviewHandlers) CreateRound(c *fiber.Ctx) error {
	var req interview.CreateRoundRequest
	if err := httpx.ParseBody(c, &req); err != nil {
		return err
	}
	r, err := h.service.CreateRound(c.Context(), req)
	if err != nil {
		return err
	}
	return httpx.Created(c, r)
}

func (h *InterviewHandlers) ListRounds(c *fiber.Ctx) error {
	rounds, err := h.service.ListRounds(c.Context())
	if err != nil {
		return err
	}
	return httpx.OK(c, rounds)
}

func (h *InterviewHandlers) ListRoundsByInterviewer(c *fiber.Ctx) error {
	rounds, err := h.service.ListRoundsByInterviewer(c.Context(), kernel.NewUserID(c.Params("id")))
	if err != nil {
		return err
	}
	return httpx.OK(c, rounds)
}

func (h *InterviewHandlers) GetRound(c *fiber.Ctx) error {
	r, err := h.service.GetRound(c.Context(), kernel.NewRoundID(c.Params("id")))
	if err != nil {
		return err
	}
	return httpx.OK(c, r)
}

func (h *InterviewHandlers) UpdateRound(c *fiber.Ctx) error {
	var req interview.UpdateRoundRequest
	if err := httpx.ParseBody(c, &req); err != nil {
		return err
	}
	r, err := h.service.UpdateRound(c.Context(), kernel.NewRoundID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return httpx.OK(c, r)
}

func (h *InterviewHandlers) DeleteRound(c *fiber.Ctx) error {
	if err := h.service.DeleteRound(c.Context(), kernel.NewRoundID(c.Params("id"))); err != nil {
		return err
	}
	return httpx.Message(c, "Interview round deleted successfully")
}
