package interview

import (
	"net/http"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
)

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("INTERVIEW")

var (
	CodeSessionNotFound     = ErrRegistry.Register("SESSION_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Interview session not found")
	CodeRoundNotFound       = ErrRegistry.Register("ROUND_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Interview round not found")
	CodeSchedulingConflict  = ErrRegistry.Register("SCHEDULING_CONFLICT", errx.TypeConflict, http.StatusConflict, "The interviewer or the candidate already has a session in this time range")
	CodeInvalidTransition   = ErrRegistry.Register("INVALID_TRANSITION", errx.TypeBusiness, http.StatusUnprocessableEntity, "Invalid status/outcome combination")
	CodeInvalidTimeRange    = ErrRegistry.Register("INVALID_TIME_RANGE", errx.TypeValidation, http.StatusBadRequest, "Invalid time range")
	CodeInvalidWindow       = ErrRegistry.Register("INVALID_WINDOW", errx.TypeValidation, http.StatusBadRequest, "from must not be after to")
	CodeInvalidStatus       = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Unknown session status")
	CodeInvalidOutcome      = ErrRegistry.Register("INVALID_OUTCOME", errx.TypeValidation, http.StatusBadRequest, "Unknown session outcome")
	CodeInvalidRequest      = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid interview request")
	CodeRoundInUse          = ErrRegistry.Register("ROUND_IN_USE", errx.TypeConflict, http.StatusConflict, "Interview round is referenced by sessions")
	CodeSchedulingBusy      = ErrRegistry.Register("SCHEDULING_BUSY", errx.TypeConflict, http.StatusConflict, "Another scheduling change is in progress, retry")
	CodeNotificationFailure = ErrRegistry.Register("NOTIFICATION_FAILURE", errx.TypeExternal, http.StatusBadGateway, "Notification could not be delivered")
)

func ErrSessionNotFound() *errx.Error {
	return ErrRegistry.New(CodeSessionNotFound)
}

func ErrRoundNotFound() *errx.Error {
	return ErrRegistry.New(CodeRoundNotFound)
}

// ErrSchedulingConflict carries the id of the session already holding the slot.
func ErrSchedulingConflict(conflicting kernel.SessionID) *errx.Error {
	e := ErrRegistry.New(CodeSchedulingConflict)
	if conflicting != "" {
		e.WithDetail("conflicting_session_id", conflicting.String())
	}
	return e
}

func ErrInvalidTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidTransition)
}

func ErrInvalidTimeRange() *errx.Error {
	return ErrRegistry.New(CodeInvalidTimeRange)
}

func ErrInvalidWindow() *errx.Error {
	return ErrRegistry.New(CodeInvalidWindow)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidOutcome() *errx.Error {
	return ErrRegistry.New(CodeInvalidOutcome)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrRoundInUse() *errx.Error {
	return ErrRegistry.New(CodeRoundInUse)
}

func ErrSchedulingBusy() *errx.Error {
	return ErrRegistry.New(CodeSchedulingBusy)
}

func ErrNotificationFailure(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeNotificationFailure, err)
}
