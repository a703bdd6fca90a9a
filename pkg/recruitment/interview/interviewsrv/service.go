package interviewsrv

import (
	"context"
	"errors"
	"time"

	"github.com/Abraxas-365/hrms/pkg/dbx"
	"github.com/Abraxas-365/hrms/pkg/iam/user"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/logx"
	"github.com/Abraxas-365/hrms/pkg/notifx"
	"github.com/Abraxas-365/hrms/pkg/ptrx"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding/onboardingsrv"
)

// Notifier is the part of the notification dispatcher the scheduler needs.
type Notifier interface {
	DispatchTemplate(ctx context.Context, name string, to []string, data any, attachments ...notifx.Attachment) notifx.Result
}

// InterviewService agenda sesiones de entrevista sin solapamientos y gestiona
// su ciclo de vida.
type InterviewService struct {
	sessions interview.SessionRepository
	rounds   interview.RoundRepository
	apps     application.Repository
	users    user.UserRepository
	linker   *onboardingsrv.OnboardingService
	tx       dbx.TxRunner
	locker   interview.Locker
	notifier Notifier
	events   interview.EventPublisher
}

// NewInterviewService crea una nueva instancia del servicio de entrevistas
func NewInterviewService(
	sessions interview.SessionRepository,
	rounds interview.RoundRepository,
	apps application.Repository,
	users user.UserRepository,
	linker *onboardingsrv.OnboardingService,
	tx dbx.TxRunner,
	locker interview.Locker,
	notifier Notifier,
	events interview.EventPublisher,
) *InterviewService {
	return &InterviewService{
		sessions: sessions,
		rounds:   rounds,
		apps:     apps,
		users:    users,
		linker:   linker,
		tx:       tx,
		locker:   locker,
		notifier: notifier,
		events:   events,
	}
}

// ============================================================================
// Scheduling
// ============================================================================

// ScheduleSession creates a session for the application in the given round.
// The conflict check, the insert, the onboarding link and the application
// status advance commit together while the interviewer, candidate and round
// keys are locked. Email and events follow the commit and never undo it.
func (s *InterviewService) ScheduleSession(ctx context.Context, req interview.ScheduleSessionRequest) (*interview.Session, error) {
	if req.ApplicationID.IsEmpty() || req.RoundID.IsEmpty() {
		return nil, interview.ErrInvalidRequest().
			WithDetail("reason", "applicationId and interviewRoundId are required")
	}
	tr, err := interview.NewTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	round, err := s.rounds.FindByID(ctx, req.RoundID)
	if err != nil {
		return nil, err
	}

	session := interview.NewSession(app.ID, round, tr)
	if req.MeetingLink != nil {
		session.MeetingLink = *req.MeetingLink
	}
	if req.Notes != nil {
		session.Notes = *req.Notes
	}

	release, err := s.locker.Lock(ctx, append(session.LockKeys(), interview.RoundLockKey(round.ID))...)
	if err != nil {
		return nil, err
	}
	defer release()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// the round may have been deleted while we waited for the lock
		if _, err := s.rounds.FindByID(ctx, round.ID); err != nil {
			return err
		}
		if err := s.ensureFree(ctx, session, tr); err != nil {
			return err
		}
		if err := s.sessions.Create(ctx, session); err != nil {
			return err
		}
		if err := s.linker.AttachSession(ctx, session.ApplicationID, session.ID); err != nil {
			return err
		}
		return s.advanceApplication(ctx, session.ApplicationID)
	})
	if err != nil {
		return nil, err
	}
	release()

	logx.WithFields(logx.Fields{
		"session_id":     session.ID,
		"application_id": session.ApplicationID,
		"interviewer_id": session.InterviewerID,
	}).Infof("Interview session scheduled %s - %s", tr.Start.Format(time.RFC3339), tr.End.Format(time.RFC3339))

	s.notifyScheduled(ctx, session, app, round)
	s.publish(ctx, interview.EventSessionScheduled, session)
	return session, nil
}

// ensureFree fails with a scheduling conflict naming the earliest session
// that overlaps tr on the same interviewer or candidate.
func (s *InterviewService) ensureFree(ctx context.Context, session *interview.Session, tr interview.TimeRange) error {
	conflict, err := s.sessions.FindConflict(ctx, session.InterviewerID, session.ApplicationID, tr, session.ID)
	if err != nil {
		return err
	}
	if conflict != nil {
		e := interview.ErrSchedulingConflict(conflict.ID)
		if conflict.InterviewerID == session.InterviewerID {
			e.WithDetail("interviewer_id", conflict.InterviewerID.String())
		}
		if conflict.ApplicationID == session.ApplicationID {
			e.WithDetail("application_id", conflict.ApplicationID.String())
		}
		return e
	}
	return nil
}

func (s *InterviewService) advanceApplication(ctx context.Context, id kernel.ApplicationID) error {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !app.AdvanceToInterview() {
		return nil
	}
	return s.apps.Update(ctx, app)
}

// UpdateSession aplica un parche parcial. Si cambia el rango se valida y se
// vuelve a comprobar contra las demás sesiones.
func (s *InterviewService) UpdateSession(ctx context.Context, id kernel.SessionID, req interview.UpdateSessionRequest) (*interview.Session, error) {
	current, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var tr interview.TimeRange
	if req.ChangesRange() {
		start, end := current.StartTime, current.EndTime
		if req.StartTime != nil {
			start = *req.StartTime
		}
		if req.EndTime != nil {
			end = *req.EndTime
		}
		if tr, err = interview.NewTimeRange(start, end); err != nil {
			return nil, err
		}
	}

	release, err := s.locker.Lock(ctx, append(current.LockKeys(), interview.SessionLockKey(id))...)
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		updated *interview.Session
		moved   bool
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		sess, err := s.sessions.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if req.ChangesRange() && !tr.Equal(sess.Range()) {
			if err := s.ensureFree(ctx, sess, tr); err != nil {
				return err
			}
			sess.Reschedule(tr)
			moved = true
		}
		if req.MeetingLink != nil {
			sess.MeetingLink = *req.MeetingLink
		}
		if req.Notes != nil {
			sess.Notes = *req.Notes
		}
		if req.Feedback != nil {
			sess.Feedback = *req.Feedback
		}
		if req.RecordingLink != nil {
			sess.RecordingLink = *req.RecordingLink
		}
		sess.UpdatedAt = time.Now().UTC()
		if err := s.sessions.Update(ctx, sess); err != nil {
			return err
		}
		updated = sess
		return nil
	})
	if err != nil {
		return nil, err
	}
	release()

	if moved {
		s.notifySessionChange(ctx, notifx.TemplateSessionRescheduled, updated)
	}
	s.publish(ctx, interview.EventSessionUpdated, updated)
	return updated, nil
}

// DeleteSession borra la sesión y la quita del onboarding en una transacción.
func (s *InterviewService) DeleteSession(ctx context.Context, id kernel.SessionID) error {
	current, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return err
	}

	release, err := s.locker.Lock(ctx, append(current.LockKeys(), interview.SessionLockKey(id))...)
	if err != nil {
		return err
	}
	defer release()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.sessions.Delete(ctx, id); err != nil {
			return err
		}
		return s.linker.DetachSession(ctx, current)
	})
	if err != nil {
		return err
	}
	release()

	logx.WithFields(logx.Fields{"session_id": id, "application_id": current.ApplicationID}).
		Info("Interview session deleted")
	s.publish(ctx, interview.EventSessionDeleted, current)
	return nil
}

// ============================================================================
// Lifecycle
// ============================================================================

// UpdateStatus cambia el estado operativo de la sesión.
func (s *InterviewService) UpdateStatus(ctx context.Context, id kernel.SessionID, status string) (*interview.Session, error) {
	return s.ChangeStatus(ctx, id, interview.UpdateStatusRequest{Status: ptrx.String(status)})
}

// UpdateOutcome cambia el resultado de la sesión.
func (s *InterviewService) UpdateOutcome(ctx context.Context, id kernel.SessionID, outcome string) (*interview.Session, error) {
	return s.ChangeStatus(ctx, id, interview.UpdateStatusRequest{Outcome: ptrx.String(outcome)})
}

// ChangeStatus applies outcome and then status in one write, so
// {status: completed, outcome: selected} succeeds on a pending session.
// Both values are validated before anything changes.
func (s *InterviewService) ChangeStatus(ctx context.Context, id kernel.SessionID, req interview.UpdateStatusRequest) (*interview.Session, error) {
	if req.Status == nil && req.Outcome == nil {
		return nil, interview.ErrInvalidRequest().WithDetail("reason", "status or outcome is required")
	}

	var (
		status  interview.SessionStatus
		outcome interview.Outcome
		err     error
	)
	if req.Status != nil {
		if status, err = interview.ParseSessionStatus(*req.Status); err != nil {
			return nil, err
		}
	}
	if req.Outcome != nil {
		if outcome, err = interview.ParseOutcome(*req.Outcome); err != nil {
			return nil, err
		}
	}

	release, err := s.locker.Lock(ctx, interview.SessionLockKey(id))
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		updated   *interview.Session
		cancelled bool
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		sess, err := s.sessions.FindByID(ctx, id)
		if err != nil {
			return err
		}
		wasCancelled := sess.IsCancelled()

		if req.Outcome != nil {
			if err := sess.ChangeOutcome(outcome); err != nil {
				return err
			}
		}
		if req.Status != nil {
			if err := sess.ChangeStatus(status); err != nil {
				return err
			}
		}
		if err := s.sessions.Update(ctx, sess); err != nil {
			return err
		}
		cancelled = !wasCancelled && sess.IsCancelled()
		updated = sess
		return nil
	})
	if err != nil {
		return nil, err
	}
	release()

	logx.WithFields(logx.Fields{
		"session_id": id,
		"status":     updated.Status,
		"outcome":    updated.Outcome,
	}).Info("Interview session lifecycle changed")

	if cancelled {
		s.notifySessionChange(ctx, notifx.TemplateSessionCancelled, updated)
	}
	s.publish(ctx, interview.EventSessionUpdated, updated)
	return updated, nil
}

// ============================================================================
// Queries
// ============================================================================

func (s *InterviewService) GetSession(ctx context.Context, id kernel.SessionID) (*interview.Session, error) {
	return s.sessions.FindByID(ctx, id)
}

// ListByApplication devuelve las sesiones del candidato por hora de inicio.
func (s *InterviewService) ListByApplication(ctx context.Context, applicationID kernel.ApplicationID) ([]*interview.Session, error) {
	if _, err := s.apps.FindByID(ctx, applicationID); err != nil {
		return nil, err
	}
	return s.sessions.FindByApplication(ctx, applicationID)
}

// ListByInterviewer returns the interviewer's sessions touching [from, to],
// ordered by start time. Either bound may be nil.
func (s *InterviewService) ListByInterviewer(ctx context.Context, interviewerID kernel.UserID, from, to *time.Time) ([]*interview.Session, error) {
	w, err := interview.NewWindow(from, to)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, interviewerID); err != nil {
		return nil, err
	}
	return s.sessions.FindByInterviewer(ctx, interviewerID, w)
}

// ============================================================================
// Side effects
// ============================================================================

type sessionMail struct {
	CandidateName   string
	InterviewerName string
	RoundName       string
	Start           time.Time
	End             time.Time
	MeetingLink     string
}

func (s *InterviewService) notifyScheduled(ctx context.Context, session *interview.Session, app *application.Application, round *interview.Round) {
	data := sessionMail{
		CandidateName: app.Name,
		RoundName:     round.Name,
		Start:         session.StartTime,
		End:           session.EndTime,
		MeetingLink:   session.MeetingLink,
	}

	s.notify(ctx, session, notifx.TemplateSessionScheduledCandidate, []string{app.Email}, data)

	interviewer, err := s.users.FindByID(ctx, session.InterviewerID)
	if err != nil {
		logx.WithField("interviewer_id", session.InterviewerID).
			Warnf("interviewer not notified: %v", err)
		return
	}
	data.InterviewerName = interviewer.Name
	s.notify(ctx, session, notifx.TemplateSessionScheduledInterviewer, []string{interviewer.Email}, data)
}

// notifySessionChange tells both parties about a reschedule or cancellation.
func (s *InterviewService) notifySessionChange(ctx context.Context, template string, session *interview.Session) {
	data := sessionMail{Start: session.StartTime, End: session.EndTime, MeetingLink: session.MeetingLink}
	var to []string

	if app, err := s.apps.FindByID(ctx, session.ApplicationID); err == nil {
		data.CandidateName = app.Name
		to = append(to, app.Email)
	}
	if round, err := s.rounds.FindByID(ctx, session.RoundID); err == nil {
		data.RoundName = round.Name
	}
	if interviewer, err := s.users.FindByID(ctx, session.InterviewerID); err == nil {
		data.InterviewerName = interviewer.Name
		to = append(to, interviewer.Email)
	}
	s.notify(ctx, session, template, to, data)
}

func (s *InterviewService) notify(ctx context.Context, session *interview.Session, template string, to []string, data any) {
	res := s.notifier.DispatchTemplate(ctx, template, to, data)
	if res.Success {
		return
	}
	err := interview.ErrNotificationFailure(errors.New(res.Error))
	logx.WithFields(logx.Fields{
		"session_id": session.ID,
		"template":   template,
		"code":       err.Code,
	}).Warnf("notification not delivered: %s", res.Error)
}

func (s *InterviewService) publish(ctx context.Context, t interview.EventType, session *interview.Session) {
	if err := s.events.Publish(ctx, interview.NewEvent(t, session)); err != nil {
		logx.WithFields(logx.Fields{"session_id": session.ID, "event": t}).
			Warnf("event not published: %v", err)
	}
}
