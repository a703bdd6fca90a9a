package interviewsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/logx"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
)

// CreateRound crea una ronda con un entrevistador existente
func (s *InterviewService) CreateRound(ctx context.Context, req interview.CreateRoundRequest) (*interview.Round, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, interview.ErrInvalidRequest().WithDetail("field", "name")
	}
	if req.RoundNumber < 1 {
		return nil, interview.ErrInvalidRequest().WithDetail("field", "roundNumber")
	}
	if _, err := s.users.FindByID(ctx, req.InterviewerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	round := &interview.Round{
		ID:            kernel.NewRoundID(kernel.NewID()),
		Name:          name,
		RoundNumber:   req.RoundNumber,
		InterviewerID: req.InterviewerID,
		Description:   req.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.rounds.Create(ctx, round); err != nil {
		return nil, err
	}

	logx.WithFields(logx.Fields{"round_id": round.ID, "interviewer_id": round.InterviewerID}).
		Infof("Interview round created: %s", round.Name)
	return round, nil
}

func (s *InterviewService) GetRound(ctx context.Context, id kernel.RoundID) (*interview.Round, error) {
	return s.rounds.FindByID(ctx, id)
}

func (s *InterviewService) ListRounds(ctx context.Context) ([]*interview.Round, error) {
	return s.rounds.List(ctx)
}

// ListRoundsByInterviewer devuelve las rondas asignadas al entrevistador
func (s *InterviewService) ListRoundsByInterviewer(ctx context.Context, interviewerID kernel.UserID) ([]*interview.Round, error) {
	if _, err := s.users.FindByID(ctx, interviewerID); err != nil {
		return nil, err
	}
	return s.rounds.FindByInterviewer(ctx, interviewerID)
}

// UpdateRound edits the template. Sessions already scheduled keep the
// interviewer they were booked with.
func (s *InterviewService) UpdateRound(ctx context.Context, id kernel.RoundID, req interview.UpdateRoundRequest) (*interview.Round, error) {
	round, err := s.rounds.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, interview.ErrInvalidRequest().WithDetail("field", "name")
		}
		round.Name = name
	}
	if req.RoundNumber != nil {
		if *req.RoundNumber < 1 {
			return nil, interview.ErrInvalidRequest().WithDetail("field", "roundNumber")
		}
		round.RoundNumber = *req.RoundNumber
	}
	if req.InterviewerID != nil && *req.InterviewerID != round.InterviewerID {
		if _, err := s.users.FindByID(ctx, *req.InterviewerID); err != nil {
			return nil, err
		}
		round.InterviewerID = *req.InterviewerID
	}
	if req.Description != nil {
		round.Description = *req.Description
	}

	round.UpdatedAt = time.Now().UTC()
	if err := s.rounds.Update(ctx, round); err != nil {
		return nil, err
	}
	return round, nil
}

// DeleteRound borra una ronda sin sesiones. Holds the round lock that
// ScheduleSession also takes, so no session can be booked between the count
// and the delete.
func (s *InterviewService) DeleteRound(ctx context.Context, id kernel.RoundID) error {
	release, err := s.locker.Lock(ctx, interview.RoundLockKey(id))
	if err != nil {
		return err
	}
	defer release()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.rounds.FindByID(ctx, id); err != nil {
			return err
		}
		n, err := s.sessions.CountByRound(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return interview.ErrRoundInUse().
				WithDetail("round_id", id.String()).
				WithDetail("sessions", n)
		}
		return s.rounds.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logx.WithField("round_id", id).Info("Interview round deleted")
	return nil
}

// HasAssignments reports whether the user interviews in any round or session.
func (s *InterviewService) HasAssignments(ctx context.Context, userID kernel.UserID) (bool, error) {
	rounds, err := s.rounds.FindByInterviewer(ctx, userID)
	if err != nil {
		return false, err
	}
	if len(rounds) > 0 {
		return true, nil
	}
	sessions, err := s.sessions.FindByInterviewer(ctx, userID, interview.Window{})
	if err != nil {
		return false, err
	}
	return len(sessions) > 0, nil
}
