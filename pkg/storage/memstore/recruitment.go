package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job"
	"github.com/Abraxas-365/hrms/pkg/recruitment/letter"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding"
)

// ============================================================================
// Sessions
// ============================================================================

type SessionRepository struct{ s *Store }

func sortSessions(out []*interview.Session) []*interview.Session {
	slices.SortFunc(out, func(a, b *interview.Session) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func (r *SessionRepository) collect(ctx context.Context, match func(s *interview.Session) bool) []*interview.Session {
	out := []*interview.Session{}
	r.s.read(ctx, func(t *tables) {
		for _, v := range t.sessions {
			if match(&v) {
				cp := v
				out = append(out, &cp)
			}
		}
	})
	return sortSessions(out)
}

func (r *SessionRepository) FindByID(ctx context.Context, id kernel.SessionID) (*interview.Session, error) {
	var (
		out   interview.Session
		found bool
	)
	r.s.read(ctx, func(t *tables) { out, found = t.sessions[id] })
	if !found {
		return nil, interview.ErrSessionNotFound().WithDetail("session_id", id.String())
	}
	return &out, nil
}

func (r *SessionRepository) FindConflict(ctx context.Context, interviewerID kernel.UserID, applicationID kernel.ApplicationID, tr interview.TimeRange, exclude kernel.SessionID) (*interview.Session, error) {
	hits := r.collect(ctx, func(s *interview.Session) bool {
		if s.ID == exclude {
			return false
		}
		if s.InterviewerID != interviewerID && s.ApplicationID != applicationID {
			return false
		}
		return s.Range().Overlaps(tr)
	})
	if len(hits) == 0 {
		return nil, nil
	}
	return hits[0], nil
}

func (r *SessionRepository) FindByApplication(ctx context.Context, applicationID kernel.ApplicationID) ([]*interview.Session, error) {
	return r.collect(ctx, func(s *interview.Session) bool { return s.ApplicationID == applicationID }), nil
}

func (r *SessionRepository) FindByInterviewer(ctx context.Context, interviewerID kernel.UserID, w interview.Window) ([]*interview.Session, error) {
	return r.collect(ctx, func(s *interview.Session) bool {
		return s.InterviewerID == interviewerID && w.Includes(s.Range())
	}), nil
}

func (r *SessionRepository) ListAll(ctx context.Context) ([]*interview.Session, error) {
	return r.collect(ctx, func(*interview.Session) bool { return true }), nil
}

func (r *SessionRepository) CountByRound(ctx context.Context, roundID kernel.RoundID) (int, error) {
	return len(r.collect(ctx, func(s *interview.Session) bool { return s.RoundID == roundID })), nil
}

func (r *SessionRepository) Create(ctx context.Context, s *interview.Session) error {
	return r.s.write(ctx, func(t *tables) error {
		t.sessions[s.ID] = *s
		return nil
	})
}

func (r *SessionRepository) Update(ctx context.Context, s *interview.Session) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.sessions[s.ID]; !ok {
			return interview.ErrSessionNotFound().WithDetail("session_id", s.ID.String())
		}
		t.sessions[s.ID] = *s
		return nil
	})
}

func (r *SessionRepository) Delete(ctx context.Context, id kernel.SessionID) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.sessions[id]; !ok {
			return interview.ErrSessionNotFound().WithDetail("session_id", id.String())
		}
		delete(t.sessions, id)
		return nil
	})
}

// ============================================================================
// Rounds
// ============================================================================

type RoundRepository struct{ s *Store }

func (r *RoundRepository) collect(ctx context.Context, match func(*interview.Round) bool) []*interview.Round {
	out := []*interview.Round{}
	r.s.read(ctx, func(t *tables) {
		for _, v := range t.rounds {
			if match(&v) {
				cp := v
				out = append(out, &cp)
			}
		}
	})
	slices.SortFunc(out, func(a, b *interview.Round) int {
		if c := cmp.Compare(a.RoundNumber, b.RoundNumber); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

func (r *RoundRepository) FindByID(ctx context.Context, id kernel.RoundID) (*interview.Round, error) {
	var (
		out   interview.Round
		found bool
	)
	r.s.read(ctx, func(t *tables) { out, found = t.rounds[id] })
	if !found {
		return nil, interview.ErrRoundNotFound().WithDetail("round_id", id.String())
	}
	return &out, nil
}

func (r *RoundRepository) FindByInterviewer(ctx context.Context, interviewerID kernel.UserID) ([]*interview.Round, error) {
	return r.collect(ctx, func(round *interview.Round) bool { return round.InterviewerID == interviewerID }), nil
}

func (r *RoundRepository) List(ctx context.Context) ([]*interview.Round, error) {
	return r.collect(ctx, func(*interview.Round) bool { return true }), nil
}

func (r *RoundRepository) Create(ctx context.Context, round *interview.Round) error {
	return r.s.write(ctx, func(t *tables) error {
		t.rounds[round.ID] = *round
		return nil
	})
}

func (r *RoundRepository) Update(ctx context.Context, round *interview.Round) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.rounds[round.ID]; !ok {
			return interview.ErrRoundNotFound().WithDetail("round_id", round.ID.String())
		}
		t.rounds[round.ID] = *round
		return nil
	})
}

func (r *RoundRepository) Delete(ctx context.Context, id kernel.RoundID) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.rounds[id]; !ok {
			return interview.ErrRoundNotFound().WithDetail("round_id", id.String())
		}
		delete(t.rounds, id)
		return nil
	})
}

// ============================================================================
// Onboardings
// ============================================================================

type OnboardingRepository struct{ s *Store }

func (r *OnboardingRepository) FindByApplication(ctx context.Context, applicationID kernel.ApplicationID) (*onboarding.Onboarding, error) {
	var (
		out   onboarding.Onboarding
		found bool
	)
	r.s.read(ctx, func(t *tables) {
		var v onboarding.Onboarding
		v, found = t.onboardings[applicationID]
		out = copyOnboarding(v)
	})
	if !found {
		return nil, onboarding.ErrOnboardingNotFound().WithDetail("application_id", applicationID.String())
	}
	return &out, nil
}

func (r *OnboardingRepository) List(ctx context.Context) ([]*onboarding.Onboarding, error) {
	out := []*onboarding.Onboarding{}
	r.s.read(ctx, func(t *tables) {
		for _, v := range t.onboardings {
			cp := copyOnboarding(v)
			out = append(out, &cp)
		}
	})
	slices.SortFunc(out, func(a, b *onboarding.Onboarding) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (r *OnboardingRepository) Create(ctx context.Context, o *onboarding.Onboarding) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.onboardings[o.ApplicationID]; ok {
			return onboarding.ErrAlreadyExists().WithDetail("application_id", o.ApplicationID.String())
		}
		t.onboardings[o.ApplicationID] = copyOnboarding(*o)
		return nil
	})
}

func (r *OnboardingRepository) AppendSession(ctx context.Context, applicationID kernel.ApplicationID, id kernel.SessionID) error {
	return r.edit(ctx, applicationID, func(o *onboarding.Onboarding) { o.Attach(id) })
}

func (r *OnboardingRepository) RemoveSession(ctx context.Context, applicationID kernel.ApplicationID, id kernel.SessionID) error {
	return r.edit(ctx, applicationID, func(o *onboarding.Onboarding) { o.Detach(id) })
}

func (r *OnboardingRepository) edit(ctx context.Context, applicationID kernel.ApplicationID, fn func(o *onboarding.Onboarding)) error {
	return r.s.write(ctx, func(t *tables) error {
		o, ok := t.onboardings[applicationID]
		if !ok {
			return onboarding.ErrOnboardingNotFound().WithDetail("application_id", applicationID.String())
		}
		o = copyOnboarding(o)
		fn(&o)
		t.onboardings[applicationID] = o
		return nil
	})
}

// ============================================================================
// Applications
// ============================================================================

type ApplicationRepository struct{ s *Store }

func (r *ApplicationRepository) FindByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	var (
		out   application.Application
		found bool
	)
	r.s.read(ctx, func(t *tables) { out, found = t.apps[id] })
	if !found {
		return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	return &out, nil
}

func (r *ApplicationRepository) List(ctx context.Context, filter application.ListFilter) ([]*application.Application, error) {
	out := []*application.Application{}
	r.s.read(ctx, func(t *tables) {
		for _, v := range t.apps {
			if filter.Status != "" && v.Status != filter.Status {
				continue
			}
			if filter.JobID != "" && v.JobID != filter.JobID {
				continue
			}
			cp := v
			out = append(out, &cp)
		}
	})
	slices.SortFunc(out, func(a, b *application.Application) int {
		return b.AppliedAt.Compare(a.AppliedAt)
	})
	return out, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	return r.s.write(ctx, func(t *tables) error {
		for _, v := range t.apps {
			if strings.EqualFold(v.Email, a.Email) {
				return application.ErrApplicationAlreadyExists().WithDetail("email", a.Email)
			}
		}
		t.apps[a.ID] = *a
		return nil
	})
}

func (r *ApplicationRepository) Update(ctx context.Context, a *application.Application) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.apps[a.ID]; !ok {
			return application.ErrApplicationNotFound().WithDetail("application_id", a.ID.String())
		}
		t.apps[a.ID] = *a
		return nil
	})
}

// ============================================================================
// Jobs
// ============================================================================

type JobRepository struct{ s *Store }

func (r *JobRepository) FindByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	var (
		out   job.Job
		found bool
	)
	r.s.read(ctx, func(t *tables) { out, found = t.jobs[id] })
	if !found {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return &out, nil
}

func (r *JobRepository) List(ctx context.Context, status job.Status) ([]*job.Job, error) {
	out := []*job.Job{}
	r.s.read(ctx, func(t *tables) {
		for _, v := range t.jobs {
			if status != "" && v.Status != status {
				continue
			}
			cp := v
			out = append(out, &cp)
		}
	})
	slices.SortFunc(out, func(a, b *job.Job) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	return r.s.write(ctx, func(t *tables) error {
		t.jobs[j.ID] = *j
		return nil
	})
}

func (r *JobRepository) Update(ctx context.Context, j *job.Job) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.jobs[j.ID]; !ok {
			return job.ErrJobNotFound().WithDetail("job_id", j.ID.String())
		}
		t.jobs[j.ID] = *j
		return nil
	})
}

func (r *JobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.jobs[id]; !ok {
			return job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		delete(t.jobs, id)
		return nil
	})
}

// ============================================================================
// Letters
// ============================================================================

type LetterRepository struct{ s *Store }

func (r *LetterRepository) FindByID(ctx context.Context, id kernel.LetterID) (*letter.Letter, error) {
	var (
		out   letter.Letter
		found bool
	)
	r.s.read(ctx, func(t *tables) {
		var v letter.Letter
		v, found = t.letters[id]
		out = copyLetter(v)
	})
	if !found {
		return nil, letter.ErrLetterNotFound().WithDetail("letter_id", id.String())
	}
	return &out, nil
}

func (r *LetterRepository) FindByApplication(ctx context.Context, applicationID kernel.ApplicationID) ([]*letter.Letter, error) {
	out := []*letter.Letter{}
	r.s.read(ctx, func(t *tables) {
		for _, v := range t.letters {
			if v.ApplicationID == applicationID {
				cp := copyLetter(v)
				out = append(out, &cp)
			}
		}
	})
	slices.SortFunc(out, func(a, b *letter.Letter) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (r *LetterRepository) Create(ctx context.Context, l *letter.Letter) error {
	return r.s.write(ctx, func(t *tables) error {
		t.letters[l.ID] = copyLetter(*l)
		return nil
	})
}

func (r *LetterRepository) Update(ctx context.Context, l *letter.Letter) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.letters[l.ID]; !ok {
			return letter.ErrLetterNotFound().WithDetail("letter_id", l.ID.String())
		}
		t.letters[l.ID] = copyLetter(*l)
		return nil
	})
}
