package onboardingsrv

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/logx"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding"
	"github.com/robfig/cron/v3"
)

// SessionLister is the read side the reconciler needs from the session store.
type SessionLister interface {
	ListAll(ctx context.Context) ([]*interview.Session, error)
	FindByID(ctx context.Context, id kernel.SessionID) (*interview.Session, error)
}

// Report cuenta las reparaciones hechas en una pasada.
type Report struct {
	Sessions int
	Attached int
	Pulled   int
	// Skipped counts repairs dropped because the session changed after the
	// scan.
	Skipped int
	Failed  int
}

// Reconciler repairs drift between sessions and onboarding lists. Drift is
// only possible when the store commits the two writes separately.
type Reconciler struct {
	sessions SessionLister
	repo     onboarding.Repository
	linker   *OnboardingService
	locker   interview.Locker
	cron     *cron.Cron
	spec     string
}

func NewReconciler(sessions SessionLister, repo onboarding.Repository, linker *OnboardingService, locker interview.Locker, spec string) *Reconciler {
	return &Reconciler{
		sessions: sessions,
		repo:     repo,
		linker:   linker,
		locker:   locker,
		cron:     cron.New(),
		spec:     spec,
	}
}

// Start registra el job y arranca el cron. Un spec vacío lo desactiva.
func (r *Reconciler) Start(ctx context.Context) error {
	if r.spec == "" {
		logx.Info("Onboarding reconciler disabled")
		return nil
	}
	_, err := r.cron.AddFunc(r.spec, func() {
		if _, err := r.Run(ctx); err != nil {
			logx.Errorf("Onboarding reconcile failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	r.cron.Start()
	logx.Infof("Onboarding reconciler started (spec: %s)", r.spec)
	return nil
}

// Stop waits for a running pass to finish.
func (r *Reconciler) Stop() {
	<-r.cron.Stop().Done()
	logx.Info("Onboarding reconciler stopped")
}

// Run makes one pass. Onboarding lists are read before sessions so a session
// committed mid-pass is at worst re-attached, never pulled.
func (r *Reconciler) Run(ctx context.Context) (Report, error) {
	var rep Report

	records, err := r.repo.List(ctx)
	if err != nil {
		return rep, fmt.Errorf("list onboardings: %w", err)
	}
	sessions, err := r.sessions.ListAll(ctx)
	if err != nil {
		return rep, fmt.Errorf("list sessions: %w", err)
	}
	rep.Sessions = len(sessions)

	byApp := make(map[kernel.ApplicationID]*onboarding.Onboarding, len(records))
	for _, o := range records {
		byApp[o.ApplicationID] = o
	}
	live := make(map[kernel.SessionID]kernel.ApplicationID, len(sessions))
	for _, s := range sessions {
		live[s.ID] = s.ApplicationID
	}

	for _, s := range sessions {
		if o, ok := byApp[s.ApplicationID]; ok && o.Contains(s.ID) {
			continue
		}
		skipped := false
		if err := r.repair(ctx, s.ApplicationID, func(ctx context.Context) error {
			cur, err := r.current(ctx, s.ID)
			if err != nil {
				return err
			}
			if cur == nil || cur.ApplicationID != s.ApplicationID {
				skipped = true
				return nil
			}
			return r.linker.AttachSession(ctx, cur.ApplicationID, cur.ID)
		}); err != nil {
			logx.WithFields(logx.Fields{"session_id": s.ID, "application_id": s.ApplicationID}).
				Errorf("attach failed: %v", err)
			rep.Failed++
			continue
		}
		if skipped {
			rep.Skipped++
			continue
		}
		rep.Attached++
	}

	for _, o := range records {
		for _, id := range o.SessionIDs() {
			if appID, ok := live[id]; ok && appID == o.ApplicationID {
				continue
			}
			skipped := false
			if err := r.repair(ctx, o.ApplicationID, func(ctx context.Context) error {
				cur, err := r.current(ctx, id)
				if err != nil {
					return err
				}
				if cur != nil && cur.ApplicationID == o.ApplicationID {
					skipped = true
					return nil
				}
				return r.repo.RemoveSession(ctx, o.ApplicationID, id)
			}); err != nil {
				logx.WithFields(logx.Fields{"session_id": id, "application_id": o.ApplicationID}).
					Errorf("pull failed: %v", err)
				rep.Failed++
				continue
			}
			if skipped {
				rep.Skipped++
				continue
			}
			rep.Pulled++
		}
	}

	if rep.Attached > 0 || rep.Pulled > 0 || rep.Failed > 0 {
		logx.Warnf("Onboarding reconcile: %d sessions, %d attached, %d pulled, %d skipped, %d failed",
			rep.Sessions, rep.Attached, rep.Pulled, rep.Skipped, rep.Failed)
	} else {
		logx.Debugf("Onboarding reconcile: %d sessions, no drift", rep.Sessions)
	}
	return rep, nil
}

// current re-reads a session under the application lock. A deleted session
// yields nil, nil.
func (r *Reconciler) current(ctx context.Context, id kernel.SessionID) (*interview.Session, error) {
	s, err := r.sessions.FindByID(ctx, id)
	if errx.IsCode(err, interview.CodeSessionNotFound) {
		return nil, nil
	}
	return s, err
}

func (r *Reconciler) repair(ctx context.Context, appID kernel.ApplicationID, fn func(ctx context.Context) error) error {
	release, err := r.locker.Lock(ctx, interview.ApplicationLockKey(appID))
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx)
}
