package onboardingsrv_test

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview/interviewinfra"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding/onboardingsrv"
	"github.com/Abraxas-365/hrms/pkg/storage/memstore"
)

func seedApplication(t *testing.T, store *memstore.Store, id string) {
	t.Helper()
	err := store.Applications().Create(context.Background(), &application.Application{
		ID:     kernel.NewApplicationID(id),
		Name:   "Candidate " + id,
		Email:  id + "@example.com",
		JobID:  "j1",
		Status: application.StatusApplied,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func seedSession(t *testing.T, store *memstore.Store, id, app string, start time.Time) {
	t.Helper()
	err := store.Sessions().Create(context.Background(), &interview.Session{
		ID:            kernel.NewSessionID(id),
		ApplicationID: kernel.NewApplicationID(app),
		RoundID:       "r1",
		InterviewerID: "u1",
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		Status:        interview.StatusScheduled,
		Outcome:       interview.OutcomePending,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestAttachSession(t *testing.T) {
	store := memstore.New()
	seedApplication(t, store, "a1")
	svc := onboardingsrv.NewOnboardingService(store.Onboardings(), store.Applications())
	ctx := context.Background()

	for _, id := range []kernel.SessionID{"s1", "s2", "s1"} {
		if err := svc.AttachSession(ctx, "a1", id); err != nil {
			t.Fatalf("AttachSession(%s): %v", id, err)
		}
	}

	o, err := svc.GetByApplication(ctx, "a1")
	if err != nil {
		t.Fatal(err)
	}
	if got := o.SessionIDs(); len(got) != 2 || got[0] != "s1" || got[1] != "s2" {
		t.Errorf("SessionIDs() = %v, want [s1 s2]", got)
	}
}

func TestDetachSession(t *testing.T) {
	store := memstore.New()
	seedApplication(t, store, "a1")
	svc := onboardingsrv.NewOnboardingService(store.Onboardings(), store.Applications())
	ctx := context.Background()

	// no onboarding yet: detaching is a no-op
	if err := svc.DetachSession(ctx, &interview.Session{ID: "s1", ApplicationID: "a1"}); err != nil {
		t.Fatalf("DetachSession without onboarding: %v", err)
	}

	_ = svc.AttachSession(ctx, "a1", "s1")
	if err := svc.DetachSession(ctx, &interview.Session{ID: "s1", ApplicationID: "a1"}); err != nil {
		t.Fatal(err)
	}
	o, err := svc.GetByApplication(ctx, "a1")
	if err != nil {
		t.Fatalf("record should survive an empty list: %v", err)
	}
	if len(o.SessionIDs()) != 0 {
		t.Errorf("SessionIDs() = %v, want empty", o.SessionIDs())
	}
}

func TestGetByApplication_Errors(t *testing.T) {
	store := memstore.New()
	seedApplication(t, store, "a1")
	svc := onboardingsrv.NewOnboardingService(store.Onboardings(), store.Applications())

	_, err := svc.GetByApplication(context.Background(), "ghost")
	if !errx.IsCode(err, application.CodeApplicationNotFound) {
		t.Errorf("unknown application: got %v", err)
	}
	_, err = svc.GetByApplication(context.Background(), "a1")
	if !errx.IsCode(err, onboarding.CodeOnboardingNotFound) {
		t.Errorf("application without sessions: got %v", err)
	}
}

func TestReconciler_RepairsDrift(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	seedApplication(t, store, "a1")
	seedApplication(t, store, "a2")

	t0 := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	seedSession(t, store, "s1", "a1", t0)
	seedSession(t, store, "s2", "a2", t0.Add(2*time.Hour))

	// a1 lists s1 plus a stale id, a2 has no record at all
	stale := onboarding.New("a1")
	stale.Attach("s1")
	stale.Attach("gone")
	if err := store.Onboardings().Create(ctx, stale); err != nil {
		t.Fatal(err)
	}

	linker := onboardingsrv.NewOnboardingService(store.Onboardings(), store.Applications())
	r := onboardingsrv.NewReconciler(store.Sessions(), store.Onboardings(), linker, interviewinfra.NewInMemoryLocker(time.Second), "")

	rep, err := r.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Sessions != 2 || rep.Attached != 1 || rep.Pulled != 1 || rep.Failed != 0 {
		t.Errorf("report = %+v, want 2 sessions, 1 attached, 1 pulled", rep)
	}

	a1, _ := store.Onboardings().FindByApplication(ctx, "a1")
	if got := a1.SessionIDs(); len(got) != 1 || got[0] != "s1" {
		t.Errorf("a1 list = %v, want [s1]", got)
	}
	a2, err := store.Onboardings().FindByApplication(ctx, "a2")
	if err != nil {
		t.Fatalf("a2 onboarding should be created: %v", err)
	}
	if got := a2.SessionIDs(); len(got) != 1 || got[0] != "s2" {
		t.Errorf("a2 list = %v, want [s2]", got)
	}

	// a second pass finds nothing to do
	rep, err = r.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Attached != 0 || rep.Pulled != 0 {
		t.Errorf("second pass = %+v, want no repairs", rep)
	}
}

func TestReconciler_StartDisabled(t *testing.T) {
	store := memstore.New()
	linker := onboardingsrv.NewOnboardingService(store.Onboardings(), store.Applications())
	r := onboardingsrv.NewReconciler(store.Sessions(), store.Onboardings(), linker, interviewinfra.NewInMemoryLocker(time.Second), "")

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("empty spec should disable the reconciler: %v", err)
	}
	r.Stop()
}

func TestReconciler_StartRejectsBadSpec(t *testing.T) {
	store := memstore.New()
	linker := onboardingsrv.NewOnboardingService(store.Onboardings(), store.Applications())
	r := onboardingsrv.NewReconciler(store.Sessions(), store.Onboardings(), linker, interviewinfra.NewInMemoryLocker(time.Second), "every tuesday")

	if err := r.Start(context.Background()); err == nil {
		t.Error("invalid cron spec should fail")
	}
}

// vanishingSessions deletes the listed sessions right after ListAll, the way a
// DeleteSession committing between the scan and the repair would.
type vanishingSessions struct {
	*memstore.SessionRepository
}

func (v vanishingSessions) ListAll(ctx context.Context) ([]*interview.Session, error) {
	all, err := v.SessionRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range all {
		if err := v.SessionRepository.Delete(ctx, s.ID); err != nil {
			return nil, err
		}
	}
	return all, nil
}

func TestReconciler_SkipsSessionDeletedAfterScan(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	seedApplication(t, store, "a1")
	seedSession(t, store, "s1", "a1", time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))

	linker := onboardingsrv.NewOnboardingService(store.Onboardings(), store.Applications())
	r := onboardingsrv.NewReconciler(vanishingSessions{store.Sessions()}, store.Onboardings(), linker, interviewinfra.NewInMemoryLocker(time.Second), "")

	rep, err := r.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Attached != 0 || rep.Skipped != 1 {
		t.Errorf("report = %+v, want 0 attached, 1 skipped", rep)
	}
	if o, err := store.Onboardings().FindByApplication(ctx, "a1"); err == nil && o.Contains("s1") {
		t.Errorf("deleted session s1 was attached: %v", o.SessionIDs())
	}
}

func TestReconciler_KeepsSessionCreatedAfterScan(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	seedApplication(t, store, "a1")

	// the list names s1 but the scan sees no sessions; s1 exists by repair time
	o := onboarding.New("a1")
	o.Attach("s1")
	if err := store.Onboardings().Create(ctx, o); err != nil {
		t.Fatal(err)
	}
	sessions := &lateSessions{SessionRepository: store.Sessions(), create: func() {
		seedSession(t, store, "s1", "a1", time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
	}}

	linker := onboardingsrv.NewOnboardingService(store.Onboardings(), store.Applications())
	r := onboardingsrv.NewReconciler(sessions, store.Onboardings(), linker, interviewinfra.NewInMemoryLocker(time.Second), "")

	rep, err := r.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Pulled != 0 || rep.Skipped != 1 {
		t.Errorf("report = %+v, want 0 pulled, 1 skipped", rep)
	}
	got, _ := store.Onboardings().FindByApplication(ctx, "a1")
	if !got.Contains("s1") {
		t.Errorf("live session s1 was pulled: %v", got.SessionIDs())
	}
}

// lateSessions returns an empty scan and then runs create.
type lateSessions struct {
	*memstore.SessionRepository
	create func()
}

func (l *lateSessions) ListAll(context.Context) ([]*interview.Session, error) {
	l.create()
	return nil, nil
}
