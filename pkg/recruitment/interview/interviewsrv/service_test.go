package interviewsrv_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/iam/user"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/notifx"
	"github.com/Abraxas-365/hrms/pkg/ptrx"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview/interviewinfra"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview/interviewsrv"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding/onboardingsrv"
	"github.com/Abraxas-365/hrms/pkg/storage/memstore"
)

// ============================================================================
// Fakes
// ============================================================================

type sentMail struct {
	template string
	to       []string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (n *fakeNotifier) DispatchTemplate(_ context.Context, name string, to []string, _ any, _ ...notifx.Attachment) notifx.Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{template: name, to: to})
	if n.fail {
		return notifx.Result{Success: false, Error: "smtp: connection refused"}
	}
	return notifx.Result{Success: true}
}

func (n *fakeNotifier) recipients(template string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, m := range n.sent {
		if m.template == template {
			out = append(out, m.to...)
		}
	}
	return out
}

type fakePublisher struct {
	mu     sync.Mutex
	events []interview.Event
}

func (p *fakePublisher) Publish(_ context.Context, e interview.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

// failingOnboardings fails every write so the scheduling transaction must
// roll back.
type failingOnboardings struct {
	onboarding.Repository
}

func (failingOnboardings) Create(context.Context, *onboarding.Onboarding) error {
	return errors.New("disk full")
}

func (failingOnboardings) AppendSession(context.Context, kernel.ApplicationID, kernel.SessionID) error {
	return errors.New("disk full")
}

// ============================================================================
// Fixture
// ============================================================================

type fixture struct {
	store     *memstore.Store
	svc       *interviewsrv.InterviewService
	notifier  *fakeNotifier
	publisher *fakePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, nil)
}

// newFixtureWith lets a test wrap the onboarding repository the linker uses.
func newFixtureWith(t *testing.T, wrap func(onboarding.Repository) onboarding.Repository) *fixture {
	t.Helper()
	return newWrappedFixture(t, wrap, nil)
}

func newWrappedFixture(
	t *testing.T,
	wrapOnboardings func(onboarding.Repository) onboarding.Repository,
	wrapSessions func(interview.SessionRepository) interview.SessionRepository,
) *fixture {
	t.Helper()
	store := memstore.New()
	var onbRepo onboarding.Repository = store.Onboardings()
	if wrapOnboardings != nil {
		onbRepo = wrapOnboardings(onbRepo)
	}
	var sessions interview.SessionRepository = store.Sessions()
	if wrapSessions != nil {
		sessions = wrapSessions(sessions)
	}
	f := &fixture{
		store:     store,
		notifier:  &fakeNotifier{},
		publisher: &fakePublisher{},
	}
	linker := onboardingsrv.NewOnboardingService(onbRepo, store.Applications())
	f.svc = interviewsrv.NewInterviewService(
		sessions,
		store.Rounds(),
		store.Applications(),
		store.Users(),
		linker,
		store,
		interviewinfra.NewInMemoryLocker(2*time.Second),
		f.notifier,
		f.publisher,
	)

	f.addUser(t, "u1", "Uma Interviewer", "u1@example.com")
	f.addUser(t, "u2", "Victor Interviewer", "u2@example.com")
	f.addApplication(t, "a1", "a1@example.com")
	f.addApplication(t, "a2", "a2@example.com")
	f.addRound(t, "r1", "u1")
	f.addRound(t, "r2", "u2")
	return f
}

func (f *fixture) addUser(t *testing.T, id, name, email string) {
	t.Helper()
	err := f.store.Users().Save(context.Background(), user.User{
		ID:     kernel.NewUserID(id),
		Name:   name,
		Email:  email,
		Role:   user.RoleInterviewer,
		Status: user.UserStatusActive,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) addApplication(t *testing.T, id, email string) {
	t.Helper()
	err := f.store.Applications().Create(context.Background(), &application.Application{
		ID:        kernel.NewApplicationID(id),
		Name:      "Candidate " + id,
		Email:     email,
		JobID:     "j1",
		Status:    application.StatusApplied,
		AppliedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) addRound(t *testing.T, id, interviewer string) {
	t.Helper()
	err := f.store.Rounds().Create(context.Background(), &interview.Round{
		ID:            kernel.NewRoundID(id),
		Name:          "Round " + id,
		RoundNumber:   1,
		InterviewerID: kernel.NewUserID(interviewer),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) schedule(app, round string, start time.Time, minutes int) (*interview.Session, error) {
	return f.svc.ScheduleSession(context.Background(), interview.ScheduleSessionRequest{
		ApplicationID: kernel.NewApplicationID(app),
		RoundID:       kernel.NewRoundID(round),
		StartTime:     start,
		EndTime:       start.Add(time.Duration(minutes) * time.Minute),
	})
}

func (f *fixture) onboardingIDs(t *testing.T, app string) []kernel.SessionID {
	t.Helper()
	o, err := f.store.Onboardings().FindByApplication(context.Background(), kernel.NewApplicationID(app))
	if err != nil {
		t.Fatalf("onboarding for %s: %v", app, err)
	}
	return o.SessionIDs()
}

func wantCode(t *testing.T, err error, code errx.Code) {
	t.Helper()
	if !errx.IsCode(err, code) {
		t.Fatalf("got error %v, want %s", err, code.Code)
	}
}

var t0 = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

// ============================================================================
// Scheduling
// ============================================================================

func TestScheduleSession_EndToEnd(t *testing.T) {
	f := newFixture(t)

	first, err := f.schedule("a1", "r1", t0, 30)
	if err != nil {
		t.Fatalf("first schedule: %v", err)
	}
	if first.Status != interview.StatusScheduled || first.Outcome != interview.OutcomePending {
		t.Errorf("new session = %s/%s, want scheduled/pending", first.Status, first.Outcome)
	}
	if first.InterviewerID != "u1" {
		t.Errorf("interviewer = %s, want the round's interviewer u1", first.InterviewerID)
	}

	ids := f.onboardingIDs(t, "a1")
	if len(ids) != 1 || ids[0] != first.ID {
		t.Errorf("onboarding list = %v, want [%s]", ids, first.ID)
	}

	if got := f.notifier.recipients(notifx.TemplateSessionScheduledCandidate); len(got) != 1 || got[0] != "a1@example.com" {
		t.Errorf("candidate mail to %v, want a1@example.com", got)
	}
	if got := f.notifier.recipients(notifx.TemplateSessionScheduledInterviewer); len(got) != 1 || got[0] != "u1@example.com" {
		t.Errorf("interviewer mail to %v, want u1@example.com", got)
	}

	app, _ := f.store.Applications().FindByID(context.Background(), "a1")
	if app.Status != application.StatusInterviewRound {
		t.Errorf("application status = %s, want interview_round", app.Status)
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0].Type != interview.EventSessionScheduled {
		t.Errorf("events = %+v, want one scheduled event", f.publisher.events)
	}

	_, err = f.schedule("a2", "r1", t0.Add(15*time.Minute), 30)
	wantCode(t, err, interview.CodeSchedulingConflict)
	e, _ := errx.As(err)
	if e.Details["conflicting_session_id"] != first.ID.String() {
		t.Errorf("conflicting_session_id = %v, want %s", e.Details["conflicting_session_id"], first.ID)
	}
}

func TestScheduleSession_Overlap(t *testing.T) {
	tests := []struct {
		name     string
		app      string
		round    string
		offset   time.Duration
		minutes  int
		conflict bool
	}{
		{name: "same interviewer overlapping", app: "a2", round: "r1", offset: 30 * time.Minute, minutes: 60, conflict: true},
		{name: "same interviewer touching end", app: "a2", round: "r1", offset: 60 * time.Minute, minutes: 60},
		{name: "same interviewer touching start", app: "a2", round: "r1", offset: -60 * time.Minute, minutes: 60},
		{name: "same interviewer inside", app: "a2", round: "r1", offset: 10 * time.Minute, minutes: 10, conflict: true},
		{name: "same interviewer enclosing", app: "a2", round: "r1", offset: -10 * time.Minute, minutes: 90, conflict: true},
		{name: "same candidate other interviewer", app: "a1", round: "r2", offset: 30 * time.Minute, minutes: 60, conflict: true},
		{name: "other candidate other interviewer", app: "a2", round: "r2", offset: 0, minutes: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if _, err := f.schedule("a1", "r1", t0, 60); err != nil {
				t.Fatal(err)
			}

			_, err := f.schedule(tt.app, tt.round, t0.Add(tt.offset), tt.minutes)
			if tt.conflict {
				wantCode(t, err, interview.CodeSchedulingConflict)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestScheduleSession_Validation(t *testing.T) {
	tests := []struct {
		name  string
		app   string
		round string
		start time.Time
		end   time.Time
		code  errx.Code
	}{
		{name: "reversed", app: "a1", round: "r1", start: t0, end: t0.Add(-time.Hour), code: interview.CodeInvalidTimeRange},
		{name: "zero length", app: "a1", round: "r1", start: t0, end: t0, code: interview.CodeInvalidTimeRange},
		{name: "missing end", app: "a1", round: "r1", start: t0, code: interview.CodeInvalidTimeRange},
		{name: "missing application id", round: "r1", start: t0, end: t0.Add(time.Hour), code: interview.CodeInvalidRequest},
		{name: "unknown application", app: "nope", round: "r1", start: t0, end: t0.Add(time.Hour), code: application.CodeApplicationNotFound},
		{name: "unknown round", app: "a1", round: "nope", start: t0, end: t0.Add(time.Hour), code: interview.CodeRoundNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.ScheduleSession(context.Background(), interview.ScheduleSessionRequest{
				ApplicationID: kernel.NewApplicationID(tt.app),
				RoundID:       kernel.NewRoundID(tt.round),
				StartTime:     tt.start,
				EndTime:       tt.end,
			})
			wantCode(t, err, tt.code)

			all, _ := f.store.Sessions().ListAll(context.Background())
			if len(all) != 0 {
				t.Errorf("no session should be stored, got %d", len(all))
			}
		})
	}
}

func TestScheduleSession_NotificationFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.notifier.fail = true

	s, err := f.schedule("a1", "r1", t0, 30)
	if err != nil {
		t.Fatalf("schedule should succeed when email fails: %v", err)
	}
	if _, err := f.store.Sessions().FindByID(context.Background(), s.ID); err != nil {
		t.Errorf("session should be persisted: %v", err)
	}
	if len(f.notifier.sent) != 2 {
		t.Errorf("both notifications should be attempted, got %d", len(f.notifier.sent))
	}
}

func TestScheduleSession_RollsBackWhenLinkFails(t *testing.T) {
	f := newFixtureWith(t, func(r onboarding.Repository) onboarding.Repository {
		return failingOnboardings{r}
	})

	if _, err := f.schedule("a1", "r1", t0, 30); err == nil {
		t.Fatal("expected error from onboarding link")
	}

	all, _ := f.store.Sessions().ListAll(context.Background())
	if len(all) != 0 {
		t.Errorf("session insert should be rolled back, found %d", len(all))
	}
	app, _ := f.store.Applications().FindByID(context.Background(), "a1")
	if app.Status != application.StatusApplied {
		t.Errorf("application status = %s, want applied after rollback", app.Status)
	}
	if len(f.notifier.sent) != 0 || len(f.publisher.events) != 0 {
		t.Error("no side effects should follow a failed schedule")
	}
}

func TestScheduleSession_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"c1", "c2", "c3", "c4", "c5", "c6"} {
		f.addApplication(t, id, id+"@example.com")
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for _, id := range []string{"c1", "c2", "c3", "c4", "c5", "c6"} {
		wg.Add(1)
		go func(app string) {
			defer wg.Done()
			if _, err := f.schedule(app, "r1", t0, 60); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	if succeeded != 1 {
		t.Errorf("%d requests booked the same interviewer slot, want 1", succeeded)
	}
	sessions, _ := f.store.Sessions().FindByInterviewer(context.Background(), "u1", interview.Window{})
	if len(sessions) != 1 {
		t.Errorf("stored %d sessions for u1, want 1", len(sessions))
	}
}

// ============================================================================
// Update / Delete
// ============================================================================

func TestUpdateSession_Reschedule(t *testing.T) {
	f := newFixture(t)
	first, _ := f.schedule("a1", "r1", t0, 60)
	second, err := f.schedule("a2", "r1", t0.Add(2*time.Hour), 60)
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.svc.UpdateSession(context.Background(), second.ID, interview.UpdateSessionRequest{
		StartTime: ptrx.Time(t0.Add(30 * time.Minute)),
	})
	wantCode(t, err, interview.CodeSchedulingConflict)

	newStart := t0.Add(time.Hour)
	newEnd := newStart.Add(45 * time.Minute)
	link := "https://meet.example.com/b"
	updated, err := f.svc.UpdateSession(context.Background(), second.ID, interview.UpdateSessionRequest{
		StartTime:   &newStart,
		EndTime:     &newEnd,
		MeetingLink: &link,
	})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if !updated.StartTime.Equal(newStart) || !updated.EndTime.Equal(newEnd) || updated.MeetingLink != link {
		t.Errorf("updated = %+v", updated)
	}
	if got := f.notifier.recipients(notifx.TemplateSessionRescheduled); len(got) != 2 {
		t.Errorf("reschedule mail to %v, want candidate and interviewer", got)
	}

	// a session can move within its own slot
	shift := first.EndTime.Add(-10 * time.Minute)
	if _, err := f.svc.UpdateSession(context.Background(), first.ID, interview.UpdateSessionRequest{EndTime: &shift}); err != nil {
		t.Errorf("shrinking a session should not conflict with itself: %v", err)
	}

	reversed := t0.Add(-time.Hour)
	_, err = f.svc.UpdateSession(context.Background(), first.ID, interview.UpdateSessionRequest{EndTime: &reversed})
	wantCode(t, err, interview.CodeInvalidTimeRange)
}

func TestDeleteSession(t *testing.T) {
	f := newFixture(t)
	keep, _ := f.schedule("a1", "r1", t0, 30)
	drop, err := f.schedule("a1", "r1", t0.Add(time.Hour), 30)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.svc.DeleteSession(context.Background(), drop.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	ids := f.onboardingIDs(t, "a1")
	if len(ids) != 1 || ids[0] != keep.ID {
		t.Errorf("onboarding list = %v, want only %s", ids, keep.ID)
	}

	if err := f.svc.DeleteSession(context.Background(), keep.ID); err != nil {
		t.Fatal(err)
	}
	if ids := f.onboardingIDs(t, "a1"); len(ids) != 0 {
		t.Errorf("onboarding list = %v, want empty", ids)
	}

	last := f.publisher.events[len(f.publisher.events)-1]
	if last.Type != interview.EventSessionDeleted || last.SessionID != keep.ID {
		t.Errorf("last event = %+v, want deleted %s", last, keep.ID)
	}
}

func TestDeleteSession_NotFoundLeavesOnboarding(t *testing.T) {
	f := newFixture(t)
	s, _ := f.schedule("a1", "r1", t0, 30)

	err := f.svc.DeleteSession(context.Background(), "missing")
	wantCode(t, err, interview.CodeSessionNotFound)

	ids := f.onboardingIDs(t, "a1")
	if len(ids) != 1 || ids[0] != s.ID {
		t.Errorf("onboarding list changed: %v", ids)
	}
}

// ============================================================================
// Lifecycle
// ============================================================================

func TestLifecycle_CompletionNeedsOutcome(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, _ := f.schedule("a1", "r1", t0, 30)

	_, err := f.svc.UpdateStatus(ctx, s.ID, "completed")
	wantCode(t, err, interview.CodeInvalidTransition)

	if _, err := f.svc.UpdateOutcome(ctx, s.ID, "selected"); err != nil {
		t.Fatalf("UpdateOutcome: %v", err)
	}
	done, err := f.svc.UpdateStatus(ctx, s.ID, "completed")
	if err != nil {
		t.Fatalf("UpdateStatus after outcome: %v", err)
	}
	if done.Status != interview.StatusCompleted || done.Outcome != interview.OutcomeSelected {
		t.Errorf("session = %s/%s", done.Status, done.Outcome)
	}

	_, err = f.svc.UpdateOutcome(ctx, s.ID, "pending")
	wantCode(t, err, interview.CodeInvalidTransition)

	stored, _ := f.store.Sessions().FindByID(ctx, s.ID)
	if stored.Outcome != interview.OutcomeSelected {
		t.Errorf("rejected change must not be stored, outcome = %s", stored.Outcome)
	}
}

func TestLifecycle_CombinedAppliesOutcomeFirst(t *testing.T) {
	f := newFixture(t)
	s, _ := f.schedule("a1", "r1", t0, 30)

	got, err := f.svc.ChangeStatus(context.Background(), s.ID, interview.UpdateStatusRequest{
		Status:  ptrx.String("completed"),
		Outcome: ptrx.String("hold"),
	})
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if got.Status != interview.StatusCompleted || got.Outcome != interview.OutcomeHold {
		t.Errorf("session = %s/%s, want completed/hold", got.Status, got.Outcome)
	}
}

func TestLifecycle_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, _ := f.schedule("a1", "r1", t0, 30)

	_, err := f.svc.UpdateStatus(ctx, s.ID, "archived")
	wantCode(t, err, interview.CodeInvalidStatus)

	_, err = f.svc.UpdateOutcome(ctx, s.ID, "maybe")
	wantCode(t, err, interview.CodeInvalidOutcome)

	_, err = f.svc.ChangeStatus(ctx, s.ID, interview.UpdateStatusRequest{})
	wantCode(t, err, interview.CodeInvalidRequest)

	_, err = f.svc.UpdateStatus(ctx, "missing", "scheduled")
	wantCode(t, err, interview.CodeSessionNotFound)

	// flat graph: any status may follow any other
	for _, st := range []string{"in_progress", "rescheduled", "scheduled"} {
		if _, err := f.svc.UpdateStatus(ctx, s.ID, st); err != nil {
			t.Errorf("UpdateStatus(%s): %v", st, err)
		}
	}
}

func TestLifecycle_CancelNotifies(t *testing.T) {
	f := newFixture(t)
	s, _ := f.schedule("a1", "r1", t0, 30)

	if _, err := f.svc.UpdateStatus(context.Background(), s.ID, "cancelled"); err != nil {
		t.Fatal(err)
	}
	got := f.notifier.recipients(notifx.TemplateSessionCancelled)
	if len(got) != 2 {
		t.Errorf("cancellation mail to %v, want candidate and interviewer", got)
	}

	// cancelling again sends nothing new
	if _, err := f.svc.UpdateStatus(context.Background(), s.ID, "cancelled"); err != nil {
		t.Fatal(err)
	}
	if again := f.notifier.recipients(notifx.TemplateSessionCancelled); len(again) != 2 {
		t.Errorf("repeated cancel should not notify, got %v", again)
	}
}

// ============================================================================
// Queries
// ============================================================================

func TestListByInterviewer_Window(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	late, _ := f.schedule("a2", "r1", t0.Add(4*time.Hour), 60)
	early, _ := f.schedule("a1", "r1", t0, 60)
	mid, _ := f.schedule("a1", "r1", t0.Add(2*time.Hour), 60)
	if _, err := f.schedule("a2", "r2", t0, 60); err != nil {
		t.Fatal(err)
	}

	ptr := func(d time.Duration) *time.Time { v := t0.Add(d); return &v }

	tests := []struct {
		name string
		from *time.Time
		to   *time.Time
		want []kernel.SessionID
	}{
		{name: "no bounds", want: []kernel.SessionID{early.ID, mid.ID, late.ID}},
		{name: "from only", from: ptr(90 * time.Minute), want: []kernel.SessionID{mid.ID, late.ID}},
		{name: "to only", to: ptr(2 * time.Hour), want: []kernel.SessionID{early.ID, mid.ID}},
		{name: "partial overlap", from: ptr(30 * time.Minute), to: ptr(150 * time.Minute), want: []kernel.SessionID{early.ID, mid.ID}},
		{name: "from at end excludes", from: ptr(time.Hour), to: ptr(90 * time.Minute), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.ListByInterviewer(ctx, "u1", tt.from, tt.to)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d sessions, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i].ID != tt.want[i] {
					t.Errorf("got[%d] = %s, want %s", i, got[i].ID, tt.want[i])
				}
			}
		})
	}

	_, err := f.svc.ListByInterviewer(ctx, "u1", ptr(time.Hour), ptr(0))
	wantCode(t, err, interview.CodeInvalidWindow)
}

func TestListByApplication_Sorted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	second, _ := f.schedule("a1", "r2", t0.Add(3*time.Hour), 30)
	first, _ := f.schedule("a1", "r1", t0, 30)

	got, err := f.svc.ListByApplication(ctx, "a1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != first.ID || got[1].ID != second.ID {
		t.Errorf("order wrong: %+v", got)
	}

	_, err = f.svc.ListByApplication(ctx, "nope")
	wantCode(t, err, application.CodeApplicationNotFound)
}

// ============================================================================
// Rounds
// ============================================================================

func TestRounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateRound(ctx, interview.CreateRoundRequest{Name: "Tech", RoundNumber: 2, InterviewerID: "ghost"})
	wantCode(t, err, user.CodeUserNotFound)

	_, err = f.svc.CreateRound(ctx, interview.CreateRoundRequest{Name: "Tech", RoundNumber: 0, InterviewerID: "u1"})
	wantCode(t, err, interview.CodeInvalidRequest)

	round, err := f.svc.CreateRound(ctx, interview.CreateRoundRequest{Name: "Tech", RoundNumber: 2, InterviewerID: "u2"})
	if err != nil {
		t.Fatal(err)
	}

	mine, err := f.svc.ListRoundsByInterviewer(ctx, "u2")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 {
		t.Errorf("u2 rounds = %d, want 2", len(mine))
	}

	if _, err := f.schedule("a1", round.ID.String(), t0, 30); err != nil {
		t.Fatal(err)
	}
	wantCode(t, f.svc.DeleteRound(ctx, round.ID), interview.CodeRoundInUse)

	busy, err := f.svc.HasAssignments(ctx, "u2")
	if err != nil || !busy {
		t.Errorf("HasAssignments(u2) = %v, %v; want true", busy, err)
	}
}

// countHook runs onCount after the first CountByRound, between the count and
// whatever the caller does next.
type countHook struct {
	interview.SessionRepository
	once    sync.Once
	onCount func()
}

func (h *countHook) CountByRound(ctx context.Context, id kernel.RoundID) (int, error) {
	n, err := h.SessionRepository.CountByRound(ctx, id)
	h.once.Do(h.onCount)
	return n, err
}

func TestDeleteRound_ScheduleDuringDelete(t *testing.T) {
	var (
		f         *fixture
		scheduled = make(chan error, 1)
	)
	hook := &countHook{}
	hook.onCount = func() {
		started := make(chan struct{})
		go func() {
			close(started)
			_, err := f.schedule("a1", "r1", t0, 30)
			scheduled <- err
		}()
		<-started
		time.Sleep(20 * time.Millisecond)
	}
	f = newWrappedFixture(t, nil, func(repo interview.SessionRepository) interview.SessionRepository {
		hook.SessionRepository = repo
		return hook
	})
	ctx := context.Background()

	if err := f.svc.DeleteRound(ctx, "r1"); err != nil {
		t.Fatalf("DeleteRound: %v", err)
	}
	wantCode(t, <-scheduled, interview.CodeRoundNotFound)

	sessions, err := f.store.Sessions().ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 0 {
		t.Errorf("%d sessions reference the deleted round", len(sessions))
	}
}
