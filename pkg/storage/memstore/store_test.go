package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/iam/user"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job"
	"github.com/Abraxas-365/hrms/pkg/storage/memstore"
)

var t0 = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func session(id, app, interviewer string, start time.Time, minutes int) *interview.Session {
	return &interview.Session{
		ID:            kernel.NewSessionID(id),
		ApplicationID: kernel.NewApplicationID(app),
		RoundID:       "r1",
		InterviewerID: kernel.NewUserID(interviewer),
		StartTime:     start,
		EndTime:       start.Add(time.Duration(minutes) * time.Minute),
		Status:        interview.StatusScheduled,
		Outcome:       interview.OutcomePending,
	}
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context) error {
		if err := store.Sessions().Create(ctx, session("s1", "a1", "u1", t0, 30)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTx error = %v, want boom", err)
	}
	if _, err := store.Sessions().FindByID(ctx, "s1"); !errx.IsCode(err, interview.CodeSessionNotFound) {
		t.Errorf("session should be rolled back, FindByID err = %v", err)
	}
}

func TestWithinTx_Commits(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	err := store.WithinTx(ctx, func(ctx context.Context) error {
		// nested calls join the outer transaction
		return store.WithinTx(ctx, func(ctx context.Context) error {
			return store.Sessions().Create(ctx, session("s1", "a1", "u1", t0, 30))
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Sessions().FindByID(ctx, "s1"); err != nil {
		t.Errorf("committed session missing: %v", err)
	}
}

func TestSessions_ReturnsCopies(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	s := session("s1", "a1", "u1", t0, 30)
	_ = store.Sessions().Create(ctx, s)

	s.Notes = "changed after insert"
	got, _ := store.Sessions().FindByID(ctx, "s1")
	got.Feedback = "changed after read"

	again, _ := store.Sessions().FindByID(ctx, "s1")
	if again.Notes != "" || again.Feedback != "" {
		t.Errorf("stored session was mutated through a pointer: %+v", again)
	}
}

func TestSessions_FindConflict(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	_ = store.Sessions().Create(ctx, session("late", "a1", "u1", t0.Add(30*time.Minute), 60))
	_ = store.Sessions().Create(ctx, session("early", "a2", "u2", t0, 60))

	tests := []struct {
		name        string
		interviewer string
		app         string
		start       time.Time
		minutes     int
		exclude     string
		want        string
	}{
		{name: "interviewer overlap", interviewer: "u1", app: "a9", start: t0.Add(time.Hour), minutes: 10, want: "late"},
		{name: "candidate overlap", interviewer: "u9", app: "a2", start: t0.Add(10 * time.Minute), minutes: 10, want: "early"},
		{name: "earliest of both", interviewer: "u1", app: "a2", start: t0.Add(40 * time.Minute), minutes: 10, want: "early"},
		{name: "touching is free", interviewer: "u1", app: "a1", start: t0.Add(90 * time.Minute), minutes: 30},
		{name: "excluded self", interviewer: "u1", app: "a1", start: t0.Add(30 * time.Minute), minutes: 60, exclude: "late"},
		{name: "other people", interviewer: "u9", app: "a9", start: t0, minutes: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := interview.NewTimeRange(tt.start, tt.start.Add(time.Duration(tt.minutes)*time.Minute))
			if err != nil {
				t.Fatal(err)
			}
			got, err := store.Sessions().FindConflict(ctx, kernel.NewUserID(tt.interviewer), kernel.NewApplicationID(tt.app), tr, kernel.NewSessionID(tt.exclude))
			if err != nil {
				t.Fatal(err)
			}
			switch {
			case tt.want == "" && got != nil:
				t.Errorf("got conflict %s, want none", got.ID)
			case tt.want != "" && (got == nil || got.ID.String() != tt.want):
				t.Errorf("got %v, want %s", got, tt.want)
			}
		})
	}
}

func TestApplications_EmailUnique(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	_ = store.Applications().Create(ctx, &application.Application{ID: "a1", Email: "ana@example.com"})
	err := store.Applications().Create(ctx, &application.Application{ID: "a2", Email: "ANA@example.com"})
	if !errx.IsCode(err, application.CodeApplicationAlreadyExists) {
		t.Errorf("duplicate email: got %v", err)
	}
}

func TestUsers_SaveAndCount(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	if err := store.Users().Save(ctx, user.User{ID: "u1", Email: "u1@example.com"}); err != nil {
		t.Fatal(err)
	}
	// same id updates in place
	if err := store.Users().Save(ctx, user.User{ID: "u1", Email: "u1@example.com", Name: "Uma"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Users().Save(ctx, user.User{ID: "u2", Email: "u1@example.com"}); err == nil {
		t.Error("second user with the same email should be rejected")
	}

	n, _ := store.Users().Count(ctx)
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
	u, err := store.Users().FindByEmail(ctx, "u1@example.com")
	if err != nil || u.Name != "Uma" {
		t.Errorf("FindByEmail = %+v, %v", u, err)
	}
}

func TestRead_WaitsForOpenTransaction(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	inside := make(chan struct{})
	finish := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- store.WithinTx(ctx, func(ctx context.Context) error {
			if err := store.Jobs().Create(ctx, &job.Job{ID: "j1", Title: "Temp", Status: job.StatusOpen}); err != nil {
				return err
			}
			// reads inside the transaction see its own writes
			if _, err := store.Jobs().FindByID(ctx, "j1"); err != nil {
				return err
			}
			close(inside)
			<-finish
			return errors.New("boom")
		})
	}()
	<-inside

	listed := make(chan int, 1)
	go func() {
		jobs, _ := store.Jobs().List(ctx, "")
		listed <- len(jobs)
	}()

	select {
	case n := <-listed:
		t.Fatalf("List returned %d jobs while the transaction was open", n)
	case <-time.After(50 * time.Millisecond):
	}

	close(finish)
	if err := <-txDone; err == nil || err.Error() != "boom" {
		t.Fatalf("WithinTx error = %v, want boom", err)
	}
	if n := <-listed; n != 0 {
		t.Errorf("List after rollback = %d jobs, want 0", n)
	}
}
