package interview_test

import (
	"testing"
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return t0.Add(time.Duration(minutes) * time.Minute)
}

func mustRange(t *testing.T, from, to int) interview.TimeRange {
	t.Helper()
	tr, err := interview.NewTimeRange(at(from), at(to))
	if err != nil {
		t.Fatalf("NewTimeRange(%d, %d) error = %v", from, to, err)
	}
	return tr
}

// ---------------------------------------------------------------------------
// TimeRange
// ---------------------------------------------------------------------------

func TestNewTimeRange_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
	}{
		{"reversed", at(60), at(0)},
		{"zero length", at(30), at(30)},
		{"missing start", time.Time{}, at(30)},
		{"missing end", at(0), time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := interview.NewTimeRange(tt.start, tt.end)
			if !errx.IsCode(err, interview.CodeInvalidTimeRange) {
				t.Errorf("NewTimeRange() error = %v, want INVALID_TIME_RANGE", err)
			}
			if !errx.IsType(err, errx.TypeValidation) {
				t.Errorf("error type should be validation, got %v", err)
			}
		})
	}
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b [2]int
		want bool
	}{
		{"partial overlap", [2]int{0, 60}, [2]int{30, 90}, true},
		{"contained", [2]int{0, 60}, [2]int{10, 20}, true},
		{"identical", [2]int{0, 60}, [2]int{0, 60}, true},
		{"touching end", [2]int{0, 60}, [2]int{60, 120}, false},
		{"touching start", [2]int{60, 120}, [2]int{0, 60}, false},
		{"disjoint", [2]int{0, 30}, [2]int{90, 120}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustRange(t, tt.a[0], tt.a[1])
			b := mustRange(t, tt.b[0], tt.b[1])
			if got := a.Overlaps(b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps() should be symmetric, got %v", got)
			}
		})
	}
}

func TestWindow_Includes(t *testing.T) {
	from, to := at(60), at(120)

	tests := []struct {
		name   string
		window interview.Window
		r      [2]int
		want   bool
	}{
		{"inside", interview.Window{From: &from, To: &to}, [2]int{70, 80}, true},
		{"straddles from", interview.Window{From: &from, To: &to}, [2]int{30, 90}, true},
		{"starts at to", interview.Window{From: &from, To: &to}, [2]int{120, 150}, true},
		{"ends at from", interview.Window{From: &from, To: &to}, [2]int{30, 60}, false},
		{"after to", interview.Window{From: &from, To: &to}, [2]int{130, 150}, false},
		{"open from", interview.Window{To: &to}, [2]int{0, 10}, true},
		{"open to", interview.Window{From: &from}, [2]int{500, 510}, true},
		{"unbounded", interview.Window{}, [2]int{0, 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.window.Includes(mustRange(t, tt.r[0], tt.r[1])); got != tt.want {
				t.Errorf("Includes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewWindow_FromAfterTo(t *testing.T) {
	from, to := at(120), at(60)
	if _, err := interview.NewWindow(&from, &to); !errx.IsType(err, errx.TypeValidation) {
		t.Errorf("NewWindow() error = %v, want validation error", err)
	}
	if _, err := interview.NewWindow(&to, &from); err != nil {
		t.Errorf("NewWindow() with ordered bounds should succeed, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

func TestParseSessionStatus(t *testing.T) {
	for _, s := range []string{"scheduled", "in_progress", "completed", "cancelled", "rescheduled", "Completed"} {
		if _, err := interview.ParseSessionStatus(s); err != nil {
			t.Errorf("ParseSessionStatus(%q) error = %v", s, err)
		}
	}
	if _, err := interview.ParseSessionStatus("done"); !errx.IsCode(err, interview.CodeInvalidStatus) {
		t.Errorf("ParseSessionStatus(done) error = %v, want INVALID_STATUS", err)
	}
}

func TestParseOutcome(t *testing.T) {
	for _, s := range []string{"selected", "rejected", "hold", "pending"} {
		if _, err := interview.ParseOutcome(s); err != nil {
			t.Errorf("ParseOutcome(%q) error = %v", s, err)
		}
	}
	if _, err := interview.ParseOutcome("maybe"); !errx.IsCode(err, interview.CodeInvalidOutcome) {
		t.Errorf("ParseOutcome(maybe) error = %v, want INVALID_OUTCOME", err)
	}
}

// ---------------------------------------------------------------------------
// Lifecycle rules
// ---------------------------------------------------------------------------

func newSession(t *testing.T) *interview.Session {
	t.Helper()
	round := &interview.Round{ID: "r1", InterviewerID: "u1"}
	return interview.NewSession("a1", round, mustRange(t, 0, 30))
}

func TestNewSession_Defaults(t *testing.T) {
	s := newSession(t)
	if s.Status != interview.StatusScheduled {
		t.Errorf("Status = %q, want scheduled", s.Status)
	}
	if s.Outcome != interview.OutcomePending {
		t.Errorf("Outcome = %q, want pending", s.Outcome)
	}
	if s.InterviewerID != "u1" {
		t.Errorf("InterviewerID = %q, should be taken from the round", s.InterviewerID)
	}
	if s.ID == "" {
		t.Error("ID should be generated")
	}
}

func TestChangeStatus_CompletedRequiresOutcome(t *testing.T) {
	s := newSession(t)

	err := s.ChangeStatus(interview.StatusCompleted)
	if !errx.IsCode(err, interview.CodeInvalidTransition) {
		t.Fatalf("ChangeStatus(completed) with pending outcome error = %v, want INVALID_TRANSITION", err)
	}
	if s.Status != interview.StatusScheduled {
		t.Errorf("status should be unchanged after a rejected transition, got %q", s.Status)
	}

	if err := s.ChangeOutcome(interview.OutcomeSelected); err != nil {
		t.Fatalf("ChangeOutcome(selected) error = %v", err)
	}
	if err := s.ChangeStatus(interview.StatusCompleted); err != nil {
		t.Errorf("ChangeStatus(completed) after outcome error = %v", err)
	}
}

func TestChangeOutcome_CompletedCannotReturnToPending(t *testing.T) {
	s := newSession(t)
	_ = s.ChangeOutcome(interview.OutcomeRejected)
	_ = s.ChangeStatus(interview.StatusCompleted)

	if err := s.ChangeOutcome(interview.OutcomePending); !errx.IsCode(err, interview.CodeInvalidTransition) {
		t.Errorf("ChangeOutcome(pending) on completed session error = %v, want INVALID_TRANSITION", err)
	}
	if err := s.ChangeOutcome(interview.OutcomeHold); err != nil {
		t.Errorf("ChangeOutcome(hold) on completed session error = %v", err)
	}
}

func TestChangeStatus_FlatGraph(t *testing.T) {
	statuses := []interview.SessionStatus{
		interview.StatusInProgress,
		interview.StatusCancelled,
		interview.StatusScheduled,
		interview.StatusRescheduled,
		interview.StatusInProgress,
	}
	s := newSession(t)
	for _, st := range statuses {
		if err := s.ChangeStatus(st); err != nil {
			t.Errorf("ChangeStatus(%q) error = %v", st, err)
		}
	}
}

func TestConflictsWith(t *testing.T) {
	base := newSession(t)

	sameInterviewer := interview.NewSession("a2", &interview.Round{ID: "r1", InterviewerID: "u1"}, mustRange(t, 15, 45))
	sameCandidate := interview.NewSession("a1", &interview.Round{ID: "r2", InterviewerID: "u2"}, mustRange(t, 15, 45))
	unrelated := interview.NewSession("a3", &interview.Round{ID: "r3", InterviewerID: "u3"}, mustRange(t, 15, 45))
	touching := interview.NewSession("a2", &interview.Round{ID: "r1", InterviewerID: "u1"}, mustRange(t, 30, 60))

	if !base.ConflictsWith(sameInterviewer) {
		t.Error("overlapping session with the same interviewer should conflict")
	}
	if !base.ConflictsWith(sameCandidate) {
		t.Error("overlapping session with the same candidate should conflict")
	}
	if base.ConflictsWith(unrelated) {
		t.Error("overlapping session with nobody in common should not conflict")
	}
	if base.ConflictsWith(touching) {
		t.Error("touching sessions should not conflict")
	}
	if base.ConflictsWith(base) {
		t.Error("a session should not conflict with itself")
	}
}

func TestErrSchedulingConflict_CarriesSessionID(t *testing.T) {
	err := interview.ErrSchedulingConflict(kernel.NewSessionID("s-1"))
	if err.Details["conflicting_session_id"] != "s-1" {
		t.Errorf("details = %v, want conflicting_session_id=s-1", err.Details)
	}
	if err.HTTPStatus != 409 {
		t.Errorf("HTTPStatus = %d, want 409", err.HTTPStatus)
	}
}
