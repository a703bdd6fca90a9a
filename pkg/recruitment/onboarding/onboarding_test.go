package onboarding_test

import (
	"testing"

	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding"
)

func TestAttach_Idempotent(t *testing.T) {
	o := onboarding.New("a1")

	if !o.Attach("s1") {
		t.Error("first Attach should change the list")
	}
	if o.Attach("s1") {
		t.Error("second Attach of the same id should be a no-op")
	}
	o.Attach("s2")

	want := []kernel.SessionID{"s1", "s2"}
	got := o.SessionIDs()
	if len(got) != len(want) {
		t.Fatalf("SessionIDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SessionIDs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDetach_KeepsOthers(t *testing.T) {
	o := onboarding.New("a1")
	o.Attach("s1")
	o.Attach("s2")
	o.Attach("s3")

	if !o.Detach("s2") {
		t.Error("Detach of a present id should change the list")
	}
	if o.Contains("s2") {
		t.Error("s2 should be gone")
	}
	if !o.Contains("s1") || !o.Contains("s3") {
		t.Errorf("other ids should stay, got %v", o.InterviewSessionIDs)
	}
	if o.Detach("missing") {
		t.Error("Detach of an absent id should be a no-op")
	}
}

func TestDetach_EmptyListKeepsRecord(t *testing.T) {
	o := onboarding.New("a1")
	o.Attach("s1")
	o.Detach("s1")

	if len(o.InterviewSessionIDs) != 0 {
		t.Errorf("list should be empty, got %v", o.InterviewSessionIDs)
	}
	if o.ApplicationID != "a1" || o.ID == "" {
		t.Error("record identity should survive an empty list")
	}
}
