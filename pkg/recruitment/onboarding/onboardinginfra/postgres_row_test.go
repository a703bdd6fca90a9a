package onboardinginfra

import (
	"testing"

	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding"
)

func TestOnboardingRow(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
	}{
		{name: "nil list", ids: nil},
		{name: "empty list", ids: []string{}},
		{name: "two sessions", ids: []string{"s1", "s2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := onboarding.New("a1")
			o.InterviewSessionIDs = tt.ids

			row := toRow(o)
			// a nil pq.StringArray is written as NULL, the column is NOT NULL
			if row.InterviewSessionIDs == nil {
				t.Fatal("row list must not be nil")
			}
			v, err := row.InterviewSessionIDs.Value()
			if err != nil || v == nil {
				t.Fatalf("Value() = %v, %v; want a text[] literal", v, err)
			}

			back := row.toEntity()
			if back.InterviewSessionIDs == nil || len(back.InterviewSessionIDs) != len(tt.ids) {
				t.Errorf("entity list = %#v, want %d ids", back.InterviewSessionIDs, len(tt.ids))
			}
			if back.ID != o.ID || back.ApplicationID != "a1" {
				t.Errorf("entity = %+v", back)
			}
		})
	}
}
