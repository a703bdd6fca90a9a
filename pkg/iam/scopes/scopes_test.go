package scopes_test

import (
	"slices"
	"testing"

	"github.com/Abraxas-365/hrms/pkg/iam/scopes"
	"github.com/Abraxas-365/hrms/pkg/kernel"
)

func TestRoleScopesAreValid(t *testing.T) {
	for role, granted := range scopes.RoleScopes {
		if invalid := scopes.InvalidScopes(granted); len(invalid) > 0 {
			t.Errorf("role %q grants undefined scopes %v", role, invalid)
		}
	}
}

func TestForRole_ReturnsCopy(t *testing.T) {
	a := scopes.ForRole("hr")
	a[0] = "mutated"
	if scopes.ForRole("hr")[0] == "mutated" {
		t.Error("ForRole should not expose the shared slice")
	}
	if len(scopes.ForRole("unknown")) != 0 {
		t.Error("unknown role should have no scopes")
	}
}

func TestInterviewerCannotSchedule(t *testing.T) {
	granted := scopes.ForRole("interviewer")
	if kernel.ScopeMatches(granted, scopes.ScopeInterviewsSchedule) {
		t.Error("interviewers should not schedule sessions")
	}
	if !kernel.ScopeMatches(granted, scopes.ScopeInterviewsConduct) {
		t.Error("interviewers should record outcomes")
	}
}

func TestExpandWildcardScope(t *testing.T) {
	got := scopes.ExpandWildcardScope(scopes.ScopeJobsAll)
	want := []string{scopes.ScopeJobsDelete, scopes.ScopeJobsRead, scopes.ScopeJobsWrite}
	if !slices.Equal(got, want) {
		t.Errorf("ExpandWildcardScope(jobs:*) = %v, want %v", got, want)
	}
	if got := scopes.ExpandWildcardScope(scopes.ScopeJobsRead); !slices.Equal(got, []string{scopes.ScopeJobsRead}) {
		t.Errorf("non-wildcard scope should expand to itself, got %v", got)
	}
}
