package kernel_test

import (
	"testing"

	"github.com/Abraxas-365/hrms/pkg/kernel"
)

func TestScopeMatches(t *testing.T) {
	tests := []struct {
		name    string
		granted []string
		scope   string
		want    bool
	}{
		{"exact", []string{"interviews:read"}, "interviews:read", true},
		{"global wildcard", []string{"*"}, "jobs:write", true},
		{"prefix wildcard", []string{"interviews:*"}, "interviews:schedule", true},
		{"prefix wildcard other resource", []string{"interviews:*"}, "jobs:read", false},
		{"prefix must end at colon", []string{"job:*"}, "jobs:read", false},
		{"no scopes", nil, "jobs:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kernel.ScopeMatches(tt.granted, tt.scope); got != tt.want {
				t.Errorf("ScopeMatches(%v, %q) = %v, want %v", tt.granted, tt.scope, got, tt.want)
			}
		})
	}
}

func TestAuthContext_IsValid(t *testing.T) {
	if (&kernel.AuthContext{}).IsValid() {
		t.Error("context without user should be invalid")
	}
	id := kernel.NewUserID("u-1")
	ctx := &kernel.AuthContext{UserID: &id, Scopes: []string{"applications:read"}}
	if !ctx.IsValid() {
		t.Error("context with user should be valid")
	}
	if !ctx.HasAnyScope("jobs:read", "applications:read") {
		t.Error("HasAnyScope should match the granted scope")
	}
	if ctx.HasAllScopes("jobs:read", "applications:read") {
		t.Error("HasAllScopes should fail when one scope is missing")
	}
}
