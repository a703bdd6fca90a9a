package scopes

import (
	"maps"
	"slices"
	"strings"
)

// ScopeCategories combines common and domain-specific categories
var ScopeCategories map[string][]string

// ScopeDescriptions combines common and domain-specific descriptions
var ScopeDescriptions map[string]string

func init() {
	ScopeCategories = make(map[string][]string)
	maps.Copy(ScopeCategories, CommonScopeCategories)
	maps.Copy(ScopeCategories, DomainScopeCategories)

	ScopeDescriptions = make(map[string]string)
	maps.Copy(ScopeDescriptions, CommonScopeDescriptions)
	maps.Copy(ScopeDescriptions, DomainScopeDescriptions)
}

// ForRole returns a copy of the default scopes of a staff role.
func ForRole(role string) []string {
	return slices.Clone(RoleScopes[role])
}

// GetScopeDescription returns the description for a given scope
func GetScopeDescription(scope string) string {
	if desc, exists := ScopeDescriptions[scope]; exists {
		return desc
	}
	return "No description available"
}

// GetAllScopes returns all defined scopes, sorted.
func GetAllScopes() []string {
	all := []string{}
	for _, scopes := range ScopeCategories {
		all = append(all, scopes...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}

// ValidateScope checks if a scope is valid
func ValidateScope(scope string) bool {
	if scope == ScopeAll {
		return true
	}
	for _, scopes := range ScopeCategories {
		if slices.Contains(scopes, scope) {
			return true
		}
	}
	return false
}

// InvalidScopes returns the scopes that are not defined.
func InvalidScopes(scopes []string) []string {
	var invalid []string
	for _, s := range scopes {
		if !ValidateScope(s) {
			invalid = append(invalid, s)
		}
	}
	return invalid
}

// ExpandWildcardScope expands a wildcard scope to all matching scopes
// e.g., "jobs:*" -> ["jobs:read", "jobs:write", "jobs:delete"]
func ExpandWildcardScope(wildcardScope string) []string {
	if wildcardScope == ScopeAll {
		return GetAllScopes()
	}
	if !strings.HasSuffix(wildcardScope, ":*") {
		return []string{wildcardScope}
	}

	prefix := strings.TrimSuffix(wildcardScope, ":*") + ":"
	expanded := []string{}
	for _, scope := range GetAllScopes() {
		if strings.HasPrefix(scope, prefix) && scope != wildcardScope {
			expanded = append(expanded, scope)
		}
	}
	return expanded
}
