package kernel

import "slices"

// AuthContext is the authenticated principal attached to a request.
type AuthContext struct {
	UserID *UserID  `json:"user_id,omitempty"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Role   string   `json:"role"`
	Scopes []string `json:"scopes"`
}

// IsValid verifica que el contexto tenga un usuario.
func (a *AuthContext) IsValid() bool {
	return a.UserID != nil && *a.UserID != ""
}

// HasScope supports exact matches, the global "*" and "prefix:*" wildcards.
func (a *AuthContext) HasScope(scope string) bool {
	return ScopeMatches(a.Scopes, scope)
}

func (a *AuthContext) HasAnyScope(scopes ...string) bool {
	return slices.ContainsFunc(scopes, a.HasScope)
}

func (a *AuthContext) HasAllScopes(scopes ...string) bool {
	for _, scope := range scopes {
		if !a.HasScope(scope) {
			return false
		}
	}
	return true
}

// ScopeMatches reports whether any granted scope covers the required one.
func ScopeMatches(granted []string, scope string) bool {
	for _, s := range granted {
		if s == scope || s == "*" {
			return true
		}
		// "interviews:*" cubre "interviews:read"
		if len(s) > 2 && s[len(s)-2:] == ":*" {
			prefix := s[:len(s)-2]
			if len(scope) > len(prefix) && scope[:len(prefix)] == prefix && scope[len(prefix)] == ':' {
				return true
			}
		}
	}
	return false
}
