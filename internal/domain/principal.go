package domain

import "time"

const (
	// DefaultClientID is the client identifier granted to every authenticated caller.
	DefaultClientID = "puch-client"

	// ScopeAll grants access to every tool.
	ScopeAll = "*"
)

// Principal represents an authenticated caller.
// It is constructed per request and never stored.
type Principal struct {
	Token     string     `json:"-"`
	ClientID  string     `json:"client_id"`
	Scopes    []string   `json:"scopes"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// HasScope reports whether the principal was granted the given scope.
func (p *Principal) HasScope(scope string) bool {
	if p == nil {
		return false
	}
	for _, s := range p.Scopes {
		if s == ScopeAll || s == scope {
			return true
		}
	}
	return false
}
