// Package models defines client-side data models: identity-provider sessions,
// the canonical user record sent to the backend, the persisted state slices
// and API request/response bodies.
package models

// SessionStatus mirrors the lifecycle reported by the identity provider.
type SessionStatus string

const (
	StatusLoading         SessionStatus = "loading"
	StatusAuthenticated   SessionStatus = "authenticated"
	StatusUnauthenticated SessionStatus = "unauthenticated"
)

// SessionUser is the user part of a provider-issued session.
type SessionUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Role     string `json:"role,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// Session is issued by the identity provider; this module only reads it.
type Session struct {
	User        *SessionUser `json:"user,omitempty"`
	AccessToken string       `json:"accessToken,omitempty"`
}

// SessionEvent is one notification on the session-change stream.
type SessionEvent struct {
	Status  SessionStatus
	Session *Session
}

// AuthenticatedUser returns the session user when the event describes an
// authenticated session that carries one.
func (e SessionEvent) AuthenticatedUser() (SessionUser, bool) {
	if e.Status != StatusAuthenticated || e.Session == nil || e.Session.User == nil {
		return SessionUser{}, false
	}
	return *e.Session.User, true
}
