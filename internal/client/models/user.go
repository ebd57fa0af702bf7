package models

// ProviderCredentials is the provider recorded for email/password logins and
// for sessions that carry no provider at all.
const ProviderCredentials = "credentials"

// User is the canonical, provider-agnostic user record.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Role     string `json:"role,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// UserPatch carries a partial update; nil fields are left untouched.
type UserPatch struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Image    *string `json:"image,omitempty"`
	Role     *string `json:"role,omitempty"`
	Provider *string `json:"provider,omitempty"`
}

// Apply returns u with the non-nil patch fields set.
func (p UserPatch) Apply(u User) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Image != nil {
		u.Image = *p.Image
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Provider != nil {
		u.Provider = *p.Provider
	}
	return u
}

// SyncPayload is the body of POST /user-sync. OAuthID and OAuthProvider are
// only set for sessions that came from an OAuth provider.
type SyncPayload struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Image         string `json:"image,omitempty"`
	Role          string `json:"role,omitempty"`
	Provider      string `json:"provider"`
	OAuthID       string `json:"oauthId,omitempty"`
	OAuthProvider string `json:"oauthProvider,omitempty"`
}

// User drops the OAuth linkage fields.
func (p SyncPayload) User() User {
	return User{
		ID:       p.ID,
		Email:    p.Email,
		Name:     p.Name,
		Image:    p.Image,
		Role:     p.Role,
		Provider: p.Provider,
	}
}
