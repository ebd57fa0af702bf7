package models

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginResponse is the backend login body. Backends disagree on field names,
// so both spellings are accepted and resolved by Session.
type LoginResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Avatar       string `json:"avatar"`
	ProfileImage string `json:"profileImage"`
	Role         string `json:"role"`
	AccessToken  string `json:"accessToken"`
}

// Session maps a credentials login into a provider-less session.
func (r LoginResponse) Session() Session {
	return Session{
		User: &SessionUser{
			ID:    firstNonEmpty(r.ID, r.UserID),
			Email: r.Email,
			Name:  firstNonEmpty(r.Name, r.Username),
			Image: firstNonEmpty(r.Avatar, r.ProfileImage),
			Role:  r.Role,
		},
		AccessToken: r.AccessToken,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
