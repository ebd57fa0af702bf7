package models

// Slice names of the root state aggregate. They double as JSON keys of the
// persisted document.
const (
	SliceAuth = "auth"
	SliceUser = "user"
	SliceSync = "sync"
)

// AuthState is the persisted authentication slice.
type AuthState struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"isLoading"`
	Error           string `json:"error"`
	AccessToken     string `json:"accessToken"`
}

// InitialAuthState is the state before any login and after logout.
func InitialAuthState() AuthState {
	return AuthState{}
}

// Profile is the backend user profile, a superset of User.
type Profile struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Image       string         `json:"image,omitempty"`
	Role        string         `json:"role,omitempty"`
	Bio         string         `json:"bio,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	Address     string         `json:"address,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
	LastSync    string         `json:"lastSync,omitempty"`
}

// ProfilePatch is a partial profile update, also used as the PUT
// /user/profile body. Nil fields are left untouched.
type ProfilePatch struct {
	Email       *string        `json:"email,omitempty"`
	Name        *string        `json:"name,omitempty"`
	Image       *string        `json:"image,omitempty"`
	Bio         *string        `json:"bio,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Address     *string        `json:"address,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return p.Email == nil && p.Name == nil && p.Image == nil && p.Bio == nil &&
		p.Phone == nil && p.Address == nil && p.Preferences == nil
}

// Apply returns pr with the non-nil patch fields set. Preferences replace
// the previous map wholesale.
func (p ProfilePatch) Apply(pr Profile) Profile {
	if p.Email != nil {
		pr.Email = *p.Email
	}
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Image != nil {
		pr.Image = *p.Image
	}
	if p.Bio != nil {
		pr.Bio = *p.Bio
	}
	if p.Phone != nil {
		pr.Phone = *p.Phone
	}
	if p.Address != nil {
		pr.Address = *p.Address
	}
	if p.Preferences != nil {
		pr.Preferences = p.Preferences
	}
	return pr
}

// UserProfileState is the persisted profile slice.
type UserProfileState struct {
	Profile     *Profile `json:"profile"`
	IsLoading   bool     `json:"isLoading"`
	Error       string   `json:"error"`
	LastUpdated string   `json:"lastUpdated"`
}

func InitialUserProfileState() UserProfileState {
	return UserProfileState{}
}

// SyncState reports the backend user sync. It lives only in memory.
type SyncState struct {
	InFlight     bool   `json:"inFlight"`
	LastUserID   string `json:"lastUserId"`
	LastSyncedAt string `json:"lastSyncedAt"`
	LastError    string `json:"lastError"`
}

func InitialSyncState() SyncState {
	return SyncState{}
}

// RootState aggregates every slice of the client store.
type RootState struct {
	Auth AuthState        `json:"auth"`
	User UserProfileState `json:"user"`
	Sync SyncState        `json:"sync"`
}

func InitialRootState() RootState {
	return RootState{
		Auth: InitialAuthState(),
		User: InitialUserProfileState(),
		Sync: InitialSyncState(),
	}
}

// Clone returns a copy that shares no pointers or maps with s.
func (s RootState) Clone() RootState {
	out := s
	if s.Auth.User != nil {
		u := *s.Auth.User
		out.Auth.User = &u
	}
	if s.User.Profile != nil {
		p := *s.User.Profile
		if p.Preferences != nil {
			prefs := make(map[string]any, len(p.Preferences))
			for k, v := range p.Preferences {
				prefs[k] = v
			}
			p.Preferences = prefs
		}
		out.User.Profile = &p
	}
	return out
}
