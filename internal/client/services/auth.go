package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophsync/internal/client/models"
	"github.com/dmitrijs2005/gophsync/internal/client/session"
	"github.com/dmitrijs2005/gophsync/internal/client/store"
	"github.com/dmitrijs2005/gophsync/internal/logging"
)

// AuthAPI is the part of the API client used by AuthService.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Register(ctx context.Context, r models.RegisterRequest) (*models.User, error)
	Logout(ctx context.Context) error
}

// SessionPublisher is the writable side of the session-change stream.
type SessionPublisher interface {
	Publish(ctx context.Context, ev models.SessionEvent) error
	Current() models.SessionEvent
}

// GuardResetter is implemented by SyncService.
type GuardResetter interface {
	Reset()
}

// AuthService acts as the credentials identity provider of the CLI: a
// successful login is published on the session stream, where the sync guard
// picks it up.
type AuthService struct {
	api      AuthAPI
	sessions SessionPublisher
	store    *store.Store
	guard    GuardResetter
	log      logging.Logger
}

func NewAuthService(api AuthAPI, sessions SessionPublisher, st *store.Store, guard GuardResetter, log logging.Logger) *AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &AuthService{api: api, sessions: sessions, store: st, guard: guard, log: log}
}

// Authenticated reports whether the current session carries a user.
func (a *AuthService) Authenticated() bool {
	_, ok := a.sessions.Current().AuthenticatedUser()
	return ok
}

// Login authenticates with email and password and publishes the resulting
// session. Auth loading and error state are tracked in the store.
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if a.Authenticated() {
		return nil, ErrAlreadyAuthenticated
	}

	a.store.ClearAuthError()
	a.store.SetAuthLoading(true)

	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.store.SetAuthError(err.Error())
		return nil, fmt.Errorf("login: %w", err)
	}

	sess := resp.Session()
	if sess.User == nil || sess.User.ID == "" {
		a.store.SetAuthError(ErrInvalidLogin.Error())
		return nil, ErrInvalidLogin
	}

	if err := a.publish(ctx, sess); err != nil {
		a.store.SetAuthError(err.Error())
		return nil, err
	}

	user := session.Normalize(*sess.User).User()
	a.store.SetUser(user)
	if sess.AccessToken != "" {
		a.store.SetAccessToken(sess.AccessToken)
	}
	a.store.SetAuthLoading(false)

	a.log.Info(ctx, "logged in", "user_id", user.ID)
	return &user, nil
}

// Register creates an account. It does not log in.
func (a *AuthService) Register(ctx context.Context, r models.RegisterRequest) (*models.User, error) {
	a.store.ClearAuthError()
	a.store.SetAuthLoading(true)

	u, err := a.api.Register(ctx, r)
	if err != nil {
		a.store.SetAuthError(err.Error())
		return nil, fmt.Errorf("register: %w", err)
	}

	a.store.SetAuthLoading(false)
	return u, nil
}

// Logout ends the session. The backend call is best effort; local state is
// cleared regardless of its outcome.
func (a *AuthService) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		a.log.Warn(ctx, "backend logout failed", "error", err)
	}

	if a.guard != nil {
		a.guard.Reset()
	}

	err := a.sessions.Publish(ctx, models.SessionEvent{Status: models.StatusUnauthenticated})

	a.store.Logout()
	a.store.ClearProfile()

	if err != nil {
		return fmt.Errorf("publish logout: %w", err)
	}
	return nil
}

// Restore republishes the session held by a rehydrated store so the guard
// syncs it again. It reports whether a session was restored.
func (a *AuthService) Restore(ctx context.Context) (bool, error) {
	st := a.store.State().Auth
	if !st.IsAuthenticated || st.User == nil || st.User.ID == "" {
		return false, nil
	}

	u := st.User
	provider := u.Provider
	// the normalizer adds "credentials" for provider-less logins; undo it so
	// the restored session normalizes to the same record
	if provider == models.ProviderCredentials {
		provider = ""
	}

	sess := models.Session{
		User: &models.SessionUser{
			ID:       u.ID,
			Email:    u.Email,
			Name:     u.Name,
			Image:    u.Image,
			Role:     u.Role,
			Provider: provider,
		},
		AccessToken: st.AccessToken,
	}
	if err := a.publish(ctx, sess); err != nil {
		return false, err
	}

	a.log.Info(ctx, "session restored", "user_id", u.ID)
	return true, nil
}

func (a *AuthService) publish(ctx context.Context, sess models.Session) error {
	ev := models.SessionEvent{Status: models.StatusAuthenticated, Session: &sess}
	if err := a.sessions.Publish(ctx, ev); err != nil {
		return fmt.Errorf("publish session: %w", err)
	}
	return nil
}
