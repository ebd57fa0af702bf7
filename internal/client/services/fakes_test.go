package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophsync/internal/client/models"
)

// fakeAPI implements every API interface used by the services.
type fakeAPI struct {
	mu sync.Mutex

	// release, when set, gates SyncUser until a value is received.
	release chan struct{}
	started chan models.SyncPayload

	syncCalls []models.SyncPayload
	syncRet   *models.User
	syncErr   error

	loginRet    *models.LoginResponse
	loginErr    error
	registerRet *models.User
	registerErr error
	logoutErr   error
	logoutCalls int

	profile     *models.Profile
	profileErr  error
	lastPatch   models.ProfilePatch
	users       []models.User
	usersErr    error
	userByID    map[string]models.User
	lastUserArg string
}

func (f *fakeAPI) SyncUser(ctx context.Context, p models.SyncPayload) (*models.User, error) {
	f.mu.Lock()
	f.syncCalls = append(f.syncCalls, p)
	release, started := f.release, f.started
	ret, err := f.syncRet, f.syncErr
	f.mu.Unlock()

	if started != nil {
		started <- p
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return ret, err
}

func (f *fakeAPI) syncCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.syncCalls)
}

func (f *fakeAPI) setSyncErr(err error) {
	f.mu.Lock()
	f.syncErr = err
	f.mu.Unlock()
}

func (f *fakeAPI) Login(context.Context, string, string) (*models.LoginResponse, error) {
	return f.loginRet, f.loginErr
}

func (f *fakeAPI) Register(_ context.Context, r models.RegisterRequest) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	if f.registerRet != nil {
		return f.registerRet, nil
	}
	return &models.User{ID: "new", Email: r.Email, Name: r.Name}, nil
}

func (f *fakeAPI) Logout(context.Context) error {
	f.mu.Lock()
	f.logoutCalls++
	f.mu.Unlock()
	return f.logoutErr
}

func (f *fakeAPI) GetProfile(context.Context) (*models.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeAPI) UpdateProfile(_ context.Context, patch models.ProfilePatch) (*models.Profile, error) {
	f.lastPatch = patch
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p := patch.Apply(*f.profile)
	f.profile = &p
	return &p, nil
}

func (f *fakeAPI) GetUsers(context.Context) ([]models.User, error) {
	return f.users, f.usersErr
}

func (f *fakeAPI) GetUserByID(_ context.Context, id string) (*models.User, error) {
	f.lastUserArg = id
	u, ok := f.userByID[id]
	if !ok {
		return nil, errNotFound
	}
	return &u, nil
}

// fakeSessions records published events and remembers the latest one.
type fakeSessions struct {
	mu        sync.Mutex
	current   models.SessionEvent
	published []models.SessionEvent
	err       error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{current: models.SessionEvent{Status: models.StatusUnauthenticated}}
}

func (s *fakeSessions) Publish(_ context.Context, ev models.SessionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.current = ev
	s.published = append(s.published, ev)
	return nil
}

func (s *fakeSessions) Current() models.SessionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

type resetCounter struct{ n int }

func (r *resetCounter) Reset() { r.n++ }

func authenticated(id, provider, token string) models.SessionEvent {
	return models.SessionEvent{
		Status: models.StatusAuthenticated,
		Session: &models.Session{
			User:        &models.SessionUser{ID: id, Email: id + "@example.com", Name: "User " + id, Provider: provider},
			AccessToken: token,
		},
	}
}
