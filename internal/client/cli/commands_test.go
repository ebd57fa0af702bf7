package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/gophsync/internal/client/models"
	"github.com/dmitrijs2005/gophsync/internal/client/persist"
	"github.com/dmitrijs2005/gophsync/internal/client/repositories/state"
	"github.com/dmitrijs2005/gophsync/internal/client/store"
	"github.com/dmitrijs2005/gophsync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	authenticated bool

	loginEmail, loginPass string
	loginErr              error

	registered  models.RegisterRequest
	registerErr error

	logoutCalls int
	logoutErr   error
}

func (f *fakeAuth) Authenticated() bool { return f.authenticated }

func (f *fakeAuth) Login(_ context.Context, email, password string) (*models.User, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.authenticated = true
	return &models.User{ID: "1", Email: email, Name: "Alice"}, nil
}

func (f *fakeAuth) Register(_ context.Context, r models.RegisterRequest) (*models.User, error) {
	f.registered = r
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: "2", Email: r.Email, Name: r.Name}, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	f.authenticated = false
	return f.logoutErr
}

func (f *fakeAuth) Restore(context.Context) (bool, error) { return false, nil }

type fakeProfile struct {
	profile models.Profile
	patch   models.ProfilePatch
	users   []models.User
	err     error
}

func (f *fakeProfile) Load(context.Context) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.profile, nil
}

func (f *fakeProfile) Update(_ context.Context, patch models.ProfilePatch) (*models.Profile, error) {
	f.patch = patch
	if f.err != nil {
		return nil, f.err
	}
	p := patch.Apply(f.profile)
	return &p, nil
}

func (f *fakeProfile) Users(context.Context) ([]models.User, error) { return f.users, f.err }

func (f *fakeProfile) User(_ context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: id, Email: id + "@example.com", Role: "admin", Provider: "github"}, nil
}

func newTestApp(t *testing.T, auth *fakeAuth, prof *fakeProfile, input string) (*App, *bytes.Buffer, *state.FileRepository) {
	t.Helper()
	repo, err := state.NewFileRepository(t.TempDir())
	require.NoError(t, err)

	st := store.New(models.InitialRootState())
	env := persist.New(repo, persist.WithKey("test"))
	env.Attach(st)

	var out bytes.Buffer
	return &App{
		log:            logging.Discard(),
		store:          st,
		envelope:       env,
		slots:          repo,
		authService:    auth,
		profileService: prof,
		reader:         bufio.NewReader(bytes.NewBufferString(input)),
		out:            &out,
	}, &out, repo
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func TestLoginCommand(t *testing.T) {
	stubPassword(t, "pw")
	auth := &fakeAuth{}
	a, out, _ := newTestApp(t, auth, &fakeProfile{}, "alice@example.com\n")

	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, "alice@example.com", auth.loginEmail)
	assert.Equal(t, "pw", auth.loginPass)
	assert.Contains(t, out.String(), "Logged in as Alice <alice@example.com>.")
	assert.True(t, a.isLoggedIn())
}

func TestLoginCommand_Error(t *testing.T) {
	stubPassword(t, "pw")
	boom := errors.New("api request failed: Unauthorized")
	a, _, _ := newTestApp(t, &fakeAuth{loginErr: boom}, &fakeProfile{}, "x@example.com\n")

	require.ErrorIs(t, a.Login(context.Background()), boom)
}

func TestRegisterCommand(t *testing.T) {
	stubPassword(t, "pw")
	auth := &fakeAuth{}
	a, out, _ := newTestApp(t, auth, &fakeProfile{}, "new@example.com\nNew User\n")

	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, models.RegisterRequest{Email: "new@example.com", Password: "pw", Name: "New User"}, auth.registered)
	assert.Contains(t, out.String(), "Registered new@example.com.")
	assert.False(t, auth.authenticated)
}

func TestLogoutCommand(t *testing.T) {
	auth := &fakeAuth{authenticated: true}
	a, out, _ := newTestApp(t, auth, &fakeProfile{}, "")

	require.NoError(t, a.Logout(context.Background()))
	assert.Equal(t, 1, auth.logoutCalls)
	assert.Contains(t, out.String(), "Logged out.")
}

func TestResetCommand_WipesPersistedState(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{authenticated: true}
	a, _, repo := newTestApp(t, auth, &fakeProfile{}, "")

	a.store.SetUser(models.User{ID: "1"})
	require.NoError(t, a.envelope.Flush(ctx))
	require.NoError(t, repo.Set(ctx, "legacy", []byte("old")))
	blob, err := repo.Get(ctx, persist.RootKey)
	require.NoError(t, err)
	require.NotNil(t, blob)

	require.NoError(t, a.Reset(ctx))

	blob, err = repo.Get(ctx, persist.RootKey)
	require.NoError(t, err)
	assert.Nil(t, blob)
	assert.Equal(t, 1, auth.logoutCalls)

	left, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, left, "reset clears every slot")
}

func TestProfileCommands(t *testing.T) {
	prof := &fakeProfile{
		profile: models.Profile{ID: "1", Email: "a@example.com", Name: "Alice"},
		users:   []models.User{{ID: "1", Email: "a@example.com", Name: "Alice", Role: "admin"}},
	}
	a, out, _ := newTestApp(t, &fakeAuth{authenticated: true}, prof, "\n\nGopher\n\n\n")
	ctx := context.Background()

	require.NoError(t, a.Profile(ctx))
	assert.Contains(t, out.String(), "Alice")

	require.NoError(t, a.UpdateProfile(ctx))
	require.NotNil(t, prof.patch.Bio)
	assert.Equal(t, "Gopher", *prof.patch.Bio)
	assert.Nil(t, prof.patch.Name)
	assert.Contains(t, out.String(), "Gopher")

	out.Reset()
	require.NoError(t, a.Users(ctx))
	assert.Contains(t, out.String(), "EMAIL")
	assert.Contains(t, out.String(), "a@example.com")

	out.Reset()
	require.NoError(t, a.User(ctx, "7"))
	assert.Contains(t, out.String(), "7@example.com")
	assert.Contains(t, out.String(), "provider=github")
}

func TestProfileCommands_PropagateErrors(t *testing.T) {
	boom := errors.New("not authenticated")
	a, _, _ := newTestApp(t, &fakeAuth{}, &fakeProfile{err: boom}, "")
	ctx := context.Background()

	require.ErrorIs(t, a.Profile(ctx), boom)
	require.ErrorIs(t, a.Users(ctx), boom)
	require.ErrorIs(t, a.User(ctx, "1"), boom)
}

func TestStatusCommand(t *testing.T) {
	auth := &fakeAuth{}
	a, out, _ := newTestApp(t, auth, &fakeProfile{}, "")
	ctx := context.Background()

	require.NoError(t, a.Status(ctx))
	assert.Contains(t, out.String(), "Not logged in.")
	assert.Contains(t, out.String(), "Sync: idle")
	assert.Contains(t, out.String(), "Local state: empty")

	auth.authenticated = true
	a.store.SetUser(models.User{ID: "1", Email: "a@example.com", Provider: "credentials"})
	a.store.SetSyncStatus(models.SyncState{LastUserID: "1", LastError: "api request failed: Bad Gateway"})

	out.Reset()
	require.NoError(t, a.Status(ctx))
	assert.Contains(t, out.String(), "Logged in as a@example.com (provider credentials)")
	assert.Contains(t, out.String(), "Sync: failed for 1: api request failed: Bad Gateway")

	require.NoError(t, a.envelope.Flush(ctx))
	out.Reset()
	require.NoError(t, a.Status(ctx))
	assert.Contains(t, out.String(), "Local state: "+persist.RootKey+" (")
}

func TestGetStatus(t *testing.T) {
	auth := &fakeAuth{}
	a, _, _ := newTestApp(t, auth, &fakeProfile{}, "")

	assert.Empty(t, a.getStatus())

	auth.authenticated = true
	a.store.SetUser(models.User{ID: "1", Email: "a@example.com"})
	assert.Equal(t, "(a@example.com) ", a.getStatus())
}

func TestRoot_WritesEverythingToAppOutput(t *testing.T) {
	a, out, _ := newTestApp(t, &fakeAuth{}, &fakeProfile{}, "help\nstatus\nexit\n")

	require.NoError(t, a.Root(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Welcome to gophsync CLI")
	assert.Contains(t, got, "gs > ")
	assert.Contains(t, got, helpLoggedOut)
	assert.Contains(t, got, "Sync: idle")
	assert.Contains(t, got, "Bye!")
}
