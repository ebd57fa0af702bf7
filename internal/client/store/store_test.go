package store

import (
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophsync/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 123_000_000, time.UTC)

func newStore(t *testing.T) (*Store, *[]Change) {
	t.Helper()
	s := New(models.InitialRootState(), WithClock(func() time.Time { return fixedNow }))

	var (
		mu      sync.Mutex
		changes []Change
	)
	unsub := s.Subscribe(func(c Change) {
		mu.Lock()
		changes = append(changes, c)
		mu.Unlock()
	})
	t.Cleanup(unsub)
	return s, &changes
}

func TestAuthTransitions(t *testing.T) {
	s, changes := newStore(t)

	s.SetAuthLoading(true)
	s.SetAuthError("bad credentials")
	st := s.State().Auth
	assert.False(t, st.IsLoading, "an error ends loading")
	assert.Equal(t, "bad credentials", st.Error)

	s.SetUser(models.User{ID: "1", Email: "user@example.com"})
	s.SetAccessToken("tok")
	st = s.State().Auth
	assert.True(t, st.IsAuthenticated)
	assert.Empty(t, st.Error)
	assert.Equal(t, "tok", st.AccessToken)

	name := "Renamed"
	s.UpdateUser(models.UserPatch{Name: &name})
	assert.Equal(t, "Renamed", s.State().Auth.User.Name)

	s.SetAuthError("x")
	s.ClearAuthError()
	assert.Empty(t, s.State().Auth.Error)

	s.Logout()
	assert.Equal(t, models.InitialAuthState(), s.State().Auth)

	for _, c := range *changes {
		assert.Equal(t, models.SliceAuth, c.Slice)
	}
	assert.Len(t, *changes, 8)
}

func TestUpdateUser_WithoutUserIsNoop(t *testing.T) {
	s, changes := newStore(t)
	name := "x"
	s.UpdateUser(models.UserPatch{Name: &name})
	assert.Nil(t, s.State().Auth.User)
	assert.Empty(t, *changes, "no-op mutations do not notify")
}

func TestProfileTransitions(t *testing.T) {
	s, changes := newStore(t)

	s.SetLastSync("ignored")
	s.UpdateProfile(models.ProfilePatch{})
	assert.Nil(t, s.State().User.Profile)
	assert.Empty(t, *changes)

	s.SetProfileLoading(true)
	s.SetProfile(models.Profile{ID: "1", Email: "user@example.com"})
	st := s.State().User
	require.NotNil(t, st.Profile)
	assert.Equal(t, "2026-10-16T09:30:00.123Z", st.LastUpdated)
	assert.True(t, st.IsLoading)

	bio := "hello"
	s.UpdateProfile(models.ProfilePatch{Bio: &bio})
	s.SetLastSync("2026-10-16T10:00:00.000Z")
	st = s.State().User
	assert.Equal(t, "hello", st.Profile.Bio)
	assert.Equal(t, "2026-10-16T10:00:00.000Z", st.Profile.LastSync)

	s.SetProfileError("boom")
	assert.False(t, s.State().User.IsLoading)
	s.ClearProfileError()
	assert.Empty(t, s.State().User.Error)

	s.ClearProfile()
	st = s.State().User
	assert.Nil(t, st.Profile)
	assert.Empty(t, st.LastUpdated)

	for _, c := range *changes {
		assert.Equal(t, models.SliceUser, c.Slice)
	}
}

func TestSetSyncStatus(t *testing.T) {
	s, changes := newStore(t)
	s.SetSyncStatus(models.SyncState{InFlight: true, LastUserID: "1"})

	require.Len(t, *changes, 1)
	assert.Equal(t, models.SliceSync, (*changes)[0].Slice)
	assert.True(t, s.State().Sync.InFlight)
}

func TestStateIsACopy(t *testing.T) {
	s, _ := newStore(t)
	s.SetUser(models.User{ID: "1"})

	st := s.State()
	st.Auth.User.ID = "mutated"

	assert.Equal(t, "1", s.State().Auth.User.ID)
}

func TestNewSeedsFromInitial(t *testing.T) {
	initial := models.InitialRootState()
	initial.Auth.User = &models.User{ID: "9"}
	initial.Auth.IsAuthenticated = true

	s := New(initial)
	initial.Auth.User.ID = "changed after New"

	assert.Equal(t, "9", s.State().Auth.User.ID)
}

func TestUnsubscribe(t *testing.T) {
	s := New(models.InitialRootState())
	calls := 0
	unsub := s.Subscribe(func(Change) { calls++ })

	s.SetAuthLoading(true)
	unsub()
	s.SetAuthLoading(false)

	assert.Equal(t, 1, calls)
}

func TestListenerSeesCommittedState(t *testing.T) {
	s := New(models.InitialRootState())
	var seen models.RootState
	s.Subscribe(func(c Change) {
		// reading back from inside a listener must not deadlock
		seen = s.State()
	})

	s.SetAccessToken("t")
	assert.Equal(t, "t", seen.Auth.AccessToken)
}
