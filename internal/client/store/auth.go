package store

import "github.com/dmitrijs2005/gophsync/internal/client/models"

func (s *Store) SetUser(u models.User) {
	s.update(models.SliceAuth, func(st *models.RootState) bool {
		st.Auth.User = &u
		st.Auth.IsAuthenticated = true
		st.Auth.Error = ""
		return true
	})
}

func (s *Store) SetAccessToken(token string) {
	s.update(models.SliceAuth, func(st *models.RootState) bool {
		st.Auth.AccessToken = token
		return true
	})
}

func (s *Store) SetAuthLoading(loading bool) {
	s.update(models.SliceAuth, func(st *models.RootState) bool {
		st.Auth.IsLoading = loading
		return true
	})
}

// SetAuthError records a failure and ends loading.
func (s *Store) SetAuthError(msg string) {
	s.update(models.SliceAuth, func(st *models.RootState) bool {
		st.Auth.Error = msg
		st.Auth.IsLoading = false
		return true
	})
}

func (s *Store) ClearAuthError() {
	s.update(models.SliceAuth, func(st *models.RootState) bool {
		st.Auth.Error = ""
		return true
	})
}

// Logout drops the user, token and error. The loading flag is left alone.
func (s *Store) Logout() {
	s.update(models.SliceAuth, func(st *models.RootState) bool {
		st.Auth.User = nil
		st.Auth.IsAuthenticated = false
		st.Auth.AccessToken = ""
		st.Auth.Error = ""
		return true
	})
}

// UpdateUser merges patch into the current user. Without a user it does
// nothing.
func (s *Store) UpdateUser(patch models.UserPatch) {
	s.update(models.SliceAuth, func(st *models.RootState) bool {
		if st.Auth.User == nil {
			return false
		}
		u := patch.Apply(*st.Auth.User)
		st.Auth.User = &u
		return true
	})
}
