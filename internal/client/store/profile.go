package store

import "github.com/dmitrijs2005/gophsync/internal/client/models"

// SetProfile replaces the profile and stamps lastUpdated.
func (s *Store) SetProfile(p models.Profile) {
	s.update(models.SliceUser, func(st *models.RootState) bool {
		st.User.Profile = &p
		st.User.LastUpdated = s.timestamp()
		st.User.Error = ""
		return true
	})
}

// UpdateProfile merges patch into the current profile and stamps
// lastUpdated. Without a profile it does nothing.
func (s *Store) UpdateProfile(patch models.ProfilePatch) {
	s.update(models.SliceUser, func(st *models.RootState) bool {
		if st.User.Profile == nil {
			return false
		}
		p := patch.Apply(*st.User.Profile)
		st.User.Profile = &p
		st.User.LastUpdated = s.timestamp()
		return true
	})
}

func (s *Store) SetProfileLoading(loading bool) {
	s.update(models.SliceUser, func(st *models.RootState) bool {
		st.User.IsLoading = loading
		return true
	})
}

func (s *Store) SetProfileError(msg string) {
	s.update(models.SliceUser, func(st *models.RootState) bool {
		st.User.Error = msg
		st.User.IsLoading = false
		return true
	})
}

func (s *Store) ClearProfileError() {
	s.update(models.SliceUser, func(st *models.RootState) bool {
		st.User.Error = ""
		return true
	})
}

func (s *Store) ClearProfile() {
	s.update(models.SliceUser, func(st *models.RootState) bool {
		st.User.Profile = nil
		st.User.LastUpdated = ""
		st.User.Error = ""
		return true
	})
}

// SetLastSync records when the profile was last pushed to the backend.
// Without a profile it does nothing.
func (s *Store) SetLastSync(ts string) {
	s.update(models.SliceUser, func(st *models.RootState) bool {
		if st.User.Profile == nil {
			return false
		}
		st.User.Profile.LastSync = ts
		return true
	})
}

// Now returns the store clock formatted as TimestampLayout.
func (s *Store) Now() string {
	return s.timestamp()
}
