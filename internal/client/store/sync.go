package store

import "github.com/dmitrijs2005/gophsync/internal/client/models"

// SetSyncStatus replaces the in-memory sync slice.
func (s *Store) SetSyncStatus(st models.SyncState) {
	s.update(models.SliceSync, func(rs *models.RootState) bool {
		rs.Sync = st
		return true
	})
}
