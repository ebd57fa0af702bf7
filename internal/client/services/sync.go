package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophsync/internal/client/models"
	"github.com/dmitrijs2005/gophsync/internal/client/session"
	"github.com/dmitrijs2005/gophsync/internal/client/store"
	"github.com/dmitrijs2005/gophsync/internal/logging"
)

// UserSyncer is the part of the API client the guard needs.
type UserSyncer interface {
	SyncUser(ctx context.Context, payload models.SyncPayload) (*models.User, error)
}

// SyncService is the sync guard. One instance serves one client; its state is
// not shared across processes and is not persisted, so a restarted client
// syncs again once the session is restored.
//
// Guard transitions happen under mu. A sync runs on its own goroutine, so a
// notification that arrives while one is in flight is evaluated at once and
// dropped. When that sync's result turns out stale, the guard reads the
// current session once and syncs it if nobody has yet.
type SyncService struct {
	api      UserSyncer
	sessions SessionReader
	store    *store.Store
	log      logging.Logger

	// commitMu orders a completing sync's store writes before a Reset, so a
	// logout never lands in the middle of them. mu is not held while the
	// store runs its listeners.
	commitMu sync.Mutex

	mu               sync.Mutex
	lastSyncedUserID string
	syncing          bool
	inFlightUserID   string
	// generation is bumped by logout and identity changes; a sync that
	// started under an older generation does not record its result.
	generation uint64

	wg sync.WaitGroup
}

func NewSyncService(api UserSyncer, sessions SessionReader, st *store.Store, log logging.Logger) *SyncService {
	if log == nil {
		log = logging.Discard()
	}
	return &SyncService{api: api, sessions: sessions, store: st, log: log}
}

// HandleSessionChange evaluates one notification and reports whether it
// started a sync.
func (s *SyncService) HandleSessionChange(ctx context.Context, ev models.SessionEvent) bool {
	if ev.Status == models.StatusUnauthenticated {
		s.Reset()
		return false
	}

	u, ok := ev.AuthenticatedUser()
	if !ok || u.ID == "" {
		return false
	}

	s.mu.Lock()
	if s.lastSyncedUserID != "" && s.lastSyncedUserID != u.ID {
		s.lastSyncedUserID = ""
	}
	if s.syncing && s.inFlightUserID != u.ID {
		s.generation++
	}
	if u.ID == s.lastSyncedUserID || s.syncing {
		s.mu.Unlock()
		return false
	}
	s.syncing = true
	s.inFlightUserID = u.ID
	gen := s.generation
	s.wg.Add(1)
	s.mu.Unlock()

	var token string
	if ev.Session != nil {
		token = ev.Session.AccessToken
	}

	s.store.SetSyncStatus(models.SyncState{InFlight: true, LastUserID: u.ID})
	go s.sync(ctx, gen, u, token)
	return true
}

// Reset forgets the synced identity and invalidates an in-flight sync.
func (s *SyncService) Reset() {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.Lock()
	s.lastSyncedUserID = ""
	s.generation++
	s.mu.Unlock()
}

func (s *SyncService) sync(ctx context.Context, gen uint64, u models.SessionUser, token string) {
	defer s.wg.Done()

	payload := session.Normalize(u)
	log := s.log.With("user_id", u.ID, "provider", payload.Provider)
	if exp, ok := session.TokenExpiry(token); ok {
		log = log.With("token_expires_at", exp)
	}
	log.Info(ctx, "syncing user")

	synced, err := s.api.SyncUser(ctx, payload)
	if err != nil {
		log.Error(ctx, "user sync failed", "error", err)
	}

	if !s.commit(u.ID, gen, token, payload, synced, err) {
		log.Debug(ctx, "session changed during sync, result dropped")
		if s.sessions != nil && ctx.Err() == nil {
			s.HandleSessionChange(ctx, s.sessions.Current())
		}
		return
	}
	if err == nil {
		log.Info(ctx, "user synced")
	}
}

// commit records the outcome of a sync and reports whether it still belonged
// to the current session.
func (s *SyncService) commit(id string, gen uint64, token string, payload models.SyncPayload, synced *models.User, err error) bool {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.Lock()
	s.syncing = false
	s.inFlightUserID = ""
	current := gen == s.generation
	if current && err == nil {
		s.lastSyncedUserID = id
	}
	s.mu.Unlock()

	switch {
	case !current:
		s.store.SetSyncStatus(models.InitialSyncState())
		return false
	case err != nil:
		s.store.SetSyncStatus(models.SyncState{LastUserID: id, LastError: err.Error()})
		return true
	}

	user := payload.User()
	if synced != nil && synced.ID != "" {
		user = *synced
	}
	now := s.store.Now()

	s.store.SetUser(user)
	if token != "" {
		s.store.SetAccessToken(token)
	}
	s.store.SetLastSync(now)
	s.store.SetSyncStatus(models.SyncState{LastUserID: id, LastSyncedAt: now})
	return true
}

// Run feeds events into HandleSessionChange until ctx is done or events is
// closed, then waits for the in-flight sync.
func (s *SyncService) Run(ctx context.Context, events <-chan models.SessionEvent) error {
	defer s.Wait()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.HandleSessionChange(ctx, ev)
		}
	}
}

// Wait blocks until no sync is in flight.
func (s *SyncService) Wait() {
	s.wg.Wait()
}

func (s *SyncService) LastSyncedUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSyncedUserID
}

func (s *SyncService) Syncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncing
}
