package services

import (
	"context"

	"github.com/dmitrijs2005/gophsync/internal/client/models"
	"github.com/dmitrijs2005/gophsync/internal/client/store"
	"github.com/dmitrijs2005/gophsync/internal/logging"
)

// ProfileAPI is the part of the API client used by ProfileService.
type ProfileAPI interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// SessionReader reports the current session.
type SessionReader interface {
	Current() models.SessionEvent
}

// ProfileService wraps profile and user-directory calls. Every call requires
// an authenticated session.
type ProfileService struct {
	api      ProfileAPI
	sessions SessionReader
	store    *store.Store
	log      logging.Logger
}

func NewProfileService(api ProfileAPI, sessions SessionReader, st *store.Store, log logging.Logger) *ProfileService {
	if log == nil {
		log = logging.Discard()
	}
	return &ProfileService{api: api, sessions: sessions, store: st, log: log}
}

// Load fetches the profile and stores it.
func (p *ProfileService) Load(ctx context.Context) (*models.Profile, error) {
	prof, err := execute(ctx, p, func() (*models.Profile, error) {
		return p.api.GetProfile(ctx)
	})
	if err != nil {
		return nil, err
	}
	p.store.SetProfile(*prof)
	return prof, nil
}

// Update sends patch and stores the profile the backend returns. Identity
// fields are mirrored into the auth user.
func (p *ProfileService) Update(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error) {
	if patch.Empty() {
		return nil, ErrEmptyPatch
	}

	prof, err := execute(ctx, p, func() (*models.Profile, error) {
		return p.api.UpdateProfile(ctx, patch)
	})
	if err != nil {
		return nil, err
	}

	p.store.SetProfile(*prof)
	p.store.UpdateUser(models.UserPatch{Email: patch.Email, Name: patch.Name, Image: patch.Image})
	return prof, nil
}

func (p *ProfileService) Users(ctx context.Context) ([]models.User, error) {
	return execute(ctx, p, func() ([]models.User, error) {
		return p.api.GetUsers(ctx)
	})
}

func (p *ProfileService) User(ctx context.Context, id string) (*models.User, error) {
	return execute(ctx, p, func() (*models.User, error) {
		return p.api.GetUserByID(ctx, id)
	})
}

// execute gates fn on an authenticated session and tracks loading and error
// state in the profile slice around it.
func execute[T any](ctx context.Context, p *ProfileService, fn func() (T, error)) (T, error) {
	var zero T
	if _, ok := p.sessions.Current().AuthenticatedUser(); !ok {
		return zero, ErrNotAuthenticated
	}

	p.store.ClearProfileError()
	p.store.SetProfileLoading(true)

	out, err := fn()
	if err != nil {
		p.log.Warn(ctx, "api request failed", "error", err)
		p.store.SetProfileError(err.Error())
		return zero, err
	}

	p.store.SetProfileLoading(false)
	return out, nil
}
