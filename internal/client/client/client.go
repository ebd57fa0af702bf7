package client

import (
	"context"

	"github.com/dmitrijs2005/gophsync/internal/client/models"
)

// Client is the backend API contract. Every call is attempted once and
// reports exactly one error on failure.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error)
	SyncUser(ctx context.Context, payload models.SyncPayload) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// SessionProvider yields the session whose bearer token authenticates
// outbound calls. A nil session means anonymous requests.
type SessionProvider interface {
	CurrentSession(ctx context.Context) *models.Session
}
