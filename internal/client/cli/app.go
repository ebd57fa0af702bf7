package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophsync/internal/client/client"
	"github.com/dmitrijs2005/gophsync/internal/client/config"
	"github.com/dmitrijs2005/gophsync/internal/client/models"
	"github.com/dmitrijs2005/gophsync/internal/client/persist"
	"github.com/dmitrijs2005/gophsync/internal/client/repositories/state"
	"github.com/dmitrijs2005/gophsync/internal/client/services"
	"github.com/dmitrijs2005/gophsync/internal/client/session"
	"github.com/dmitrijs2005/gophsync/internal/client/store"
	"github.com/dmitrijs2005/gophsync/internal/logging"
	"golang.org/x/sync/errgroup"
)

type authService interface {
	Authenticated() bool
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, r models.RegisterRequest) (*models.User, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (bool, error)
}

type profileService interface {
	Load(ctx context.Context) (*models.Profile, error)
	Update(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error)
	Users(ctx context.Context) ([]models.User, error)
	User(ctx context.Context, id string) (*models.User, error)
}

type App struct {
	config   *config.Config
	log      logging.Logger
	store    *store.Store
	envelope *persist.Envelope
	slots    state.Repository
	sessions *session.Source
	guard    *services.SyncService

	authService    authService
	profileService profileService

	reader *bufio.Reader
	out    io.Writer
	closer io.Closer
}

// NewApp opens local storage, restores persisted state and wires the
// services. cfg must already be validated.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	repo, closer, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	envelope := persist.New(repo, persist.WithKey(cfg.EncryptionKey), persist.WithLogger(log))
	if envelope.UsesDefaultKey() {
		log.Warn(ctx, "no encryption key configured, persisted state uses the built-in default key")
	}

	st := store.New(envelope.Rehydrate(ctx))
	envelope.Attach(st)
	if cfg.Development() {
		st.Subscribe(func(c store.Change) {
			log.Debug(context.Background(), "state changed", "slice", c.Slice)
		})
	}

	sessions := session.NewSource()
	api := client.NewHTTPClient(cfg.APIBaseURL, sessions,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log),
	)
	guard := services.NewSyncService(api, sessions, st, log)

	return &App{
		config:         cfg,
		log:            log,
		store:          st,
		envelope:       envelope,
		slots:          repo,
		sessions:       sessions,
		guard:          guard,
		authService:    services.NewAuthService(api, sessions, st, guard, log),
		profileService: services.NewProfileService(api, sessions, st, log),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
		closer:         closer,
	}, nil
}

// openStorage returns the slot repository for cfg.StorageDriver and the
// handle to close on shutdown, nil for the file driver.
func openStorage(ctx context.Context, cfg *config.Config) (state.Repository, io.Closer, error) {
	switch cfg.StorageDriver {
	case config.DriverFile:
		repo, err := state.NewFileRepository(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, nil, nil
	case config.DriverSQLite:
		db, err := state.OpenSQLite(ctx, cfg.StoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("error initializing database: %w", err)
		}
		return state.NewSQLiteRepository(db), db, nil
	case config.DriverRedis:
		client, err := state.OpenRedis(ctx, cfg.StoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("error connecting to redis: %w", err)
		}
		return state.NewRedisRepository(client, ""), client, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.StorageDriver)
	}
}

// Run starts the background workers, restores the session and serves the
// REPL until the user exits or ctx is done. The final state is flushed
// before Run returns.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, unsubscribe := a.sessions.Subscribe(16)
	defer unsubscribe()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.envelope.Run(gctx) })
	g.Go(func() error { return a.guard.Run(gctx, events) })

	// the REPL blocks on stdin, so it is not part of the group: an
	// interrupted Run must not wait for the next input line
	replDone := make(chan error, 1)
	go func() { replDone <- a.Root(gctx) }()

	var err error
	select {
	case err = <-replDone:
	case <-gctx.Done():
	}
	cancel()

	if werr := g.Wait(); err == nil {
		err = werr
	}

	if ferr := a.envelope.Flush(context.Background()); ferr != nil {
		a.log.Error(context.Background(), "final flush failed", "error", ferr)
	}
	if a.closer != nil {
		_ = a.closer.Close()
	}
	return err
}
