// Package persist keeps the whitelisted slices of the client store in one
// encrypted storage slot and restores them on startup.
//
// The envelope is the only reader and writer of the RootKey slot. Writes are
// asynchronous: Persist records the newest snapshot and the Run loop writes
// it, so a burst of store changes costs a single write.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophsync/internal/client/models"
	"github.com/dmitrijs2005/gophsync/internal/client/store"
	"github.com/dmitrijs2005/gophsync/internal/cryptox"
	"github.com/dmitrijs2005/gophsync/internal/logging"
)

// RootKey is the storage slot holding the encrypted document.
const RootKey = "root"

// DefaultWhitelist lists the persisted slices. The sync slice stays in
// memory.
var DefaultWhitelist = []string{models.SliceAuth, models.SliceUser}

// shutdownFlushTimeout bounds the final write after Run's context ends.
const shutdownFlushTimeout = 5 * time.Second

// Storage is the slot store the envelope writes through.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Envelope struct {
	storage   Storage
	transform *cryptox.Transform
	whitelist []string
	log       logging.Logger

	mu      sync.Mutex
	pending *models.RootState
	wake    chan struct{}

	// writeMu serializes storage writes between Run, Flush and Purge.
	writeMu sync.Mutex
}

type Option func(*Envelope)

func WithWhitelist(keys ...string) Option {
	return func(e *Envelope) { e.whitelist = slices.Clone(keys) }
}

// WithKey sets the encryption secret. Without it the default key is used.
func WithKey(secret string) Option {
	return func(e *Envelope) { e.transform = cryptox.NewTransform(secret) }
}

func WithLogger(l logging.Logger) Option {
	return func(e *Envelope) { e.log = l }
}

func New(storage Storage, opts ...Option) *Envelope {
	e := &Envelope{
		storage:   storage,
		whitelist: slices.Clone(DefaultWhitelist),
		log:       logging.Discard(),
		wake:      make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(e)
	}
	if e.transform == nil {
		e.transform = cryptox.NewTransform("")
	}
	return e
}

// UsesDefaultKey reports whether no secret was configured.
func (e *Envelope) UsesDefaultKey() bool {
	return e.transform.UsesDefaultKey()
}

// Whitelisted reports whether slice is persisted.
func (e *Envelope) Whitelisted(slice string) bool {
	return slices.Contains(e.whitelist, slice)
}

// Rehydrate returns the initial root state with every whitelisted slice found
// in storage merged on top. Any failure yields the initial state.
func (e *Envelope) Rehydrate(ctx context.Context) models.RootState {
	initial := models.InitialRootState()

	blob, err := e.storage.Get(ctx, RootKey)
	if err != nil {
		e.log.Warn(ctx, "rehydrate: storage read failed, starting fresh", "error", err)
		return initial
	}
	if blob == nil {
		e.log.Debug(ctx, "rehydrate: nothing stored")
		return initial
	}

	res := e.transform.Decode(string(blob))
	if !res.Ok() {
		e.log.Warn(ctx, "rehydrate: stored state unreadable, starting fresh", "reason", res.Reason())
		return initial
	}

	var doc map[string]json.RawMessage
	if err := res.Unmarshal(&doc); err != nil {
		e.log.Warn(ctx, "rehydrate: stored state is not an object, starting fresh", "error", err)
		return initial
	}

	out := models.InitialRootState()
	for _, key := range e.whitelist {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		target := slicePtr(&out, key)
		if target == nil {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			e.log.Warn(ctx, "rehydrate: slice does not decode, starting fresh", "slice", key, "error", err)
			return initial
		}
	}

	e.log.Debug(ctx, "rehydrate: state restored", "slices", len(doc))
	return out
}

// Persist queues st for writing and returns immediately. A newer snapshot
// replaces one that has not been written yet.
func (e *Envelope) Persist(st models.RootState) {
	snapshot := st.Clone()

	e.mu.Lock()
	e.pending = &snapshot
	e.mu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Attach persists every committed change to a whitelisted slice of st. The
// returned func detaches.
func (e *Envelope) Attach(st *store.Store) func() {
	return st.Subscribe(func(c store.Change) {
		if e.Whitelisted(c.Slice) {
			e.Persist(c.State)
		}
	})
}

// Run writes queued snapshots until ctx is done, then flushes whatever is
// still pending with a short fresh deadline. Write errors are logged.
func (e *Envelope) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownFlushTimeout)
			defer cancel()
			if err := e.Flush(flushCtx); err != nil {
				e.log.Error(flushCtx, "persist: final flush failed", "error", err)
			}
			return nil
		case <-e.wake:
			if err := e.Flush(ctx); err != nil {
				e.log.Error(ctx, "persist: write failed", "error", err)
			}
		}
	}
}

// Flush synchronously writes the pending snapshot, if any.
func (e *Envelope) Flush(ctx context.Context) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.mu.Lock()
	st := e.pending
	e.pending = nil
	e.mu.Unlock()

	if st == nil {
		return nil
	}

	if err := e.write(ctx, *st); err != nil {
		e.requeue(st)
		return err
	}
	return nil
}

// requeue puts a failed snapshot back unless a newer one arrived meanwhile.
func (e *Envelope) requeue(st *models.RootState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == nil {
		e.pending = st
	}
}

func (e *Envelope) write(ctx context.Context, st models.RootState) error {
	blob, err := e.transform.Encode(e.filter(st))
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := e.storage.Set(ctx, RootKey, []byte(blob)); err != nil {
		return fmt.Errorf("store state: %w", err)
	}
	e.log.Debug(ctx, "persist: state written", "bytes", len(blob))
	return nil
}

// Purge drops any pending snapshot and deletes the stored document.
func (e *Envelope) Purge(ctx context.Context) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.mu.Lock()
	e.pending = nil
	e.mu.Unlock()

	if err := e.storage.Delete(ctx, RootKey); err != nil {
		return fmt.Errorf("purge state: %w", err)
	}
	return nil
}

func (e *Envelope) filter(st models.RootState) map[string]any {
	out := make(map[string]any, len(e.whitelist))
	for _, key := range e.whitelist {
		if p := slicePtr(&st, key); p != nil {
			out[key] = p
		}
	}
	return out
}

func slicePtr(st *models.RootState, key string) any {
	switch key {
	case models.SliceAuth:
		return &st.Auth
	case models.SliceUser:
		return &st.User
	case models.SliceSync:
		return &st.Sync
	default:
		return nil
	}
}
