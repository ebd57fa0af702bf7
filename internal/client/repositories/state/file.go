package state

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophsync/internal/filex"
)

const slotExt = ".slot"

var ErrInvalidKey = errors.New("invalid state key")

// FileRepository stores each slot as <dir>/<escaped key>.slot with mode 0600.
type FileRepository struct {
	dir string
	mu  sync.Mutex
}

// NewFileRepository creates dir if needed.
func NewFileRepository(dir string) (*FileRepository, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare state dir: %w", err)
	}
	return &FileRepository{dir: abs}, nil
}

func (r *FileRepository) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(r.dir, url.PathEscape(key)+slotExt), nil
}

func (r *FileRepository) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := r.path(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := filex.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to get state[%s]: %w", key, err)
	}
	return b, nil
}

func (r *FileRepository) Set(ctx context.Context, key string, value []byte) error {
	p, err := r.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := filex.WriteFileAtomic(p, value, 0o600); err != nil {
		return fmt.Errorf("failed to set state[%s]: %w", key, err)
	}
	return nil
}

func (r *FileRepository) Delete(ctx context.Context, key string) error {
	p, err := r.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete state[%s]: %w", key, err)
	}
	return nil
}

func (r *FileRepository) List(ctx context.Context) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys, err := r.keys()
	if err != nil {
		return nil, err
	}

	result := make(map[string][]byte, len(keys))
	for key, p := range keys {
		b, err := filex.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read state[%s]: %w", key, err)
		}
		if b != nil {
			result[key] = b
		}
	}
	return result, nil
}

func (r *FileRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys, err := r.keys()
	if err != nil {
		return err
	}
	for key, p := range keys {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to clear state[%s]: %w", key, err)
		}
	}
	return nil
}

// keys maps every stored key to its file path. Caller holds mu.
func (r *FileRepository) keys() (map[string]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list state: %w", err)
	}

	out := make(map[string]string, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, slotExt) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, slotExt))
		if err != nil {
			continue
		}
		out[key] = filepath.Join(r.dir, name)
	}
	return out, nil
}
