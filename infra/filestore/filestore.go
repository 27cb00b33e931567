// Package filestore implements store.Store on the local filesystem: one
// directory per namespace and one JSON file per slot.
package filestore

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/amirasaad/wallet/pkg/store"
	"github.com/google/renameio/v2"
)

const ext = ".json"

// FileStore persists records under root/<namespace>/<key>.json.
//
// Writes go to a temporary file in the namespace directory, are fsynced and
// then renamed over the target, so a crash leaves either the old or the new
// file in place.
type FileStore struct {
	root   string
	perm   os.FileMode
	logger *slog.Logger
}

// New creates the root directory and one directory per known namespace.
func New(root string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, ns := range store.Namespaces {
		if err := os.MkdirAll(filepath.Join(root, string(ns)), 0o700); err != nil {
			return nil, err
		}
	}
	return &FileStore{root: root, perm: 0o600, logger: logger}, nil
}

// Root returns the directory the store writes under.
func (f *FileStore) Root() string {
	return f.root
}

func (f *FileStore) dir(ns store.Namespace) string {
	return filepath.Join(f.root, string(ns))
}

func (f *FileStore) path(ns store.Namespace, key string) string {
	return filepath.Join(f.dir(ns), key+ext)
}

// Put atomically replaces the content of ns/key.
func (f *FileStore) Put(ctx context.Context, ns store.Namespace, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return store.Persistence("put", err)
	}
	if !store.ValidKey(key) {
		return store.ErrInvalidKey
	}
	dir := f.dir(ns)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		f.logger.Error("Put failed", "namespace", ns, "key", key, "error", err)
		return store.Persistence("mkdir "+string(ns), err)
	}
	if err := renameio.WriteFile(f.path(ns, key), data, f.perm, renameio.WithTempDir(dir)); err != nil {
		f.logger.Error("Put failed", "namespace", ns, "key", key, "error", err)
		return store.Persistence("write "+string(ns), err)
	}
	return nil
}

// Get reads ns/key. Missing and unreadable files are both absent.
func (f *FileStore) Get(_ context.Context, ns store.Namespace, key string) ([]byte, bool) {
	if !store.ValidKey(key) {
		return nil, false
	}
	data, err := os.ReadFile(f.path(ns, key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.logger.Warn("Get treated as absent", "namespace", ns, "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

// Delete removes ns/key and reports whether a file was removed.
func (f *FileStore) Delete(_ context.Context, ns store.Namespace, key string) bool {
	if !store.ValidKey(key) {
		return false
	}
	if err := os.Remove(f.path(ns, key)); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.logger.Error("Delete failed", "namespace", ns, "key", key, "error", err)
		}
		return false
	}
	return true
}

// List reads every slot file in ns. Temporary files left by interrupted
// writes are skipped.
func (f *FileStore) List(_ context.Context, ns store.Namespace) [][]byte {
	entries, err := os.ReadDir(f.dir(ns))
	if err != nil {
		return nil
	}
	out := make([][]byte, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(f.dir(ns), name))
		if err != nil {
			continue
		}
		out = append(out, data)
	}
	return out
}
