// Package storage persists collections as whole JSON documents on disk.
// Every Load reads a full document and every Save rewrites it; there is no
// partial update, no log and no versioning. The documents are pretty-printed
// so they stay hand-inspectable.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/tiendita/ventas/pkg/apperrors"
)

// Store is the persistence contract: whole-document load and save per
// collection. Implementations must guarantee that a Save is never observed
// half-written by a later Load in the same process.
type Store interface {
	Load(ctx context.Context, collection string, out interface{}) error
	Save(ctx context.Context, collection string, records interface{}) error
}

// FileStore keeps one <collection>.json file per collection under a data
// directory. Saves go through a temp file and a rename.
type FileStore struct {
	dir       string
	serialize bool

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithSerializedWrites funnels all reads and writes of a given collection
// through a per-collection mutex. Off by default: the original system runs
// without any critical section, and that behavior has to stay reproducible.
// Note this serializes individual document operations only; a concurrent
// load-mutate-save sequence can still interleave and oversell stock.
func WithSerializedWrites() Option {
	return func(s *FileStore) { s.serialize = true }
}

// NewFileStore creates the data directory if needed and returns a store
// rooted at it.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %q: %w", dir, err)
	}

	s := &FileStore{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load reads the full document for a collection into out. A collection whose
// file does not exist yet loads as an empty sequence; an unreadable or
// syntactically invalid document is a StorageError.
func (s *FileStore) Load(ctx context.Context, collection string, out interface{}) error {
	if s.serialize {
		l := s.lock(collection)
		l.Lock()
		defer l.Unlock()
	}

	data, err := os.ReadFile(s.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		data = []byte("[]")
	} else if err != nil {
		return &apperrors.StorageError{Collection: collection, Op: "load", Err: err}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &apperrors.StorageError{Collection: collection, Op: "load", Err: err}
	}
	return nil
}

// Save overwrites the full document for a collection. The document is
// marshalled pretty-printed, written to a temp file and renamed into place,
// so a Load in this process sees either the old document or the new one.
func (s *FileStore) Save(ctx context.Context, collection string, records interface{}) error {
	if s.serialize {
		l := s.lock(collection)
		l.Lock()
		defer l.Unlock()
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &apperrors.StorageError{Collection: collection, Op: "save", Err: err}
	}
	data = append(data, '\n')

	path := s.path(collection)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &apperrors.StorageError{Collection: collection, Op: "save", Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &apperrors.StorageError{Collection: collection, Op: "save", Err: err}
	}
	return nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *FileStore) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}
