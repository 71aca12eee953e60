// Package cache persists generated annotations keyed by content fingerprint.
//
// The store is a BadgerDB database under .docullim/cache in the working
// directory, created on first use and shared across runs. Badger gives the
// two guarantees the pipeline leans on: every logical operation is atomic,
// and conflicting writes resolve last-writer-wins. Regeneration is expected
// to be a pure function of the key, so losing a race on Put never produces a
// wrong entry.
//
// A broken cache must never break a run: Get degrades to a miss and Put
// failures are logged and swallowed.
package cache

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"

	"github.com/shrynx/docullim/internal/logging"
)

// DirName is the project-local hidden directory holding docullim state.
const DirName = ".docullim"

// Store is an open handle to the annotation cache. The handle is safe for
// concurrent use; Badger serializes conflicting transactions internally.
type Store struct {
	db *badger.DB
}

// Dir returns the cache store path for a working directory. The same
// directory always maps to the same path, so every run shares one store.
func Dir(workdir string) string {
	return filepath.Join(workdir, DirName, "cache")
}

// Open creates the store directory if needed and opens the database.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dir)
	opts = opts.WithLogger(nil) // badger's own logging is noise on stderr

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Get returns the annotation stored for a fingerprint. Any store error is
// reported as a miss; a failed lookup must never abort the pipeline.
func (s *Store) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}

	var doc string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			doc = string(val)
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Debug("cache read failed, treating as miss", "key", key, "error", err)
		}
		return "", false
	}
	return doc, true
}

// Put stores an annotation for a fingerprint, replacing any previous value.
// Failures are logged and swallowed: a lost write only costs a regeneration
// on some later run.
func (s *Store) Put(key, doc string) {
	if s == nil {
		return
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(doc))
	})
	if err != nil {
		logging.Warn("failed to write cache entry", "key", key, "error", err)
	}
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// Reset destroys all entries by removing the store directory. Safe to call
// only while no process holds the store open.
func Reset(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return os.RemoveAll(dir)
}
