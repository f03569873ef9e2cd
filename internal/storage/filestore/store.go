// Package filestore keeps console sessions in a JSON snapshot on disk. It
// is used when no database is configured. Writes go to a temporary file
// that is renamed over the snapshot, so a crash never leaves a torn file.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hongminglow/bank-console/internal/storage"
)

var _ storage.SessionStore = (*Store)(nil)

const snapshotVersion = 1

type snapshot struct {
	Version   int                              `json:"version"`
	Timestamp time.Time                        `json:"timestamp"`
	Sessions  map[string]storage.SessionRecord `json:"sessions"`
}

// Store is a file-backed storage.SessionStore.
type Store struct {
	mu       sync.Mutex
	path     string
	sessions map[string]storage.SessionRecord
}

// Open loads the snapshot at path, starting empty when it does not exist.
func Open(path string) (*Store, error) {
	s := &Store{path: path, sessions: make(map[string]storage.SessionRecord)}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open session file: %w", err)
	}
	defer f.Close()

	var snap snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	if snap.Sessions != nil {
		s.sessions = snap.Sessions
	}
	return s, nil
}

func (s *Store) SaveSession(_ context.Context, rec storage.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[rec.ID] = rec
	return s.flush()
}

func (s *Store) FindSession(_ context.Context, id string) (storage.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return storage.SessionRecord{}, storage.ErrNotFound
	}
	return rec, nil
}

func (s *Store) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return nil
	}
	delete(s.sessions, id)
	return s.flush()
}

func (s *Store) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for id, rec := range s.sessions {
		if !rec.ExpiresAt.After(now) {
			delete(s.sessions, id)
			purged++
		}
	}
	if purged == 0 {
		return 0, nil
	}
	return purged, s.flush()
}

// flush writes the snapshot atomically. Callers hold s.mu.
func (s *Store) flush() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create session file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	snap := snapshot{Version: snapshotVersion, Timestamp: time.Now().UTC(), Sessions: s.sessions}
	if err := enc.Encode(snap); err != nil {
		f.Close()
		return fmt.Errorf("encode session file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	return os.Rename(tmp, s.path)
}
