package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jrsteele09/go-summary-client/token"
)

var _ token.Repo = (*FileStore)(nil)

// FileStore keeps the token record in a single JSON file readable only by the owner.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// New returns a store that keeps the token record as JSON at path.
func New(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("token file path is required")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

// Load reads the record. A missing file is an empty record, not an error.
func (s *FileStore) Load(_ context.Context) (token.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return token.Record{}, nil
		}
		return token.Record{}, fmt.Errorf("read token file: %w", err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return token.Record{}, nil
	}

	var record token.Record
	if err := json.Unmarshal(b, &record); err != nil {
		return token.Record{}, fmt.Errorf("decode token file: %w", err)
	}
	return record, nil
}

// Save writes the record with owner-only permissions, creating the directory if needed.
func (s *FileStore) Save(_ context.Context, record token.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir token dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

// Clear removes the file. Clearing an absent record is not an error.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
