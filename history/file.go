package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileStore keeps history entries in a single JSON file, one list per kind.
// It serves deployments without a database connection.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed history store at the given path,
// creating parent directories as needed
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Append records the payload and evicts entries beyond the kind's cap
func (s *FileStore) Append(ctx context.Context, kind Kind, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode history payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := s.load()
	if err != nil {
		return err
	}

	entry := Entry{
		ID:        uuid.New(),
		Kind:      kind,
		Payload:   data,
		CreatedAt: time.Now(),
	}

	entries := logs[kind]
	if kind.NewestFirst() {
		entries = append([]Entry{entry}, entries...)
		if len(entries) > kind.Cap() {
			entries = entries[:kind.Cap()]
		}
	} else {
		entries = append(entries, entry)
		if len(entries) > kind.Cap() {
			entries = entries[len(entries)-kind.Cap():]
		}
	}
	logs[kind] = entries

	return s.save(logs)
}

// List returns the retained entries in the kind's listing order
func (s *FileStore) List(ctx context.Context, kind Kind) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := s.load()
	if err != nil {
		return nil, err
	}

	entries := logs[kind]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// Clear removes all entries of the kind
func (s *FileStore) Clear(ctx context.Context, kind Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := s.load()
	if err != nil {
		return err
	}

	delete(logs, kind)
	return s.save(logs)
}

func (s *FileStore) load() (map[Kind][]Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[Kind][]Entry), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	logs := make(map[Kind][]Entry)
	if len(data) == 0 {
		return logs, nil
	}
	if err := json.Unmarshal(data, &logs); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}
	return logs, nil
}

func (s *FileStore) save(logs map[Kind][]Entry) error {
	data, err := json.MarshalIndent(logs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}
