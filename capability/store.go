package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists detected profiles across process restarts. Implementations
// return found=false for absent entries; TTL expiry is enforced by the cache
// layer on top, not here.
type Store interface {
	Load(ctx context.Context, serviceKey string) (Profile, bool, error)
	Save(ctx context.Context, serviceKey string, p Profile) error
}

// FileStore keeps one JSON document per service key under a directory.
// This is the capability cache file consumed and produced at the process
// boundary.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create capability cache directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Load reads the persisted profile for a service key, if any.
func (s *FileStore) Load(_ context.Context, serviceKey string) (Profile, bool, error) {
	data, err := os.ReadFile(s.path(serviceKey))
	if os.IsNotExist(err) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, fmt.Errorf("failed to read capability cache: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, false, fmt.Errorf("failed to parse capability cache: %w", err)
	}
	return p, true, nil
}

// Save writes the profile for a service key, replacing any previous record.
func (s *FileStore) Save(_ context.Context, serviceKey string, p Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode capability profile: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.path(serviceKey), data, 0o644); err != nil {
		return fmt.Errorf("failed to write capability cache: %w", err)
	}
	return nil
}

// path maps a service key to a filename. Keys contain URL characters, so
// everything outside a safe set is percent-free sanitized to '_'.
func (s *FileStore) path(serviceKey string) string {
	safe := make([]rune, 0, len(serviceKey))
	for _, r := range serviceKey {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			safe = append(safe, r)
		default:
			safe = append(safe, '_')
		}
	}
	return filepath.Join(s.dir, string(safe)+".json")
}

var _ Store = (*FileStore)(nil)
