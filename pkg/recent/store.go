// Package recent maintains the persisted list of recently served
// directories: most-recent-first, bounded, deduplicated by absolute path.
package recent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/servr-dev/servr/pkg/logging"
	"github.com/servr-dev/servr/pkg/paths"
)

// DefaultLimit bounds the list when no limit is configured.
const DefaultLimit = 10

// Entry is one recently served directory.
type Entry struct {
	Path     string    `json:"path"`
	Count    int       `json:"count"`
	LastUsed time.Time `json:"last_used"`
}

// storeFile is the on-disk format. The legacy launcher wrote a flat
// {path: count} object instead; Load migrates that shape transparently.
type storeFile struct {
	Entries []Entry `json:"entries"`
}

// Store is the recent-directories list backed by a JSON file. Writes are
// guarded by an advisory file lock so concurrent servr processes don't
// clobber each other.
type Store struct {
	path  string
	limit int

	mu      sync.RWMutex
	entries []Entry

	fileLock *flock.Flock
	logger   zerolog.Logger
}

// NewStore creates a store persisting to path (default: recent.json under
// the servr data dir) keeping at most limit entries.
func NewStore(path string, limit int) *Store {
	if path == "" {
		path = filepath.Join(paths.DataDir(), "recent.json")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		path:     path,
		limit:    limit,
		fileLock: flock.New(path + ".lock"),
		logger:   logging.NewLogger("recent", zerolog.InfoLevel),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the store file. A missing file yields an empty list; a
// corrupt file is logged and treated as empty rather than failing launch.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.entries = nil
			return nil
		}
		return fmt.Errorf("read recent file: %w", err)
	}

	entries, err := decode(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("file", s.path).Msg("Recent file unreadable, starting empty")
		s.entries = nil
		return nil
	}

	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	s.entries = entries
	return nil
}

// decode parses either the current {"entries": [...]} format or the
// legacy flat {path: count} object.
func decode(data []byte) ([]Entry, error) {
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}

	if raw, ok := generic["entries"]; ok {
		var entries []Entry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, err
		}
		return entries, nil
	}

	// Legacy format: path -> use count, ordered by count descending.
	var legacy map[string]interface{}
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(legacy))
	for path, count := range legacy {
		entries = append(entries, Entry{Path: path, Count: cast.ToInt(count)})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

// Add records a successful serve of dir: the entry moves to the front,
// its use count is bumped, and the list is trimmed to the limit.
func (s *Store) Add(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{Path: abs, Count: 1, LastUsed: time.Now()}
	rest := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Path == abs {
			entry.Count = e.Count + 1
			continue
		}
		rest = append(rest, e)
	}

	s.entries = append([]Entry{entry}, rest...)
	if len(s.entries) > s.limit {
		s.entries = s.entries[:s.limit]
	}

	return s.save()
}

// List returns a copy of the entries, most-recent-first.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Prune drops entries whose directory no longer exists and persists the
// result when anything changed.
func (s *Store) Prune() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, e := range s.entries {
		if info, err := os.Stat(e.Path); err == nil && info.IsDir() {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(s.entries) {
		return nil
	}
	s.entries = kept
	return s.save()
}

// Clear empties the list and persists it.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return s.save()
}

// save writes the store file under the advisory lock using a tmp-file +
// rename so readers never observe a partial write. Callers hold s.mu.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	locked, err := s.fileLock.TryLock()
	if err != nil {
		return fmt.Errorf("lock recent file: %w", err)
	}
	if !locked {
		// Another servr process is writing; keep the lock file polite and
		// block briefly rather than dropping the update.
		if err := s.fileLock.Lock(); err != nil {
			return fmt.Errorf("lock recent file: %w", err)
		}
	}
	defer func() {
		if err := s.fileLock.Unlock(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to release recent file lock")
		}
	}()

	data, err := json.MarshalIndent(storeFile{Entries: s.entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode recent file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write recent file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace recent file: %w", err)
	}
	return nil
}
