package matchcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"tracklink/internal/logging"
)

// Entry records why a file was not imported.
type Entry struct {
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
	Status   string    `json:"status"` // e.g. "no_candidate", "parse_error"
	Reason   string    `json:"reason"`
	CachedAt time.Time `json:"cached_at"`
}

// NewEntry stats path and returns an entry fingerprinted with its current
// size and modification time.
func NewEntry(path, status, reason string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return Entry{
		Path:     path,
		Size:     info.Size(),
		ModTime:  info.ModTime().UTC(),
		Status:   status,
		Reason:   reason,
		CachedAt: time.Now().UTC(),
	}, nil
}

// Matches reports whether info still has the fingerprint recorded in e.
func (e Entry) Matches(info fs.FileInfo) bool {
	if info == nil {
		return false
	}
	return info.Size() == e.Size && info.ModTime().Equal(e.ModTime)
}

// Cache provides thread-safe access to the match cache.
type Cache struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]Entry // keyed by file path
}

// NewCache creates a new cache instance. If path is empty, the cache will be
// non-functional (all operations become no-ops). The cache file is created
// lazily on first Store call.
func NewCache(path string, logger *slog.Logger) *Cache {
	logger = logging.NewComponentLogger(logger, "matchcache")

	c := &Cache{
		path:    path,
		logger:  logger,
		entries: make(map[string]Entry),
	}
	if path == "" {
		return c
	}

	if err := c.load(); err != nil {
		logging.WarnWithContext(logger, "failed to load match cache", "matchcache_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the cache file if it is corrupt"),
			logging.String(logging.FieldImpact, "previously unmatched files will be searched again"))
	}
	return c
}

// Lookup returns the entry for path if found.
func (c *Cache) Lookup(path string) (Entry, bool) {
	path = strings.TrimSpace(path)
	if path == "" || c.path == "" {
		return Entry{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[path]
	return entry, found
}

// Fresh returns the entry for path only when the file on disk still has the
// recorded fingerprint.
func (c *Cache) Fresh(path string, info fs.FileInfo) (Entry, bool) {
	entry, found := c.Lookup(path)
	if !found || !entry.Matches(info) {
		return Entry{}, false
	}
	return entry, true
}

// Store adds or updates an entry in the cache and persists to disk.
func (c *Cache) Store(entry Entry) error {
	entry.Path = strings.TrimSpace(entry.Path)
	if entry.Path == "" {
		return errors.New("path cannot be empty")
	}
	if c.path == "" {
		return nil
	}
	if entry.CachedAt.IsZero() {
		entry.CachedAt = time.Now().UTC()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[entry.Path] = entry
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}

	c.logger.Debug("cached match outcome",
		logging.String(logging.FieldTrackPath, entry.Path),
		logging.String("status", entry.Status),
		logging.String("reason", entry.Reason))
	return nil
}

// Remove deletes an entry by path and persists the change.
func (c *Cache) Remove(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path cannot be empty")
	}
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[path]; !exists {
		return fmt.Errorf("path %q not found in cache", path)
	}
	delete(c.entries, path)

	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	c.logger.Debug("removed match outcome", logging.String(logging.FieldTrackPath, path))
	return nil
}

// List returns all cache entries sorted by CachedAt descending (newest first).
func (c *Cache) List() []Entry {
	if c.path == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.sorted()
}

// Clear removes all entries and persists the empty cache.
func (c *Cache) Clear() error {
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry)
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	c.logger.Debug("cleared match cache")
	return nil
}

// Count returns the number of entries in the cache.
func (c *Cache) Count() int {
	if c.path == "" {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func (c *Cache) sorted() []Entry {
	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CachedAt.Equal(entries[j].CachedAt) {
			return entries[i].CachedAt.After(entries[j].CachedAt)
		}
		return entries[i].Path < entries[j].Path
	})
	return entries
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}

	c.entries = make(map[string]Entry, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Path) != "" {
			c.entries[entry.Path] = entry
		}
	}

	c.logger.Debug("loaded match cache",
		logging.Int("entry_count", len(c.entries)),
		logging.String("path", c.path))
	return nil
}

// save writes the cache to disk via a temp file and rename.
func (c *Cache) save() error {
	data, err := json.MarshalIndent(c.sorted(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
