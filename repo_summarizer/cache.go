package repo_summarizer

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/repoghost/repoghost/repo_summarizer/models"
)

// DefaultCacheFile is the default name of the persisted cache snapshot.
const DefaultCacheFile = "hash_cache.json"

// CacheStore is the durable mapping from file path to CacheEntry. It is loaded
// once per run, mutated in place, and saved as one whole-map snapshot. All map
// access is mutex-guarded so concurrent Puts for different files stay safe.
type CacheStore struct {
	path    string
	mutex   sync.RWMutex
	entries map[string]models.CacheEntry
}

// LoadCacheStore reads the persisted snapshot at path. A missing or malformed
// snapshot is treated as a cold start: the store comes back empty and a
// warning is logged, never an error.
func LoadCacheStore(path string) *CacheStore {
	store := &CacheStore{
		path:    path,
		entries: make(map[string]models.CacheEntry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: failed to read cache snapshot %s: %v", path, err)
		}
		return store
	}

	if err := json.Unmarshal(data, &store.entries); err != nil {
		log.Printf("Warning: malformed cache snapshot %s, starting with an empty cache: %v", path, err)
		store.entries = make(map[string]models.CacheEntry)
	}

	return store
}

// Get returns the entry for path, if present.
func (s *CacheStore) Get(path string) (models.CacheEntry, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, found := s.entries[path]
	return entry, found
}

// Put replaces any existing entry for path with entry.
func (s *CacheStore) Put(path string, entry models.CacheEntry) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.entries[path] = entry
}

// Len returns the number of cached entries.
func (s *CacheStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.entries)
}

// Save writes the entire map to durable storage in one operation, using a
// temporary file plus rename so a concurrent reader never observes a
// half-written snapshot. A save failure must surface to the caller.
func (s *CacheStore) Save() error {
	s.mutex.RLock()
	data, err := json.MarshalIndent(s.entries, "", "  ")
	s.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode cache snapshot: %w", err)
	}

	return atomicWriteFile(s.path, data)
}

// Reset removes the persisted snapshot and clears the in-memory map.
func (s *CacheStore) Reset() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.entries = make(map[string]models.CacheEntry)
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache snapshot: %w", err)
	}
	return nil
}

// Path returns the snapshot location backing this store.
func (s *CacheStore) Path() string {
	return s.path
}

// atomicWriteFile writes data to path through a temporary sibling file that is
// renamed into place, so readers see either the old content or the new one.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
