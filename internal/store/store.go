// Package store implements the confirmed-grant memory: an append-only map of
// grant names to the contexts they were confirmed in. Extraction never reads
// it; it exists so human confirmations accumulate across documents.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// maxContexts caps the history kept per grant name; the oldest entries are
// dropped first.
const maxContexts = 10

// GrantStore is a persistent map of confirmed grant names to bounded context
// histories. Safe for concurrent use; a single lock serializes load-modify-
// save cycles.
type GrantStore struct {
	mu      sync.Mutex
	path    string
	entries map[string][]string
	logW    io.Writer
}

// Open loads the store from path. A missing or unreadable file is not an
// error: the store starts empty and reports the problem on the log writer.
func Open(path string, logW io.Writer) *GrantStore {
	if logW == nil {
		logW = os.Stderr
	}

	s := &GrantStore{
		path:    path,
		entries: make(map[string][]string),
		logW:    logW,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(logW, "store: load %s: %v (starting empty)\n", path, err)
		}
		return s
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		fmt.Fprintf(logW, "store: parse %s: %v (starting empty)\n", path, err)
		s.entries = make(map[string][]string)
	}
	return s
}

// Confirm appends context to the entry for the trimmed, case-sensitive name,
// creating the entry if absent, and persists synchronously. A failed save is
// logged, never raised; the in-memory update survives for the rest of the
// process lifetime.
func (s *GrantStore) Confirm(name, context string) {
	name = strings.TrimSpace(name)
	if name == "" || context == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contexts := append(s.entries[name], context)
	if len(contexts) > maxContexts {
		contexts = contexts[len(contexts)-maxContexts:]
	}
	s.entries[name] = contexts

	if err := s.persistLocked(); err != nil {
		fmt.Fprintf(s.logW, "store: save %s: %v\n", s.path, err)
	}
}

// Lookup returns the recorded contexts for a name, oldest first, or nil when
// the name was never confirmed. Used for audit and debugging, not extraction.
func (s *GrantStore) Lookup(name string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	contexts, ok := s.entries[strings.TrimSpace(name)]
	if !ok {
		return nil
	}
	out := make([]string, len(contexts))
	copy(out, contexts)
	return out
}

// Names returns all confirmed grant names, sorted
func (s *GrantStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// persistLocked writes the whole store as a JSON snapshot using an atomic
// replace, so a failed write never corrupts the previous snapshot.
func (s *GrantStore) persistLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".grants-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
