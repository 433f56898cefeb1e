// Package store is the client-side key-value secret store. It mirrors the
// guarantees of browser localStorage: writes may fail (quota, unwritable
// profile directory), reads of missing keys yield an empty value, and
// neither operation ever errors out to the caller. Values are stored as-is;
// encryption is the caller's responsibility.
package store

import (
	"os"
	"path/filepath"
	"strings"
)

// KeyKeypair holds the wallet's base58-encoded secret key, namespaced by the
// store's tag on write.
const KeyKeypair = "keypair"

// Store persists string values one file per namespaced key.
type Store struct {
	dir string
	tag string
}

// New creates a store rooted at dir. All keys are prefixed with tag so the
// directory can be shared with unrelated data.
func New(dir, tag string) *Store {
	return &Store{dir: dir, tag: tag}
}

// Put writes value under the namespaced key. Returns false on any failure.
func (s *Store) Put(key, value string) bool {
	if key == "" {
		return false
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return false
	}
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return false
	}
	// Atomic swap so a concurrent reader never sees a torn value.
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return false
	}
	return true
}

// Get reads the value stored under the namespaced key. Returns "" when the
// key is absent or the store is unreadable.
func (s *Store) Get(key string) string {
	if key == "" {
		return ""
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return ""
	}
	return string(data)
}

// Delete removes the key. Absence is not an error.
func (s *Store) Delete(key string) {
	os.Remove(s.path(key))
}

func (s *Store) path(key string) string {
	name := s.tag + sanitize(key)
	return filepath.Join(s.dir, name)
}

// sanitize keeps keys from escaping the store directory.
func sanitize(key string) string {
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return strings.ReplaceAll(key, "..", "_")
}
