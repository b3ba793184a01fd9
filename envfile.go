// Package envfile loads environment files (KEY=VALUE lines) into an
// in-memory map, supports lookup and mutation, and writes the map back to
// disk in a canonical sorted form.
//
// Reading is lenient: comments, blank lines, and malformed lines are
// silently skipped, values may be quoted or backslash-escaped, and a later
// occurrence of a key overwrites an earlier one. Writing is canonical:
// entries come out sorted by key, values are quoted only when necessary,
// and comments and blank lines are never preserved.
//
//	env, err := envfile.New("recovery.conf")
//	if err != nil {
//		return err
//	}
//	env.Update("ID", "example")
//	if err := env.Write(); err != nil {
//		return err
//	}
package envfile

import (
	"bytes"
	"fmt"
	"os"
	"sort"
)

// EnvFile is an environment file buffered into memory as a key/value map.
type EnvFile struct {
	// Path is where the file lives on disk. Write targets it; nothing else
	// uses it. No handle to it is held open between operations.
	Path string

	store map[string]string
}

// New reads and parses the environment file at path. The whole file is
// buffered; the file handle is closed before New returns. Unparseable
// lines are skipped, not reported.
func New(path string) (*EnvFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open file at %s: %w", path, err)
	}
	return FromBytes(path, data), nil
}

// FromBytes parses an environment file already held in memory. path is
// recorded as the destination for Write. Parsing never fails; lines that
// cannot be parsed are skipped.
func FromBytes(path string, data []byte) *EnvFile {
	store := make(map[string]string)
	for _, raw := range bytes.Split(data, []byte{'\n'}) {
		if key, value, ok := parseLine(raw); ok {
			store[key] = value
		}
	}
	return &EnvFile{Path: path, store: store}
}

// Get returns the value for key and whether the key is present.
func (e *EnvFile) Get(key string) (string, bool) {
	value, ok := e.store[key]
	return value, ok
}

// Update inserts or overwrites the value for key. The value is stored
// literally; any quoting it needs happens on Write.
func (e *EnvFile) Update(key, value string) {
	e.store[key] = value
}

// Unset removes key from the map. Removing an absent key is a no-op.
func (e *EnvFile) Unset(key string) {
	delete(e.store, key)
}

// Keys returns all keys in ascending order.
func (e *EnvFile) Keys() []string {
	keys := make([]string, 0, len(e.store))
	for key := range e.store {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (e *EnvFile) Len() int {
	return len(e.store)
}

// Bytes renders the canonical serialization: one KEY=VALUE line per entry,
// sorted by key, values escaped as needed, no comments or blank lines.
func (e *EnvFile) Bytes() []byte {
	var buf bytes.Buffer
	for _, key := range e.Keys() {
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(Escape(e.store[key]))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Write serializes the map back to Path, replacing the file's previous
// contents. Comments and blank lines from the original file are not
// preserved — the output is always the canonical sorted rendering.
func (e *EnvFile) Write() error {
	if err := os.WriteFile(e.Path, e.Bytes(), 0o644); err != nil {
		return fmt.Errorf("unable to create file at %s: %w", e.Path, err)
	}
	return nil
}
