package kv

import (
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// File is a Store persisted to a single YAML file, suited to CLI preferences
// that should survive between runs. Every Set rewrites the file; the value
// set wins even when the write fails, so callers degrade to in-memory
// behavior on read-only filesystems.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewFile loads the store from path, starting empty when the file does not
// exist or cannot be parsed.
func NewFile(path string) *File {
	f := &File{path: path, values: make(map[string]string)}
	raw, err := os.ReadFile(path)
	if err != nil {
		return f
	}
	var loaded map[string]string
	if err := yaml.Unmarshal(raw, &loaded); err != nil || loaded == nil {
		return f
	}
	f.values = loaded
	return f
}

// Get returns the value under key.
func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.values[key]
	return value, ok
}

// Set stores value under key and persists the file.
func (f *File) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = value
	raw, err := yaml.Marshal(f.values)
	if err != nil {
		return
	}
	_ = os.WriteFile(f.path, raw, 0o600)
}
