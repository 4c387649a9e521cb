package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// File is a Backend persisted as a single JSON file of key -> blob. Every
// Save rewrites the file synchronously, like local storage writes on every
// dispatched action.
type File struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

func NewFile(path string) (*File, error) {
	f := &File{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}

	// A corrupt file is treated as empty rather than fatal.
	if err := json.Unmarshal(raw, &f.data); err != nil {
		f.data = make(map[string]json.RawMessage)
	}

	return f, nil
}

func (f *File) Load(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (f *File) Save(key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := make(json.RawMessage, len(data))
	copy(stored, data)
	f.data[key] = stored
	return f.write()
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.data, key)
	return f.write()
}

func (f *File) write() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
