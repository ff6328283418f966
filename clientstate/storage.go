// Package clientstate models the browser-local state of the OnTheWay
// client: the favorites list, the in-progress checkout selection and the
// UI theme. It replaces the original's implicit global store with an
// explicit container that hydrates from storage on construction and
// persists on every mutating action.
package clientstate

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
)

// Storage is the local key-value persistence the containers hydrate from
// and write back to, mirroring browser local storage.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// FileStorage keeps entries as one JSON object in a file. Writes are
// best-effort, like local storage: a failed flush is logged, not raised.
type FileStorage struct {
	path string

	mu      sync.Mutex
	entries map[string]string
}

// OpenFileStorage loads existing entries from path, starting empty when
// the file does not exist yet.
func OpenFileStorage(path string) (*FileStorage, error) {
	fs := &FileStorage{path: path, entries: map[string]string{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &fs.entries); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStorage) Get(key string) (string, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	v, ok := fs.entries[key]
	return v, ok
}

func (fs *FileStorage) Set(key, value string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.entries[key] = value
	fs.flush()
}

func (fs *FileStorage) Delete(key string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.entries, key)
	fs.flush()
}

func (fs *FileStorage) flush() {
	data, err := json.MarshalIndent(fs.entries, "", "  ")
	if err == nil {
		err = os.WriteFile(fs.path, data, 0o644)
	}
	if err != nil {
		log.Warn().Err(err).Str("path", fs.path).Msg("client state flush failed")
	}
}
