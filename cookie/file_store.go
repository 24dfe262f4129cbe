package cookie

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/kbukum/gorest/encryption"
)

// FilePattern is the name pattern of cookie files created by NewFileStore.
const FilePattern = "rest.cookie.*"

// FileStore keeps records in a private temporary file. The file is removed
// on Close.
type FileStore struct {
	mu     sync.Mutex
	path   string
	enc    encryption.Encryptor
	closed bool
}

// NewFileStore creates a new cookie file in dir, or in os.TempDir when dir
// is empty. A non-nil enc seals the file contents.
func NewFileStore(dir string, enc encryption.Encryptor) (*FileStore, error) {
	f, err := os.CreateTemp(dir, FilePattern)
	if err != nil {
		return nil, fmt.Errorf("cookie: create store file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("cookie: create store file: %w", err)
	}
	return &FileStore{path: path, enc: enc}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("cookie: read store: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	if s.enc != nil {
		if data, err = s.enc.Open(data); err != nil {
			return nil, fmt.Errorf("cookie: open store: %w", err)
		}
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("cookie: decode store: %w", err)
	}
	return records, nil
}

func (s *FileStore) Save(records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("cookie: encode store: %w", err)
	}
	if s.enc != nil {
		if data, err = s.enc.Seal(data); err != nil {
			return fmt.Errorf("cookie: seal store: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("cookie: write store: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cookie: remove store: %w", err)
	}
	return nil
}
