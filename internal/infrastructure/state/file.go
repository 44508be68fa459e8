package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/core/ports"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// fileState is the on-disk layout: the session under "user", the locale
// under "language".
type fileState struct {
	User     *domain.Session `json:"user,omitempty"`
	Language string          `json:"language,omitempty"`
}

// fileStore keeps the state in a single JSON file. Writes go to a temporary
// file in the same directory and are renamed into place.
type fileStore struct {
	mu   sync.Mutex
	path string
}

// NewFile builds a store backed by the JSON file at path. The file and its
// directory are created on the first write.
func NewFile(path string) ports.StateStore {
	return &fileStore{path: path}
}

func (f *fileStore) LoadSession(context.Context) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.read()
	if err != nil || st.User == nil {
		return domain.Session{}, err
	}
	return *st.User, nil
}

func (f *fileStore) SaveSession(_ context.Context, sess domain.Session) error {
	return f.update(func(st *fileState) { st.User = &sess })
}

func (f *fileStore) ClearSession(context.Context) error {
	return f.update(func(st *fileState) { st.User = nil })
}

func (f *fileStore) LoadLocale(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.read()
	return st.Language, err
}

func (f *fileStore) SaveLocale(_ context.Context, code string) error {
	return f.update(func(st *fileState) { st.Language = code })
}

// Ping checks that the state directory exists or can be created.
func (f *fileStore) Ping(context.Context) error {
	if err := os.MkdirAll(filepath.Dir(f.path), dirPerm); err != nil {
		return fmt.Errorf("state dir: %w", err)
	}
	return nil
}

func (f *fileStore) Close(context.Context) error { return nil }

func (f *fileStore) read() (fileState, error) {
	var st fileState
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("read state: %w", err)
	}
	if len(data) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return fileState{}, fmt.Errorf("decode state %s: %w", f.path, err)
	}
	return st, nil
}

func (f *fileStore) update(mutate func(*fileState)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.read()
	if err != nil {
		return err
	}
	mutate(&st)

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return f.write(data)
}

func (f *fileStore) write(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}
