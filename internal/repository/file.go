package repository

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/formforge/formforge/internal/domain/schema"
)

// FileFormRepo keeps the collection in a single JSON file, the direct
// analog of the browser build's localStorage slot. Writes go through a
// temp file plus rename, and a sibling lock file guards concurrent
// processes (the CLI and a local server may share the same data file).
type FileFormRepo struct {
	path string
	lock *flock.Flock
}

func NewFileFormRepo(path string) *FileFormRepo {
	return &FileFormRepo{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (r *FileFormRepo) LoadAll() ([]schema.PersistedForm, error) {
	if err := r.lock.RLock(); err != nil {
		return nil, err
	}
	defer r.lock.Unlock()

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []schema.PersistedForm{}, nil
		}
		return nil, err
	}
	forms := []schema.PersistedForm{}
	if err := json.Unmarshal(raw, &forms); err != nil {
		log.Printf("Discarding unreadable form collection at %s: %v", r.path, err)
		return []schema.PersistedForm{}, nil
	}
	return forms, nil
}

func (r *FileFormRepo) SaveAll(forms []schema.PersistedForm) error {
	if forms == nil {
		forms = []schema.PersistedForm{}
	}
	raw, err := json.MarshalIndent(forms, "", "  ")
	if err != nil {
		return err
	}

	if err := r.lock.Lock(); err != nil {
		return err
	}
	defer r.lock.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
