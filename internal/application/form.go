package application

import (
	"github.com/formforge/formforge/internal/domain/schema"
	"github.com/formforge/formforge/internal/repository"
)

// FormService exposes the persisted-form collection. Records are kept
// most-recent-first; every mutation rewrites the whole collection, there
// is no partial persistence.
type FormService struct {
	repos *repository.Repos
}

func NewFormService(repos *repository.Repos) *FormService {
	return &FormService{repos: repos}
}

func (s *FormService) ListForms() ([]schema.PersistedForm, error) {
	return s.repos.Form.LoadAll()
}

func (s *FormService) GetForm(id string) (schema.PersistedForm, error) {
	saved, err := s.repos.Form.LoadAll()
	if err != nil {
		return schema.PersistedForm{}, err
	}
	for _, record := range saved {
		if record.ID == id {
			return record, nil
		}
	}
	return schema.PersistedForm{}, ErrFormNotFound
}

// DeleteForm removes the record with the given id and re-persists the
// collection. An absent id is a no-op.
func (s *FormService) DeleteForm(id string) error {
	saved, err := s.repos.Form.LoadAll()
	if err != nil {
		return err
	}
	kept := saved[:0]
	for _, record := range saved {
		if record.ID != id {
			kept = append(kept, record)
		}
	}
	if len(kept) == len(saved) {
		return nil
	}
	return s.repos.Form.SaveAll(kept)
}

// ReplaceAll swaps in a whole new collection. Used by backup restore and
// by the CLI import path.
func (s *FormService) ReplaceAll(forms []schema.PersistedForm) error {
	return s.repos.Form.SaveAll(forms)
}
