package application

import (
	"errors"
	"sync"
	"time"

	"github.com/formforge/formforge/internal/domain/schema"
	"github.com/formforge/formforge/internal/repository"
)

var (
	ErrFieldNotFound    = errors.New("field not found")
	ErrFormNotFound     = errors.New("form not found")
	ErrSelfParent       = errors.New("field cannot list itself as a parent")
	ErrUnknownFieldType = errors.New("unknown field type")
)

// DraftService owns the form schema currently being edited and the
// operations that move it in and out of the persisted collection. The
// draft itself is in-memory state: it only reaches storage through
// SaveForm. A mutex serializes access because handlers run concurrently.
type DraftService struct {
	mu    sync.Mutex
	draft schema.FormSchema
	repos *repository.Repos
}

func NewDraftService(repos *repository.Repos) *DraftService {
	return &DraftService{
		draft: schema.NewFormSchema(),
		repos: repos,
	}
}

// Draft returns a deep copy of the current draft.
func (s *DraftService) Draft() (schema.FormSchema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *DraftService) snapshotLocked() (schema.FormSchema, error) {
	fields, err := schema.CloneFields(s.draft.Fields)
	if err != nil {
		return schema.FormSchema{}, err
	}
	out := s.draft
	out.Fields = fields
	return out, nil
}

// AddField appends a freshly-seeded field of the given type to the end of
// the draft and returns it. The id is generated here; callers never supply
// one.
func (s *DraftService) AddField(input schema.CreateFieldDTO) (schema.Field, error) {
	if !schema.IsValidFieldType(input.Type) {
		return schema.Field{}, ErrUnknownFieldType
	}
	f := schema.NewField(input.Type)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Fields = append(s.draft.Fields, f)
	return f.Clone(), nil
}

// UpdateField replaces the field with the given id in place, preserving
// its position and type. Option lists are normalized the way the field
// editor does on save, and a field naming itself as a parent is rejected.
func (s *DraftService) UpdateField(id string, input schema.UpdateFieldDTO) (schema.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.draft.Fields {
		if f.ID != id {
			continue
		}
		updated := schema.Field{
			ID:           f.ID,
			Type:         f.Type,
			Label:        input.Label,
			Required:     input.Required,
			DefaultValue: input.DefaultValue,
			Options:      input.Options,
			Validation:   input.Validation,
			Derived:      input.Derived,
			Parents:      input.Parents,
			Formula:      input.Formula,
		}
		if updated.Parents == nil {
			updated.Parents = []string{}
		}
		if updated.HasSelfParent() {
			return schema.Field{}, ErrSelfParent
		}
		updated.Normalize()
		s.draft.Fields[i] = updated
		return updated.Clone(), nil
	}
	return schema.Field{}, ErrFieldNotFound
}

// RemoveField deletes the field with the given id; absent ids are a no-op.
// Other fields' parents lists are left alone even when they reference the
// removed field: the evaluator already treats unknown ids as null.
func (s *DraftService) RemoveField(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := s.draft.Fields[:0]
	for _, f := range s.draft.Fields {
		if f.ID != id {
			fields = append(fields, f)
		}
	}
	s.draft.Fields = fields
}

// ReorderFields moves the field at position from to position to, shifting
// the fields in between. Out-of-range indices leave the draft unchanged.
func (s *DraftService) ReorderFields(from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := s.draft.Fields
	if from < 0 || to < 0 || from >= len(fields) || to >= len(fields) {
		return
	}
	moved := fields[from]
	fields = append(fields[:from], fields[from+1:]...)
	fields = append(fields[:to], append([]schema.Field{moved}, fields[to:]...)...)
	s.draft.Fields = fields
}

// ResetDraft replaces the draft with a fresh empty schema under a new id.
func (s *DraftService) ResetDraft() schema.FormSchema {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = schema.NewFormSchema()
	return s.draft
}

// SaveForm snapshots the draft's fields into a new persisted record with a
// fresh createdAt, prepends it to the collection (most recent first) and
// rewrites the whole collection. The draft is reset afterward.
func (s *DraftService) SaveForm(name string) (schema.PersistedForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, err := schema.CloneFields(s.draft.Fields)
	if err != nil {
		return schema.PersistedForm{}, err
	}
	record := schema.PersistedForm{
		ID:        s.draft.ID,
		Name:      name,
		CreatedAt: time.Now().UnixMilli(),
		Fields:    fields,
	}

	saved, err := s.repos.Form.LoadAll()
	if err != nil {
		return schema.PersistedForm{}, err
	}
	saved = append([]schema.PersistedForm{record}, saved...)
	if err := s.repos.Form.SaveAll(saved); err != nil {
		return schema.PersistedForm{}, err
	}

	s.draft = schema.NewFormSchema()
	return record, nil
}

// LoadSavedIntoDraft replaces the draft with a deep copy of the persisted
// record. An unknown id is not an error: the current draft stays as it is
// and found reports false.
func (s *DraftService) LoadSavedIntoDraft(id string) (draft schema.FormSchema, found bool, err error) {
	saved, err := s.repos.Form.LoadAll()
	if err != nil {
		return schema.FormSchema{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range saved {
		if record.ID != id {
			continue
		}
		fields, err := schema.CloneFields(record.Fields)
		if err != nil {
			return schema.FormSchema{}, false, err
		}
		s.draft = schema.FormSchema{
			ID:        record.ID,
			Name:      record.Name,
			CreatedAt: record.CreatedAt,
			Fields:    fields,
		}
		draft, err = s.snapshotLocked()
		return draft, true, err
	}
	draft, err = s.snapshotLocked()
	return draft, false, err
}
