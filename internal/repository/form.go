package repository

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/formforge/formforge/internal/domain/schema"
)

// StorageKey is the single key the whole saved-form collection lives
// under. It is carried over from the browser build of the form builder so
// exported data stays interchangeable.
const StorageKey = "upl_forms_v1"

// FormRepo persists the saved-form collection as one unit. Implementations
// must degrade to an empty collection on missing or corrupt data instead
// of returning an error, and SaveAll always rewrites the full collection.
type FormRepo interface {
	LoadAll() ([]schema.PersistedForm, error)
	SaveAll(forms []schema.PersistedForm) error
}

// FormBlob is the key/value row the collection is serialized into.
type FormBlob struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Value     datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (FormBlob) TableName() string {
	return "form_blobs"
}

type DBFormRepo struct {
	db *gorm.DB
}

func NewFormRepo(db *gorm.DB) *DBFormRepo {
	return &DBFormRepo{db: db}
}

func (r *DBFormRepo) LoadAll() ([]schema.PersistedForm, error) {
	var blob FormBlob
	err := r.db.First(&blob, "key = ?", StorageKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []schema.PersistedForm{}, nil
	}
	if err != nil {
		return nil, err
	}
	forms := []schema.PersistedForm{}
	if err := json.Unmarshal(blob.Value, &forms); err != nil {
		log.Printf("Discarding unreadable form collection under %q: %v", StorageKey, err)
		return []schema.PersistedForm{}, nil
	}
	return forms, nil
}

func (r *DBFormRepo) SaveAll(forms []schema.PersistedForm) error {
	if forms == nil {
		forms = []schema.PersistedForm{}
	}
	raw, err := json.Marshal(forms)
	if err != nil {
		return err
	}
	blob := FormBlob{Key: StorageKey, Value: raw, UpdatedAt: time.Now()}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&blob).Error
}
