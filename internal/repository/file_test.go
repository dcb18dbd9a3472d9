package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formforge/formforge/internal/domain/schema"
)

func TestFileFormRepoRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forms.json")
	repo := NewFileFormRepo(path)

	forms := []schema.PersistedForm{
		{ID: "f1", Name: "First", CreatedAt: 1700000000000, Fields: []schema.Field{schema.NewField(schema.FieldTypeText)}},
		{ID: "f2", Name: "Second", CreatedAt: 1700000001000, Fields: []schema.Field{}},
	}
	require.NoError(t, repo.SaveAll(forms))

	loaded, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "f1", loaded[0].ID)
	assert.Equal(t, "First", loaded[0].Name)
	assert.Len(t, loaded[0].Fields, 1)
}

func TestFileFormRepoMissingFile(t *testing.T) {
	repo := NewFileFormRepo(filepath.Join(t.TempDir(), "missing.json"))
	loaded, err := repo.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileFormRepoCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forms.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo := NewFileFormRepo(path)
	loaded, err := repo.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileFormRepoSaveNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forms.json")
	repo := NewFileFormRepo(path)
	require.NoError(t, repo.SaveAll(nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}
