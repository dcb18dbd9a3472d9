package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	minioSDK "github.com/minio/minio-go/v7"

	"github.com/formforge/formforge/internal/domain/schema"
	"github.com/formforge/formforge/internal/objectstore"
	"github.com/formforge/formforge/internal/repository"
)

// BackupService copies the serialized form collection to and from object
// storage. Snapshots are full copies of the collection JSON, named by
// timestamp.
type BackupService struct {
	repos *repository.Repos
}

func NewBackupService(repos *repository.Repos) *BackupService {
	return &BackupService{repos: repos}
}

// Snapshot uploads the current collection and returns the object name.
func (s *BackupService) Snapshot(ctx context.Context) (string, error) {
	forms, err := s.repos.Form.LoadAll()
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(forms)
	if err != nil {
		return "", err
	}

	object := fmt.Sprintf("forms-%s.json", time.Now().UTC().Format("20060102-150405"))
	_, err = objectstore.Client.PutObject(ctx, objectstore.BucketName, object,
		bytes.NewReader(raw), int64(len(raw)),
		minioSDK.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", err
	}
	return object, nil
}

// Restore downloads a snapshot and replaces the whole collection with it.
func (s *BackupService) Restore(ctx context.Context, object string) (int, error) {
	obj, err := objectstore.Client.GetObject(ctx, objectstore.BucketName, object, minioSDK.GetObjectOptions{})
	if err != nil {
		return 0, err
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		return 0, err
	}
	forms := []schema.PersistedForm{}
	if err := json.Unmarshal(raw, &forms); err != nil {
		return 0, fmt.Errorf("snapshot %s is not a form collection: %w", object, err)
	}
	if err := s.repos.Form.SaveAll(forms); err != nil {
		return 0, err
	}
	return len(forms), nil
}
