package application

import (
	"github.com/formforge/formforge/internal/repository"
)

type Services struct {
	Draft   *DraftService
	Form    *FormService
	Preview *PreviewService
	Backup  *BackupService
}

func New(repos *repository.Repos) *Services {
	draft := NewDraftService(repos)
	return &Services{
		Draft:   draft,
		Form:    NewFormService(repos),
		Preview: NewPreviewService(draft),
		Backup:  NewBackupService(repos),
	}
}
