package handlers

import (
	"github.com/formforge/formforge/internal/application"
	"github.com/formforge/formforge/internal/config"
)

type Handlers struct {
	Auth      *AuthHandler
	Draft     *DraftHandler
	Form      *FormHandler
	Preview   *PreviewHandler
	PreviewWS *PreviewWSHandler
	Backup    *BackupHandler
}

func New(svc *application.Services) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(config.AdminPassword),
		Draft:     NewDraftHandler(svc.Draft),
		Form:      NewFormHandler(svc.Form),
		Preview:   NewPreviewHandler(svc.Preview),
		PreviewWS: NewPreviewWSHandler(svc.Preview),
		Backup:    NewBackupHandler(svc.Backup),
	}
}
