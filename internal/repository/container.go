package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	Form FormRepo
}

// NewRepositories wires the postgres-backed repositories.
func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Form: NewFormRepo(db),
	}
}

// NewFileRepositories wires the file-backed repositories used by the CLI
// and by local single-user deployments.
func NewFileRepositories(dataFile string) *Repos {
	return &Repos{
		Form: NewFileFormRepo(dataFile),
	}
}
