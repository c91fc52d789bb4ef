package http

import (
	"gorm.io/gorm"

	"shelfwatch/internal/domain/inventory"
	"shelfwatch/internal/domain/role"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	subjectRepo    subject.Repository
	roleRepo       role.Repository
	productRepo    inventory.Repository
	preferenceRepo inventory.PreferenceRepository
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		subjectRepo:    repository.NewSubjectRepository(db),
		roleRepo:       repository.NewRoleRepository(db),
		productRepo:    repository.NewProductRepository(db),
		preferenceRepo: repository.NewPreferenceRepository(db),
	}
}
