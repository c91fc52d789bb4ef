package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/infrastructure/persistence/mappers"
	"shelfwatch/internal/infrastructure/persistence/models"
	shareddb "shelfwatch/internal/shared/db"
)

type SubjectRepositoryImpl struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepositoryImpl {
	return &SubjectRepositoryImpl{db: db}
}

var _ subject.Repository = (*SubjectRepositoryImpl)(nil)

func (r *SubjectRepositoryImpl) GetByID(ctx context.Context, id string) (*subject.Subject, error) {
	var model models.SubjectModel
	if err := shareddb.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return mappers.SubjectToEntity(&model), nil
}

func (r *SubjectRepositoryImpl) List(ctx context.Context) ([]*subject.Subject, error) {
	var rows []*models.SubjectModel
	if err := shareddb.GetTxFromContext(ctx, r.db).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return mappers.SubjectsToEntities(rows), nil
}

// Upsert inserts or updates a subject row. Production rows come from the
// identity provider; operators write them with `admin seed-subject`.
func (r *SubjectRepositoryImpl) Upsert(ctx context.Context, s *subject.Subject) error {
	model := &models.SubjectModel{ID: s.ID, Email: s.Email, BusinessName: s.BusinessName}
	err := shareddb.GetTxFromContext(ctx, r.db).
		Where(models.SubjectModel{ID: s.ID}).
		Assign(models.SubjectModel{Email: s.Email, BusinessName: s.BusinessName}).
		FirstOrCreate(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert subject: %w", err)
	}
	return nil
}
