package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"shelfwatch/internal/domain/role"
	"shelfwatch/internal/infrastructure/persistence/mappers"
	"shelfwatch/internal/infrastructure/persistence/models"
	"shelfwatch/internal/shared/authorization"
	shareddb "shelfwatch/internal/shared/db"
	"shelfwatch/internal/shared/errors"
)

type RoleRepositoryImpl struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepositoryImpl {
	return &RoleRepositoryImpl{db: db}
}

var _ role.Repository = (*RoleRepositoryImpl)(nil)

// HasRole is a bounded existence query.
func (r *RoleRepositoryImpl) HasRole(ctx context.Context, subjectID string, userRole authorization.UserRole) (bool, error) {
	var found []string
	err := shareddb.GetTxFromContext(ctx, r.db).
		Model(&models.RoleAssignmentModel{}).
		Where("subject_id = ? AND role = ?", subjectID, string(userRole)).
		Limit(1).
		Pluck("id", &found).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role: %w", err)
	}
	return len(found) > 0, nil
}

func (r *RoleRepositoryImpl) Grant(ctx context.Context, a *role.Assignment) error {
	model := &models.RoleAssignmentModel{
		ID:        a.ID,
		SubjectID: a.SubjectID,
		Role:      string(a.Role),
		GrantedBy: a.GrantedBy,
		CreatedAt: a.CreatedAt,
	}
	if err := shareddb.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return role.ErrAlreadyAssigned
		}
		return fmt.Errorf("failed to grant role: %w", err)
	}
	return nil
}

func (r *RoleRepositoryImpl) Revoke(ctx context.Context, subjectID string, userRole authorization.UserRole) (bool, error) {
	result := shareddb.GetTxFromContext(ctx, r.db).
		Where("subject_id = ? AND role = ?", subjectID, string(userRole)).
		Delete(&models.RoleAssignmentModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to revoke role: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *RoleRepositoryImpl) ListBySubject(ctx context.Context, subjectID string) ([]*role.Assignment, error) {
	var rows []*models.RoleAssignmentModel
	if err := shareddb.GetTxFromContext(ctx, r.db).Where("subject_id = ?", subjectID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return mappers.RoleAssignmentsToEntities(rows), nil
}
