package usecases

import (
	"context"
	"fmt"

	"shelfwatch/internal/application/admin/dto"
	"shelfwatch/internal/domain/role"
	"shelfwatch/internal/domain/subject"
	apperrors "shelfwatch/internal/shared/errors"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/mapper"
)

// ListRolesUseCase lists the elevated roles held by one subject.
type ListRolesUseCase struct {
	roleRepo    role.Repository
	subjectRepo subject.Repository
	logger      logger.Interface
}

func NewListRolesUseCase(roleRepo role.Repository, subjectRepo subject.Repository, logger logger.Interface) *ListRolesUseCase {
	return &ListRolesUseCase{roleRepo: roleRepo, subjectRepo: subjectRepo, logger: logger}
}

func (uc *ListRolesUseCase) Execute(ctx context.Context, subjectID string) ([]*dto.RoleAssignmentResponse, error) {
	if subjectID == "" {
		return nil, apperrors.NewValidationError("subject ID is required")
	}

	target, err := uc.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}
	if target == nil {
		return nil, apperrors.NewNotFoundError("subject not found")
	}

	assignments, err := uc.roleRepo.ListBySubject(ctx, subjectID)
	if err != nil {
		uc.logger.Errorw("failed to list roles", "subject_id", subjectID, "error", err)
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	return mapper.MapSlicePtrSkipNil(assignments, dto.ToRoleAssignmentResponse), nil
}
