package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shelfwatch/internal/application/admin/dto"
	"shelfwatch/internal/domain/role"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/shared/authorization"
	apperrors "shelfwatch/internal/shared/errors"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/utils"
)

// GrantRoleUseCase assigns an elevated role to an existing subject.
type GrantRoleUseCase struct {
	roleRepo    role.Repository
	subjectRepo subject.Repository
	logger      logger.Interface
}

func NewGrantRoleUseCase(roleRepo role.Repository, subjectRepo subject.Repository, logger logger.Interface) *GrantRoleUseCase {
	return &GrantRoleUseCase{roleRepo: roleRepo, subjectRepo: subjectRepo, logger: logger}
}

// Execute reports an existing assignment as a conflict.
func (uc *GrantRoleUseCase) Execute(ctx context.Context, grantedBy string, request dto.GrantRoleRequest) (*dto.RoleAssignmentResponse, error) {
	uc.logger.Infow("executing grant role", "subject_id", request.SubjectID, "role", request.Role, "granted_by", grantedBy)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, err
	}
	r := authorization.UserRole(request.Role)

	target, err := uc.subjectRepo.GetByID(ctx, request.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}
	if target == nil {
		return nil, apperrors.NewNotFoundError("subject not found")
	}

	assignment := &role.Assignment{
		ID:        uuid.NewString(),
		SubjectID: request.SubjectID,
		Role:      r,
		GrantedBy: grantedBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.roleRepo.Grant(ctx, assignment); err != nil {
		if errors.Is(err, role.ErrAlreadyAssigned) {
			return nil, apperrors.NewConflictError("role already assigned", request.SubjectID)
		}
		uc.logger.Errorw("failed to grant role", "subject_id", request.SubjectID, "error", err)
		return nil, fmt.Errorf("failed to grant role: %w", err)
	}

	uc.logger.Infow("role granted", "subject_id", request.SubjectID, "role", r)
	return dto.ToRoleAssignmentResponse(assignment), nil
}
