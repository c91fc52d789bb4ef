package usecases

import (
	"context"
	"fmt"

	"shelfwatch/internal/domain/role"
	"shelfwatch/internal/shared/authorization"
	"shelfwatch/internal/shared/errors"
	"shelfwatch/internal/shared/logger"
)

// RevokeRoleUseCase removes the admin role from a subject.
type RevokeRoleUseCase struct {
	roleRepo role.Repository
	logger   logger.Interface
}

func NewRevokeRoleUseCase(roleRepo role.Repository, logger logger.Interface) *RevokeRoleUseCase {
	return &RevokeRoleUseCase{roleRepo: roleRepo, logger: logger}
}

// Execute refuses self-revocation so the last admin cannot lock
// everyone out by accident.
func (uc *RevokeRoleUseCase) Execute(ctx context.Context, revokedBy, subjectID string) error {
	if subjectID == "" {
		return errors.NewValidationError("subject ID is required")
	}
	if subjectID == revokedBy {
		return errors.NewValidationError("cannot revoke your own admin role")
	}

	removed, err := uc.roleRepo.Revoke(ctx, subjectID, authorization.RoleAdmin)
	if err != nil {
		uc.logger.Errorw("failed to revoke role", "subject_id", subjectID, "error", err)
		return fmt.Errorf("failed to revoke role: %w", err)
	}
	if !removed {
		return errors.NewNotFoundError("role assignment not found")
	}

	uc.logger.Infow("role revoked", "subject_id", subjectID, "revoked_by", revokedBy)
	return nil
}
