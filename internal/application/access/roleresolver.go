package access

import (
	"context"

	"shelfwatch/internal/shared/authorization"
	"shelfwatch/internal/shared/logger"
)

// RoleResolver turns role-store lookups into plain booleans. Any storage
// error reads as "does not hold the role", which fails closed for admin.
type RoleResolver struct {
	store  RoleStore
	logger logger.Interface
}

func NewRoleResolver(store RoleStore, log logger.Interface) *RoleResolver {
	return &RoleResolver{store: store, logger: log}
}

func (r *RoleResolver) HasRole(ctx context.Context, subjectID string, role authorization.UserRole) bool {
	if subjectID == "" {
		return false
	}
	ok, err := r.store.HasRole(ctx, subjectID, role)
	if err != nil {
		r.logger.Warnw("role lookup failed, treating as not held",
			"subject_id", subjectID,
			"role", role,
			"error", err,
		)
		return false
	}
	return ok
}

func (r *RoleResolver) IsAdmin(ctx context.Context, subjectID string) bool {
	return r.HasRole(ctx, subjectID, authorization.RoleAdmin)
}

// RoleOf returns admin when the admin assignment exists, user otherwise.
func (r *RoleResolver) RoleOf(ctx context.Context, subjectID string) authorization.UserRole {
	if r.IsAdmin(ctx, subjectID) {
		return authorization.RoleAdmin
	}
	return authorization.RoleUser
}
