package models

import (
	"time"

	"shelfwatch/internal/shared/constants"
)

// RoleAssignmentModel is one row of user_roles; (subject_id, role) is unique.
type RoleAssignmentModel struct {
	ID        string `gorm:"primarykey;size:36"`
	SubjectID string `gorm:"not null;size:64;uniqueIndex:idx_user_roles_subject_role"`
	Role      string `gorm:"not null;size:20;uniqueIndex:idx_user_roles_subject_role"`
	GrantedBy string `gorm:"size:64"`
	CreatedAt time.Time
}

func (RoleAssignmentModel) TableName() string {
	return constants.TableUserRoles
}
