package dto

import (
	"time"

	"shelfwatch/internal/domain/role"
)

type GrantRoleRequest struct {
	SubjectID string `json:"subject_id" binding:"required,max=64"`
	Role      string `json:"role" binding:"required,oneof=admin"`
}

type RoleAssignmentResponse struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subject_id"`
	Role      string    `json:"role"`
	GrantedBy string    `json:"granted_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToRoleAssignmentResponse(a *role.Assignment) *RoleAssignmentResponse {
	return &RoleAssignmentResponse{
		ID:        a.ID,
		SubjectID: a.SubjectID,
		Role:      a.Role.String(),
		GrantedBy: a.GrantedBy,
		CreatedAt: a.CreatedAt,
	}
}
