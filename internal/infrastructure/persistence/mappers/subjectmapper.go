package mappers

import (
	"shelfwatch/internal/domain/role"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/infrastructure/persistence/models"
	"shelfwatch/internal/shared/authorization"
	"shelfwatch/internal/shared/mapper"
)

func SubjectToEntity(m *models.SubjectModel) *subject.Subject {
	return &subject.Subject{ID: m.ID, Email: m.Email, BusinessName: m.BusinessName}
}

func SubjectsToEntities(ms []*models.SubjectModel) []*subject.Subject {
	return mapper.MapSlicePtrSkipNil(ms, SubjectToEntity)
}

func RoleAssignmentToEntity(m *models.RoleAssignmentModel) *role.Assignment {
	return &role.Assignment{
		ID:        m.ID,
		SubjectID: m.SubjectID,
		Role:      authorization.ParseUserRole(m.Role),
		GrantedBy: m.GrantedBy,
		CreatedAt: m.CreatedAt,
	}
}

func RoleAssignmentsToEntities(ms []*models.RoleAssignmentModel) []*role.Assignment {
	return mapper.MapSlicePtrSkipNil(ms, RoleAssignmentToEntity)
}
