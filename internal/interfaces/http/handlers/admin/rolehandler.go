package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"shelfwatch/internal/application/admin/dto"
	"shelfwatch/internal/interfaces/http/middleware"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/utils"
)

type grantRoleUseCase interface {
	Execute(ctx context.Context, grantedBy string, request dto.GrantRoleRequest) (*dto.RoleAssignmentResponse, error)
}

type revokeRoleUseCase interface {
	Execute(ctx context.Context, revokedBy, subjectID string) error
}

type listRolesUseCase interface {
	Execute(ctx context.Context, subjectID string) ([]*dto.RoleAssignmentResponse, error)
}

// RoleHandler manages admin role assignments. Routes are behind
// RequireAdmin, so the caller is always an admin.
type RoleHandler struct {
	grantRole  grantRoleUseCase
	revokeRole revokeRoleUseCase
	listRoles  listRolesUseCase
	logger     logger.Interface
}

func NewRoleHandler(
	grantRole grantRoleUseCase,
	revokeRole revokeRoleUseCase,
	listRoles listRolesUseCase,
	logger logger.Interface,
) *RoleHandler {
	return &RoleHandler{
		grantRole:  grantRole,
		revokeRole: revokeRole,
		listRoles:  listRoles,
		logger:     logger,
	}
}

// GrantRole handles POST /api/admin/roles
func (h *RoleHandler) GrantRole(c *gin.Context) {
	caller := middleware.SubjectFrom(c)

	var req dto.GrantRoleRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for grant role", "caller_id", caller.ID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	assignment, err := h.grantRole.Execute(c.Request.Context(), caller.ID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, assignment, "role granted")
}

// ListRoles handles GET /api/admin/roles/:subjectId
func (h *RoleHandler) ListRoles(c *gin.Context) {
	assignments, err := h.listRoles.Execute(c.Request.Context(), c.Param("subjectId"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", assignments)
}

// RevokeRole handles DELETE /api/admin/roles/:subjectId
func (h *RoleHandler) RevokeRole(c *gin.Context) {
	caller := middleware.SubjectFrom(c)

	if err := h.revokeRole.Execute(c.Request.Context(), caller.ID, c.Param("subjectId")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
