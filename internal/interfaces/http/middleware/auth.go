package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"shelfwatch/internal/shared/constants"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/utils"
)

// AdminChecker is satisfied by access.RoleResolver.
type AdminChecker interface {
	IsAdmin(ctx context.Context, subjectID string) bool
}

// AuthMiddleware guards the JSON API. Pages are guarded by the gateway,
// which classifies /api as unclassified and only resolves the subject.
type AuthMiddleware struct {
	roles  AdminChecker
	logger logger.Interface
}

func NewAuthMiddleware(roles AdminChecker, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		roles:  roles,
		logger: logger,
	}
}

// RequireSubject answers 401 when the gateway resolved no subject.
func (m *AuthMiddleware) RequireSubject() gin.HandlerFunc {
	return func(c *gin.Context) {
		if SubjectFrom(c) == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized)
			return
		}
		c.Next()
	}
}

// RequireAdmin answers 403 unless the subject holds the admin role. A role
// lookup failure counts as not admin.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		subj := SubjectFrom(c)
		if subj == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized)
			return
		}
		if !m.roles.IsAdmin(c.Request.Context(), subj.ID) {
			m.logger.Warnw("admin API access denied", "subject_id", subj.ID, "path", c.Request.URL.Path)
			utils.ErrorResponse(c, http.StatusForbidden, constants.ErrMsgForbidden)
			return
		}
		c.Next()
	}
}
