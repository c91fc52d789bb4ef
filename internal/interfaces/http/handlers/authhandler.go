package handlers

import (
	"github.com/gin-gonic/gin"

	"shelfwatch/internal/application/access"
	"shelfwatch/internal/interfaces/http/middleware"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/utils"
)

// AuthHandler only ends sessions; sign-in happens at the identity provider.
type AuthHandler struct {
	sessions sessionTerminator
	logger   logger.Interface
}

func NewAuthHandler(sessions sessionTerminator, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// Logout handles POST /auth/logout. It always succeeds and clears both
// session cookies, signed in or not.
func (h *AuthHandler) Logout(c *gin.Context) {
	subjectID := ""
	if subj := middleware.SubjectFrom(c); subj != nil {
		subjectID = subj.ID
	}

	jar := access.NewRequestCookies(c.Request)
	h.sessions.SignOut(jar, subjectID)
	utils.WriteCookies(c, jar.Pending())

	if subjectID != "" {
		h.logger.Infow("subject signed out", "subject_id", subjectID)
	}
	utils.NoContentResponse(c)
}
