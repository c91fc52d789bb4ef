package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shelfwatch/internal/interfaces/http/middleware"
	"shelfwatch/internal/shared/constants"
	"shelfwatch/internal/shared/utils"
)

// PageDescriptor is what a page shell returns; the markup itself is served
// by the front end.
type PageDescriptor struct {
	Page       string       `json:"page"`
	Subject    *PageSubject `json:"subject,omitempty"`
	RedirectTo string       `json:"redirect_to,omitempty"`
}

type PageSubject struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	BusinessName string `json:"business_name,omitempty"`
	Role         string `json:"role"`
	IsAdmin      bool   `json:"is_admin"`
}

// PageHandler serves the shells of gateway-guarded pages. By the time a
// request gets here the gateway has already applied its rules.
type PageHandler struct {
	roles roleReader
}

func NewPageHandler(roles roleReader) *PageHandler {
	return &PageHandler{roles: roles}
}

// Render returns a handler for the named page.
func (h *PageHandler) Render(page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		desc := PageDescriptor{Page: page}

		if subj := middleware.SubjectFrom(c); subj != nil {
			role := h.roles.RoleOf(c.Request.Context(), subj.ID)
			desc.Subject = &PageSubject{
				ID:           subj.ID,
				Email:        subj.Email,
				BusinessName: subj.BusinessName,
				Role:         role.String(),
				IsAdmin:      role.IsAdmin(),
			}
		}
		if c.Request.URL.Path == constants.PathLogin {
			desc.RedirectTo = c.Query(constants.QueryRedirectTo)
		}

		utils.SuccessResponse(c, http.StatusOK, "", desc)
	}
}
