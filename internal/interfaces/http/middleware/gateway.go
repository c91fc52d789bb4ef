package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shelfwatch/internal/application/access"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/shared/constants"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/utils"
)

// AccessGateway runs the gateway ahead of every route. Cookie mutations
// from subject resolution are written before the redirect or the handler.
func AccessGateway(gateway *access.Gateway, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		jar := access.NewRequestCookies(c.Request)
		decision := gateway.Evaluate(c.Request.Context(), access.Request{
			Path:    c.Request.URL.Path,
			Query:   c.Request.URL.Query(),
			Cookies: jar,
		})

		switch decision.Action {
		case access.ActionAbandon:
			log.Debugw("request abandoned before gateway decision", "path", c.Request.URL.Path)
			c.Abort()
			return

		case access.ActionRedirect:
			utils.WriteCookies(c, decision.Cookies)
			log.Debugw("gateway redirect",
				"path", c.Request.URL.Path,
				"rule", decision.Rule,
				"location", decision.Location,
			)
			c.Redirect(http.StatusTemporaryRedirect, decision.Location)
			c.Abort()
			return
		}

		utils.WriteCookies(c, decision.Cookies)
		if decision.Subject != nil {
			c.Set(constants.ContextKeySubject, decision.Subject)
			c.Set(constants.ContextKeySubjectID, decision.Subject.ID)
		}
		c.Next()
	}
}

// SubjectFrom returns the subject the gateway resolved, or nil.
func SubjectFrom(c *gin.Context) *subject.Subject {
	v, ok := c.Get(constants.ContextKeySubject)
	if !ok {
		return nil
	}
	subj, _ := v.(*subject.Subject)
	return subj
}
