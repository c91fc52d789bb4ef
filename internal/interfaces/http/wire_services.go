package http

import (
	"time"

	"shelfwatch/internal/application/access"
	"shelfwatch/internal/application/notification"
	"shelfwatch/internal/application/session"
	"shelfwatch/internal/domain/expiry"
	"shelfwatch/internal/infrastructure/auth"
	"shelfwatch/internal/interfaces/http/middleware"
	"shelfwatch/internal/shared/biztime"
)

// services holds the stateless services shared by use cases and middleware.
type services struct {
	jwtSvc       *auth.JWTService
	tracker      *session.Tracker
	sessionStore *auth.CookieSessionStore
	roleResolver *access.RoleResolver
	gateway      *access.Gateway
	expiryEngine *expiry.Engine
	selector     *notification.Selector
}

func (c *Container) initServices() {
	jwtCfg := c.cfg.Auth.JWT
	s := &services{
		jwtSvc:  auth.NewJWTService(jwtCfg.Secret, jwtCfg.AccessExpMinutes, jwtCfg.RefreshExpDays, jwtCfg.RefreshThresholdMinutes),
		tracker: session.NewTracker(),
	}

	sessionLog := c.log.Named("session")
	c.unsubscribeSessionLog = s.tracker.Subscribe(func(ev session.Event) {
		sessionLog.Debugw("session event", "type", ev.Type, "subject_id", ev.SubjectID)
	})

	s.sessionStore = auth.NewCookieSessionStore(s.jwtSvc, c.repos.subjectRepo, c.cfg.Auth.Cookie, s.tracker, c.log.Named("session"))
	s.roleResolver = access.NewRoleResolver(c.repos.roleRepo, c.log.Named("roles"))
	s.gateway = access.NewGateway(s.sessionStore, s.roleResolver, c.log.Named("gateway"))
	s.expiryEngine = expiry.NewEngine(biztime.Location())
	s.selector = notification.NewSelector(s.expiryEngine, c.log.Named("selector"), c.cfg.Notification.DigestLimit)
	c.svcs = s

	c.authMiddleware = middleware.NewAuthMiddleware(s.roleResolver, c.log)
	rl := c.cfg.RateLimit
	c.rateLimiter = middleware.NewRateLimiter(c.redis, rl.RequestsPerWindow, time.Duration(rl.WindowSeconds)*time.Second)
}
