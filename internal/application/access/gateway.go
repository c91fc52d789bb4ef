// Package access implements the request-time authorization gateway.
package access

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	routes "shelfwatch/internal/domain/access"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/shared/constants"
	"shelfwatch/internal/shared/logger"
)

type Action int

const (
	// ActionContinue lets the request through.
	ActionContinue Action = iota
	// ActionRedirect sends the caller to Decision.Location.
	ActionRedirect
	// ActionAbandon means the caller went away before a decision was
	// reached; nothing, including cookies, may be written.
	ActionAbandon
)

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "continue"
	case ActionRedirect:
		return "redirect"
	default:
		return "abandon"
	}
}

// Rule names the gateway rule that produced a redirect.
type Rule string

const (
	RuleNone                Rule = ""
	RuleGate                Rule = "gate"
	RuleReverseGate         Rule = "reverse_gate"
	RuleRoleGate            Rule = "role_gate"
	RuleDeferredDestination Rule = "deferred_destination"
)

// Request is the per-navigation input. Query is the parsed query string;
// only redirectTo is ever read from it.
type Request struct {
	Path    string
	Query   url.Values
	Cookies CookieJar
}

// Decision is the gateway outcome. Cookies holds every mutation the session
// store made while resolving the subject; it must be relayed on the
// response for both continue and redirect. The jar is committed only for
// those two actions.
type Decision struct {
	Action     Action
	Location   string
	Rule       Rule
	RouteClass routes.RouteClass
	Subject    *subject.Subject
	Cookies    []*http.Cookie
}

// Gateway holds no per-request state and is safe for concurrent use.
type Gateway struct {
	sessions SessionStore
	roles    RoleChecker
	logger   logger.Interface
}

func NewGateway(sessions SessionStore, roles RoleChecker, log logger.Interface) *Gateway {
	return &Gateway{sessions: sessions, roles: roles, logger: log}
}

// Evaluate applies the rules in fixed order; the first redirect wins.
// It never returns an error: lookup failures degrade to the least
// privileged branch.
func (g *Gateway) Evaluate(ctx context.Context, req Request) Decision {
	subj := g.resolveSubject(ctx, req.Cookies)
	if ctx.Err() != nil {
		return Decision{Action: ActionAbandon}
	}

	class := routes.Classify(req.Path)
	decision := g.decide(ctx, req, class, subj)
	if ctx.Err() != nil {
		return Decision{Action: ActionAbandon}
	}

	decision.RouteClass = class
	decision.Subject = subj
	decision.Cookies = req.Cookies.Commit()
	return decision
}

func (g *Gateway) resolveSubject(ctx context.Context, jar CookieJar) *subject.Subject {
	subj, err := g.sessions.ResolveSubject(ctx, jar)
	if err != nil {
		if ctx.Err() == nil {
			g.logger.Warnw("subject resolution failed, continuing without subject", "error", err)
		}
		return nil
	}
	return subj
}

func (g *Gateway) decide(ctx context.Context, req Request, class routes.RouteClass, subj *subject.Subject) Decision {
	// RuleGate: protected route without a subject.
	if class.RequiresSubject() && subj == nil {
		return redirect(RuleGate, loginLocation(req.Path))
	}

	if subj == nil {
		return Decision{Action: ActionContinue}
	}

	switch class {
	case routes.RoutePublic:
		// RuleDeferredDestination before RuleReverseGate: a signed-in subject
		// on /login with a usable redirectTo goes there, everyone else goes
		// home by role.
		if req.Path == constants.PathLogin {
			if target := req.Query.Get(constants.QueryRedirectTo); isSafeDestination(target) {
				return redirect(RuleDeferredDestination, target)
			}
		}
		return redirect(RuleReverseGate, g.homeFor(ctx, subj))

	case routes.RouteAdminProtected:
		// RuleRoleGate
		if !g.roles.IsAdmin(ctx, subj.ID) {
			return redirect(RuleRoleGate, constants.PathDashboard)
		}
	}

	return Decision{Action: ActionContinue}
}

func (g *Gateway) homeFor(ctx context.Context, subj *subject.Subject) string {
	if g.roles.IsAdmin(ctx, subj.ID) {
		return constants.PathAdmin
	}
	return constants.PathDashboard
}

func redirect(rule Rule, location string) Decision {
	return Decision{Action: ActionRedirect, Rule: rule, Location: location}
}

// loginLocation carries the original path, without its query string.
func loginLocation(path string) string {
	q := url.Values{}
	q.Set(constants.QueryRedirectTo, path)
	return constants.PathLogin + "?" + q.Encode()
}

// isSafeDestination accepts same-site absolute paths only, and never an
// auth form, which would bounce straight back here.
func isSafeDestination(target string) bool {
	if target == "" || !strings.HasPrefix(target, "/") {
		return false
	}
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return false
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return false
	}
	return routes.Classify(u.Path) != routes.RoutePublic
}
