package access

import (
	"context"
	"net/http"

	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/shared/authorization"
)

// CookieJar is the request-scoped cookie view shared by the gateway and the
// session store. Reads observe earlier writes made during the same request.
type CookieJar interface {
	Get(name string) (string, bool)
	Set(cookie *http.Cookie)
	// Pending returns the cookie mutations to relay on the response.
	Pending() []*http.Cookie
	// OnCommit queues fn until Commit. An abandoned request never commits,
	// so whatever fn makes observable stays unobserved.
	OnCommit(fn func())
	// Commit runs the queued callbacks once, in order, and returns Pending.
	Commit() []*http.Cookie
}

// SessionStore resolves the current subject from transport credentials.
// It may write renewed or cleared cookies into the jar while doing so.
type SessionStore interface {
	ResolveSubject(ctx context.Context, jar CookieJar) (*subject.Subject, error)
}

// RoleStore answers exact (subject, role) existence queries.
type RoleStore interface {
	HasRole(ctx context.Context, subjectID string, role authorization.UserRole) (bool, error)
}

// RoleChecker is the boolean capability the gateway needs.
type RoleChecker interface {
	IsAdmin(ctx context.Context, subjectID string) bool
}
