package access

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	routes "shelfwatch/internal/domain/access"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/shared/authorization"
	"shelfwatch/internal/shared/logger"
)

type mockSessionStore struct {
	subject *subject.Subject
	err     error
	// refresh, when set, is written into the jar during resolution and
	// announced on commit.
	refresh   *http.Cookie
	cancel    context.CancelFunc
	announced int
}

func (m *mockSessionStore) ResolveSubject(ctx context.Context, jar CookieJar) (*subject.Subject, error) {
	if m.refresh != nil {
		jar.Set(m.refresh)
		jar.OnCommit(func() { m.announced++ })
	}
	if m.cancel != nil {
		m.cancel()
	}
	return m.subject, m.err
}

type mockRoleStore struct {
	admins map[string]bool
	err    error
	calls  int
}

func (m *mockRoleStore) HasRole(ctx context.Context, subjectID string, role authorization.UserRole) (bool, error) {
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	return role == authorization.RoleAdmin && m.admins[subjectID], nil
}

var (
	tenant = &subject.Subject{ID: "tenant-1", Email: "shop@example.com", BusinessName: "Corner Shop"}
	admin  = &subject.Subject{ID: "admin-1", Email: "ops@example.com"}
)

func newTestGateway(sessions *mockSessionStore, roles *mockRoleStore) *Gateway {
	log := logger.NewNopLogger()
	return NewGateway(sessions, NewRoleResolver(roles, log), log)
}

func evaluate(t *testing.T, g *Gateway, target string) Decision {
	t.Helper()
	u, err := url.Parse(target)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return g.Evaluate(context.Background(), Request{
		Path:    u.Path,
		Query:   u.Query(),
		Cookies: NewRequestCookies(req),
	})
}

func TestGateway_UnclassifiedPassesThrough(t *testing.T) {
	for _, subj := range []*subject.Subject{nil, tenant} {
		roles := &mockRoleStore{}
		g := newTestGateway(&mockSessionStore{subject: subj}, roles)

		for _, path := range []string{"/", "/api/products", "/health", "/administrator", "/favicon.ico"} {
			d := evaluate(t, g, path)
			assert.Equal(t, ActionContinue, d.Action, path)
			assert.Empty(t, d.Location, path)
			assert.Empty(t, d.Cookies, path)
			assert.Equal(t, routes.RouteUnclassified, d.RouteClass, path)
		}
		assert.Zero(t, roles.calls, "unclassified routes never consult roles")
	}
}

func TestGateway_RuleA_ProtectedWithoutSubject(t *testing.T) {
	g := newTestGateway(&mockSessionStore{}, &mockRoleStore{})

	for _, path := range []string{"/dashboard", "/products/42", "/settings", "/admin", "/admin/users"} {
		d := evaluate(t, g, path+"?tab=alerts")
		assert.Equal(t, ActionRedirect, d.Action, path)
		assert.Equal(t, RuleGate, d.Rule, path)

		loc, err := url.Parse(d.Location)
		require.NoError(t, err)
		assert.Equal(t, "/login", loc.Path)
		assert.Equal(t, path, loc.Query().Get("redirectTo"), "query string is not forwarded")
	}
}

func TestGateway_AdminProtected(t *testing.T) {
	roles := &mockRoleStore{admins: map[string]bool{admin.ID: true}}

	t.Run("no subject", func(t *testing.T) {
		d := evaluate(t, newTestGateway(&mockSessionStore{}, roles), "/admin/tenants")
		assert.Equal(t, ActionRedirect, d.Action)
		assert.Equal(t, "/login?redirectTo=%2Fadmin%2Ftenants", d.Location)
	})

	t.Run("subject without admin", func(t *testing.T) {
		d := evaluate(t, newTestGateway(&mockSessionStore{subject: tenant}, roles), "/admin")
		assert.Equal(t, ActionRedirect, d.Action)
		assert.Equal(t, RuleRoleGate, d.Rule)
		assert.Equal(t, "/dashboard", d.Location)
	})

	t.Run("admin subject", func(t *testing.T) {
		d := evaluate(t, newTestGateway(&mockSessionStore{subject: admin}, roles), "/admin")
		assert.Equal(t, ActionContinue, d.Action)
		assert.Equal(t, admin, d.Subject)
	})

	t.Run("role store failure fails closed", func(t *testing.T) {
		failing := &mockRoleStore{admins: map[string]bool{admin.ID: true}, err: errors.New("db down")}
		d := evaluate(t, newTestGateway(&mockSessionStore{subject: admin}, failing), "/admin")
		assert.Equal(t, ActionRedirect, d.Action)
		assert.Equal(t, "/dashboard", d.Location)
	})
}

func TestGateway_ProtectedWithSubjectContinues(t *testing.T) {
	roles := &mockRoleStore{}
	g := newTestGateway(&mockSessionStore{subject: tenant}, roles)

	for _, path := range []string{"/dashboard", "/products", "/settings/notifications"} {
		d := evaluate(t, g, path)
		assert.Equal(t, ActionContinue, d.Action, path)
	}
	assert.Zero(t, roles.calls, "ordinary protected routes need no role lookup")
}

func TestGateway_RuleB_AuthFormsAlwaysRedirect(t *testing.T) {
	roles := &mockRoleStore{admins: map[string]bool{admin.ID: true}}

	tests := []struct {
		name     string
		subject  *subject.Subject
		target   string
		wantLoc  string
		wantRule Rule
	}{
		{"tenant on login", tenant, "/login", "/dashboard", RuleReverseGate},
		{"tenant on signup", tenant, "/signup", "/dashboard", RuleReverseGate},
		{"admin on login", admin, "/login", "/admin", RuleReverseGate},
		{"admin on signup", admin, "/signup", "/admin", RuleReverseGate},
		{"deferred destination", tenant, "/login?redirectTo=%2Fproducts%2F7", "/products/7", RuleDeferredDestination},
		{"deferred destination keeps query", tenant, "/login?redirectTo=%2Fproducts%3Fsort%3Dexpiry", "/products?sort=expiry", RuleDeferredDestination},
		{"signup ignores redirectTo", tenant, "/signup?redirectTo=%2Fproducts", "/dashboard", RuleReverseGate},
		{"off-site redirectTo ignored", tenant, "/login?redirectTo=https%3A%2F%2Fevil.example", "/dashboard", RuleReverseGate},
		{"protocol-relative redirectTo ignored", admin, "/login?redirectTo=%2F%2Fevil.example", "/admin", RuleReverseGate},
		{"redirectTo back to login ignored", tenant, "/login?redirectTo=%2Flogin", "/dashboard", RuleReverseGate},
		{"empty redirectTo ignored", tenant, "/login?redirectTo=", "/dashboard", RuleReverseGate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := evaluate(t, newTestGateway(&mockSessionStore{subject: tt.subject}, roles), tt.target)
			assert.Equal(t, ActionRedirect, d.Action)
			assert.Equal(t, tt.wantLoc, d.Location)
			assert.Equal(t, tt.wantRule, d.Rule)
		})
	}
}

func TestGateway_PublicWithoutSubjectContinues(t *testing.T) {
	g := newTestGateway(&mockSessionStore{}, &mockRoleStore{})
	assert.Equal(t, ActionContinue, evaluate(t, g, "/login?redirectTo=%2Fdashboard").Action)
	assert.Equal(t, ActionContinue, evaluate(t, g, "/signup").Action)
}

func TestGateway_SubjectResolutionFailureMeansNoSubject(t *testing.T) {
	g := newTestGateway(&mockSessionStore{subject: tenant, err: errors.New("identity store timeout")}, &mockRoleStore{})

	d := evaluate(t, g, "/dashboard")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, RuleGate, d.Rule)
	assert.Nil(t, d.Subject)

	assert.Equal(t, ActionContinue, evaluate(t, g, "/login").Action)
}

func TestGateway_RelaysSessionCookies(t *testing.T) {
	renewed := &http.Cookie{Name: "access_token", Value: "renewed", Path: "/", MaxAge: 900}

	t.Run("on continue", func(t *testing.T) {
		g := newTestGateway(&mockSessionStore{subject: tenant, refresh: renewed}, &mockRoleStore{})
		d := evaluate(t, g, "/dashboard")
		assert.Equal(t, ActionContinue, d.Action)
		require.Len(t, d.Cookies, 1)
		assert.Equal(t, "renewed", d.Cookies[0].Value)
	})

	t.Run("on redirect", func(t *testing.T) {
		g := newTestGateway(&mockSessionStore{subject: tenant, refresh: renewed}, &mockRoleStore{})
		d := evaluate(t, g, "/login")
		assert.Equal(t, ActionRedirect, d.Action)
		require.Len(t, d.Cookies, 1)
	})

	t.Run("on unclassified", func(t *testing.T) {
		g := newTestGateway(&mockSessionStore{subject: tenant, refresh: renewed}, &mockRoleStore{})
		d := evaluate(t, g, "/api/products")
		assert.Equal(t, ActionContinue, d.Action)
		assert.Len(t, d.Cookies, 1)
	})
}

func TestGateway_AbandonsCancelledRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	renewed := &http.Cookie{Name: "access_token", Value: "renewed"}
	sessions := &mockSessionStore{subject: tenant, refresh: renewed, cancel: cancel}
	g := newTestGateway(sessions, &mockRoleStore{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	d := g.Evaluate(ctx, Request{Path: "/dashboard", Cookies: NewRequestCookies(req)})

	assert.Equal(t, ActionAbandon, d.Action)
	assert.Empty(t, d.Cookies)
	assert.Empty(t, d.Location)
	assert.Zero(t, sessions.announced, "abandoned request must not announce the refresh")
}

func TestGateway_CommitsRefreshOnDecision(t *testing.T) {
	renewed := &http.Cookie{Name: "access_token", Value: "renewed"}

	t.Run("continue", func(t *testing.T) {
		sessions := &mockSessionStore{subject: tenant, refresh: renewed}
		d := evaluate(t, newTestGateway(sessions, &mockRoleStore{}), "/dashboard")
		assert.Equal(t, ActionContinue, d.Action)
		assert.Equal(t, 1, sessions.announced)
	})

	t.Run("redirect", func(t *testing.T) {
		sessions := &mockSessionStore{subject: tenant, refresh: renewed}
		d := evaluate(t, newTestGateway(sessions, &mockRoleStore{}), "/admin")
		assert.Equal(t, ActionRedirect, d.Action)
		assert.Equal(t, RuleRoleGate, d.Rule)
		assert.Equal(t, 1, sessions.announced)
	})
}

func TestRequestCookies(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "old"})
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "r"})
	jar := NewRequestCookies(req)

	v, ok := jar.Get("access_token")
	assert.True(t, ok)
	assert.Equal(t, "old", v)

	jar.Set(&http.Cookie{Name: "access_token", Value: "new", Path: "/"})
	jar.Set(&http.Cookie{Name: "access_token", Value: "newer", Path: "/"})
	jar.Set(&http.Cookie{Name: "refresh_token", Path: "/", MaxAge: -1})

	v, _ = jar.Get("access_token")
	assert.Equal(t, "newer", v)
	_, ok = jar.Get("refresh_token")
	assert.False(t, ok)

	pending := jar.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "newer", pending[0].Value)
	assert.Equal(t, -1, pending[1].MaxAge)
}
