package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfwatch/internal/application/access"
	"shelfwatch/internal/application/session"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/shared/config"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/utils"
)

type stubSubjects struct {
	subjects map[string]*subject.Subject
	err      error
}

func (s *stubSubjects) GetByID(ctx context.Context, id string) (*subject.Subject, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.subjects[id], nil
}

func (s *stubSubjects) List(ctx context.Context) ([]*subject.Subject, error) {
	return nil, nil
}

var shop = &subject.Subject{ID: "tenant-1", Email: "shop@example.com", BusinessName: "Corner Shop"}

type fixture struct {
	clock    time.Time
	jwt      *JWTService
	subjects *stubSubjects
	store    *CookieSessionStore
	events   []session.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock:    time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
		subjects: &stubSubjects{subjects: map[string]*subject.Subject{shop.ID: shop}},
	}
	f.jwt = NewJWTService("test-secret", 15, 7, 5).WithClock(func() time.Time { return f.clock })
	tracker := session.NewTracker()
	tracker.Subscribe(func(e session.Event) { f.events = append(f.events, e) })
	f.store = NewCookieSessionStore(f.jwt, f.subjects, config.CookieConfig{Path: "/"}, tracker, logger.NewNopLogger())
	return f
}

func jarWith(cookies map[string]string) *access.RequestCookies {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	return access.NewRequestCookies(req)
}

func TestResolveSubject_NoCookies(t *testing.T) {
	f := newFixture(t)
	jar := jarWith(nil)

	subj, err := f.store.ResolveSubject(context.Background(), jar)
	require.NoError(t, err)
	assert.Nil(t, subj)
	assert.Empty(t, jar.Pending())
}

func TestResolveSubject_ValidAccessToken(t *testing.T) {
	f := newFixture(t)
	pair, err := f.jwt.Generate(shop)
	require.NoError(t, err)

	jar := jarWith(map[string]string{utils.AccessTokenCookie: pair.AccessToken})
	subj, err := f.store.ResolveSubject(context.Background(), jar)
	require.NoError(t, err)
	assert.Equal(t, shop, subj)
	assert.Empty(t, jar.Pending(), "fresh token is not renewed")
}

func TestResolveSubject_RenewsNearExpiry(t *testing.T) {
	f := newFixture(t)
	pair, err := f.jwt.Generate(shop)
	require.NoError(t, err)
	f.clock = f.clock.Add(12 * time.Minute)

	jar := jarWith(map[string]string{utils.AccessTokenCookie: pair.AccessToken, utils.RefreshTokenCookie: pair.RefreshToken})
	subj, err := f.store.ResolveSubject(context.Background(), jar)
	require.NoError(t, err)
	require.NotNil(t, subj)

	pending := jar.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, utils.AccessTokenCookie, pending[0].Name)
	assert.NotEqual(t, pair.AccessToken, pending[0].Value)
	assert.Empty(t, f.events, "refresh is not announced before the jar is committed")

	assert.Equal(t, pending, jar.Commit())
	require.Len(t, f.events, 1)
	assert.Equal(t, session.EventTokenRefreshed, f.events[0].Type)
	assert.Equal(t, shop.ID, f.events[0].SubjectID)

	jar.Commit()
	assert.Len(t, f.events, 1, "commit runs queued callbacks once")
}

func TestResolveSubject_UncommittedRefreshStaysSilent(t *testing.T) {
	f := newFixture(t)
	pair, err := f.jwt.Generate(shop)
	require.NoError(t, err)
	f.clock = f.clock.Add(time.Hour)

	jar := jarWith(map[string]string{utils.RefreshTokenCookie: pair.RefreshToken})
	subj, err := f.store.ResolveSubject(context.Background(), jar)
	require.NoError(t, err)
	require.NotNil(t, subj)
	require.Len(t, jar.Pending(), 1)
	assert.Empty(t, f.events)
}

func TestResolveSubject_ExpiredAccessFallsBackToRefresh(t *testing.T) {
	f := newFixture(t)
	pair, err := f.jwt.Generate(shop)
	require.NoError(t, err)
	f.clock = f.clock.Add(time.Hour)

	jar := jarWith(map[string]string{utils.AccessTokenCookie: pair.AccessToken, utils.RefreshTokenCookie: pair.RefreshToken})
	subj, err := f.store.ResolveSubject(context.Background(), jar)
	require.NoError(t, err)
	assert.Equal(t, shop.ID, subj.ID)

	pending := jar.Pending()
	require.Len(t, pending, 1, "refresh token is never rotated")
	assert.Equal(t, utils.AccessTokenCookie, pending[0].Name)

	_, err = f.jwt.Verify(pending[0].Value, TokenTypeAccess)
	assert.NoError(t, err)
}

func TestResolveSubject_GarbageCookiesAreCleared(t *testing.T) {
	f := newFixture(t)
	jar := jarWith(map[string]string{utils.AccessTokenCookie: "garbage", utils.RefreshTokenCookie: "garbage"})

	subj, err := f.store.ResolveSubject(context.Background(), jar)
	require.NoError(t, err)
	assert.Nil(t, subj)

	pending := jar.Pending()
	require.Len(t, pending, 2)
	for _, ck := range pending {
		assert.Equal(t, -1, ck.MaxAge)
	}
}

func TestResolveSubject_RefreshTokenInAccessSlotRejected(t *testing.T) {
	f := newFixture(t)
	pair, err := f.jwt.Generate(shop)
	require.NoError(t, err)

	jar := jarWith(map[string]string{utils.AccessTokenCookie: pair.RefreshToken})
	subj, err := f.store.ResolveSubject(context.Background(), jar)
	require.NoError(t, err)
	assert.Nil(t, subj)
}

func TestResolveSubject_DeletedSubject(t *testing.T) {
	f := newFixture(t)
	pair, err := f.jwt.Generate(shop)
	require.NoError(t, err)
	delete(f.subjects.subjects, shop.ID)

	jar := jarWith(map[string]string{utils.AccessTokenCookie: pair.AccessToken})
	subj, err := f.store.ResolveSubject(context.Background(), jar)
	require.NoError(t, err)
	assert.Nil(t, subj)
	assert.Len(t, jar.Pending(), 2)
}

func TestResolveSubject_StoreErrorPropagates(t *testing.T) {
	f := newFixture(t)
	pair, err := f.jwt.Generate(shop)
	require.NoError(t, err)
	f.subjects.err = errors.New("identity store timeout")

	jar := jarWith(map[string]string{utils.AccessTokenCookie: pair.AccessToken})
	subj, err := f.store.ResolveSubject(context.Background(), jar)
	assert.Error(t, err)
	assert.Nil(t, subj)
	assert.Empty(t, jar.Pending(), "cookies are kept on transient failures")
}

func TestEstablishAndSignOut(t *testing.T) {
	f := newFixture(t)
	jar := jarWith(nil)

	require.NoError(t, f.store.Establish(jar, shop))
	subj, err := f.store.ResolveSubject(context.Background(), jar)
	require.NoError(t, err)
	assert.Equal(t, shop.ID, subj.ID)

	f.store.SignOut(jar, shop.ID)
	subj, err = f.store.ResolveSubject(context.Background(), jar)
	require.NoError(t, err)
	assert.Nil(t, subj)

	require.Len(t, f.events, 2)
	assert.Equal(t, session.EventSignedIn, f.events[0].Type)
	assert.Equal(t, session.EventSignedOut, f.events[1].Type)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("other-secret", 15, 7, 5)
	pair, err := issuer.Generate(shop)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", 15, 7, 5).Verify(pair.AccessToken, TokenTypeAccess)
	assert.Error(t, err)
}
