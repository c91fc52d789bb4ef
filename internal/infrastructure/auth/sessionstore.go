package auth

import (
	"context"
	"fmt"

	"shelfwatch/internal/application/access"
	"shelfwatch/internal/application/session"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/shared/config"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/utils"
)

// CookieSessionStore resolves subjects from the access/refresh cookie pair.
// The token alone is never trusted: every resolution confirms that the
// subject still exists.
type CookieSessionStore struct {
	jwt      *JWTService
	subjects subject.Repository
	cookies  config.CookieConfig
	tracker  *session.Tracker
	logger   logger.Interface
}

func NewCookieSessionStore(
	jwtService *JWTService,
	subjects subject.Repository,
	cookies config.CookieConfig,
	tracker *session.Tracker,
	log logger.Interface,
) *CookieSessionStore {
	return &CookieSessionStore{
		jwt:      jwtService,
		subjects: subjects,
		cookies:  cookies,
		tracker:  tracker,
		logger:   log,
	}
}

var _ access.SessionStore = (*CookieSessionStore)(nil)

// ResolveSubject returns nil, nil when there is no usable session. Store
// errors are returned as is; the gateway treats them as no subject.
func (s *CookieSessionStore) ResolveSubject(ctx context.Context, jar access.CookieJar) (*subject.Subject, error) {
	accessToken, hasAccess := jar.Get(utils.AccessTokenCookie)
	refreshToken, hasRefresh := jar.Get(utils.RefreshTokenCookie)
	hasAccess = hasAccess && accessToken != ""
	hasRefresh = hasRefresh && refreshToken != ""

	if !hasAccess && !hasRefresh {
		return nil, nil
	}

	if hasAccess {
		if claims, err := s.jwt.Verify(accessToken, TokenTypeAccess); err == nil {
			subj, err := s.confirm(ctx, jar, claims.SubjectID)
			if err != nil || subj == nil {
				return nil, err
			}
			if s.jwt.ShouldRefresh(claims) {
				if err := s.renewAccess(jar, subj); err != nil {
					s.logger.Warnw("failed to renew access token", "subject_id", subj.ID, "error", err)
				}
			}
			return subj, nil
		}
	}

	if hasRefresh {
		if claims, err := s.jwt.Verify(refreshToken, TokenTypeRefresh); err == nil {
			subj, err := s.confirm(ctx, jar, claims.SubjectID)
			if err != nil || subj == nil {
				return nil, err
			}
			if err := s.renewAccess(jar, subj); err != nil {
				return nil, err
			}
			return subj, nil
		}
	}

	// Cookies are present but nothing in them is usable.
	s.clear(jar)
	return nil, nil
}

// confirm performs the subject-level existence check. A vanished subject
// clears the cookies.
func (s *CookieSessionStore) confirm(ctx context.Context, jar access.CookieJar, subjectID string) (*subject.Subject, error) {
	subj, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm subject: %w", err)
	}
	if subj == nil {
		s.logger.Infow("session refers to unknown subject, clearing cookies", "subject_id", subjectID)
		s.clear(jar)
		return nil, nil
	}
	return subj, nil
}

func (s *CookieSessionStore) renewAccess(jar access.CookieJar, subj *subject.Subject) error {
	token, err := s.jwt.IssueAccessToken(subj)
	if err != nil {
		return err
	}
	jar.Set(utils.NewSessionCookie(s.cookies, utils.AccessTokenCookie, token, int(s.jwt.AccessTTL().Seconds())))
	subjectID := subj.ID
	jar.OnCommit(func() {
		s.tracker.Publish(session.Event{Type: session.EventTokenRefreshed, SubjectID: subjectID})
	})
	return nil
}

func (s *CookieSessionStore) clear(jar access.CookieJar) {
	for _, ck := range utils.ExpiredSessionCookies(s.cookies) {
		jar.Set(ck)
	}
}

// Establish writes a fresh cookie pair for subj, as after a sign-in at the
// identity provider.
func (s *CookieSessionStore) Establish(jar access.CookieJar, subj *subject.Subject) error {
	pair, err := s.jwt.Generate(subj)
	if err != nil {
		return err
	}
	jar.Set(utils.NewSessionCookie(s.cookies, utils.AccessTokenCookie, pair.AccessToken, int(s.jwt.AccessTTL().Seconds())))
	jar.Set(utils.NewSessionCookie(s.cookies, utils.RefreshTokenCookie, pair.RefreshToken, int(s.jwt.RefreshTTL().Seconds())))
	s.tracker.Publish(session.Event{Type: session.EventSignedIn, SubjectID: subj.ID})
	return nil
}

// SignOut clears both cookies.
func (s *CookieSessionStore) SignOut(jar access.CookieJar, subjectID string) {
	s.clear(jar)
	s.tracker.Publish(session.Event{Type: session.EventSignedOut, SubjectID: subjectID})
}
