package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/shared/biztime"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var ErrWrongTokenType = errors.New("unexpected token type")

// Claims identify the subject; roles are never embedded and are looked up
// on every request instead.
type Claims struct {
	SubjectID    string    `json:"sub_id"`
	Email        string    `json:"email"`
	BusinessName string    `json:"business_name,omitempty"`
	TokenType    TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// Subject returns the identity carried by the token.
func (c *Claims) Subject() *subject.Subject {
	return &subject.Subject{ID: c.SubjectID, Email: c.Email, BusinessName: c.BusinessName}
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
	refreshExpDays   int
	refreshThreshold time.Duration
	now              func() time.Time
}

// NewJWTService signs HS256 tokens. refreshThresholdMinutes is how close to
// expiry an access token gets renewed.
func NewJWTService(secret string, accessExpMinutes, refreshExpDays, refreshThresholdMinutes int) *JWTService {
	if refreshThresholdMinutes <= 0 {
		refreshThresholdMinutes = 5
	}
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		refreshExpDays:   refreshExpDays,
		refreshThreshold: time.Duration(refreshThresholdMinutes) * time.Minute,
		now:              biztime.NowUTC,
	}
}

// WithClock is for tests.
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

func (s *JWTService) sign(subj *subject.Subject, tokenType TokenType, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		SubjectID:    subj.ID,
		Email:        subj.Email,
		BusinessName: subj.BusinessName,
		TokenType:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// Generate issues a fresh access and refresh token for subj.
func (s *JWTService) Generate(subj *subject.Subject) (*TokenPair, error) {
	access, err := s.sign(subj, TokenTypeAccess, s.AccessTTL())
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(subj, TokenTypeRefresh, s.RefreshTTL())
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.AccessTTL().Seconds()),
	}, nil
}

// IssueAccessToken creates a new access token; the refresh token is left alone.
func (s *JWTService) IssueAccessToken(subj *subject.Subject) (string, error) {
	return s.sign(subj, TokenTypeAccess, s.AccessTTL())
}

// Verify checks signature, expiry and token type.
func (s *JWTService) Verify(tokenString string, want TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != want {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrWrongTokenType, claims.TokenType, want)
	}
	if claims.SubjectID == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}

// ShouldRefresh reports whether claims expire within the refresh threshold.
func (s *JWTService) ShouldRefresh(claims *Claims) bool {
	if claims == nil || claims.ExpiresAt == nil {
		return false
	}
	return s.now().Add(s.refreshThreshold).After(claims.ExpiresAt.Time)
}

func (s *JWTService) AccessTTL() time.Duration {
	return time.Duration(s.accessExpMinutes) * time.Minute
}

func (s *JWTService) RefreshTTL() time.Duration {
	return time.Duration(s.refreshExpDays) * 24 * time.Hour
}
