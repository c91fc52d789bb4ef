package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shelfwatch/internal/shared/config"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// NewSessionCookie builds an HttpOnly session cookie from the configured
// scope. A negative maxAge produces a deletion.
func NewSessionCookie(cookieConfig config.CookieConfig, name, value string, maxAge int) *http.Cookie {
	path := cookieConfig.Path
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   cookieConfig.Domain,
		MaxAge:   maxAge,
		Secure:   cookieConfig.Secure,
		HttpOnly: true,
		SameSite: parseSameSite(cookieConfig.SameSite),
	}
}

// ExpiredSessionCookies returns deletions for both session cookies.
func ExpiredSessionCookies(cookieConfig config.CookieConfig) []*http.Cookie {
	return []*http.Cookie{
		NewSessionCookie(cookieConfig, AccessTokenCookie, "", -1),
		NewSessionCookie(cookieConfig, RefreshTokenCookie, "", -1),
	}
}

// WriteCookies appends Set-Cookie headers in order.
func WriteCookies(c *gin.Context, cookies []*http.Cookie) {
	for _, ck := range cookies {
		http.SetCookie(c.Writer, ck)
	}
}

func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
