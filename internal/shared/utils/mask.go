package utils

import (
	"strings"
	"unicode/utf8"
)

// MaskEmail masks an address for logs: "shop@example.com" -> "s***@example.com".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return "***"
	}
	r, _ := utf8.DecodeRuneInString(local)
	if r == utf8.RuneError {
		return "***@" + domain
	}
	return string(r) + "***@" + domain
}
