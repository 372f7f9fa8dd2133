package auth

import (
	"net/http"
	"strings"
)

const AccessTokenCookie = "access_token"

// Accepted Authorization schemes. "JWT" is what existing storefront clients send.
var headerSchemes = []string{"Bearer", "JWT"}

// ExtractAccessToken returns the token from the access_token cookie or,
// failing that, from an Authorization header using one of headerSchemes.
// An empty string means the request is anonymous.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok {
		return ""
	}
	for _, s := range headerSchemes {
		if strings.EqualFold(scheme, s) {
			return strings.TrimSpace(token)
		}
	}
	return ""
}
