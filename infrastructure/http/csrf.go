package http

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"logidash/frontend/shared/html"
)

const csrfTokenBytes = 32

// CSRFMiddleware issues a double-submit token cookie and checks it on every
// POST, the Google sign-in callback included. The token comes from the
// X-CSRF-Token header or the _csrf field that html.CSRFFormScript fills in.
func (s *Server) CSRFMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := csrfCookieToken(w, r)
		if readOnlyMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}
		if !csrfTokenMatches(token, submittedCSRFToken(r)) {
			http.Error(w, "invalid csrf token", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func readOnlyMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func submittedCSRFToken(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(html.CSRFHeaderName)); v != "" {
		return v
	}
	return strings.TrimSpace(r.FormValue(html.CSRFFieldName))
}

func csrfTokenMatches(want, got string) bool {
	return got != "" && subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// csrfCookieToken returns the visitor's token, minting one on first contact.
// JS must read it, so the cookie is not HttpOnly.
func csrfCookieToken(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(html.CSRFCookieName); err == nil && strings.TrimSpace(c.Value) != "" {
		return c.Value
	}
	token := newCSRFToken()
	http.SetCookie(w, &http.Cookie{
		Name:     html.CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

func newCSRFToken() string {
	buf := make([]byte, csrfTokenBytes)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
