package session

import (
	"net/http"
	"time"
)

const (
	CookieName = "X-Session-Token"

	// TTL is how long a dashboard login lasts.
	TTL = 12 * time.Hour
)

func SessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
}

// MaxAge is TTL in cookie seconds.
func MaxAge() int {
	return int(TTL / time.Second)
}

func DefaultExpiry() time.Time {
	return time.Now().Add(TTL)
}
