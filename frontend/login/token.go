package login

import (
	"crypto/rand"
	"encoding/hex"

	sessioncookie "logidash/infrastructure/session"
	"logidash/models"
)

const sessionTokenBytes = 24

// newSessionToken is the opaque cookie value and sessions.id primary key.
func newSessionToken() string {
	buf := make([]byte, sessionTokenBytes)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// newSession starts a 12h session for either provider. The welcome screen is
// pending until the first page after sign-in clears it.
func newSession(user models.User) models.Session {
	return models.Session{
		ID:             newSessionToken(),
		UserID:         user.ID,
		User:           user,
		UserRoles:      []string{user.Role},
		WelcomePending: true,
		ExpiresAt:      sessioncookie.DefaultExpiry(),
	}
}
