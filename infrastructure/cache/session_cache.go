package cache

import (
	"sync"

	"logidash/models"
)

// UserSessionCache stores sessions by token.
type UserSessionCache struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewUserSessionCache() *UserSessionCache {
	return &UserSessionCache{sessions: make(map[string]models.Session)}
}

func (c *UserSessionCache) AddSession(s models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[s.ID] = s
}

func (c *UserSessionCache) FindSessionBySessionToken(token string) (models.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sessions[token]
	return s, ok
}

func (c *UserSessionCache) DeleteSessionBySessionToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, token)
}

// RefreshUser rewrites the cached user (and role list) on every session it owns,
// so a role change applies without forcing a new login.
func (c *UserSessionCache) RefreshUser(user models.User) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for token, s := range c.sessions {
		if s.UserID != user.ID {
			continue
		}
		s.User = user
		s.UserRoles = []string{user.Role}
		s.ScreenPermissions = nil
		c.sessions[token] = s
		n++
	}
	return n
}

// MarkWelcomeSeen clears the one-shot welcome flag on a cached session.
func (c *UserSessionCache) MarkWelcomeSeen(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sessions[token]; ok {
		s.WelcomePending = false
		c.sessions[token] = s
	}
}
