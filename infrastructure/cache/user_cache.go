package cache

import (
	"strings"
	"sync"

	"logidash/models"
)

// UserCache caches signed-in users by lowercased e-mail.
type UserCache struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserCache() *UserCache {
	return &UserCache{users: make(map[string]models.User)}
}

func (c *UserCache) Add(user models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[emailKey(user.Email)] = user
}

func (c *UserCache) Get(email string) (models.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[emailKey(email)]
	return u, ok
}

func (c *UserCache) Remove(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.users, emailKey(email))
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
