package cache

import (
	"sort"
	"sync"
)

// Resource is one dashboard screen or command a role may reach, e.g.
// STOCK_VIEW on GET /tasker/stock or SYNC_NOW on POST /tasker/status/sync.
type Resource struct {
	UserResourceCode string
	Path             string
	Method           string
	Role             string
}

// RbacRolesCache holds the route table registered at startup. It is written
// once while routes are mounted and read on every request after that.
type RbacRolesCache struct {
	mu     sync.RWMutex
	byRole map[string][]Resource
	codes  map[string]struct{}
}

func NewRbacRolesCache() *RbacRolesCache {
	return &RbacRolesCache{
		byRole: make(map[string][]Resource),
		codes:  make(map[string]struct{}),
	}
}

func (c *RbacRolesCache) Add(role string, r Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byRole[role] = append(c.byRole[role], r)
	c.codes[r.UserResourceCode] = struct{}{}
}

// ForRoles returns every resource granted to any of roles.
func (c *RbacRolesCache) ForRoles(roles []string) []Resource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Resource, 0)
	for _, role := range roles {
		out = append(out, c.byRole[role]...)
	}
	return out
}

// AllScreens is the permission map an admin session gets: every code set to 1.
func (c *RbacRolesCache) AllScreens() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]int, len(c.codes))
	for code := range c.codes {
		out[code] = 1
	}
	return out
}

func (c *RbacRolesCache) ScreenCodes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	codes := make([]string, 0, len(c.codes))
	for code := range c.codes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
