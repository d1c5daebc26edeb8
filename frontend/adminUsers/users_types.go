package adminusers

import (
	"errors"
	"time"

	"logidash/frontend/shared/html"
)

var (
	ErrInvalidRole    = errors.New("invalid role")
	ErrUserNotFound   = errors.New("user not found")
	ErrSelfDemotion   = errors.New("you cannot remove your own admin role")
	ErrConfiguredRole = errors.New("role is fixed by the admin e-mail list")
)

type UserView struct {
	ID          int64
	Email       string
	Name        string
	Provider    string
	Role        string
	LastLoginAt *time.Time
	Locked      bool
}

type PageData struct {
	Layout html.LayoutData
	Users  []UserView
	Roles  []string
}
