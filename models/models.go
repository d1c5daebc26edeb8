package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User is an account that has signed in at least once.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID            int64      `bun:"id,pk,autoincrement"`
	Email         string     `bun:"email,unique,notnull"`
	Name          string     `bun:"name,notnull,default:''"`
	Picture       string     `bun:"picture,notnull,default:''"`
	GoogleSubject string     `bun:"google_subject,notnull,default:''"`
	Provider      string     `bun:"provider,notnull"`
	Role          string     `bun:"role,notnull"`
	LastLoginAt   *time.Time `bun:"last_login_at"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

// DisplayName falls back to the e-mail local part.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	for i := 0; i < len(u.Email); i++ {
		if u.Email[i] == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}

// Session is used by middleware and auth handlers.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID                string         `bun:"id,pk"`
	UserID            int64          `bun:"user_id,notnull"`
	User              User           `bun:"rel:belongs-to,join:user_id=id"`
	UserRoles         []string       `bun:"-"`
	ScreenPermissions map[string]int `bun:"-"`
	WelcomePending    bool           `bun:"welcome_pending,notnull,default:false"`
	ExpiresAt         time.Time      `bun:"expires_at,notnull"`
	CreatedAt         time.Time      `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt         time.Time      `bun:"updated_at,notnull,default:current_timestamp"`
}

// Expired returns true when the session expiry time has passed.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SyncRun records the outcome of one spreadsheet poll. Sheet rows are not stored.
type SyncRun struct {
	bun.BaseModel `bun:"table:sync_runs,alias:sr"`

	ID            int64     `bun:"id,pk,autoincrement"`
	TriggeredBy   string    `bun:"triggered_by,notnull"`
	StartedAt     time.Time `bun:"started_at,notnull"`
	FinishedAt    time.Time `bun:"finished_at,notnull"`
	SourcesOK     int       `bun:"sources_ok,notnull"`
	SourcesFailed int       `bun:"sources_failed,notnull"`
	TotalRows     int       `bun:"total_rows,notnull"`
	ErrorText     string    `bun:"error_text,notnull,default:''"`
}

// Duration of the poll.
func (r SyncRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// ExportRun records a download from the exports endpoints.
type ExportRun struct {
	bun.BaseModel `bun:"table:export_runs,alias:er"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     *int64    `bun:"user_id"`
	ExportType string    `bun:"export_type,notnull"`
	Format     string    `bun:"format,notnull"`
	RowCount   int       `bun:"row_count,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// AuditLog captures immutable change history for key operations.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     int64     `bun:"user_id,notnull"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	BeforeJSON string    `bun:"before_json"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
