package db

import "time"

type User struct {
	ID        int64
	Email     string
	Name      string
	Role      string
	IsActive  bool
	CreatedAt time.Time
}

type MagicToken struct {
	ID         int64
	Email      string
	Token      string
	CreatedAt  time.Time
	ApprovedAt *time.Time
}

// Notification mirrors the record shape the old dashboard kept in
// session-scoped browser storage: id, type, title, message, read, category,
// target roles. Persisting it gives delivery across restarts instead of the
// soft convention the browser version relied on.
type Notification struct {
	ID          string
	Type        string
	Title       string
	Message     string
	Category    string
	TargetRoles []string
	Read        bool
	CreatedAt   time.Time
}
