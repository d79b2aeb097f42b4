package model

import "time"

// Favorite pins a file for a user within the file's scope. At most one row
// exists per (user, file) pair; the scope id mirrors the file's scope.
type Favorite struct {
	UserID    string    `db:"user_id"`
	OrgID     string    `db:"org_id"` // the file's scope id (org id, or owner id for personal files)
	FileID    string    `db:"file_id"`
	CreatedAt time.Time `db:"created_at"`
}
