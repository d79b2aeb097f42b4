package model

import (
	"time"
)

// Declared file types. The type is a tag supplied at creation; file content
// is never inspected.
const (
	FileTypeImage = "image"
	FileTypeCSV   = "csv"
	FileTypePDF   = "pdf"
)

// ValidFileType reports whether t is one of the declared file types.
func ValidFileType(t string) bool {
	switch t {
	case FileTypeImage, FileTypeCSV, FileTypePDF:
		return true
	}
	return false
}

// Scope kinds. A file is owned by exactly one scope: an organization, or a
// single user acting without one. Org ids and user ids are distinct id
// spaces; the kind tag disambiguates.
const (
	ScopeOrg  = "org"
	ScopeUser = "user"
)

// Scope is the owning context of a file.
type Scope struct {
	Kind string // ScopeOrg or ScopeUser
	ID   string // org id or user id, depending on Kind
}

func OrgScope(orgID string) Scope {
	return Scope{Kind: ScopeOrg, ID: orgID}
}

func PersonalScope(userID string) Scope {
	return Scope{Kind: ScopeUser, ID: userID}
}

func (s Scope) IsPersonal() bool {
	return s.Kind == ScopeUser
}

type File struct {
	ID                string    `db:"id"`
	Name              string    `db:"name"`
	Type              string    `db:"type"`
	ScopeKind         string    `db:"scope_kind"`
	ScopeID           string    `db:"scope_id"`
	StorageRef        string    `db:"storage_ref"` // opaque blob-store key, immutable after creation
	CreatorID         string    `db:"creator_id"`
	MarkedForDeletion bool      `db:"marked_for_deletion"`
	CreatedAt         time.Time `db:"created_at"`
}

func (f *File) Scope() Scope {
	return Scope{Kind: f.ScopeKind, ID: f.ScopeID}
}
