package model

import "time"

// Document is a user-owned record pairing a Type with exactly one stored file.
// File holds the server-generated filename, never a path; URL is computed on read.
type Document struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	TypeID    int64      `json:"type_id"`
	Type      *Type      `json:"type,omitempty"`
	File      string     `json:"file"`
	URL       string     `json:"url"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// OwnedBy reports whether userID is the document owner.
func (d *Document) OwnedBy(userID int64) bool {
	return d.UserID == userID
}
