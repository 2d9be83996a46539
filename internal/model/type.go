package model

import "time"

// Type is a named document classification with a short code.
type Type struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Abbreviation string     `json:"abbreviation"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}
