package entity

import "time"

// Post is the record shared by every repository backend. ImagePath is a
// reference resolved by the storage backend (root-relative path or
// absolute URL); the repository never validates it.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImagePath string    `json:"image_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
