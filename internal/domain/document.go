package domain

import "time"

// Document is the metadata row for one uploaded file. The bytes live in the
// upload directory under Filename.
type Document struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}
