package types

import "time"

// Post is a blog entry. New posts are published by default; the flag
// can be toggled freely by the author or an admin.
type Post struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	ImageURL    string    `json:"image_url,omitempty" db:"image_url"`
	AuthorID    int       `json:"author_id" db:"author_id"`
	IsPublished bool      `json:"is_published" db:"is_published"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// PostUpdate carries a partial update of a post.
type PostUpdate struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Content     *string `json:"content" validate:"omitempty,min=1"`
	ImageURL    *string `json:"image_url"`
	IsPublished *bool   `json:"is_published"`
}
