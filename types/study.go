package types

import "time"

// Study is a bible-study article, optionally with an attached file.
type Study struct {
	ID       int    `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Content  string `json:"content" db:"content"`
	Category string `json:"category" db:"category"`

	// AuthorID is the id of the user who wrote the study.
	AuthorID  int       `json:"author_id" db:"author_id"`
	FileURL   string    `json:"file_url,omitempty" db:"file_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// StudyUpdate carries a partial update of a study.
type StudyUpdate struct {
	Title    *string `json:"title" validate:"omitempty,min=1"`
	Content  *string `json:"content" validate:"omitempty,min=1"`
	Category *string `json:"category" validate:"omitempty,min=1"`
	FileURL  *string `json:"file_url"`
}
