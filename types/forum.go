package types

import "time"

// ForumTopic opens a discussion thread.
type ForumTopic struct {
	ID        int       `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Category  string    `json:"category" db:"category"`
	AuthorID  int       `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ForumTopicUpdate carries a partial update of a topic.
type ForumTopicUpdate struct {
	Title    *string `json:"title" validate:"omitempty,min=1"`
	Content  *string `json:"content" validate:"omitempty,min=1"`
	Category *string `json:"category" validate:"omitempty,min=1"`
}

// ForumReply is a single message inside a topic. TopicID is not
// enforced referentially: replies to a deleted topic remain until
// deleted themselves.
type ForumReply struct {
	ID        int       `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	TopicID   int       `json:"topic_id" db:"topic_id"`
	AuthorID  int       `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ForumReplyUpdate carries a partial update of a reply. The topic a
// reply belongs to never changes.
type ForumReplyUpdate struct {
	Content *string `json:"content" validate:"omitempty,min=1"`
}
