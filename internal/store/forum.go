package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/churchhub/apiserver/types"
)

// ForumTopicRepository handles persistence for discussion topics in PostgreSQL.
type ForumTopicRepository struct {
	db *sql.DB
}

func NewForumTopicRepository(db *sql.DB) *ForumTopicRepository {
	return &ForumTopicRepository{db: db}
}

const topicColumns = `id, title, content, category, author_id, created_at`

func (r *ForumTopicRepository) Get(ctx context.Context, id int) (types.ForumTopic, error) {
	query := `SELECT ` + topicColumns + ` FROM forum_topics WHERE id = $1`
	return scanTopic(r.db.QueryRowContext(ctx, query, id))
}

func (r *ForumTopicRepository) List(ctx context.Context) ([]types.ForumTopic, error) {
	query := `SELECT ` + topicColumns + ` FROM forum_topics ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	topics := make([]types.ForumTopic, 0)
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}

func (r *ForumTopicRepository) Create(ctx context.Context, topic types.ForumTopic) (types.ForumTopic, error) {
	const query = `
		INSERT INTO forum_topics (title, content, category, author_id, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, created_at`
	err := r.db.QueryRowContext(
		ctx,
		query,
		topic.Title,
		topic.Content,
		topic.Category,
		topic.AuthorID,
	).Scan(&topic.ID, &topic.CreatedAt)
	if err != nil {
		return types.ForumTopic{}, err
	}
	return topic, nil
}

func (r *ForumTopicRepository) Update(ctx context.Context, id int, upd types.ForumTopicUpdate) (types.ForumTopic, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.ForumTopic{}, err
	}
	defer tx.Rollback()

	query := `SELECT ` + topicColumns + ` FROM forum_topics WHERE id = $1 FOR UPDATE`
	topic, err := scanTopic(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return types.ForumTopic{}, err
	}

	if upd.Title != nil {
		topic.Title = *upd.Title
	}
	if upd.Content != nil {
		topic.Content = *upd.Content
	}
	if upd.Category != nil {
		topic.Category = *upd.Category
	}

	const updateQuery = `
		UPDATE forum_topics
		SET title = $1, content = $2, category = $3
		WHERE id = $4`
	if _, err := tx.ExecContext(ctx, updateQuery, topic.Title, topic.Content, topic.Category, id); err != nil {
		return types.ForumTopic{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.ForumTopic{}, err
	}
	return topic, nil
}

func (r *ForumTopicRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM forum_topics WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTopic(row rowScanner) (types.ForumTopic, error) {
	var topic types.ForumTopic
	err := row.Scan(
		&topic.ID,
		&topic.Title,
		&topic.Content,
		&topic.Category,
		&topic.AuthorID,
		&topic.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ForumTopic{}, ErrNotFound
		}
		return types.ForumTopic{}, err
	}
	return topic, nil
}

// ForumReplyRepository handles persistence for topic replies in PostgreSQL.
type ForumReplyRepository struct {
	db *sql.DB
}

func NewForumReplyRepository(db *sql.DB) *ForumReplyRepository {
	return &ForumReplyRepository{db: db}
}

const replyColumns = `id, content, topic_id, author_id, created_at`

func (r *ForumReplyRepository) Get(ctx context.Context, id int) (types.ForumReply, error) {
	query := `SELECT ` + replyColumns + ` FROM forum_replies WHERE id = $1`
	return scanReply(r.db.QueryRowContext(ctx, query, id))
}

func (r *ForumReplyRepository) ListByTopic(ctx context.Context, topicID int) ([]types.ForumReply, error) {
	query := `
		SELECT ` + replyColumns + `
		FROM forum_replies
		WHERE topic_id = $1
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	replies := make([]types.ForumReply, 0)
	for rows.Next() {
		reply, err := scanReply(rows)
		if err != nil {
			return nil, err
		}
		replies = append(replies, reply)
	}
	return replies, rows.Err()
}

func (r *ForumReplyRepository) Create(ctx context.Context, reply types.ForumReply) (types.ForumReply, error) {
	const query = `
		INSERT INTO forum_replies (content, topic_id, author_id, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, created_at`
	err := r.db.QueryRowContext(
		ctx,
		query,
		reply.Content,
		reply.TopicID,
		reply.AuthorID,
	).Scan(&reply.ID, &reply.CreatedAt)
	if err != nil {
		return types.ForumReply{}, err
	}
	return reply, nil
}

func (r *ForumReplyRepository) Update(ctx context.Context, id int, upd types.ForumReplyUpdate) (types.ForumReply, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.ForumReply{}, err
	}
	defer tx.Rollback()

	query := `SELECT ` + replyColumns + ` FROM forum_replies WHERE id = $1 FOR UPDATE`
	reply, err := scanReply(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return types.ForumReply{}, err
	}

	if upd.Content != nil {
		reply.Content = *upd.Content
	}

	if _, err := tx.ExecContext(ctx, `UPDATE forum_replies SET content = $1 WHERE id = $2`, reply.Content, id); err != nil {
		return types.ForumReply{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.ForumReply{}, err
	}
	return reply, nil
}

func (r *ForumReplyRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM forum_replies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanReply(row rowScanner) (types.ForumReply, error) {
	var reply types.ForumReply
	err := row.Scan(
		&reply.ID,
		&reply.Content,
		&reply.TopicID,
		&reply.AuthorID,
		&reply.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ForumReply{}, ErrNotFound
		}
		return types.ForumReply{}, err
	}
	return reply, nil
}
