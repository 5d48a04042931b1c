package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/churchhub/apiserver/types"
)

// PostRepository handles persistence for blog posts in PostgreSQL.
type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `id, title, content, image_url, author_id, is_published, created_at`

func (r *PostRepository) Get(ctx context.Context, id int) (types.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return scanPost(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostRepository) List(ctx context.Context) ([]types.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]types.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Create(ctx context.Context, post types.Post) (types.Post, error) {
	const query = `
		INSERT INTO posts (title, content, image_url, author_id, is_published, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, created_at`
	err := r.db.QueryRowContext(
		ctx,
		query,
		post.Title,
		post.Content,
		post.ImageURL,
		post.AuthorID,
		post.IsPublished,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return types.Post{}, err
	}
	return post, nil
}

func (r *PostRepository) Update(ctx context.Context, id int, upd types.PostUpdate) (types.Post, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Post{}, err
	}
	defer tx.Rollback()

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 FOR UPDATE`
	post, err := scanPost(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return types.Post{}, err
	}

	if upd.Title != nil {
		post.Title = *upd.Title
	}
	if upd.Content != nil {
		post.Content = *upd.Content
	}
	if upd.ImageURL != nil {
		post.ImageURL = *upd.ImageURL
	}
	if upd.IsPublished != nil {
		post.IsPublished = *upd.IsPublished
	}

	const updateQuery = `
		UPDATE posts
		SET title = $1, content = $2, image_url = $3, is_published = $4
		WHERE id = $5`
	if _, err := tx.ExecContext(
		ctx,
		updateQuery,
		post.Title,
		post.Content,
		post.ImageURL,
		post.IsPublished,
		id,
	); err != nil {
		return types.Post{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Post{}, err
	}
	return post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
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

func scanPost(row rowScanner) (types.Post, error) {
	var post types.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.ImageURL,
		&post.AuthorID,
		&post.IsPublished,
		&post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Post{}, ErrNotFound
		}
		return types.Post{}, err
	}
	return post, nil
}
