package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/churchhub/apiserver/types"
)

// StudyRepository handles persistence for bible studies in PostgreSQL.
type StudyRepository struct {
	db *sql.DB
}

func NewStudyRepository(db *sql.DB) *StudyRepository {
	return &StudyRepository{db: db}
}

const studyColumns = `id, title, content, category, author_id, file_url, created_at`

func (r *StudyRepository) Get(ctx context.Context, id int) (types.Study, error) {
	query := `SELECT ` + studyColumns + ` FROM studies WHERE id = $1`
	return scanStudy(r.db.QueryRowContext(ctx, query, id))
}

func (r *StudyRepository) List(ctx context.Context) ([]types.Study, error) {
	query := `SELECT ` + studyColumns + ` FROM studies ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	studies := make([]types.Study, 0)
	for rows.Next() {
		study, err := scanStudy(rows)
		if err != nil {
			return nil, err
		}
		studies = append(studies, study)
	}
	return studies, rows.Err()
}

func (r *StudyRepository) Create(ctx context.Context, study types.Study) (types.Study, error) {
	const query = `
		INSERT INTO studies (title, content, category, author_id, file_url, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, created_at`
	err := r.db.QueryRowContext(
		ctx,
		query,
		study.Title,
		study.Content,
		study.Category,
		study.AuthorID,
		study.FileURL,
	).Scan(&study.ID, &study.CreatedAt)
	if err != nil {
		return types.Study{}, err
	}
	return study, nil
}

func (r *StudyRepository) Update(ctx context.Context, id int, upd types.StudyUpdate) (types.Study, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Study{}, err
	}
	defer tx.Rollback()

	query := `SELECT ` + studyColumns + ` FROM studies WHERE id = $1 FOR UPDATE`
	study, err := scanStudy(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return types.Study{}, err
	}

	if upd.Title != nil {
		study.Title = *upd.Title
	}
	if upd.Content != nil {
		study.Content = *upd.Content
	}
	if upd.Category != nil {
		study.Category = *upd.Category
	}
	if upd.FileURL != nil {
		study.FileURL = *upd.FileURL
	}

	const updateQuery = `
		UPDATE studies
		SET title = $1, content = $2, category = $3, file_url = $4
		WHERE id = $5`
	if _, err := tx.ExecContext(
		ctx,
		updateQuery,
		study.Title,
		study.Content,
		study.Category,
		study.FileURL,
		id,
	); err != nil {
		return types.Study{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Study{}, err
	}
	return study, nil
}

func (r *StudyRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM studies WHERE id = $1`, id)
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

func scanStudy(row rowScanner) (types.Study, error) {
	var study types.Study
	err := row.Scan(
		&study.ID,
		&study.Title,
		&study.Content,
		&study.Category,
		&study.AuthorID,
		&study.FileURL,
		&study.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Study{}, ErrNotFound
		}
		return types.Study{}, err
	}
	return study, nil
}
