package services

import (
	"context"

	"github.com/churchhub/apiserver/types"
)

// PostRepository defines persistence operations for blog posts.
type PostRepository interface {
	Get(ctx context.Context, id int) (types.Post, error)
	List(ctx context.Context) ([]types.Post, error)
	Create(ctx context.Context, post types.Post) (types.Post, error)
	Update(ctx context.Context, id int, upd types.PostUpdate) (types.Post, error)
	Delete(ctx context.Context, id int) error
}

// PostService encapsulates blog-post use-cases.
type PostService struct {
	repo PostRepository
}

func NewPostService(repo PostRepository) *PostService {
	return &PostService{repo: repo}
}

func (s *PostService) Get(ctx context.Context, id int) (types.Post, error) {
	return s.repo.Get(ctx, id)
}

func (s *PostService) List(ctx context.Context) ([]types.Post, error) {
	return s.repo.List(ctx)
}

func (s *PostService) Create(ctx context.Context, post types.Post) (types.Post, error) {
	return s.repo.Create(ctx, post)
}

func (s *PostService) Update(ctx context.Context, id int, upd types.PostUpdate) (types.Post, error) {
	return s.repo.Update(ctx, id, upd)
}

func (s *PostService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
