package memory

import (
	"context"
	"sync"
	"time"

	"github.com/churchhub/apiserver/internal/store"
	"github.com/churchhub/apiserver/types"
)

// PostRepository keeps blog posts in memory.
type PostRepository struct {
	mu    sync.RWMutex
	seq   int
	posts map[int]types.Post
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[int]types.Post)}
}

func (r *PostRepository) Get(ctx context.Context, id int) (types.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return types.Post{}, store.ErrNotFound
	}
	return post, nil
}

func (r *PostRepository) List(ctx context.Context) ([]types.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]types.Post, 0, len(r.posts))
	for _, post := range r.posts {
		posts = append(posts, post)
	}
	sortByID(posts, func(p types.Post) int { return p.ID })
	return posts, nil
}

func (r *PostRepository) Create(ctx context.Context, post types.Post) (types.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	post.ID = r.seq
	post.CreatedAt = time.Now()
	r.posts[post.ID] = post
	return post, nil
}

func (r *PostRepository) Update(ctx context.Context, id int, upd types.PostUpdate) (types.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return types.Post{}, store.ErrNotFound
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

	r.posts[id] = post
	return post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}
