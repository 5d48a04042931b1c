package memory

import (
	"context"
	"sync"
	"time"

	"github.com/churchhub/apiserver/internal/store"
	"github.com/churchhub/apiserver/types"
)

// StudyRepository keeps bible studies in memory.
type StudyRepository struct {
	mu      sync.RWMutex
	seq     int
	studies map[int]types.Study
}

func NewStudyRepository() *StudyRepository {
	return &StudyRepository{studies: make(map[int]types.Study)}
}

func (r *StudyRepository) Get(ctx context.Context, id int) (types.Study, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	study, ok := r.studies[id]
	if !ok {
		return types.Study{}, store.ErrNotFound
	}
	return study, nil
}

func (r *StudyRepository) List(ctx context.Context) ([]types.Study, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	studies := make([]types.Study, 0, len(r.studies))
	for _, study := range r.studies {
		studies = append(studies, study)
	}
	sortByID(studies, func(s types.Study) int { return s.ID })
	return studies, nil
}

func (r *StudyRepository) Create(ctx context.Context, study types.Study) (types.Study, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	study.ID = r.seq
	study.CreatedAt = time.Now()
	r.studies[study.ID] = study
	return study, nil
}

func (r *StudyRepository) Update(ctx context.Context, id int, upd types.StudyUpdate) (types.Study, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	study, ok := r.studies[id]
	if !ok {
		return types.Study{}, store.ErrNotFound
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

	r.studies[id] = study
	return study, nil
}

func (r *StudyRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.studies[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.studies, id)
	return nil
}
