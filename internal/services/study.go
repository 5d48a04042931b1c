package services

import (
	"context"

	"github.com/churchhub/apiserver/types"
)

// StudyRepository defines persistence operations for bible studies.
type StudyRepository interface {
	Get(ctx context.Context, id int) (types.Study, error)
	List(ctx context.Context) ([]types.Study, error)
	Create(ctx context.Context, study types.Study) (types.Study, error)
	Update(ctx context.Context, id int, upd types.StudyUpdate) (types.Study, error)
	Delete(ctx context.Context, id int) error
}

// StudyService encapsulates study use-cases.
type StudyService struct {
	repo StudyRepository
}

func NewStudyService(repo StudyRepository) *StudyService {
	return &StudyService{repo: repo}
}

func (s *StudyService) Get(ctx context.Context, id int) (types.Study, error) {
	return s.repo.Get(ctx, id)
}

func (s *StudyService) List(ctx context.Context) ([]types.Study, error) {
	return s.repo.List(ctx)
}

func (s *StudyService) Create(ctx context.Context, study types.Study) (types.Study, error) {
	return s.repo.Create(ctx, study)
}

func (s *StudyService) Update(ctx context.Context, id int, upd types.StudyUpdate) (types.Study, error) {
	return s.repo.Update(ctx, id, upd)
}

func (s *StudyService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
