package services

import (
	"context"

	"github.com/churchhub/apiserver/types"
)

// ForumTopicRepository defines persistence operations for discussion topics.
type ForumTopicRepository interface {
	Get(ctx context.Context, id int) (types.ForumTopic, error)
	List(ctx context.Context) ([]types.ForumTopic, error)
	Create(ctx context.Context, topic types.ForumTopic) (types.ForumTopic, error)
	Update(ctx context.Context, id int, upd types.ForumTopicUpdate) (types.ForumTopic, error)
	Delete(ctx context.Context, id int) error
}

// ForumReplyRepository defines persistence operations for topic replies.
// There is no list-all: replies are only ever read per topic.
type ForumReplyRepository interface {
	Get(ctx context.Context, id int) (types.ForumReply, error)
	ListByTopic(ctx context.Context, topicID int) ([]types.ForumReply, error)
	Create(ctx context.Context, reply types.ForumReply) (types.ForumReply, error)
	Update(ctx context.Context, id int, upd types.ForumReplyUpdate) (types.ForumReply, error)
	Delete(ctx context.Context, id int) error
}

// ForumService encapsulates forum use-cases for topics and replies.
type ForumService struct {
	topics  ForumTopicRepository
	replies ForumReplyRepository
}

func NewForumService(topics ForumTopicRepository, replies ForumReplyRepository) *ForumService {
	return &ForumService{topics: topics, replies: replies}
}

func (s *ForumService) GetTopic(ctx context.Context, id int) (types.ForumTopic, error) {
	return s.topics.Get(ctx, id)
}

func (s *ForumService) ListTopics(ctx context.Context) ([]types.ForumTopic, error) {
	return s.topics.List(ctx)
}

func (s *ForumService) CreateTopic(ctx context.Context, topic types.ForumTopic) (types.ForumTopic, error) {
	return s.topics.Create(ctx, topic)
}

func (s *ForumService) UpdateTopic(ctx context.Context, id int, upd types.ForumTopicUpdate) (types.ForumTopic, error) {
	return s.topics.Update(ctx, id, upd)
}

func (s *ForumService) DeleteTopic(ctx context.Context, id int) error {
	return s.topics.Delete(ctx, id)
}

func (s *ForumService) GetReply(ctx context.Context, id int) (types.ForumReply, error) {
	return s.replies.Get(ctx, id)
}

func (s *ForumService) ListRepliesByTopic(ctx context.Context, topicID int) ([]types.ForumReply, error) {
	return s.replies.ListByTopic(ctx, topicID)
}

func (s *ForumService) CreateReply(ctx context.Context, reply types.ForumReply) (types.ForumReply, error) {
	return s.replies.Create(ctx, reply)
}

func (s *ForumService) UpdateReply(ctx context.Context, id int, upd types.ForumReplyUpdate) (types.ForumReply, error) {
	return s.replies.Update(ctx, id, upd)
}

func (s *ForumService) DeleteReply(ctx context.Context, id int) error {
	return s.replies.Delete(ctx, id)
}
