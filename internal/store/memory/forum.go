package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/churchhub/apiserver/internal/store"
	"github.com/churchhub/apiserver/types"
)

// ForumTopicRepository keeps discussion topics in memory.
type ForumTopicRepository struct {
	mu     sync.RWMutex
	seq    int
	topics map[int]types.ForumTopic
}

func NewForumTopicRepository() *ForumTopicRepository {
	return &ForumTopicRepository{topics: make(map[int]types.ForumTopic)}
}

func (r *ForumTopicRepository) Get(ctx context.Context, id int) (types.ForumTopic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	topic, ok := r.topics[id]
	if !ok {
		return types.ForumTopic{}, store.ErrNotFound
	}
	return topic, nil
}

func (r *ForumTopicRepository) List(ctx context.Context) ([]types.ForumTopic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	topics := make([]types.ForumTopic, 0, len(r.topics))
	for _, topic := range r.topics {
		topics = append(topics, topic)
	}
	sortByID(topics, func(t types.ForumTopic) int { return t.ID })
	return topics, nil
}

func (r *ForumTopicRepository) Create(ctx context.Context, topic types.ForumTopic) (types.ForumTopic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	topic.ID = r.seq
	topic.CreatedAt = time.Now()
	r.topics[topic.ID] = topic
	return topic, nil
}

func (r *ForumTopicRepository) Update(ctx context.Context, id int, upd types.ForumTopicUpdate) (types.ForumTopic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	topic, ok := r.topics[id]
	if !ok {
		return types.ForumTopic{}, store.ErrNotFound
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

	r.topics[id] = topic
	return topic, nil
}

func (r *ForumTopicRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.topics[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.topics, id)
	return nil
}

// ForumReplyRepository keeps topic replies in memory.
type ForumReplyRepository struct {
	mu      sync.RWMutex
	seq     int
	replies map[int]types.ForumReply
}

func NewForumReplyRepository() *ForumReplyRepository {
	return &ForumReplyRepository{replies: make(map[int]types.ForumReply)}
}

func (r *ForumReplyRepository) Get(ctx context.Context, id int) (types.ForumReply, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reply, ok := r.replies[id]
	if !ok {
		return types.ForumReply{}, store.ErrNotFound
	}
	return reply, nil
}

// ListByTopic returns the replies of a topic oldest first, so a thread
// reads in conversational order.
func (r *ForumReplyRepository) ListByTopic(ctx context.Context, topicID int) ([]types.ForumReply, error) {
	r.mu.RLock()
	replies := make([]types.ForumReply, 0)
	for _, reply := range r.replies {
		if reply.TopicID == topicID {
			replies = append(replies, reply)
		}
	}
	r.mu.RUnlock()

	sort.Slice(replies, func(i, j int) bool {
		if replies[i].CreatedAt.Equal(replies[j].CreatedAt) {
			return replies[i].ID < replies[j].ID
		}
		return replies[i].CreatedAt.Before(replies[j].CreatedAt)
	})
	return replies, nil
}

func (r *ForumReplyRepository) Create(ctx context.Context, reply types.ForumReply) (types.ForumReply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	reply.ID = r.seq
	reply.CreatedAt = time.Now()
	r.replies[reply.ID] = reply
	return reply, nil
}

func (r *ForumReplyRepository) Update(ctx context.Context, id int, upd types.ForumReplyUpdate) (types.ForumReply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reply, ok := r.replies[id]
	if !ok {
		return types.ForumReply{}, store.ErrNotFound
	}

	if upd.Content != nil {
		reply.Content = *upd.Content
	}

	r.replies[id] = reply
	return reply, nil
}

func (r *ForumReplyRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.replies[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.replies, id)
	return nil
}
