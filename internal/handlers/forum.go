package handlers

import (
	"errors"
	"net/http"

	"github.com/churchhub/apiserver/internal/services"
	"github.com/churchhub/apiserver/internal/store"
	"github.com/churchhub/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// ForumHandler provides HTTP handlers for discussion topics and replies.
type ForumHandler struct {
	forumService *services.ForumService
}

func NewForumHandler(forumService *services.ForumService) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

// ForumRouter registers forum routes on the given router. Replies have
// no list-all endpoint; they are read through their topic.
func ForumRouter(r chi.Router, forumService *services.ForumService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewForumHandler(forumService)

	r.Route("/topics", func(r chi.Router) {
		r.Get("/", handler.ListTopics)
		r.With(authMiddleware).Post("/", handler.CreateTopic)
		r.Route("/{topicID}", func(r chi.Router) {
			r.Get("/", handler.GetTopic)
			r.Get("/replies", handler.ListTopicReplies)
			r.With(authMiddleware).Patch("/", handler.UpdateTopic)
			r.With(authMiddleware).Delete("/", handler.DeleteTopic)
		})
	})
	r.Route("/replies", func(r chi.Router) {
		r.With(authMiddleware).Post("/", handler.CreateReply)
		r.Route("/{replyID}", func(r chi.Router) {
			r.Get("/", handler.GetReply)
			r.With(authMiddleware).Patch("/", handler.UpdateReply)
			r.With(authMiddleware).Delete("/", handler.DeleteReply)
		})
	})
}

func (h *ForumHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.forumService.ListTopics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list topics")
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

func (h *ForumHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "topicID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	topic, err := h.forumService.GetTopic(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "topic not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch topic")
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

// ListTopicReplies returns the replies of a topic oldest first. Replies
// to a topic that no longer exists are still served; the topic id is
// not referentially enforced.
func (h *ForumHandler) ListTopicReplies(w http.ResponseWriter, r *http.Request) {
	topicID, err := parseIDParam(r, "topicID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	replies, err := h.forumService.ListRepliesByTopic(r.Context(), topicID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list replies")
		return
	}
	writeJSON(w, http.StatusOK, replies)
}

type CreateTopicRequest struct {
	Title    string `json:"title" validate:"required,min=1"`
	Content  string `json:"content" validate:"required,min=1"`
	Category string `json:"category" validate:"required,min=1"`
}

func (h *ForumHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateTopicRequest
	if !bind(w, r, &req) {
		return
	}

	created, err := h.forumService.CreateTopic(r.Context(), types.ForumTopic{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		AuthorID: principal.ID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create topic")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ForumHandler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "topicID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	topic, err := h.forumService.GetTopic(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "topic not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch topic")
		return
	}
	if topic.AuthorID != principal.ID && !principal.IsAdmin() {
		writeError(w, http.StatusForbidden, "not allowed to modify this topic")
		return
	}

	var upd types.ForumTopicUpdate
	if !bind(w, r, &upd) {
		return
	}

	updated, err := h.forumService.UpdateTopic(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "topic not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update topic")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ForumHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "topicID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	topic, err := h.forumService.GetTopic(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "topic not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch topic")
		return
	}
	if topic.AuthorID != principal.ID && !principal.IsAdmin() {
		writeError(w, http.StatusForbidden, "not allowed to delete this topic")
		return
	}

	if err := h.forumService.DeleteTopic(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "topic not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete topic")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "topic deleted"})
}

func (h *ForumHandler) GetReply(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "replyID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.forumService.GetReply(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "reply not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch reply")
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

type CreateReplyRequest struct {
	Content string `json:"content" validate:"required,min=1"`
	TopicID int    `json:"topic_id" validate:"required,min=1"`
}

func (h *ForumHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateReplyRequest
	if !bind(w, r, &req) {
		return
	}

	created, err := h.forumService.CreateReply(r.Context(), types.ForumReply{
		Content:  req.Content,
		TopicID:  req.TopicID,
		AuthorID: principal.ID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create reply")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ForumHandler) UpdateReply(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "replyID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.forumService.GetReply(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "reply not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch reply")
		return
	}
	if reply.AuthorID != principal.ID && !principal.IsAdmin() {
		writeError(w, http.StatusForbidden, "not allowed to modify this reply")
		return
	}

	var upd types.ForumReplyUpdate
	if !bind(w, r, &upd) {
		return
	}

	updated, err := h.forumService.UpdateReply(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "reply not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update reply")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ForumHandler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "replyID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.forumService.GetReply(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "reply not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch reply")
		return
	}
	if reply.AuthorID != principal.ID && !principal.IsAdmin() {
		writeError(w, http.StatusForbidden, "not allowed to delete this reply")
		return
	}

	if err := h.forumService.DeleteReply(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "reply not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete reply")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "reply deleted"})
}
