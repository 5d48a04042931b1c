package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/churchhub/apiserver/internal/services"
	"github.com/churchhub/apiserver/internal/store"
	"github.com/churchhub/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// EventHandler provides HTTP handlers for calendar events.
type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// EventRouter registers event routes on the given router. Reads are
// public; mutations require authentication, and update/delete require
// the creator or an admin.
func EventRouter(r chi.Router, eventService *services.EventService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewEventHandler(eventService)

	r.Get("/", handler.ListEvents)
	r.Get("/upcoming", handler.ListUpcomingEvents)
	r.With(authMiddleware).Post("/", handler.CreateEvent)
	r.Route("/{eventID}", func(r chi.Router) {
		r.Get("/", handler.GetEvent)
		r.With(authMiddleware).Patch("/", handler.UpdateEvent)
		r.With(authMiddleware).Delete("/", handler.DeleteEvent)
	})
}

func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) ListUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	count := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("count")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid count")
			return
		}
		count = parsed
	}

	events, err := h.eventService.ListUpcoming(r.Context(), count)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list upcoming events")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "eventID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch event")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,min=1"`
	Description string    `json:"description"`
	EventType   string    `json:"event_type" validate:"required,min=1"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	Location    string    `json:"location" validate:"required,min=1"`
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateEventRequest
	if !bind(w, r, &req) {
		return
	}

	created, err := h.eventService.Create(r.Context(), types.Event{
		Title:       req.Title,
		Description: req.Description,
		EventType:   req.EventType,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		CreatedBy:   principal.ID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create event")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "eventID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Existence before ownership: a missing event is 404 for everyone.
	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch event")
		return
	}
	if event.CreatedBy != principal.ID && !principal.IsAdmin() {
		writeError(w, http.StatusForbidden, "not allowed to modify this event")
		return
	}

	var upd types.EventUpdate
	if !bind(w, r, &upd) {
		return
	}

	updated, err := h.eventService.Update(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update event")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "eventID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch event")
		return
	}
	if event.CreatedBy != principal.ID && !principal.IsAdmin() {
		writeError(w, http.StatusForbidden, "not allowed to delete this event")
		return
	}

	if err := h.eventService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "event deleted"})
}
