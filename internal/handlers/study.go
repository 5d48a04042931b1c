package handlers

import (
	"errors"
	"net/http"

	"github.com/churchhub/apiserver/internal/services"
	"github.com/churchhub/apiserver/internal/store"
	"github.com/churchhub/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// StudyHandler provides HTTP handlers for bible studies.
type StudyHandler struct {
	studyService *services.StudyService
}

func NewStudyHandler(studyService *services.StudyService) *StudyHandler {
	return &StudyHandler{studyService: studyService}
}

// StudyRouter registers study routes on the given router.
func StudyRouter(r chi.Router, studyService *services.StudyService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewStudyHandler(studyService)

	r.Get("/", handler.ListStudies)
	r.With(authMiddleware).Post("/", handler.CreateStudy)
	r.Route("/{studyID}", func(r chi.Router) {
		r.Get("/", handler.GetStudy)
		r.With(authMiddleware).Patch("/", handler.UpdateStudy)
		r.With(authMiddleware).Delete("/", handler.DeleteStudy)
	})
}

func (h *StudyHandler) ListStudies(w http.ResponseWriter, r *http.Request) {
	studies, err := h.studyService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list studies")
		return
	}
	writeJSON(w, http.StatusOK, studies)
}

func (h *StudyHandler) GetStudy(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "studyID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	study, err := h.studyService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "study not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch study")
		return
	}
	writeJSON(w, http.StatusOK, study)
}

type CreateStudyRequest struct {
	Title    string `json:"title" validate:"required,min=1"`
	Content  string `json:"content" validate:"required,min=1"`
	Category string `json:"category" validate:"required,min=1"`
	FileURL  string `json:"file_url"`
}

func (h *StudyHandler) CreateStudy(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateStudyRequest
	if !bind(w, r, &req) {
		return
	}

	created, err := h.studyService.Create(r.Context(), types.Study{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		FileURL:  req.FileURL,
		AuthorID: principal.ID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create study")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *StudyHandler) UpdateStudy(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "studyID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	study, err := h.studyService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "study not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch study")
		return
	}
	if study.AuthorID != principal.ID && !principal.IsAdmin() {
		writeError(w, http.StatusForbidden, "not allowed to modify this study")
		return
	}

	var upd types.StudyUpdate
	if !bind(w, r, &upd) {
		return
	}

	updated, err := h.studyService.Update(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "study not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update study")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *StudyHandler) DeleteStudy(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "studyID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	study, err := h.studyService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "study not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch study")
		return
	}
	if study.AuthorID != principal.ID && !principal.IsAdmin() {
		writeError(w, http.StatusForbidden, "not allowed to delete this study")
		return
	}

	if err := h.studyService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "study not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete study")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "study deleted"})
}
