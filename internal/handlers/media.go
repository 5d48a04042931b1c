package handlers

import (
	"net/http"

	"github.com/churchhub/apiserver/internal/storage"
	"github.com/go-chi/chi/v5"
)

const maxUploadMemory = 32 << 20

// MediaHandler provides the media placeholder endpoints. Upload content
// is never persisted; only a synthetic URL comes back.
type MediaHandler struct {
	storage *storage.Storage
}

func NewMediaHandler(st *storage.Storage) *MediaHandler {
	return &MediaHandler{storage: st}
}

// MediaRouter registers media routes on the given router.
func MediaRouter(r chi.Router, st *storage.Storage, authMiddleware func(http.Handler) http.Handler) {
	handler := NewMediaHandler(st)

	r.Get("/", handler.ListMedia)
	r.With(authMiddleware).Post("/upload", handler.UploadMedia)
}

func (h *MediaHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	objects, err := h.storage.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list media")
		return
	}
	writeJSON(w, http.StatusOK, objects)
}

func (h *MediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	object, err := h.storage.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to record upload")
		return
	}
	writeJSON(w, http.StatusCreated, object)
}
