package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taehan09/studio/internal/blob"
)

// maxUploadBytes caps a single media upload.
const maxUploadBytes = 10 << 20

// MediaHandler serves admin media uploads and deletes over the blob store.
// These stay plain chi handlers: multipart form bodies don't fit the typed
// operation model.
type MediaHandler struct {
	blobs  *blob.Store
	logger *slog.Logger
}

func NewMediaHandler(blobs *blob.Store, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{blobs: blobs, logger: logger}
}

// Upload accepts a multipart form with a "file" field and stores it under
// the section's media prefix. Responds with the public retrieval URL.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	url, err := h.blobs.Save(section, header.Filename, file)
	if err != nil {
		if errors.Is(err, blob.ErrInvalidName) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to save media", "section", section, "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save media")
		return
	}

	h.logger.Info("media uploaded", "section", section, "url", url)
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// Delete removes the media object behind the given url query parameter.
// Deleting an absent object succeeds.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "missing url parameter")
		return
	}

	if err := h.blobs.Delete(url); err != nil {
		if errors.Is(err, blob.ErrInvalidName) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to delete media", "url", url, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete media")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
