package handlers

import (
	"errors"
	"io"
	"net/http"

	"isafari/internal/services"
	"isafari/utils"
)

type UploadHandler struct {
	Service *services.UploadService
	Log     services.Logger
}

// Upload accepts a multipart "file" and a "folder" field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	limit := h.Service.Limit
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "File exceeds the upload limit")
			return
		}
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Could not read file")
		return
	}

	url, err := h.Service.Upload(r.Context(), r.FormValue("folder"), data)
	if err != nil {
		if errors.Is(err, utils.ErrStorageDisabled) {
			respondError(w, http.StatusServiceUnavailable, "File storage is not configured")
			return
		}
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusCreated, "File uploaded", map[string]string{"url": url})
}
