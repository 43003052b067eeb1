package handlers

import (
	"context"
	"net/http"

	"isafari/internal/models"
	"isafari/internal/services"
)

type StoryHandler struct {
	Service *services.StoryService
	Log     services.Logger
}

func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.List(r.Context(), queryInt(r, "page", 1), queryInt(r, "limit", 10))
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", page)
}

func (h *StoryHandler) Featured(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Featured(r.Context(), queryInt(r, "limit", 0))
	h.respondList(w, list, err)
}

// Get is public; the author also sees their own unpublished story.
func (h *StoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid story ID")
		return
	}
	st, err := h.Service.Get(r.Context(), id, userID(r))
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", st)
}

func (h *StoryHandler) Mine(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Mine(r.Context(), userID(r))
	h.respondList(w, list, err)
}

func (h *StoryHandler) respondList(w http.ResponseWriter, list []models.TravelerStory, err error) {
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.TravelerStory{}
	}
	respond(w, http.StatusOK, "", list)
}

func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.StoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	st, err := h.Service.Create(r.Context(), userID(r), req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusCreated, "Story submitted for review", st)
}

func (h *StoryHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid story ID")
		return
	}
	n, err := h.Service.Like(r.Context(), id, userID(r))
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Story liked", map[string]int{"likes_count": n})
}

func (h *StoryHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid story ID")
		return
	}
	n, err := h.Service.Unlike(r.Context(), id, userID(r))
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Story unliked", map[string]int{"likes_count": n})
}

func (h *StoryHandler) Comment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid story ID")
		return
	}
	var req models.CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.Service.Comment(r.Context(), id, userID(r), req.Comment)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusCreated, "Comment added", c)
}

func (h *StoryHandler) ModerationList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListForModeration(r.Context(), r.URL.Query().Get("status"))
	h.respondList(w, list, err)
}

func (h *StoryHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "Story approved", h.Service.Approve)
}

func (h *StoryHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "Story rejected", h.Service.Reject)
}

func (h *StoryHandler) moderate(w http.ResponseWriter, r *http.Request, msg string,
	fn func(ctx context.Context, id int) (models.TravelerStory, error)) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid story ID")
		return
	}
	st, err := fn(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, msg, st)
}

// Feature marks the story featured unless the body sets is_featured.
func (h *StoryHandler) Feature(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid story ID")
		return
	}
	featured := true
	if r.ContentLength > 0 {
		var req models.FeatureRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.IsFeatured != nil {
			featured = *req.IsFeatured
		}
	}
	st, err := h.Service.Feature(r.Context(), id, featured)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Story updated", st)
}

func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid story ID")
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Story deleted", nil)
}
