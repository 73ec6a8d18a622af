package handlers

import (
	"net/http"

	"typepet/internal/service"
)

// CelebrationHandler exposes the pending celebration queue to the UI
type CelebrationHandler struct {
	queue *service.CelebrationQueue
}

// NewCelebrationHandler creates a new celebration handler
func NewCelebrationHandler(queue *service.CelebrationQueue) *CelebrationHandler {
	return &CelebrationHandler{queue: queue}
}

// Next returns the highest-priority pending celebration without consuming it.
// A 204 means there is nothing to show.
func (h *CelebrationHandler) Next(w http.ResponseWriter, r *http.Request) {
	event := h.queue.Next()
	if event == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// MarkShown acknowledges a displayed celebration by id
func (h *CelebrationHandler) MarkShown(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.queue.MarkShown(id) {
		respondWithError(w, http.StatusNotFound, "No pending celebration with that id", "", nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"shown": id})
}

// List returns every pending celebration in display order
func (h *CelebrationHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.queue.Snapshot())
}
