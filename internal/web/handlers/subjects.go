package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// StatsResponse reports how many subjects are enrolled and indexed.
type StatsResponse struct {
	Enrolled int `json:"enrolled"`
	Indexed  int `json:"indexed"`
}

// DeleteSubject removes a subject's enrollment from the store and the
// identification index.
func (h *FacesHandler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")
	if subjectID == "" {
		respondError(w, http.StatusBadRequest, "subjectID is required")
		return
	}

	stored, err := h.store.Get(r.Context(), subjectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load stored embedding")
		return
	}
	if stored == nil {
		respondError(w, http.StatusNotFound, "subject is not enrolled")
		return
	}

	if err := h.store.Delete(r.Context(), subjectID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete embedding")
		return
	}
	h.index.Delete(subjectID)

	respondJSON(w, http.StatusOK, map[string]string{"deleted": subjectID})
}

// Stats returns enrollment counts.
func (h *FacesHandler) Stats(w http.ResponseWriter, r *http.Request) {
	enrolled, err := h.store.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to count enrollments")
		return
	}

	respondJSON(w, http.StatusOK, StatsResponse{
		Enrolled: enrolled,
		Indexed:  h.index.Count(),
	})
}
